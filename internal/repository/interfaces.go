// Package repository содержит интерфейсы источников данных и хранилища выгрузок.
package repository

import (
	"context"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
)

// RowSource отдаёт строки исходной таблицы назначений (без заголовка).
type RowSource interface {
	ReadRows(ctx context.Context) ([]domain.Row, error)
}

// ArtifactStore сохраняет и читает сгенерированные файлы.
type ArtifactStore interface {
	Save(ctx context.Context, path string, data []byte) error
	Load(ctx context.Context, path string) ([]byte, error)
}
