// Package fsstore сохраняет выгрузки на локальный диск.
package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
	"github.com/TsepisoMotloung/360-Rating/internal/repository"
)

type store struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// New возвращает файловую реализацию ArtifactStore.
func New() repository.ArtifactStore {
	return &store{dirPerm: 0o755, filePerm: 0o644}
}

// Save пишет файл целиком, создавая недостающие каталоги.
func (s *store) Save(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, s.dirPerm); err != nil {
			return fmt.Errorf("create dir for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, s.filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load читает файл целиком. Отсутствующий файл даёт domain.ErrFileNotFound.
func (s *store) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, err
	}
	return data, nil
}
