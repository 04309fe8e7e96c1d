package app

import (
	"io"

	"github.com/TsepisoMotloung/360-Rating/internal/repository"
	"github.com/TsepisoMotloung/360-Rating/internal/repository/csvfile"
	"github.com/TsepisoMotloung/360-Rating/internal/repository/fsstore"
)

// Repositories обертка над источниками и хранилищем, чтобы передавать единым скопом
type Repositories struct {
	Columns   csvfile.Columns
	Artifacts repository.ArtifactStore
}

// NewRepositories создаёт файловые реализации репозиториев.
func NewRepositories(cols csvfile.Columns) *Repositories {
	return &Repositories{
		Columns:   cols,
		Artifacts: fsstore.New(),
	}
}

// File источник строк из CSV-файла.
func (r *Repositories) File(path string) repository.RowSource {
	return csvfile.NewFileSource(path, r.Columns)
}

// Stream источник строк из потока.
func (r *Repositories) Stream(rd io.Reader) repository.RowSource {
	return csvfile.NewSource(rd, r.Columns)
}
