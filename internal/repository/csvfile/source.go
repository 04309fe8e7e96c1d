// Package csvfile читает выгрузку назначений из CSV.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
	"github.com/TsepisoMotloung/360-Rating/internal/repository"
)

const (
	// DefaultRaterColumn заголовок колонки оценивающего.
	DefaultRaterColumn = "Rater Email"
	// DefaultRateeColumn заголовок колонки оцениваемого. Пробел в конце есть в самой выгрузке.
	DefaultRateeColumn = "Ratee Email "
)

// Columns заголовки колонок, из которых берутся email.
type Columns struct {
	Rater string
	Ratee string
}

// DefaultColumns заголовки исходной выгрузки.
func DefaultColumns() Columns {
	return Columns{Rater: DefaultRaterColumn, Ratee: DefaultRateeColumn}
}

type fileSource struct {
	path string
	cols Columns
}

// NewFileSource создаёт источник, читающий CSV-файл по пути.
func NewFileSource(path string, cols Columns) repository.RowSource {
	return &fileSource{path: path, cols: cols}
}

// ReadRows открывает файл и читает его целиком. Файл закрывается в любом случае.
func (s *fileSource) ReadRows(ctx context.Context) ([]domain.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, s.path)
		}
		return nil, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	rows, err := readRows(ctx, f, s.cols)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return rows, nil
}

type streamSource struct {
	r    io.Reader
	cols Columns
}

// NewSource создаёт источник поверх произвольного потока (тело HTTP-запроса и т.п.).
func NewSource(r io.Reader, cols Columns) repository.RowSource {
	return &streamSource{r: r, cols: cols}
}

// ReadRows читает поток до конца.
func (s *streamSource) ReadRows(ctx context.Context) ([]domain.Row, error) {
	return readRows(ctx, s.r, s.cols)
}

func readRows(ctx context.Context, r io.Reader, cols Columns) ([]domain.Row, error) {
	// UTF-8 BOM срезается, UTF-16 с BOM перекодируется в UTF-8
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyInput
		}
		return nil, err
	}

	raterIdx, err := columnIndex(header, cols.Rater)
	if err != nil {
		return nil, err
	}
	rateeIdx, err := columnIndex(header, cols.Ratee)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, domain.Row{
			Line:       line,
			RaterEmail: field(record, raterIdx),
			RateeEmail: field(record, rateeIdx),
		})
	}

	return rows, nil
}

// columnIndex ищет колонку сначала по точному совпадению заголовка,
// затем без учёта регистра и крайних пробелов.
func columnIndex(header []string, label string) (int, error) {
	for i, h := range header {
		if h == label {
			return i, nil
		}
	}
	want := strings.TrimSpace(label)
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: column %q not found in header", domain.ErrSchemaMismatch, label)
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
