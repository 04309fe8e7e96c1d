package app

import (
	"context"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
	"github.com/TsepisoMotloung/360-Rating/internal/repository"
)

// ConverterService описывает конвертацию таблицы назначений в SQL и JSON.
type ConverterService interface {
	Convert(ctx context.Context, src repository.RowSource, opts domain.RenderOptions) (domain.Conversion, error)
	Run(ctx context.Context, src repository.RowSource, opts domain.RenderOptions, out domain.Outputs) (domain.Report, error)
	SQLToJSON(ctx context.Context, sqlPath, jsonPath string, opts domain.ParseOptions, periodID int) (int, error)
}
