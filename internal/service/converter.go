// Package service сервисный слой с логикой конвертации
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/TsepisoMotloung/360-Rating/internal/app"
	"github.com/TsepisoMotloung/360-Rating/internal/domain"
	"github.com/TsepisoMotloung/360-Rating/internal/repository"
)

type converterService struct {
	store       repository.ArtifactStore
	raterHeader string
	log         *zap.Logger
}

// NewConverterService создаёт сервис конвертации таблицы назначений.
// raterHeader нужен, чтобы отбрасывать повторы заголовка внутри данных.
func NewConverterService(
	store repository.ArtifactStore,
	raterHeader string,
	log *zap.Logger,
) app.ConverterService {
	if log == nil {
		log = zap.NewNop()
	}
	return &converterService{
		store:       store,
		raterHeader: raterHeader,
		log:         log,
	}
}

// Convert читает строки и генерирует обе выгрузки в памяти.
func (s *converterService) Convert(ctx context.Context, src repository.RowSource, opts domain.RenderOptions) (domain.Conversion, error) {
	rows, err := src.ReadRows(ctx)
	if err != nil {
		return domain.Conversion{}, err
	}

	ex := Extract(rows, s.raterHeader)
	s.log.Debug("rows extracted",
		zap.Int("rows", ex.Rows),
		zap.Int("assignments", len(ex.Assignments)),
		zap.Int("header_rows", ex.HeaderRows),
		zap.Int("blank_raters", ex.BlankRaters),
	)
	if len(ex.Orphans) > 0 {
		// в выгрузки такие строки не попадают, только в лог
		s.log.Warn("rows without ratee dropped",
			zap.Int("count", len(ex.Orphans)),
			zap.Ints("lines", ex.Orphans),
		)
	}

	if err := ctx.Err(); err != nil {
		return domain.Conversion{}, err
	}

	sqlText, err := RenderSQL(ex.Assignments, opts.Dialect, opts.Quoting)
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("render sql: %w", err)
	}

	jsonData, err := RenderJSON(ex.Assignments, opts.PeriodID)
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("render json: %w", err)
	}

	return domain.Conversion{
		Extraction: ex,
		SQL:        sqlText,
		JSON:       jsonData,
	}, nil
}

// Run конвертирует и записывает SQL и JSON по очереди.
// Первая же ошибка прерывает запуск.
func (s *converterService) Run(ctx context.Context, src repository.RowSource, opts domain.RenderOptions, out domain.Outputs) (domain.Report, error) {
	conv, err := s.Convert(ctx, src, opts)
	if err != nil {
		return domain.Report{}, err
	}

	if err := s.store.Save(ctx, out.SQLPath, []byte(conv.SQL)); err != nil {
		return domain.Report{}, err
	}
	s.log.Info("sql script written", zap.String("path", out.SQLPath), zap.String("dialect", string(opts.Dialect)))

	if err := s.store.Save(ctx, out.JSONPath, conv.JSON); err != nil {
		return domain.Report{}, err
	}
	s.log.Info("json written", zap.String("path", out.JSONPath))

	return domain.Report{
		Assignments: len(conv.Extraction.Assignments),
		Orphans:     len(conv.Extraction.Orphans),
		HeaderRows:  conv.Extraction.HeaderRows,
		SQLPath:     out.SQLPath,
		JSONPath:    out.JSONPath,
	}, nil
}

// SQLToJSON восстанавливает JSON-выгрузку из ранее сгенерированного SQL-скрипта.
// Возвращает количество записанных назначений.
func (s *converterService) SQLToJSON(ctx context.Context, sqlPath, jsonPath string, opts domain.ParseOptions, periodID int) (int, error) {
	script, err := s.store.Load(ctx, sqlPath)
	if err != nil {
		return 0, err
	}

	assignments := ParseSQLTuples(string(script), opts)

	data, err := RenderJSON(assignments, periodID)
	if err != nil {
		return 0, fmt.Errorf("render json: %w", err)
	}

	if err := s.store.Save(ctx, jsonPath, data); err != nil {
		return 0, err
	}
	s.log.Info("json restored from sql",
		zap.String("sql", sqlPath),
		zap.String("json", jsonPath),
		zap.Int("assignments", len(assignments)),
	)

	return len(assignments), nil
}
