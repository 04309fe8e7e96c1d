package service

import (
	"strings"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
)

// Extract сворачивает строки таблицы в список назначений.
// Оцениваемый протягивается вниз до следующего непустого значения.
// Повтор заголовка (без учёта регистра) пропускается целиком, строка без оценивающего
// только обновляет текущего оцениваемого.
func Extract(rows []domain.Row, raterHeader string) domain.Extraction {
	header := strings.TrimSpace(raterHeader)

	res := domain.Extraction{
		Assignments: make([]domain.Assignment, 0, len(rows)),
	}

	for _, row := range rows {
		res.Rows++

		rater := strings.TrimSpace(row.RaterEmail)
		ratee := strings.TrimSpace(row.RateeEmail)

		if rater != "" && strings.EqualFold(rater, header) {
			res.HeaderRows++
			continue
		}

		if ratee != "" {
			res.CurrentRatee = ratee
		}

		if rater == "" {
			res.BlankRaters++
			continue
		}

		if res.CurrentRatee == "" {
			res.Orphans = append(res.Orphans, row.Line)
			continue
		}

		res.Assignments = append(res.Assignments, domain.Assignment{
			RaterEmail: rater,
			RateeEmail: res.CurrentRatee,
		})
	}

	return res
}
