package service

import (
	"bytes"
	"encoding/json"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
)

// DefaultPeriodID значение periodId в JSON, пока период не подставлен потребителем.
const DefaultPeriodID = 1

// RenderJSON собирает JSON-массив записей с отступом в два пробела.
func RenderJSON(assignments []domain.Assignment, periodID int) ([]byte, error) {
	records := make([]domain.Record, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, a.ToRecord(periodID))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
