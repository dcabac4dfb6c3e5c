// Package export renders per-call scorecards into an xlsx workbook for
// offline coaching review.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"call-audit-go/internal/rubric"
	"call-audit-go/internal/score"
)

const sheetName = "Scorecards"

// Scorecard is one audited call as submitted by the caller.
type Scorecard struct {
	FileID string         `json:"file_id"`
	Date   string         `json:"date"`
	Scores map[string]any `json:"scores"`
}

// Workbook lays the scorecards out one row per call, one column per rubric
// parameter, with a trailing total column that skips N/A values.
func Workbook(agentName string, r rubric.Rubric, cards []Scorecard) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Agent", "File ID", "Date"}
	for _, p := range r.Parameters {
		header = append(header, fmt.Sprintf("%s (/%d)", p.Label, p.Max))
	}
	header = append(header, "Total")
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, card := range cards {
		row := []any{agentName, card.FileID, card.Date}
		total := 0
		for _, p := range r.Parameters {
			v := score.Coerce(card.Scores[p.Key])
			if n, scored := v.Points(); scored {
				row = append(row, n)
				total += n
			} else {
				row = append(row, "N/A")
			}
		}
		row = append(row, total)
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
