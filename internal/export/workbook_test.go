package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-audit-go/internal/rubric"
)

func TestWorkbook(t *testing.T) {
	cards := []Scorecard{
		{
			FileID: "abc",
			Date:   "2026-08-28",
			Scores: map[string]any{"greeting": 9.0, "listening": "N/A", "call_closure": 5.0},
		},
		{
			FileID: "def",
			Date:   "2026-08-29",
			Scores: map[string]any{"greeting": 10.0},
		},
	}

	f, err := Workbook("Asha", rubric.V2, cards)
	require.NoError(t, err)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per call")

	header := rows[0]
	assert.Equal(t, "Agent", header[0])
	assert.Equal(t, "File ID", header[1])
	assert.Equal(t, "Date", header[2])
	assert.Contains(t, header[3], "Professional Greeting & Introduction")
	assert.Equal(t, "Total", header[len(header)-1])

	first := rows[1]
	assert.Equal(t, "Asha", first[0])
	assert.Equal(t, "abc", first[1])
	assert.Equal(t, "9", first[3], "greeting column")
	assert.Equal(t, "N/A", first[4], "listening column")
	assert.Equal(t, "14", first[len(first)-1], "total skips N/A values")
}

func TestWorkbook_Empty(t *testing.T) {
	f, err := Workbook("Asha", rubric.V2, nil)
	require.NoError(t, err)
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
