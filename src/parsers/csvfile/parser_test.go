package csvfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/fxledger/backend/src/models"
	"github.com/username/fxledger/backend/src/parsers"
)

func TestParse(t *testing.T) {
	csvData := `Transaction Date,Contact Name,Receiving Account,Amount,Exchange Rate
2024-01-15,John Doe,City Bank USD,1000,110.50
2024-01-16,Jane Roe,City Bank USD,250,109.75
`
	rows, err := NewParser().Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, "2024-01-15", rows[0].Cell(models.ColTransactionDate))
	assert.Equal(t, "John Doe", rows[0].Cell(models.ColContactName))
	assert.Equal(t, 3, rows[1].Index)
	assert.Equal(t, "Jane Roe", rows[1].Cell(models.ColContactName))
}

func TestParse_BOMHeader(t *testing.T) {
	csvData := "\ufeffTransaction Date,Amount\n2024-01-15,1000\n"

	rows, err := NewParser().Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-15", rows[0].Cell(models.ColTransactionDate))
}

func TestParse_SkipsEmptyRows(t *testing.T) {
	csvData := "Transaction Date,Amount\n2024-01-15,1000\n,\n2024-01-17,500\n"

	rows, err := NewParser().Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Index tracks the sheet row, so the skipped blank line leaves a gap.
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, 4, rows[1].Index)
}

func TestParse_ShortRowReadsAsEmptyCells(t *testing.T) {
	csvData := "Transaction Date,Contact Name,Amount\n2024-01-15,John Doe\n"

	rows, err := NewParser().Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Cell(models.ColAmount))
}

func TestParse_NoDataRows(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"header only", "Transaction Date,Amount\n"},
		{"header plus blank", "Transaction Date,Amount\n,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(strings.NewReader(tt.data))
			assert.True(t, errors.Is(err, parsers.ErrNoDataRows))
		})
	}
}

func TestRegistryLookup(t *testing.T) {
	p, err := parsers.GetParser("CSV")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, p)

	_, err = parsers.GetParser("pdf")
	assert.Error(t, err)
}
