package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/username/fxledger/backend/src/models"
	"github.com/username/fxledger/backend/src/parsers"
)

func init() {
	parsers.Register("csv", func() parsers.Parser { return NewParser() })
}

// CSVParser implements the parsers.Parser interface for CSV payloads.
type CSVParser struct{}

// NewParser creates a new instance of the CSVParser.
func NewParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads a CSV file and converts its data rows into RawRows, keyed by
// the verbatim header row.
func (p *CSVParser) Parse(file io.Reader) ([]models.RawRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parser: failed to read records: %w", err)
	}

	rows := parsers.HeaderRowToRaw(records)
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv parser: %w", parsers.ErrNoDataRows)
	}
	return rows, nil
}
