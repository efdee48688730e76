package xlsxfile

import (
	"fmt"
	"io"

	"github.com/username/fxledger/backend/src/models"
	"github.com/username/fxledger/backend/src/parsers"
	"github.com/xuri/excelize/v2"
)

func init() {
	parsers.Register("xlsx", func() parsers.Parser { return NewParser() })
}

// XLSXParser implements the parsers.Parser interface for Excel workbooks.
type XLSXParser struct{}

// NewParser creates a new instance of the XLSXParser.
func NewParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse reads the first sheet of a workbook into RawRows. Cells are read as
// raw values so date cells keep their day-serial form for the normalizer to
// convert, instead of whatever display format the sheet applied.
func (p *XLSXParser) Parse(file io.Reader) ([]models.RawRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx parser: workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: failed to read sheet %q: %w", sheets[0], err)
	}

	rows := parsers.HeaderRowToRaw(records)
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx parser: %w", parsers.ErrNoDataRows)
	}
	return rows, nil
}
