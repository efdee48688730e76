package parsers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/username/fxledger/backend/src/models"
)

// ErrNoDataRows is returned when a file decodes cleanly but contains no
// transaction rows below the header.
var ErrNoDataRows = errors.New("file contains no data rows")

// Parser turns a raw file payload into an ordered sequence of RawRow.
// Implementations are pure transforms of bytes to rows; they perform no I/O
// beyond reading the payload and no validation beyond basic tabular shape.
type Parser interface {
	Parse(file io.Reader) ([]models.RawRow, error)
}

var registry = map[string]func() Parser{}

// Register makes a parser constructor available under a file-type key.
// Called from parser subpackage init functions.
func Register(fileType string, constructor func() Parser) {
	registry[strings.ToLower(fileType)] = constructor
}

// GetParser returns the parser for the given file type ("csv" or "xlsx").
func GetParser(fileType string) (Parser, error) {
	constructor, ok := registry[strings.ToLower(fileType)]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %q", fileType)
	}
	return constructor(), nil
}

// HeaderRowToRaw converts a header row plus data rows into RawRows, keeping
// header text verbatim for downstream column lookup. Fully empty rows are
// skipped; Index is the 1-based sheet row number (header = row 1).
func HeaderRowToRaw(rows [][]string) []models.RawRow {
	if len(rows) < 2 {
		return nil
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rawRows []models.RawRow
	for i := 1; i < len(rows); i++ {
		cells := make(map[string]string, len(headers))
		empty := true
		for j, cell := range rows[i] {
			if j >= len(headers) {
				break
			}
			value := strings.TrimSpace(cell)
			cells[headers[j]] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rawRows = append(rawRows, models.RawRow{Index: i + 1, Cells: cells})
	}
	return rawRows
}
