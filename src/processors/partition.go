package processors

import "github.com/username/fxledger/backend/src/models"

// PartitionResult splits an import run's rows into the committable and
// rejected sets, preserving original row order within each.
type PartitionResult struct {
	Valid   []models.NormalizedRow `json:"valid"`
	Invalid []models.NormalizedRow `json:"invalid"`
	Summary models.ImportSummary   `json:"summary"`
}

// PartitionRows classifies normalized rows by their derived validity.
// Pure: no I/O, no mutation of the input, stable across repeated calls.
func PartitionRows(rows []models.NormalizedRow) PartitionResult {
	result := PartitionResult{
		Valid:   []models.NormalizedRow{},
		Invalid: []models.NormalizedRow{},
	}
	for _, row := range rows {
		if row.IsValid {
			result.Valid = append(result.Valid, row)
		} else {
			result.Invalid = append(result.Invalid, row)
		}
	}
	result.Summary = models.ImportSummary{
		TotalRows:    len(rows),
		ValidCount:   len(result.Valid),
		InvalidCount: len(result.Invalid),
	}
	return result
}
