package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/fxledger/backend/src/models"
)

func TestPartitionRows(t *testing.T) {
	rows := []models.NormalizedRow{
		{Index: 2, IsValid: false, Errors: []string{"Missing Date"}},
		{Index: 3, IsValid: true},
		{Index: 4, IsValid: false, Errors: []string{"Invalid Amount"}},
	}

	result := PartitionRows(rows)

	assert.Equal(t, models.ImportSummary{TotalRows: 3, ValidCount: 1, InvalidCount: 2}, result.Summary)
	assert.Len(t, result.Valid, 1)
	assert.Equal(t, 3, result.Valid[0].Index)
	assert.Equal(t, 2, result.Invalid[0].Index)
	assert.Equal(t, 4, result.Invalid[1].Index)
}

func TestPartitionRows_PreservesOrder(t *testing.T) {
	rows := []models.NormalizedRow{
		{Index: 2, IsValid: true},
		{Index: 3, IsValid: true},
		{Index: 4, IsValid: false},
		{Index: 5, IsValid: true},
		{Index: 6, IsValid: false},
	}

	result := PartitionRows(rows)

	validOrder := make([]int, 0, len(result.Valid))
	for _, r := range result.Valid {
		validOrder = append(validOrder, r.Index)
	}
	invalidOrder := make([]int, 0, len(result.Invalid))
	for _, r := range result.Invalid {
		invalidOrder = append(invalidOrder, r.Index)
	}

	assert.Equal(t, []int{2, 3, 5}, validOrder)
	assert.Equal(t, []int{4, 6}, invalidOrder)
}

func TestPartitionRows_Empty(t *testing.T) {
	result := PartitionRows(nil)

	assert.NotNil(t, result.Valid)
	assert.NotNil(t, result.Invalid)
	assert.Equal(t, models.ImportSummary{}, result.Summary)
}

func TestPartitionRows_Idempotent(t *testing.T) {
	rows := []models.NormalizedRow{
		{Index: 2, IsValid: true},
		{Index: 3, IsValid: false},
	}

	first := PartitionRows(rows)
	second := PartitionRows(rows)

	assert.Equal(t, first, second)
}
