package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/fxledger/backend/src/models"
	"github.com/username/fxledger/backend/src/parsers/xlsxfile"
	"github.com/username/fxledger/backend/src/processors"
)

// The generated template must itself survive the pipeline: its example row
// has to decode, normalize and come out valid.
func TestBuildImportTemplate_RoundTrip(t *testing.T) {
	buf, err := NewTemplateService().BuildImportTemplate()
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	rows, err := xlsxfile.NewParser().Parse(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	refs := models.ReferenceMap{
		Contacts: map[string]string{TemplateExampleContact: "contact-1"},
		Accounts: map[string]string{TemplateExampleAccount: "account-1"},
	}
	normalized := processors.NewRowNormalizer("USD").NormalizeAll(rows, refs)
	partition := processors.PartitionRows(normalized)

	require.Equal(t, 1, partition.Summary.ValidCount, "example row errors: %v", normalized[0].Errors)
	row := partition.Valid[0]
	assert.Equal(t, "2024-01-01", row.Date)
	assert.Equal(t, "bank", row.AccountType)
	assert.Equal(t, 1000.0, row.ForeignAmount)
	assert.Equal(t, 110500.0, row.LocalAmount)
}

func TestTemplateHeaders_CoverRecognizedColumns(t *testing.T) {
	assert.Equal(t, models.ColTransactionDate, TemplateHeaders[0])
	assert.Contains(t, TemplateHeaders, models.ColContactName)
	assert.Contains(t, TemplateHeaders, models.ColReceivingAccount)
	assert.Contains(t, TemplateHeaders, models.ColAmount)
	assert.Contains(t, TemplateHeaders, models.ColExchangeRate)
	assert.Contains(t, TemplateHeaders, models.ColAmountBDT)
}
