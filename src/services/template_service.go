package services

import (
	"bytes"
	"fmt"

	"github.com/username/fxledger/backend/src/models"
	"github.com/username/fxledger/backend/src/security/validation"
	"github.com/xuri/excelize/v2"
)

// TemplateHeaders is the column order of the generated import template.
var TemplateHeaders = []string{
	models.ColTransactionDate,
	models.ColTransactionID,
	models.ColContactName,
	models.ColReceivingAccount,
	models.ColSendingVia,
	models.ColCurrency,
	models.ColAmount,
	models.ColExchangeRate,
	models.ColAmountBDT,
	models.ColNote,
}

// Example row values; 1000 × 110.50 = 110500, so the row reconciles cleanly
// and round-trips through the pipeline as exactly one valid row.
const (
	TemplateExampleContact = "John Doe"
	TemplateExampleAccount = "City Bank USD"
)

// TemplateService generates the spreadsheet operators fill in for bulk
// imports.
type TemplateService struct{}

func NewTemplateService() *TemplateService { return &TemplateService{} }

// BuildImportTemplate produces an XLSX workbook with the recognized header
// row and a single example transaction.
func (s *TemplateService) BuildImportTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headerRow := make([]interface{}, len(TemplateHeaders))
	for i, h := range TemplateHeaders {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("template: failed to write header row: %w", err)
	}

	exampleRow := []interface{}{
		"2024-01-01",
		validation.SanitizeForFormulaInjection("TXN-1001"),
		TemplateExampleContact,
		TemplateExampleAccount,
		"Bank",
		"USD",
		1000.0,
		110.5,
		110500.0,
		validation.SanitizeForFormulaInjection("January remittance"),
	}
	if err := f.SetSheetRow(sheet, "A2", &exampleRow); err != nil {
		return nil, fmt.Errorf("template: failed to write example row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("template: failed to serialize workbook: %w", err)
	}
	return buf, nil
}
