package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/fxledger/backend/src/models"
)

func testRefs() models.ReferenceMap {
	return models.ReferenceMap{
		Contacts: map[string]string{"John Doe": "contact-1", "Jane Roe": "contact-2"},
		Accounts: map[string]string{"City Bank USD": "account-1"},
	}
}

func makeRow(index int, cells map[string]string) models.RawRow {
	return models.RawRow{Index: index, Cells: cells}
}

func validCells() map[string]string {
	return map[string]string{
		models.ColTransactionDate:  "2024-01-15",
		models.ColTransactionID:    "TXN-1001",
		models.ColContactName:      "John Doe",
		models.ColReceivingAccount: "City Bank USD",
		models.ColSendingVia:       "Bank",
		models.ColCurrency:         "USD",
		models.ColAmount:           "1000",
		models.ColExchangeRate:     "110.50",
		models.ColAmountBDT:        "110500",
		models.ColNote:             "January remittance",
	}
}

func TestNormalize_ValidRow(t *testing.T) {
	n := NewRowNormalizer("USD")

	row := n.Normalize(makeRow(2, validCells()), testRefs())

	require.True(t, row.IsValid, "expected valid row, got errors: %v", row.Errors)
	assert.Empty(t, row.Errors)
	assert.Equal(t, 2, row.Index)
	assert.Equal(t, "2024-01-15", row.Date)
	assert.Equal(t, "contact-1", row.ContactID)
	assert.Equal(t, "account-1", row.AccountID)
	assert.Equal(t, "bank", row.AccountType)
	assert.Equal(t, "USD", row.Currency)
	assert.Equal(t, 1000.0, row.ForeignAmount)
	assert.Equal(t, 110.5, row.ExchangeRate)
	assert.Equal(t, 110500.0, row.LocalAmount)
}

func TestNormalize_DateHandling(t *testing.T) {
	n := NewRowNormalizer("USD")

	tests := []struct {
		name     string
		dateCell string
		wantDate string
		wantErr  string
	}{
		{"iso date", "2024-01-15", "2024-01-15", ""},
		{"slash date", "2024/01/15", "2024-01-15", ""},
		{"day first", "15-01-2024", "2024-01-15", ""},
		{"us date", "1/15/2024", "2024-01-15", ""},
		{"spreadsheet serial", "45292", "2024-01-01", ""},
		{"fractional serial", "45292.5", "2024-01-01", ""},
		{"missing", "", "", "Missing Date"},
		{"garbage", "not a date", "", "Invalid Date"},
		{"negative serial", "-5", "", "Invalid Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := validCells()
			if tt.dateCell == "" {
				delete(cells, models.ColTransactionDate)
			} else {
				cells[models.ColTransactionDate] = tt.dateCell
			}

			row := n.Normalize(makeRow(2, cells), testRefs())

			if tt.wantErr == "" {
				assert.True(t, row.IsValid)
				assert.Equal(t, tt.wantDate, row.Date)
			} else {
				assert.False(t, row.IsValid)
				assert.Contains(t, row.Errors, tt.wantErr)
			}
		})
	}
}

func TestNormalize_UnresolvedReferences(t *testing.T) {
	n := NewRowNormalizer("USD")

	cells := validCells()
	cells[models.ColContactName] = "Nobody"
	cells[models.ColReceivingAccount] = "No Such Account"

	row := n.Normalize(makeRow(3, cells), testRefs())

	assert.False(t, row.IsValid)
	assert.Contains(t, row.Errors, "Contact 'Nobody' not found")
	assert.Contains(t, row.Errors, "Account 'No Such Account' not found")
	assert.Empty(t, row.ContactID)
	assert.Empty(t, row.AccountID)
}

func TestNormalize_NumericValidation(t *testing.T) {
	n := NewRowNormalizer("USD")

	tests := []struct {
		name    string
		amount  string
		rate    string
		wantErr []string
	}{
		{"zero amount", "0", "110.50", []string{"Invalid Amount"}},
		{"negative amount", "-100", "110.50", []string{"Invalid Amount"}},
		{"non numeric amount", "abc", "110.50", []string{"Invalid Amount"}},
		{"zero rate", "1000", "0", []string{"Invalid Rate"}},
		{"non numeric rate", "1000", "n/a", []string{"Invalid Rate"}},
		{"both bad", "x", "y", []string{"Invalid Amount", "Invalid Rate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := validCells()
			cells[models.ColAmount] = tt.amount
			cells[models.ColExchangeRate] = tt.rate
			delete(cells, models.ColAmountBDT)

			row := n.Normalize(makeRow(2, cells), testRefs())

			assert.False(t, row.IsValid)
			for _, want := range tt.wantErr {
				assert.Contains(t, row.Errors, want)
			}
		})
	}
}

func TestNormalize_CurrencySymbolsAndSeparators(t *testing.T) {
	n := NewRowNormalizer("USD")

	cells := validCells()
	cells[models.ColAmount] = `"$1,000"`
	cells[models.ColAmountBDT] = "৳110,500"

	row := n.Normalize(makeRow(2, cells), testRefs())

	require.True(t, row.IsValid, "errors: %v", row.Errors)
	assert.Equal(t, 1000.0, row.ForeignAmount)
	assert.Equal(t, 110500.0, row.LocalAmount)
}

func TestNormalize_Reconciliation(t *testing.T) {
	n := NewRowNormalizer("USD")

	t.Run("within tolerance", func(t *testing.T) {
		cells := validCells()
		cells[models.ColAmountBDT] = "110499.50"

		row := n.Normalize(makeRow(2, cells), testRefs())

		require.True(t, row.IsValid, "errors: %v", row.Errors)
		assert.Equal(t, 110499.5, row.LocalAmount)
	})

	t.Run("beyond tolerance", func(t *testing.T) {
		cells := validCells()
		cells[models.ColAmountBDT] = "110000"

		row := n.Normalize(makeRow(2, cells), testRefs())

		assert.False(t, row.IsValid)
		assert.Contains(t, row.Errors, "Amount Mismatch: Calc 110500.00 vs Given 110000.00")
		// The declared figure still wins so the operator sees what the file claimed.
		assert.Equal(t, 110000.0, row.LocalAmount)
	})

	t.Run("exactly at tolerance", func(t *testing.T) {
		cells := validCells()
		cells[models.ColAmountBDT] = "110501"

		row := n.Normalize(makeRow(2, cells), testRefs())
		assert.True(t, row.IsValid, "a difference of exactly 1.0 is tolerated, errors: %v", row.Errors)
	})

	t.Run("just past tolerance", func(t *testing.T) {
		cells := validCells()
		cells[models.ColAmountBDT] = "110501.01"

		row := n.Normalize(makeRow(2, cells), testRefs())
		assert.False(t, row.IsValid)
		assert.Contains(t, row.Errors, "Amount Mismatch: Calc 110500.00 vs Given 110501.01")
	})

	t.Run("absent local amount derives from rate", func(t *testing.T) {
		cells := validCells()
		delete(cells, models.ColAmountBDT)

		row := n.Normalize(makeRow(2, cells), testRefs())

		require.True(t, row.IsValid, "errors: %v", row.Errors)
		assert.Equal(t, 110500.0, row.LocalAmount)
	})
}

func TestNormalize_DefaultCurrency(t *testing.T) {
	n := NewRowNormalizer("EUR")

	cells := validCells()
	delete(cells, models.ColCurrency)

	row := n.Normalize(makeRow(2, cells), testRefs())
	assert.Equal(t, "EUR", row.Currency)
}

func TestNormalize_AccumulatesAllErrors(t *testing.T) {
	n := NewRowNormalizer("USD")

	row := n.Normalize(makeRow(5, map[string]string{
		models.ColContactName:      "Nobody",
		models.ColReceivingAccount: "No Such Account",
		models.ColAmount:           "abc",
	}), testRefs())

	assert.False(t, row.IsValid)
	assert.ElementsMatch(t, []string{
		"Missing Date",
		"Contact 'Nobody' not found",
		"Account 'No Such Account' not found",
		"Invalid Amount",
		"Invalid Rate",
	}, row.Errors)
}

func TestNormalize_FallbackColumns(t *testing.T) {
	n := NewRowNormalizer("USD")

	cells := validCells()
	delete(cells, models.ColSendingVia)
	cells[models.ColAccountType] = "cash pickup"
	delete(cells, models.ColNote)
	cells[models.ColDescription] = "fallback note"

	row := n.Normalize(makeRow(2, cells), testRefs())

	assert.Equal(t, "cash", row.AccountType)
	assert.Equal(t, "fallback note", row.Note)
}

func TestNormalizeAll_ThreeRowScenario(t *testing.T) {
	n := NewRowNormalizer("USD")

	good := validCells()
	delete(good, models.ColAmountBDT)

	missingContact := validCells()
	missingContact[models.ColContactName] = "Nobody"

	mismatch := validCells()
	mismatch[models.ColAmountBDT] = "110450" // 50 off the calculated value

	rows := n.NormalizeAll([]models.RawRow{
		makeRow(2, good),
		makeRow(3, missingContact),
		makeRow(4, mismatch),
	}, testRefs())
	result := PartitionRows(rows)

	assert.Equal(t, 1, result.Summary.ValidCount)
	assert.Equal(t, 2, result.Summary.InvalidCount)
	assert.Equal(t, 110500.0, rows[0].LocalAmount)
	assert.Contains(t, rows[1].Errors, "Contact 'Nobody' not found")
	assert.Contains(t, rows[2].Errors, "Amount Mismatch: Calc 110500.00 vs Given 110450.00")
}

func TestCollectReferenceNames(t *testing.T) {
	rows := []models.RawRow{
		makeRow(2, map[string]string{models.ColContactName: "Jane Roe", models.ColReceivingAccount: "City Bank USD"}),
		makeRow(3, map[string]string{models.ColContactName: "John Doe", models.ColReceivingAccount: "City Bank USD"}),
		makeRow(4, map[string]string{models.ColContactName: "John Doe"}),
		makeRow(5, map[string]string{}),
	}

	contacts, accounts := CollectReferenceNames(rows)

	assert.Equal(t, []string{"Jane Roe", "John Doe"}, contacts)
	assert.Equal(t, []string{"City Bank USD"}, accounts)
}

func TestToCommitRecord(t *testing.T) {
	n := NewRowNormalizer("USD")

	row := n.Normalize(makeRow(2, validCells()), testRefs())
	require.True(t, row.IsValid)

	rec := row.ToCommitRecord()
	assert.Equal(t, "contact-1", rec.ContactID)
	assert.Equal(t, "account-1", rec.ReceivingAccountID)
	assert.Equal(t, "2024-01-15", rec.TransactionDate)
	assert.Equal(t, models.StatusPending, rec.Status)
}
