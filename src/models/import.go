package models

// Recognized column headers of the import file. Header text is matched
// verbatim against the first row of the uploaded sheet.
const (
	ColTransactionDate  = "Transaction Date"
	ColTransactionID    = "Transaction ID"
	ColContactName      = "Contact Name"
	ColReceivingAccount = "Receiving Account"
	ColSendingVia       = "Sending Via (Account Type)"
	ColAccountType      = "Account Type"
	ColCurrency         = "Currency"
	ColAmount           = "Amount"
	ColExchangeRate     = "Exchange Rate"
	ColAmountBDT        = "Amount BDT"
	ColNote             = "Note"
	ColDescription      = "Description"
)

// RawRow is one data row of the uploaded file, keyed by column header.
// Index is the 1-based spreadsheet row number (the header is row 1), so
// error reports line up with what the operator sees in their sheet.
type RawRow struct {
	Index int               `json:"index"`
	Cells map[string]string `json:"cells"`
}

// Cell returns the value of the first listed column that has a non-empty
// cell. Absent columns read as empty.
func (r RawRow) Cell(columns ...string) string {
	for _, col := range columns {
		if v, ok := r.Cells[col]; ok && v != "" {
			return v
		}
	}
	return ""
}

// ReferenceMap holds the name-to-identifier mappings for one import run.
// It is built once, after decoding, from the union of names in all rows and
// is read-only afterwards. Names absent from a map simply did not resolve.
type ReferenceMap struct {
	Contacts map[string]string `json:"contacts"`
	Accounts map[string]string `json:"accounts"`
}

// NormalizedRow is the validated, derived form of one RawRow. It is never
// mutated after the normalizer produces it; IsValid is derived from Errors.
type NormalizedRow struct {
	Index          int      `json:"index"`
	Date           string   `json:"date"` // YYYY-MM-DD, empty when unparsable
	TransactionRef string   `json:"transaction_id,omitempty"`
	Note           string   `json:"note,omitempty"`
	ContactName    string   `json:"contact_name"`
	ContactID      string   `json:"contact_id,omitempty"`
	AccountName    string   `json:"receiving_account"`
	AccountID      string   `json:"receiving_account_id,omitempty"`
	AccountType    string   `json:"account_type"`
	Currency       string   `json:"currency"`
	ForeignAmount  float64  `json:"amount"`
	ExchangeRate   float64  `json:"exchange_rate"`
	LocalAmount    float64  `json:"amount_bdt"`
	IsValid        bool     `json:"is_valid"`
	Errors         []string `json:"errors"`
}

// ImportSummary reports aggregate counts of an import run for operator review.
type ImportSummary struct {
	TotalRows    int `json:"total_rows"`
	ValidCount   int `json:"valid_count"`
	InvalidCount int `json:"invalid_count"`
}

// StatusPending is the fixed status every imported transaction starts with.
const StatusPending = "pending"

// CommitRecord is the subset of NormalizedRow the committer persists.
type CommitRecord struct {
	ContactID          string  `json:"contact_id"`
	ReceivingAccountID string  `json:"receiving_account_id"`
	AccountType        string  `json:"account_type"`
	Currency           string  `json:"currency"`
	Amount             float64 `json:"amount"`
	ExchangeRate       float64 `json:"exchange_rate"`
	AmountBDT          float64 `json:"amount_bdt"`
	TransactionDate    string  `json:"transaction_date"`
	TransactionID      string  `json:"transaction_id,omitempty"`
	Note               string  `json:"note,omitempty"`
	Status             string  `json:"status"`
}

// ToCommitRecord maps a valid NormalizedRow to the shape the commit
// operation expects, dropping the validation fields and pinning the status.
func (n NormalizedRow) ToCommitRecord() CommitRecord {
	return CommitRecord{
		ContactID:          n.ContactID,
		ReceivingAccountID: n.AccountID,
		AccountType:        n.AccountType,
		Currency:           n.Currency,
		Amount:             n.ForeignAmount,
		ExchangeRate:       n.ExchangeRate,
		AmountBDT:          n.LocalAmount,
		TransactionDate:    n.Date,
		TransactionID:      n.TransactionRef,
		Note:               n.Note,
		Status:             StatusPending,
	}
}
