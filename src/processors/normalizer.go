package processors

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/username/fxledger/backend/src/models"
	"github.com/username/fxledger/backend/src/security/validation"
	"github.com/username/fxledger/backend/src/utils"
)

// LocalAmountTolerance is the maximum absolute difference allowed between a
// declared local amount and amount × rate before the row is flagged.
const LocalAmountTolerance = 1.0

// serialEpochOffset is the day count between the spreadsheet serial epoch
// (1900-01-01, with the historical leap-year correction) and the Unix epoch.
const serialEpochOffset = 25569

// dateLayouts are tried in order before falling back to day-serial parsing.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// RowNormalizer turns raw import rows into validated NormalizedRows. It is a
// pure per-row transform over the run's read-only ReferenceMap; all I/O
// (resolution, commit) happens outside it.
type RowNormalizer struct {
	defaultCurrency string
}

func NewRowNormalizer(defaultCurrency string) *RowNormalizer {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &RowNormalizer{defaultCurrency: defaultCurrency}
}

// NormalizeAll processes every raw row independently, preserving order.
func (p *RowNormalizer) NormalizeAll(rows []models.RawRow, refs models.ReferenceMap) []models.NormalizedRow {
	normalized := make([]models.NormalizedRow, 0, len(rows))
	for _, raw := range rows {
		normalized = append(normalized, p.Normalize(raw, refs))
	}
	return normalized
}

// Normalize validates and derives one row. Checks are independent and every
// failure is accumulated, so a row reports its complete error set rather
// than only the first problem.
func (p *RowNormalizer) Normalize(raw models.RawRow, refs models.ReferenceMap) models.NormalizedRow {
	var errs []string

	row := models.NormalizedRow{
		Index:          raw.Index,
		TransactionRef: raw.Cell(models.ColTransactionID),
		Note:           validation.SanitizeText(raw.Cell(models.ColNote, models.ColDescription)),
		ContactName:    raw.Cell(models.ColContactName),
		AccountName:    raw.Cell(models.ColReceivingAccount),
		Currency:       p.defaultCurrency,
	}

	// 1. Date: calendar string or spreadsheet day serial.
	dateCell := raw.Cell(models.ColTransactionDate)
	if dateCell == "" {
		errs = append(errs, "Missing Date")
	} else if date, ok := parseTransactionDate(dateCell); ok {
		row.Date = date.Format("2006-01-02")
	} else {
		errs = append(errs, "Invalid Date")
	}

	// 2. Reference resolution against the run's ReferenceMap.
	if id, ok := refs.Contacts[row.ContactName]; ok {
		row.ContactID = id
	} else {
		errs = append(errs, fmt.Sprintf("Contact '%s' not found", row.ContactName))
	}
	if id, ok := refs.Accounts[row.AccountName]; ok {
		row.AccountID = id
	} else {
		errs = append(errs, fmt.Sprintf("Account '%s' not found", row.AccountName))
	}

	// 3. Numeric validation.
	amount, amountOK := parseDecimal(raw.Cell(models.ColAmount))
	if !amountOK || amount <= 0 {
		errs = append(errs, "Invalid Amount")
	} else {
		row.ForeignAmount = amount
	}
	rate, rateOK := parseDecimal(raw.Cell(models.ColExchangeRate))
	if !rateOK || rate <= 0 {
		errs = append(errs, "Invalid Rate")
	} else {
		row.ExchangeRate = rate
	}

	// 4. Account-type classification (never an error).
	row.AccountType = string(NormalizeAccountType(raw.Cell(models.ColSendingVia, models.ColAccountType)))

	if currency := raw.Cell(models.ColCurrency); currency != "" {
		row.Currency = currency
	}

	// 5. Cross-currency reconciliation. The declared local amount wins
	// whenever it is present and positive, even when out of tolerance, so
	// the operator sees the figure the file claimed.
	calculated := row.ForeignAmount * row.ExchangeRate
	if given, ok := parseDecimal(raw.Cell(models.ColAmountBDT)); ok && given > 0 {
		row.LocalAmount = given
		diff := calculated - given
		if diff < 0 {
			diff = -diff
		}
		if diff > LocalAmountTolerance {
			errs = append(errs, fmt.Sprintf("Amount Mismatch: Calc %.2f vs Given %.2f", calculated, given))
		}
	} else {
		row.LocalAmount = utils.RoundFloat(calculated, 2)
	}

	row.Errors = errs
	row.IsValid = len(errs) == 0
	return row
}

// CollectReferenceNames gathers the distinct trimmed contact and account
// names across all rows, for a single batched resolution call. Output is
// sorted for deterministic resolver queries.
func CollectReferenceNames(rows []models.RawRow) (contacts, accounts []string) {
	contactSet := make(map[string]bool)
	accountSet := make(map[string]bool)
	for _, raw := range rows {
		if name := raw.Cell(models.ColContactName); name != "" {
			contactSet[name] = true
		}
		if name := raw.Cell(models.ColReceivingAccount); name != "" {
			accountSet[name] = true
		}
	}
	for name := range contactSet {
		contacts = append(contacts, name)
	}
	for name := range accountSet {
		accounts = append(accounts, name)
	}
	sort.Strings(contacts)
	sort.Strings(accounts)
	return contacts, accounts
}

// parseTransactionDate accepts either a calendar-date string or a
// spreadsheet day-serial number (days since 1900 with the fixed 2-day
// correction, i.e. Unix epoch + (serial − 25569) days).
func parseTransactionDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		seconds := (serial - serialEpochOffset) * 86400
		return time.Unix(int64(seconds), 0).UTC(), true
	}
	return time.Time{}, false
}

// parseDecimal parses a numeric cell, tolerating currency symbols,
// thousands separators and surrounding quotes.
func parseDecimal(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.Trim(cleaned, "\"")
	for _, symbol := range []string{"$", "€", "£", "৳", ","} {
		cleaned = strings.ReplaceAll(cleaned, symbol, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
