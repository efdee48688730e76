package processors

import "strings"

// AccountType is the closed classification of how a transaction was sent.
type AccountType string

const (
	AccountTypeBank       AccountType = "bank"
	AccountTypeMFS        AccountType = "mfs"
	AccountTypeCrypto     AccountType = "crypto"
	AccountTypeWallet     AccountType = "wallet"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypePaypal     AccountType = "paypal"
	AccountTypePayoneer   AccountType = "payoneer"
	AccountTypeWise       AccountType = "wise"
	AccountTypeCash       AccountType = "cash"
	AccountTypeOther      AccountType = "other"
)

var accountTypes = map[string]AccountType{
	"bank":        AccountTypeBank,
	"mfs":         AccountTypeMFS,
	"crypto":      AccountTypeCrypto,
	"wallet":      AccountTypeWallet,
	"credit_card": AccountTypeCreditCard,
	"paypal":      AccountTypePaypal,
	"payoneer":    AccountTypePayoneer,
	"wise":        AccountTypeWise,
	"cash":        AccountTypeCash,
	"other":       AccountTypeOther,
}

// accountTypeRules are the substring fallbacks for free-text category cells,
// evaluated in priority order. First match wins.
var accountTypeRules = []struct {
	substr   string
	category AccountType
}{
	{"bank", AccountTypeBank},
	{"cash", AccountTypeCash},
	{"card", AccountTypeCreditCard},
	{"paypal", AccountTypePaypal},
	{"payoneer", AccountTypePayoneer},
}

// NormalizeAccountType maps a free-text category cell to one of the fixed
// account types. Exact (case-insensitive) matches win; otherwise the ordered
// substring rules apply; anything else classifies as "other". This never
// fails; classification does not affect row validity.
func NormalizeAccountType(raw string) AccountType {
	text := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := accountTypes[text]; ok {
		return t
	}
	for _, rule := range accountTypeRules {
		if strings.Contains(text, rule.substr) {
			return rule.category
		}
	}
	return AccountTypeOther
}
