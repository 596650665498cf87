package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the chart-of-accounts entry that journal entries point at.
// Accounts are maintained by the surrounding system; this service only reads them.
type Account struct {
	AccountID    string      `json:"accountID"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"`
	IsActive     bool        `json:"isActive"`
	AuditFields
}

// Ref returns the reference stored on journal entries for this account.
func (a Account) Ref() AccountRef {
	return AccountRef{
		AccountID:   a.AccountID,
		AccountCode: a.Code,
		AccountName: a.Name,
	}
}
