package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// PostingReport summarises the active postings of one period.
type PostingReport struct {
	Period       Period            `json:"period"`
	Postings     []Posting         `json:"postings"`
	TotalDebit   decimal.Decimal   `json:"totalDebit"`
	TotalCredit  decimal.Decimal   `json:"totalCredit"`
	TrialBalance []TrialBalanceRow `json:"trialBalance"`
}
