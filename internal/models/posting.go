package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is a row of the postings table.
type Posting struct {
	PostingID                 string          `db:"posting_id"`
	LedgerID                  string          `db:"ledger_id"`
	TransactionCode           string          `db:"transaction_code"`
	PostedBy                  string          `db:"posted_by"`
	PostedByName              *string         `db:"posted_by_name"` // from users, may be missing
	PostingDate               time.Time       `db:"posting_date"`
	PeriodMonth               int             `db:"period_month"`
	PeriodYear                int             `db:"period_year"`
	IsUnposted                bool            `db:"is_unposted"`
	UnpostingDate             *time.Time      `db:"unposting_date"`
	UnpostedBy                *string         `db:"unposted_by"`
	TransactionDate           time.Time       `db:"transaction_date"`
	Description               string          `db:"description"`
	YesterdayRemainingBalance decimal.Decimal `db:"yesterday_remaining_balance"`
	TotalDebit                decimal.Decimal `db:"total_debit"`
	TotalCredit               decimal.Decimal `db:"total_credit"`
	RemainingBalance          decimal.Decimal `db:"remaining_balance"`
	CreatedAt                 time.Time       `db:"created_at"`
}

// PostingLine is a row of the posting_lines table.
type PostingLine struct {
	PostingID   string          `db:"posting_id"`
	LineNo      int             `db:"line_no"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	AccountCode string          `db:"account_code"`
	AccountName string          `db:"account_name"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Balance     decimal.Decimal `db:"balance"`
}
