package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerStatus mirrors the status column of general_ledgers.
type LedgerStatus string

const (
	Draft  LedgerStatus = "DRAFT"
	Posted LedgerStatus = "POSTED"
)

// GeneralLedger is a row of the general_ledgers table.
type GeneralLedger struct {
	LedgerID                  string          `db:"ledger_id"`
	TransactionCode           *string         `db:"transaction_code"` // Nullable until first posting
	TransactionDate           time.Time       `db:"transaction_date"`
	Description               string          `db:"description"`
	Status                    LedgerStatus    `db:"status"`
	YesterdayRemainingBalance decimal.Decimal `db:"yesterday_remaining_balance"`
	TotalDebit                decimal.Decimal `db:"total_debit"`
	TotalCredit               decimal.Decimal `db:"total_credit"`
	RemainingBalance          decimal.Decimal `db:"remaining_balance"`
	AuditFields
}

// JournalEntry is a row of the journal_entries table joined with its account.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	LedgerID        string          `db:"ledger_id"`
	AccountID       string          `db:"account_id"`
	AccountCode     string          `db:"account_code"` // from accounts
	AccountName     string          `db:"account_name"` // from accounts
	Description     string          `db:"description"`
	Debit           decimal.Decimal `db:"debit"`
	Credit          decimal.Decimal `db:"credit"`
	TransactionDate time.Time       `db:"transaction_date"`
	AuditFields
}
