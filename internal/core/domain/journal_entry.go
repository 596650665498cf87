package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places money amounts are kept at.
const AmountScale = 2

var (
	ErrAmbiguousEntry  = fmt.Errorf("%w: ambiguous entry", apperrors.ErrValidation)
	ErrEmptyEntry      = fmt.Errorf("%w: entry has neither debit nor credit", apperrors.ErrValidation)
	ErrNegativeAmount  = fmt.Errorf("%w: debit and credit must not be negative", apperrors.ErrValidation)
	ErrAmountPrecision = fmt.Errorf("%w: amounts are limited to %d decimal places", apperrors.ErrValidation, AmountScale)
	ErrAccountMissing  = fmt.Errorf("%w: entry account is required", apperrors.ErrValidation)
)

// AccountRef identifies the account a journal entry books against.
type AccountRef struct {
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
}

// IsSet reports whether the reference points at an account.
func (r AccountRef) IsSet() bool {
	return r.AccountID != ""
}

// JournalEntry is a single debit or credit line of a general ledger.
type JournalEntry struct {
	EntryID         string          `json:"entryID"` // empty until persisted
	LedgerID        string          `json:"ledgerID"`
	Account         AccountRef      `json:"account"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}

// EntryPatch holds the fields of an entry to change. Nil fields are left untouched.
type EntryPatch struct {
	Account     *AccountRef
	Description *string
	Debit       *decimal.Decimal
	Credit      *decimal.Decimal
}

// IsDebit reports whether the entry is a debit line.
func (e JournalEntry) IsDebit() bool {
	return e.Debit.IsPositive()
}

// Validate checks the single-sided invariant: exactly one of debit or credit is non-zero.
// Offending entries are reported, never corrected.
func (e JournalEntry) Validate() error {
	if !e.Account.IsSet() {
		return ErrAccountMissing
	}
	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return ErrNegativeAmount
	}
	if !e.Debit.Equal(e.Debit.Round(AmountScale)) || !e.Credit.Equal(e.Credit.Round(AmountScale)) {
		return ErrAmountPrecision
	}
	debitSet := !e.Debit.IsZero()
	creditSet := !e.Credit.IsZero()
	if debitSet && creditSet {
		return ErrAmbiguousEntry
	}
	if !debitSet && !creditSet {
		return ErrEmptyEntry
	}
	return nil
}

// apply returns a copy of the entry with the patch applied.
func (e JournalEntry) apply(p EntryPatch) JournalEntry {
	if p.Account != nil {
		e.Account = *p.Account
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Debit != nil {
		e.Debit = *p.Debit
	}
	if p.Credit != nil {
		e.Credit = *p.Credit
	}
	return e
}
