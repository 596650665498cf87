package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LedgerStatus is the lifecycle state of a general ledger.
type LedgerStatus string

const (
	LedgerDraft  LedgerStatus = "DRAFT"
	LedgerPosted LedgerStatus = "POSTED"
)

var (
	ErrLedgerNotDraft  = fmt.Errorf("%w: ledger is not a draft", apperrors.ErrInvalidState)
	ErrLedgerNotPosted = fmt.Errorf("%w: ledger is not posted", apperrors.ErrInvalidState)
	ErrEmptyLedger     = fmt.Errorf("%w: empty ledger", apperrors.ErrValidation)
	ErrEntryNotFound   = fmt.Errorf("%w: journal entry not in ledger", apperrors.ErrNotFound)
	ErrStaleTotals     = fmt.Errorf("%w: ledger totals not recomputed after entry change", apperrors.ErrConsistency)
)

// Balances are the derived totals of a ledger.
type Balances struct {
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// IsBalanced reports whether debits equal credits.
func (b Balances) IsBalanced() bool {
	return b.TotalDebit.Equal(b.TotalCredit)
}

// LedgerBalance is a ledger header without entries, as needed to carry balances from one ledger to the next.
type LedgerBalance struct {
	LedgerID                  string
	TransactionDate           time.Time
	Status                    LedgerStatus
	YesterdayRemainingBalance decimal.Decimal
	TotalDebit                decimal.Decimal
	TotalCredit               decimal.Decimal
	RemainingBalance          decimal.Decimal
}

// GeneralLedger is a dated transaction header aggregating journal entries.
//
// Totals are derived from YesterdayRemainingBalance and Entries. Every entry
// mutation marks the aggregate dirty; callers must recompute and ApplyBalances
// before the totals are read back or persisted.
type GeneralLedger struct {
	LedgerID                  string          `json:"ledgerID"`
	TransactionCode           string          `json:"transactionCode"` // assigned on first posting
	TransactionDate           time.Time       `json:"transactionDate"`
	Description               string          `json:"description"`
	Status                    LedgerStatus    `json:"status"`
	Entries                   []JournalEntry  `json:"entries"`
	YesterdayRemainingBalance decimal.Decimal `json:"yesterdayRemainingBalance"`
	TotalDebit                decimal.Decimal `json:"totalDebit"`
	TotalCredit               decimal.Decimal `json:"totalCredit"`
	RemainingBalance          decimal.Decimal `json:"remainingBalance"`
	AuditFields

	dirty bool
}

// IsDraft reports whether entries may still be changed.
func (l *GeneralLedger) IsDraft() bool {
	return l.Status == LedgerDraft
}

// IsDirty reports whether entries changed since totals were last applied.
func (l *GeneralLedger) IsDirty() bool {
	return l.dirty
}

// MarkDirty forces a recomputation before totals are trusted again.
func (l *GeneralLedger) MarkDirty() {
	l.dirty = true
}

// ApplyBalances stores freshly computed totals and clears the dirty flag.
func (l *GeneralLedger) ApplyBalances(b Balances) {
	l.TotalDebit = b.TotalDebit
	l.TotalCredit = b.TotalCredit
	l.RemainingBalance = b.RemainingBalance
	l.dirty = false
}

// Balances returns the stored totals. It fails while the ledger is dirty.
func (l *GeneralLedger) Balances() (Balances, error) {
	if l.dirty {
		return Balances{}, ErrStaleTotals
	}
	return Balances{
		TotalDebit:       l.TotalDebit,
		TotalCredit:      l.TotalCredit,
		RemainingBalance: l.RemainingBalance,
	}, nil
}

func (l *GeneralLedger) ensureDraft() error {
	if !l.IsDraft() {
		return fmt.Errorf("%w: ledger %s is %s", ErrLedgerNotDraft, l.LedgerID, l.Status)
	}
	return nil
}

// AddEntry appends a validated entry to a draft ledger.
func (l *GeneralLedger) AddEntry(e JournalEntry) error {
	if err := l.ensureDraft(); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return err
	}
	e.LedgerID = l.LedgerID
	if e.TransactionDate.IsZero() {
		e.TransactionDate = l.TransactionDate
	}
	l.Entries = append(l.Entries, e)
	l.dirty = true
	return nil
}

// UpdateEntry applies patch to the entry with the given ID. The patched entry must stay valid.
func (l *GeneralLedger) UpdateEntry(entryID string, patch EntryPatch) (JournalEntry, error) {
	if err := l.ensureDraft(); err != nil {
		return JournalEntry{}, err
	}
	idx := l.entryIndex(entryID)
	if idx < 0 {
		return JournalEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	updated := l.Entries[idx].apply(patch)
	if err := updated.Validate(); err != nil {
		return JournalEntry{}, err
	}
	l.Entries[idx] = updated
	l.dirty = true
	return updated, nil
}

// RemoveEntry deletes the entry with the given ID from a draft ledger.
func (l *GeneralLedger) RemoveEntry(entryID string) (JournalEntry, error) {
	if err := l.ensureDraft(); err != nil {
		return JournalEntry{}, err
	}
	idx := l.entryIndex(entryID)
	if idx < 0 {
		return JournalEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	removed := l.Entries[idx]
	l.Entries = append(l.Entries[:idx], l.Entries[idx+1:]...)
	l.dirty = true
	return removed, nil
}

func (l *GeneralLedger) entryIndex(entryID string) int {
	for i, e := range l.Entries {
		if e.EntryID != "" && e.EntryID == entryID {
			return i
		}
	}
	return -1
}

// ValidateForPosting checks, in order, that the ledger is a draft, has entries,
// and that every entry is single-sided. The first violation is returned.
func (l *GeneralLedger) ValidateForPosting() error {
	if err := l.ensureDraft(); err != nil {
		return err
	}
	if len(l.Entries) == 0 {
		return ErrEmptyLedger
	}
	for i, e := range l.Entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// MarkPosted moves a draft ledger to POSTED. Entries are frozen from here on.
func (l *GeneralLedger) MarkPosted(transactionCode string, userID string, now time.Time) error {
	if err := l.ensureDraft(); err != nil {
		return err
	}
	if l.dirty {
		return ErrStaleTotals
	}
	l.TransactionCode = transactionCode
	l.Status = LedgerPosted
	l.LastUpdatedAt = now
	l.LastUpdatedBy = userID
	return nil
}

// RevertToDraft moves a posted ledger back to DRAFT. Only period-wide unposting calls this.
// The transaction code is kept so a later re-posting reuses it.
func (l *GeneralLedger) RevertToDraft(userID string, now time.Time) error {
	if l.Status != LedgerPosted {
		return fmt.Errorf("%w: ledger %s is %s", ErrLedgerNotPosted, l.LedgerID, l.Status)
	}
	l.Status = LedgerDraft
	l.LastUpdatedAt = now
	l.LastUpdatedBy = userID
	return nil
}
