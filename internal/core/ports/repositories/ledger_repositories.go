package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerFilter narrows ledger listings.
type LedgerFilter struct {
	Status *domain.LedgerStatus
	// WithEntriesOnly skips ledgers that have no journal entries.
	WithEntriesOnly bool
}

// LedgerReader defines read operations for general ledgers
type LedgerReader interface {
	// FindLedgerByID retrieves a ledger together with its entries, in entry order.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error)

	// ListLedgers retrieves a page of ledgers (without entries) ordered by transaction date, newest first.
	// It returns the ledgers, a token for the next page, and an error.
	ListLedgers(ctx context.Context, filter LedgerFilter, limit int, nextToken *string) ([]domain.GeneralLedger, *string, error)
}

// LedgerTxSupport defines operations that run inside a caller-owned transaction.
// Ledger rows are locked with SELECT ... FOR UPDATE so edits, posting and unposting serialize.
type LedgerTxSupport interface {
	// FindLedgerByIDForUpdate locks the ledger row and loads its entries.
	FindLedgerByIDForUpdate(ctx context.Context, tx pgx.Tx, ledgerID string) (*domain.GeneralLedger, error)

	// FindLedgerIDByEntryID returns the ledger owning an entry.
	FindLedgerIDByEntryID(ctx context.Context, tx pgx.Tx, entryID string) (string, error)

	// FindPreviousRemainingBalance returns the remaining balance of the latest ledger dated strictly before date,
	// ignoring excludeLedgerID (which may be empty). It returns ok=false when there is none.
	FindPreviousRemainingBalance(ctx context.Context, tx pgx.Tx, date time.Time, excludeLedgerID string) (decimal.Decimal, bool, error)

	// ListLedgerBalancesFrom locks the ledgers dated on or after from and returns their balance headers
	// ordered by transaction date, creation time and ID.
	ListLedgerBalancesFrom(ctx context.Context, tx pgx.Tx, from time.Time) ([]domain.LedgerBalance, error)
}

// LedgerWriter defines write operations for general ledgers and their entries
type LedgerWriter interface {
	// SaveLedger inserts a new ledger header.
	SaveLedger(ctx context.Context, tx pgx.Tx, ledger domain.GeneralLedger) error

	// UpdateLedger writes header fields: description, date, status, transaction code and totals.
	UpdateLedger(ctx context.Context, tx pgx.Tx, ledger domain.GeneralLedger) error

	// DeleteLedger removes a draft ledger and its entries.
	DeleteLedger(ctx context.Context, tx pgx.Tx, ledgerID string) error

	// InsertEntries inserts new journal entries.
	InsertEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error

	// UpdateEntries overwrites existing journal entries.
	UpdateEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error

	// DeleteEntry removes a single journal entry.
	DeleteEntry(ctx context.Context, tx pgx.Tx, entryID string) error

	// UpdateCarryIns stores re-derived carry-in and remaining balances of draft ledgers.
	UpdateCarryIns(ctx context.Context, tx pgx.Tx, balances []domain.LedgerBalance) error

	// RevertLedgersToDraft flips POSTED ledgers back to DRAFT and returns the number of rows changed.
	RevertLedgersToDraft(ctx context.Context, tx pgx.Tx, ledgerIDs []string, userID string, now time.Time) (int64, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerTxSupport
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
