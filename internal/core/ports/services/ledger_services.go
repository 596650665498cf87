package services

import (
	"context"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/SscSPs/ledger_posting_app/internal/dto"
)

// LedgerReaderSvc defines read operations for general ledgers
type LedgerReaderSvc interface {
	// GetLedger retrieves a ledger with its entries and current totals.
	GetLedger(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error)

	// ListLedgers retrieves a page of ledgers.
	ListLedgers(ctx context.Context, params dto.ListLedgersParams) (*dto.ListLedgersResponse, error)
}

// LedgerWriterSvc defines write operations for draft ledgers
type LedgerWriterSvc interface {
	// CreateLedger opens a new draft ledger, carrying in the previous day's remaining balance.
	CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, actor domain.Actor) (*domain.GeneralLedger, error)

	// UpdateLedger changes the header of a draft ledger.
	UpdateLedger(ctx context.Context, ledgerID string, req dto.UpdateLedgerRequest, actor domain.Actor) (*domain.GeneralLedger, error)

	// DeleteLedger removes a draft ledger that was never posted.
	DeleteLedger(ctx context.Context, ledgerID string, actor domain.Actor) error
}

// JournalEntrySvc defines entry editing on draft ledgers
type JournalEntrySvc interface {
	// SaveEntries applies creates and updates atomically and returns the recomputed ledger.
	SaveEntries(ctx context.Context, req dto.SaveEntriesRequest, actor domain.Actor) (*domain.GeneralLedger, error)

	// DeleteEntry removes an entry and returns the recomputed ledger.
	DeleteEntry(ctx context.Context, entryID string, actor domain.Actor) (*domain.GeneralLedger, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	JournalEntrySvc
}
