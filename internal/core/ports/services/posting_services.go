package services

import (
	"context"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/SscSPs/ledger_posting_app/internal/dto"
)

// PostingEngineSvc commits and reverses ledgers
type PostingEngineSvc interface {
	// Post validates a draft ledger and commits it as a posting, atomically.
	Post(ctx context.Context, ledgerID string, actor domain.Actor) (*domain.Posting, error)

	// UnpostPeriod reverses every active posting of a period, atomically.
	UnpostPeriod(ctx context.Context, period domain.Period, actor domain.Actor) (*domain.UnpostResult, error)
}

// PostingReaderSvc defines read operations for postings
type PostingReaderSvc interface {
	// GetPostingDetail retrieves a posting with its frozen lines and running balances.
	GetPostingDetail(ctx context.Context, postingID string) (*domain.Posting, error)

	// ListPostings retrieves a page of postings.
	ListPostings(ctx context.Context, params dto.ListPostingsParams) (*dto.ListPostingsResponse, error)

	// ListUnpostedLedgers retrieves draft ledgers that have entries and can be posted.
	ListUnpostedLedgers(ctx context.Context, params dto.ListLedgersParams) (*dto.ListLedgersResponse, error)
}

// PostingSvcFacade combines all posting-related service interfaces
type PostingSvcFacade interface {
	PostingEngineSvc
	PostingReaderSvc
}
