package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PostingFilter narrows posting listings. Nil fields do not filter.
type PostingFilter struct {
	Month      *int
	Year       *int
	IsUnposted *bool
}

// PostingReader defines read operations for postings
type PostingReader interface {
	// FindPostingByID retrieves a posting with its frozen lines and the poster's display name.
	FindPostingByID(ctx context.Context, postingID string) (*domain.Posting, error)

	// ListPostings retrieves a page of postings (without lines), newest first.
	ListPostings(ctx context.Context, filter PostingFilter, limit int, nextToken *string) ([]domain.Posting, *string, error)

	// FindActivePostingsByPeriod retrieves the active postings of a period, without lines, inside tx.
	FindActivePostingsByPeriod(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.Posting, error)
}

// PostingWriter defines write operations for postings. All of them run inside a caller-owned transaction.
type PostingWriter interface {
	// NextTransactionCode allocates the next code of the period from the per-period counter.
	NextTransactionCode(ctx context.Context, tx pgx.Tx, period domain.Period) (string, error)

	// SavePosting inserts a posting header and its lines.
	SavePosting(ctx context.Context, tx pgx.Tx, posting domain.Posting) error

	// FindActivePostingsByPeriodForUpdate locks the active postings of a period.
	FindActivePostingsByPeriodForUpdate(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.Posting, error)

	// MarkPostingsUnposted flags postings as unposted and returns the number of rows changed.
	MarkPostingsUnposted(ctx context.Context, tx pgx.Tx, postingIDs []string, userID string, now time.Time) (int64, error)
}

// PostingRepositoryFacade combines all posting-related repository interfaces
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
}

// PostingRepositoryWithTx extends PostingRepositoryFacade with transaction capabilities
type PostingRepositoryWithTx interface {
	PostingRepositoryFacade
	TransactionManager
}
