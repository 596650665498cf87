package repositories

import (
	"context"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ReportingRepository defines operations for retrieving report data
type ReportingRepository interface {
	// BeginSnapshot starts a read-only transaction in which every read sees the same snapshot.
	BeginSnapshot(ctx context.Context) (pgx.Tx, error)

	// Rollback ends a snapshot transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error

	// GetPeriodTrialBalanceData sums the frozen lines of a period's active postings per account.
	GetPeriodTrialBalanceData(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.TrialBalanceRow, error)
}
