package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository implements the ReportingRepository interface using PostgreSQL
type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new PgxReportingRepository
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// BeginSnapshot starts a read-only REPEATABLE READ transaction.
func (r *PgxReportingRepository) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin report snapshot", err)
	}
	return tx, nil
}

// GetPeriodTrialBalanceData sums the frozen lines of the period's active postings per account.
// Account code and name come from the lines, so a renamed account still reports as posted.
func (r *PgxReportingRepository) GetPeriodTrialBalanceData(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			l.account_id,
			l.account_code,
			MAX(l.account_name) AS account_name,
			COALESCE(SUM(l.debit), 0) AS debit,
			COALESCE(SUM(l.credit), 0) AS credit
		FROM posting_lines l
		JOIN postings p ON p.posting_id = l.posting_id
		WHERE p.period_month = $1 AND p.period_year = $2 AND NOT p.is_unposted
		GROUP BY l.account_id, l.account_code
		ORDER BY l.account_code;
	`

	rows, err := tx.Query(ctx, query, period.Month, period.Year)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}

	return result, nil
}
