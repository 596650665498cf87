package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_posting_app/internal/models"
	"github.com/SscSPs/ledger_posting_app/internal/utils/mapping"
	"github.com/SscSPs/ledger_posting_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// oneActivePostingConstraint is the partial unique index allowing a single active posting per ledger.
const oneActivePostingConstraint = "postings_one_active_per_ledger"

type PgxPostingRepository struct {
	BaseRepository
}

// newPgxPostingRepository creates a new repository for postings and their frozen lines.
func newPgxPostingRepository(pool *pgxpool.Pool) portsrepo.PostingRepositoryFacade {
	return &PgxPostingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPostingRepository implements portsrepo.PostingRepositoryFacade
var _ portsrepo.PostingRepositoryFacade = (*PgxPostingRepository)(nil)

const postingColumns = `p.posting_id, p.ledger_id, p.transaction_code, p.posted_by, u.name, p.posting_date,
	p.period_month, p.period_year, p.is_unposted, p.unposting_date, p.unposted_by,
	p.transaction_date, p.description, p.yesterday_remaining_balance, p.total_debit, p.total_credit,
	p.remaining_balance, p.created_at`

// postingFrom joins the poster's display name, which may be missing.
const postingFrom = ` FROM postings p LEFT JOIN users u ON u.user_id = p.posted_by`

func scanPosting(row pgx.Row) (models.Posting, error) {
	var m models.Posting
	err := row.Scan(
		&m.PostingID,
		&m.LedgerID,
		&m.TransactionCode,
		&m.PostedBy,
		&m.PostedByName,
		&m.PostingDate,
		&m.PeriodMonth,
		&m.PeriodYear,
		&m.IsUnposted,
		&m.UnpostingDate,
		&m.UnpostedBy,
		&m.TransactionDate,
		&m.Description,
		&m.YesterdayRemainingBalance,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.RemainingBalance,
		&m.CreatedAt,
	)
	return m, err
}

func collectPostings(rows pgx.Rows) ([]models.Posting, error) {
	defer rows.Close()
	postings := []models.Posting{}
	for rows.Next() {
		m, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, m)
	}
	return postings, rows.Err()
}

// FindPostingByID retrieves a posting with its frozen lines.
func (r *PgxPostingRepository) FindPostingByID(ctx context.Context, postingID string) (*domain.Posting, error) {
	header, err := scanPosting(r.Pool.QueryRow(ctx, `SELECT `+postingColumns+postingFrom+` WHERE p.posting_id = $1;`, postingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("posting " + postingID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find posting by ID "+postingID, err)
	}

	lineQuery := `
		SELECT posting_id, line_no, entry_id, account_id, account_code, account_name,
		       description, debit, credit, balance
		FROM posting_lines
		WHERE posting_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, postingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for posting "+postingID, err)
	}
	defer rows.Close()

	lines := []models.PostingLine{}
	for rows.Next() {
		var l models.PostingLine
		if err := rows.Scan(
			&l.PostingID,
			&l.LineNo,
			&l.EntryID,
			&l.AccountID,
			&l.AccountCode,
			&l.AccountName,
			&l.Description,
			&l.Debit,
			&l.Credit,
			&l.Balance,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for posting "+postingID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for posting "+postingID, err)
	}

	posting := mapping.ToDomainPosting(header, lines)
	return &posting, nil
}

// ListPostings retrieves a page of postings, newest posting date first.
func (r *PgxPostingRepository) ListPostings(ctx context.Context, filter portsrepo.PostingFilter, limit int, nextToken *string) ([]domain.Posting, *string, error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	fetchLimit := limit + 1

	conditions := []string{"TRUE"}
	args := []any{}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		conditions = append(conditions, "p.period_month = $"+strconv.Itoa(len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, "p.period_year = $"+strconv.Itoa(len(args)))
	}
	if filter.IsUnposted != nil {
		args = append(args, *filter.IsUnposted)
		conditions = append(conditions, "p.is_unposted = $"+strconv.Itoa(len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		conditions = append(conditions, fmt.Sprintf("(p.posting_date, p.created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}
	args = append(args, fetchLimit)

	query := `SELECT ` + postingColumns + postingFrom + ` WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY p.posting_date DESC, p.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query postings", err)
	}
	headers, err := collectPostings(rows)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to read posting rows", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(last.PostingDate, last.CreatedAt)
		nextTokenVal = &token
		headers = headers[:limit]
	}

	postings := make([]domain.Posting, len(headers))
	for i, m := range headers {
		postings[i] = mapping.ToDomainPosting(m, nil)
	}
	return postings, nextTokenVal, nil
}

func (r *PgxPostingRepository) findActiveByPeriod(ctx context.Context, q querier, period domain.Period, lock bool) ([]domain.Posting, error) {
	query := `SELECT ` + postingColumns + postingFrom + `
		WHERE p.period_month = $1 AND p.period_year = $2 AND NOT p.is_unposted
		ORDER BY p.posting_date, p.created_at`
	if lock {
		query += ` FOR UPDATE OF p`
	}

	rows, err := q.Query(ctx, query, period.Month, period.Year)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active postings for period "+period.String(), err)
	}
	headers, err := collectPostings(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read active postings for period "+period.String(), err)
	}

	postings := make([]domain.Posting, len(headers))
	for i, m := range headers {
		postings[i] = mapping.ToDomainPosting(m, nil)
	}
	return postings, nil
}

// FindActivePostingsByPeriod retrieves the active postings of a period.
func (r *PgxPostingRepository) FindActivePostingsByPeriod(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.Posting, error) {
	return r.findActiveByPeriod(ctx, tx, period, false)
}

// FindActivePostingsByPeriodForUpdate locks the active postings of a period inside tx.
func (r *PgxPostingRepository) FindActivePostingsByPeriodForUpdate(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.Posting, error) {
	return r.findActiveByPeriod(ctx, tx, period, true)
}

// NextTransactionCode bumps the period counter and formats the new code.
// The counter row stays locked until tx ends, so concurrent posters in one period queue up.
func (r *PgxPostingRepository) NextTransactionCode(ctx context.Context, tx pgx.Tx, period domain.Period) (string, error) {
	query := `
		INSERT INTO transaction_code_counters (period_key, last_value)
		VALUES ($1, 1)
		ON CONFLICT (period_key) DO UPDATE
		SET last_value = transaction_code_counters.last_value + 1
		RETURNING last_value;
	`
	var seq int
	if err := tx.QueryRow(ctx, query, period.Key()).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to allocate transaction code for period "+period.String(), err)
	}
	return domain.TransactionCode(period, seq), nil
}

// SavePosting inserts a posting header and its lines.
func (r *PgxPostingRepository) SavePosting(ctx context.Context, tx pgx.Tx, posting domain.Posting) error {
	m := mapping.ToModelPosting(posting)
	query := `
		INSERT INTO postings (
			posting_id, ledger_id, transaction_code, posted_by, posting_date,
			period_month, period_year, is_unposted, unposting_date, unposted_by,
			transaction_date, description, yesterday_remaining_balance,
			total_debit, total_credit, remaining_balance
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.PostingID,
		m.LedgerID,
		m.TransactionCode,
		m.PostedBy,
		m.PostingDate,
		m.PeriodMonth,
		m.PeriodYear,
		m.IsUnposted,
		m.UnpostingDate,
		m.UnpostedBy,
		m.TransactionDate,
		m.Description,
		m.YesterdayRemainingBalance,
		m.TotalDebit,
		m.TotalCredit,
		m.RemainingBalance,
	)
	if err != nil {
		if isUniqueViolation(err, oneActivePostingConstraint) {
			return fmt.Errorf("%w: ledger %s already has an active posting", apperrors.ErrInvalidState, m.LedgerID)
		}
		return apperrors.NewAppError(500, "failed to insert posting "+m.PostingID, err)
	}

	if len(posting.Lines) == 0 {
		return nil
	}

	lineQuery := `
		INSERT INTO posting_lines (
			posting_id, line_no, entry_id, account_id, account_code, account_name,
			description, debit, credit, balance
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range posting.Lines {
		l := mapping.ToModelPostingLine(m.PostingID, line)
		batch.Queue(lineQuery,
			l.PostingID,
			l.LineNo,
			l.EntryID,
			l.AccountID,
			l.AccountCode,
			l.AccountName,
			l.Description,
			l.Debit,
			l.Credit,
			l.Balance,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute posting line insert batch", err)
	}
	return nil
}

// MarkPostingsUnposted flags still-active postings as unposted and returns how many rows changed.
func (r *PgxPostingRepository) MarkPostingsUnposted(ctx context.Context, tx pgx.Tx, postingIDs []string, userID string, now time.Time) (int64, error) {
	if len(postingIDs) == 0 {
		return 0, nil
	}
	query := `
		UPDATE postings
		SET is_unposted = TRUE,
		    unposting_date = $3,
		    unposted_by = $2
		WHERE posting_id = ANY($1) AND NOT is_unposted;
	`
	cmdTag, err := tx.Exec(ctx, query, postingIDs, userID, now)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark postings unposted", err)
	}
	return cmdTag.RowsAffected(), nil
}
