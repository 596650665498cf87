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
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for general ledgers and their journal entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const ledgerColumns = `g.ledger_id, g.transaction_code, g.transaction_date, g.description, g.status,
	g.yesterday_remaining_balance, g.total_debit, g.total_credit, g.remaining_balance,
	g.created_at, g.created_by, g.last_updated_at, g.last_updated_by`

const entryColumns = `e.entry_id, e.ledger_id, e.account_id, a.code, a.name, e.description, e.debit, e.credit,
	e.transaction_date, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

func scanLedger(row pgx.Row) (models.GeneralLedger, error) {
	var m models.GeneralLedger
	err := row.Scan(
		&m.LedgerID,
		&m.TransactionCode,
		&m.TransactionDate,
		&m.Description,
		&m.Status,
		&m.YesterdayRemainingBalance,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.RemainingBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func ledgerNotFound(ledgerID string) error {
	return apperrors.NewNotFoundError("ledger " + ledgerID + " not found")
}

// loadLedger reads a ledger header and its entries. With lock set the header row is locked FOR UPDATE.
func (r *PgxLedgerRepository) loadLedger(ctx context.Context, q querier, ledgerID string, lock bool) (*domain.GeneralLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM general_ledgers g WHERE g.ledger_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	header, err := scanLedger(q.QueryRow(ctx, query, ledgerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledgerNotFound(ledgerID)
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger by ID "+ledgerID, err)
	}

	entryQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries e
		JOIN accounts a ON a.account_id = e.account_id
		WHERE e.ledger_id = $1
		ORDER BY e.seq;
	`
	rows, err := q.Query(ctx, entryQuery, ledgerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for ledger "+ledgerID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(
			&e.EntryID,
			&e.LedgerID,
			&e.AccountID,
			&e.AccountCode,
			&e.AccountName,
			&e.Description,
			&e.Debit,
			&e.Credit,
			&e.TransactionDate,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for ledger "+ledgerID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for ledger "+ledgerID, err)
	}

	ledger := mapping.ToDomainLedger(header, entries)
	return &ledger, nil
}

// FindLedgerByID retrieves a ledger with its entries.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error) {
	return r.loadLedger(ctx, r.Pool, ledgerID, false)
}

// FindLedgerByIDForUpdate locks the ledger row inside tx and loads its entries.
func (r *PgxLedgerRepository) FindLedgerByIDForUpdate(ctx context.Context, tx pgx.Tx, ledgerID string) (*domain.GeneralLedger, error) {
	return r.loadLedger(ctx, tx, ledgerID, true)
}

// ListLedgers retrieves a paginated list of ledgers using token-based pagination.
// It returns the ledgers (without entries), a token for the next page (if any), and an error.
func (r *PgxLedgerRepository) ListLedgers(ctx context.Context, filter portsrepo.LedgerFilter, limit int, nextToken *string) ([]domain.GeneralLedger, *string, error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	conditions := []string{"TRUE"}
	args := []any{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "g.status = $"+strconv.Itoa(len(args)))
	}
	if filter.WithEntriesOnly {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM journal_entries e WHERE e.ledger_id = g.ledger_id)")
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		// Tuple comparison is concise and efficient in Postgres
		conditions = append(conditions, fmt.Sprintf("(g.transaction_date, g.created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}
	args = append(args, fetchLimit)

	query := `SELECT ` + ledgerColumns + ` FROM general_ledgers g WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY g.transaction_date DESC, g.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledgers", err)
	}
	defer rows.Close()

	headers := make([]models.GeneralLedger, 0, fetchLimit)
	for rows.Next() {
		m, err := scanLedger(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		headers = headers[:limit]
	}

	ledgers := make([]domain.GeneralLedger, len(headers))
	for i, m := range headers {
		ledgers[i] = mapping.ToDomainLedger(m, nil)
	}
	return ledgers, nextTokenVal, nil
}

// FindLedgerIDByEntryID returns the ledger owning an entry.
func (r *PgxLedgerRepository) FindLedgerIDByEntryID(ctx context.Context, tx pgx.Tx, entryID string) (string, error) {
	var ledgerID string
	err := tx.QueryRow(ctx, `SELECT ledger_id FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&ledgerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundError("journal entry " + entryID + " not found")
		}
		return "", apperrors.NewAppError(500, "failed to find ledger for entry "+entryID, err)
	}
	return ledgerID, nil
}

// FindPreviousRemainingBalance returns the remaining balance of the latest ledger dated before date.
// The ledger being moved is passed as excludeLedgerID so it never carries in its own balance.
func (r *PgxLedgerRepository) FindPreviousRemainingBalance(ctx context.Context, tx pgx.Tx, date time.Time, excludeLedgerID string) (decimal.Decimal, bool, error) {
	query := `
		SELECT remaining_balance
		FROM general_ledgers
		WHERE transaction_date < $1 AND ledger_id <> $2
		ORDER BY transaction_date DESC, created_at DESC, ledger_id DESC
		LIMIT 1;
	`
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, query, date, excludeLedgerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, apperrors.NewAppError(500, "failed to read previous remaining balance", err)
	}
	return balance, true, nil
}

// ListLedgerBalancesFrom locks every ledger dated on or after from and returns its balance header.
func (r *PgxLedgerRepository) ListLedgerBalancesFrom(ctx context.Context, tx pgx.Tx, from time.Time) ([]domain.LedgerBalance, error) {
	query := `
		SELECT ledger_id, transaction_date, status,
		       yesterday_remaining_balance, total_debit, total_credit, remaining_balance
		FROM general_ledgers
		WHERE transaction_date >= $1
		ORDER BY transaction_date, created_at, ledger_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, from)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledger balances", err)
	}
	defer rows.Close()

	var balances []domain.LedgerBalance
	for rows.Next() {
		var (
			b      domain.LedgerBalance
			status string
		)
		if err := rows.Scan(
			&b.LedgerID,
			&b.TransactionDate,
			&status,
			&b.YesterdayRemainingBalance,
			&b.TotalDebit,
			&b.TotalCredit,
			&b.RemainingBalance,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger balance", err)
		}
		b.Status = domain.LedgerStatus(status)
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger balances", err)
	}
	return balances, nil
}

// UpdateCarryIns writes re-derived carry-in and remaining balances. Only drafts are touched.
func (r *PgxLedgerRepository) UpdateCarryIns(ctx context.Context, tx pgx.Tx, balances []domain.LedgerBalance) error {
	if len(balances) == 0 {
		return nil
	}
	query := `
		UPDATE general_ledgers
		SET yesterday_remaining_balance = $2,
		    remaining_balance = $3
		WHERE ledger_id = $1 AND status = 'DRAFT';
	`
	batch := &pgx.Batch{}
	for _, b := range balances {
		batch.Queue(query, b.LedgerID, b.YesterdayRemainingBalance, b.RemainingBalance)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for _, b := range balances {
		cmdTag, err := br.Exec()
		if err != nil {
			return apperrors.NewAppError(500, "failed to update carry-in of ledger "+b.LedgerID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewConsistencyError("ledger " + b.LedgerID + " is no longer a draft")
		}
	}
	return br.Close()
}

// SaveLedger inserts a new ledger header.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, tx pgx.Tx, ledger domain.GeneralLedger) error {
	m := mapping.ToModelLedger(ledger)
	query := `
		INSERT INTO general_ledgers (
			ledger_id, transaction_code, transaction_date, description, status,
			yesterday_remaining_balance, total_debit, total_credit, remaining_balance,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.LedgerID,
		m.TransactionCode,
		m.TransactionDate,
		m.Description,
		m.Status,
		m.YesterdayRemainingBalance,
		m.TotalDebit,
		m.TotalCredit,
		m.RemainingBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger "+m.LedgerID, err)
	}
	return nil
}

// UpdateLedger writes the header fields of a ledger.
func (r *PgxLedgerRepository) UpdateLedger(ctx context.Context, tx pgx.Tx, ledger domain.GeneralLedger) error {
	m := mapping.ToModelLedger(ledger)
	query := `
		UPDATE general_ledgers
		SET transaction_code = $2,
		    transaction_date = $3,
		    description = $4,
		    status = $5,
		    yesterday_remaining_balance = $6,
		    total_debit = $7,
		    total_credit = $8,
		    remaining_balance = $9,
		    last_updated_at = $10,
		    last_updated_by = $11
		WHERE ledger_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.LedgerID,
		m.TransactionCode,
		m.TransactionDate,
		m.Description,
		m.Status,
		m.YesterdayRemainingBalance,
		m.TotalDebit,
		m.TotalCredit,
		m.RemainingBalance,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update ledger "+m.LedgerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ledgerNotFound(m.LedgerID)
	}
	return nil
}

// DeleteLedger removes a draft ledger. Its entries go with it.
func (r *PgxLedgerRepository) DeleteLedger(ctx context.Context, tx pgx.Tx, ledgerID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM general_ledgers WHERE ledger_id = $1 AND status = 'DRAFT';`, ledgerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete ledger "+ledgerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ledgerNotFound(ledgerID)
	}
	return nil
}

// InsertEntries inserts new journal entries in one batch.
func (r *PgxLedgerRepository) InsertEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_entries (
			entry_id, ledger_id, account_id, description, debit, credit, transaction_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelEntry(e)
		batch.Queue(query,
			m.EntryID,
			m.LedgerID,
			m.AccountID,
			m.Description,
			m.Debit,
			m.Credit,
			m.TransactionDate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	// Close the batch results to surface the error of any queued insert
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute journal entry insert batch", err)
	}
	return nil
}

// UpdateEntries overwrites existing journal entries in one batch.
func (r *PgxLedgerRepository) UpdateEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		UPDATE journal_entries
		SET account_id = $2,
		    description = $3,
		    debit = $4,
		    credit = $5,
		    transaction_date = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE entry_id = $1;
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelEntry(e)
		batch.Queue(query,
			m.EntryID,
			m.AccountID,
			m.Description,
			m.Debit,
			m.Credit,
			m.TransactionDate,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for _, e := range entries {
		cmdTag, err := br.Exec()
		if err != nil {
			return apperrors.NewAppError(500, "failed to update journal entry "+e.EntryID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("journal entry " + e.EntryID + " not found for update")
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute journal entry update batch", err)
	}
	return nil
}

// DeleteEntry removes a single journal entry.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, tx pgx.Tx, entryID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + entryID + " not found")
	}
	return nil
}

// RevertLedgersToDraft moves POSTED ledgers back to DRAFT and returns how many rows changed.
func (r *PgxLedgerRepository) RevertLedgersToDraft(ctx context.Context, tx pgx.Tx, ledgerIDs []string, userID string, now time.Time) (int64, error) {
	if len(ledgerIDs) == 0 {
		return 0, nil
	}
	query := `
		UPDATE general_ledgers
		SET status = 'DRAFT',
		    last_updated_at = $3,
		    last_updated_by = $2
		WHERE ledger_id = ANY($1) AND status = 'POSTED';
	`
	cmdTag, err := tx.Exec(ctx, query, ledgerIDs, userID, now)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to revert ledgers to draft", err)
	}
	return cmdTag.RowsAffected(), nil
}
