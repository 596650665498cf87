package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_app/internal/dto"
	"github.com/SscSPs/ledger_posting_app/internal/utils/accounting"
	"github.com/SscSPs/ledger_posting_app/internal/utils/pagination"
)

const maxPageSize = 100

var (
	ErrNothingToSave      = fmt.Errorf("%w: no entries to create or update", apperrors.ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", apperrors.ErrValidation)
	ErrAccountInactive    = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrLedgerHasHistory   = fmt.Errorf("%w: ledger has been posted before and cannot be deleted", apperrors.ErrInvalidState)
	ErrActorMissing       = fmt.Errorf("%w: acting user is required", apperrors.ErrValidation)
	ErrInvalidTransaction = fmt.Errorf("%w: transaction date is required", apperrors.ErrValidation)
)

// ledgerService manages draft ledgers and their journal entries.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, accountRepo portsrepo.AccountReader, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(options...),
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetLedger retrieves a ledger with freshly computed totals.
func (s *ledgerService) GetLedger(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to load ledger", slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to load ledger %s: %w", ledgerID, err)
	}

	computed := accounting.ComputeBalances(ledger.YesterdayRemainingBalance, ledger.Entries)
	if stored, err := ledger.Balances(); err == nil {
		if verr := accounting.VerifyPersistedTotals(stored, computed); verr != nil {
			s.LogWarn(ctx, "Stored ledger totals differ from entries", slog.String("ledger_id", ledgerID), slog.String("detail", verr.Error()))
		}
	}
	ledger.ApplyBalances(computed)
	return ledger, nil
}

// ListLedgers retrieves a page of ledgers, optionally filtered by status.
func (s *ledgerService) ListLedgers(ctx context.Context, params dto.ListLedgersParams) (*dto.ListLedgersResponse, error) {
	filter := portsrepo.LedgerFilter{}
	if params.Status != "" {
		status := domain.LedgerStatus(params.Status)
		filter.Status = &status
	}
	return s.listLedgers(ctx, filter, params)
}

func (s *ledgerService) listLedgers(ctx context.Context, filter portsrepo.LedgerFilter, params dto.ListLedgersParams) (*dto.ListLedgersResponse, error) {
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}
	ledgers, next, err := s.ledgerRepo.ListLedgers(ctx, filter, pagination.NormalizeLimit(params.Limit, maxPageSize), token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledgers")
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	return dto.ToListLedgersResponse(ledgers, next), nil
}

// CreateLedger opens a draft ledger whose carry-in is the remaining balance of the latest earlier ledger.
func (s *ledgerService) CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, actor domain.Actor) (*domain.GeneralLedger, error) {
	if actor.UserID == "" {
		return nil, ErrActorMissing
	}
	if req.TransactionDate.IsZero() {
		return nil, ErrInvalidTransaction
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	yesterday, err := s.carryIn(ctx, tx, req.TransactionDate, "")
	if err != nil {
		return nil, err
	}

	now := s.Now()
	ledger := domain.GeneralLedger{
		LedgerID:                  uuid.NewString(),
		TransactionDate:           req.TransactionDate,
		Description:               req.Description,
		Status:                    domain.LedgerDraft,
		YesterdayRemainingBalance: yesterday,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	ledger.ApplyBalances(accounting.ComputeBalances(yesterday, nil))

	if err := s.ledgerRepo.SaveLedger(ctx, tx, ledger); err != nil {
		s.LogError(ctx, err, "Failed to save ledger")
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}
	if err := s.rechainFrom(ctx, tx, ledger.TransactionDate, &ledger); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("yesterday_remaining_balance", yesterday.StringFixed(domain.AmountScale)))
	return &ledger, nil
}

// UpdateLedger changes description or date of a draft ledger. A date change re-derives the carry-in.
func (s *ledgerService) UpdateLedger(ctx context.Context, ledgerID string, req dto.UpdateLedgerRequest, actor domain.Actor) (*domain.GeneralLedger, error) {
	if actor.UserID == "" {
		return nil, ErrActorMissing
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	ledger, err := s.ledgerRepo.FindLedgerByIDForUpdate(ctx, tx, ledgerID)
	if err != nil {
		return nil, err
	}
	if !ledger.IsDraft() {
		return nil, fmt.Errorf("%w: %s", domain.ErrLedgerNotDraft, ledgerID)
	}

	oldDate := ledger.TransactionDate
	if req.Description != nil {
		ledger.Description = *req.Description
	}
	if req.TransactionDate != nil && !req.TransactionDate.Equal(ledger.TransactionDate) {
		if err := s.moveLedgerDate(ctx, tx, ledger, *req.TransactionDate); err != nil {
			return nil, err
		}
		if err := s.ledgerRepo.UpdateEntries(ctx, tx, ledger.Entries); err != nil {
			return nil, fmt.Errorf("failed to update entry dates: %w", err)
		}
	}
	ledger.ApplyBalances(accounting.ComputeBalances(ledger.YesterdayRemainingBalance, ledger.Entries))
	ledger.LastUpdatedAt = s.Now()
	ledger.LastUpdatedBy = actor.UserID

	if err := s.ledgerRepo.UpdateLedger(ctx, tx, *ledger); err != nil {
		s.LogError(ctx, err, "Failed to update ledger", slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to update ledger: %w", err)
	}
	if !oldDate.Equal(ledger.TransactionDate) {
		if err := s.rechainFrom(ctx, tx, earlier(oldDate, ledger.TransactionDate), ledger); err != nil {
			return nil, err
		}
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return ledger, nil
}

// DeleteLedger removes a draft ledger that never had a posting.
func (s *ledgerService) DeleteLedger(ctx context.Context, ledgerID string, actor domain.Actor) error {
	if actor.UserID == "" {
		return ErrActorMissing
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	ledger, err := s.ledgerRepo.FindLedgerByIDForUpdate(ctx, tx, ledgerID)
	if err != nil {
		return err
	}
	if !ledger.IsDraft() {
		return fmt.Errorf("%w: %s", domain.ErrLedgerNotDraft, ledgerID)
	}
	if ledger.TransactionCode != "" {
		return fmt.Errorf("%w: %s (%s)", ErrLedgerHasHistory, ledgerID, ledger.TransactionCode)
	}

	if err := s.ledgerRepo.DeleteLedger(ctx, tx, ledgerID); err != nil {
		return fmt.Errorf("failed to delete ledger: %w", err)
	}
	if err := s.rechainFrom(ctx, tx, ledger.TransactionDate, nil); err != nil {
		return err
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return err
	}
	s.LogInfo(ctx, "Ledger deleted", slog.String("ledger_id", ledgerID), slog.String("user_id", actor.UserID))
	return nil
}

// SaveEntries applies entry updates and creations to a draft ledger in one transaction.
// Either every change is stored together with the recomputed totals, or nothing is.
func (s *ledgerService) SaveEntries(ctx context.Context, req dto.SaveEntriesRequest, actor domain.Actor) (*domain.GeneralLedger, error) {
	if actor.UserID == "" {
		return nil, ErrActorMissing
	}
	if len(req.CreateEntries) == 0 && len(req.UpdateEntries) == 0 && req.TransactionDate == nil {
		return nil, ErrNothingToSave
	}

	accounts, err := s.resolveAccounts(ctx, req)
	if err != nil {
		return nil, err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	ledger, err := s.ledgerRepo.FindLedgerByIDForUpdate(ctx, tx, req.LedgerID)
	if err != nil {
		return nil, err
	}
	if !ledger.IsDraft() {
		return nil, fmt.Errorf("%w: %s", domain.ErrLedgerNotDraft, req.LedgerID)
	}

	now := s.Now()
	oldDate := ledger.TransactionDate
	updated := make(map[string]bool)

	if req.TransactionDate != nil && !req.TransactionDate.Equal(ledger.TransactionDate) {
		if err := s.moveLedgerDate(ctx, tx, ledger, *req.TransactionDate); err != nil {
			return nil, err
		}
		for _, e := range ledger.Entries {
			updated[e.EntryID] = true
		}
	}

	for i, u := range req.UpdateEntries {
		patch := domain.EntryPatch{
			Description: u.Description,
			Debit:       u.Debit,
			Credit:      u.Credit,
		}
		if u.AccountID != nil {
			ref := accounts[*u.AccountID].Ref()
			patch.Account = &ref
		}
		if _, err := ledger.UpdateEntry(u.EntryID, patch); err != nil {
			return nil, fmt.Errorf("updateEntries[%d]: %w", i, err)
		}
		updated[u.EntryID] = true
	}

	created := make([]domain.JournalEntry, 0, len(req.CreateEntries))
	for i, c := range req.CreateEntries {
		entry := domain.JournalEntry{
			EntryID:         uuid.NewString(),
			Account:         accounts[c.AccountID].Ref(),
			Description:     c.Description,
			Debit:           c.Debit,
			Credit:          c.Credit,
			TransactionDate: ledger.TransactionDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		if err := ledger.AddEntry(entry); err != nil {
			return nil, fmt.Errorf("createEntries[%d]: %w", i, err)
		}
		created = append(created, ledger.Entries[len(ledger.Entries)-1])
	}

	toUpdate := make([]domain.JournalEntry, 0, len(updated))
	for i := range ledger.Entries {
		if updated[ledger.Entries[i].EntryID] {
			ledger.Entries[i].LastUpdatedAt = now
			ledger.Entries[i].LastUpdatedBy = actor.UserID
			toUpdate = append(toUpdate, ledger.Entries[i])
		}
	}

	ledger.ApplyBalances(accounting.ComputeBalances(ledger.YesterdayRemainingBalance, ledger.Entries))
	ledger.LastUpdatedAt = now
	ledger.LastUpdatedBy = actor.UserID

	if len(toUpdate) > 0 {
		if err := s.ledgerRepo.UpdateEntries(ctx, tx, toUpdate); err != nil {
			s.LogError(ctx, err, "Failed to update journal entries", slog.String("ledger_id", ledger.LedgerID))
			return nil, fmt.Errorf("failed to update entries: %w", err)
		}
	}
	if len(created) > 0 {
		if err := s.ledgerRepo.InsertEntries(ctx, tx, created); err != nil {
			s.LogError(ctx, err, "Failed to insert journal entries", slog.String("ledger_id", ledger.LedgerID))
			return nil, fmt.Errorf("failed to insert entries: %w", err)
		}
	}
	if err := s.ledgerRepo.UpdateLedger(ctx, tx, *ledger); err != nil {
		s.LogError(ctx, err, "Failed to store ledger totals", slog.String("ledger_id", ledger.LedgerID))
		return nil, fmt.Errorf("failed to update ledger: %w", err)
	}
	if err := s.rechainFrom(ctx, tx, earlier(oldDate, ledger.TransactionDate), ledger); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.Metrics.ObserveEntries("create", len(created))
	s.Metrics.ObserveEntries("update", len(toUpdate))
	s.LogInfo(ctx, "Journal entries saved",
		slog.String("ledger_id", ledger.LedgerID),
		slog.Int("created", len(created)),
		slog.Int("updated", len(toUpdate)),
		slog.String("remaining_balance", ledger.RemainingBalance.StringFixed(domain.AmountScale)))
	return ledger, nil
}

// DeleteEntry removes one entry from its draft ledger and stores the recomputed totals.
func (s *ledgerService) DeleteEntry(ctx context.Context, entryID string, actor domain.Actor) (*domain.GeneralLedger, error) {
	if actor.UserID == "" {
		return nil, ErrActorMissing
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	ledgerID, err := s.ledgerRepo.FindLedgerIDByEntryID(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.ledgerRepo.FindLedgerByIDForUpdate(ctx, tx, ledgerID)
	if err != nil {
		return nil, err
	}
	if _, err := ledger.RemoveEntry(entryID); err != nil {
		return nil, err
	}
	ledger.ApplyBalances(accounting.ComputeBalances(ledger.YesterdayRemainingBalance, ledger.Entries))
	ledger.LastUpdatedAt = s.Now()
	ledger.LastUpdatedBy = actor.UserID

	if err := s.ledgerRepo.DeleteEntry(ctx, tx, entryID); err != nil {
		return nil, fmt.Errorf("failed to delete entry: %w", err)
	}
	if err := s.ledgerRepo.UpdateLedger(ctx, tx, *ledger); err != nil {
		return nil, fmt.Errorf("failed to update ledger: %w", err)
	}
	if err := s.rechainFrom(ctx, tx, ledger.TransactionDate, ledger); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.Metrics.ObserveEntries("delete", 1)
	s.LogInfo(ctx, "Journal entry deleted", slog.String("ledger_id", ledgerID), slog.String("entry_id", entryID))
	return ledger, nil
}

// resolveAccounts loads every account referenced by the request and rejects unknown or inactive ones.
func (s *ledgerService) resolveAccounts(ctx context.Context, req dto.SaveEntriesRequest) (map[string]domain.Account, error) {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(req.CreateEntries)+len(req.UpdateEntries))
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, c := range req.CreateEntries {
		add(c.AccountID)
	}
	for _, u := range req.UpdateEntries {
		if u.AccountID != nil {
			add(*u.AccountID)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrAccountInactive, id)
		}
	}
	return accounts, nil
}

// moveLedgerDate changes the ledger date, re-deriving the carry-in and re-dating its entries.
func (s *ledgerService) moveLedgerDate(ctx context.Context, tx pgx.Tx, ledger *domain.GeneralLedger, date time.Time) error {
	yesterday, err := s.carryIn(ctx, tx, date, ledger.LedgerID)
	if err != nil {
		return err
	}
	ledger.TransactionDate = date
	ledger.YesterdayRemainingBalance = yesterday
	for i := range ledger.Entries {
		ledger.Entries[i].TransactionDate = date
	}
	ledger.MarkDirty()
	return nil
}

func (s *ledgerService) carryIn(ctx context.Context, tx pgx.Tx, date time.Time, excludeLedgerID string) (decimal.Decimal, error) {
	prev, ok, err := s.ledgerRepo.FindPreviousRemainingBalance(ctx, tx, date, excludeLedgerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up previous remaining balance")
		return decimal.Zero, fmt.Errorf("failed to look up previous remaining balance: %w", err)
	}
	if !ok {
		return decimal.Zero, nil
	}
	return prev, nil
}

// rechainFrom re-derives the carry-in of draft ledgers dated on or after from, inside tx.
// current is the ledger the caller is returning; it is refreshed when the chain changes it.
func (s *ledgerService) rechainFrom(ctx context.Context, tx pgx.Tx, from time.Time, current *domain.GeneralLedger) error {
	rows, err := s.ledgerRepo.ListLedgerBalancesFrom(ctx, tx, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to load later ledgers")
		return fmt.Errorf("failed to load ledgers from %s: %w", from.Format(time.DateOnly), err)
	}
	if len(rows) == 0 {
		return nil
	}

	seed, err := s.carryIn(ctx, tx, from, "")
	if err != nil {
		return err
	}
	changed := accounting.ChainCarryIns(seed, rows)
	if len(changed) == 0 {
		return nil
	}
	if err := s.ledgerRepo.UpdateCarryIns(ctx, tx, changed); err != nil {
		s.LogError(ctx, err, "Failed to carry balance forward")
		return fmt.Errorf("failed to carry balance forward: %w", err)
	}

	if current != nil {
		for _, b := range changed {
			if b.LedgerID == current.LedgerID {
				current.YesterdayRemainingBalance = b.YesterdayRemainingBalance
				current.ApplyBalances(accounting.ComputeBalances(b.YesterdayRemainingBalance, current.Entries))
			}
		}
	}
	s.LogInfo(ctx, "Carried balance forward to later drafts",
		slog.String("from", from.Format(time.DateOnly)),
		slog.Int("ledger_count", len(changed)))
	return nil
}

func earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
