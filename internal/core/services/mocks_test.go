package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_app/internal/core/ports/repositories"
)

// fakeTx stands in for a pgx transaction; the mocks never touch it.
type fakeTx struct {
	pgx.Tx
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgers(ctx context.Context, filter portsrepo.LedgerFilter, limit int, nextToken *string) ([]domain.GeneralLedger, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.GeneralLedger), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) FindLedgerByIDForUpdate(ctx context.Context, tx pgx.Tx, ledgerID string) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, tx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}

func (m *MockLedgerRepository) FindLedgerIDByEntryID(ctx context.Context, tx pgx.Tx, entryID string) (string, error) {
	args := m.Called(ctx, tx, entryID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerRepository) FindPreviousRemainingBalance(ctx context.Context, tx pgx.Tx, date time.Time, excludeLedgerID string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, tx, date, excludeLedgerID)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockLedgerRepository) ListLedgerBalancesFrom(ctx context.Context, tx pgx.Tx, from time.Time) ([]domain.LedgerBalance, error) {
	args := m.Called(ctx, tx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerBalance), args.Error(1)
}

func (m *MockLedgerRepository) UpdateCarryIns(ctx context.Context, tx pgx.Tx, balances []domain.LedgerBalance) error {
	args := m.Called(ctx, tx, balances)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveLedger(ctx context.Context, tx pgx.Tx, ledger domain.GeneralLedger) error {
	args := m.Called(ctx, tx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateLedger(ctx context.Context, tx pgx.Tx, ledger domain.GeneralLedger) error {
	args := m.Called(ctx, tx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteLedger(ctx context.Context, tx pgx.Tx, ledgerID string) error {
	args := m.Called(ctx, tx, ledgerID)
	return args.Error(0)
}

func (m *MockLedgerRepository) InsertEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, tx pgx.Tx, entryID string) error {
	args := m.Called(ctx, tx, entryID)
	return args.Error(0)
}

func (m *MockLedgerRepository) RevertLedgersToDraft(ctx context.Context, tx pgx.Tx, ledgerIDs []string, userID string, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, ledgerIDs, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock PostingRepository ---
type MockPostingRepository struct {
	mock.Mock
}

var _ portsrepo.PostingRepositoryFacade = (*MockPostingRepository)(nil)

func (m *MockPostingRepository) FindPostingByID(ctx context.Context, postingID string) (*domain.Posting, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) ListPostings(ctx context.Context, filter portsrepo.PostingFilter, limit int, nextToken *string) ([]domain.Posting, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Posting), returnedNextToken, args.Error(2)
}

func (m *MockPostingRepository) FindActivePostingsByPeriod(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.Posting, error) {
	args := m.Called(ctx, tx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) NextTransactionCode(ctx context.Context, tx pgx.Tx, period domain.Period) (string, error) {
	args := m.Called(ctx, tx, period)
	return args.String(0), args.Error(1)
}

func (m *MockPostingRepository) SavePosting(ctx context.Context, tx pgx.Tx, posting domain.Posting) error {
	args := m.Called(ctx, tx, posting)
	return args.Error(0)
}

func (m *MockPostingRepository) FindActivePostingsByPeriodForUpdate(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.Posting, error) {
	args := m.Called(ctx, tx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) MarkPostingsUnposted(ctx context.Context, tx pgx.Tx, postingIDs []string, userID string, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, postingIDs, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockReportingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockReportingRepository) GetPeriodTrialBalanceData(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}
