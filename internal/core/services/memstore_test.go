package services_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_app/internal/core/ports/repositories"
)

var errInjected = errors.New("injected failure")

// memState is everything the store persists. Transactions work on a private copy.
type memState struct {
	ledgers  map[string]domain.GeneralLedger
	postings map[string]domain.Posting
	counters map[string]int
}

func (s memState) clone() memState {
	out := memState{
		ledgers:  make(map[string]domain.GeneralLedger, len(s.ledgers)),
		postings: make(map[string]domain.Posting, len(s.postings)),
		counters: make(map[string]int, len(s.counters)),
	}
	for id, l := range s.ledgers {
		l.Entries = slices.Clone(l.Entries)
		out.ledgers[id] = l
	}
	for id, p := range s.postings {
		p.Lines = slices.Clone(p.Lines)
		out.postings[id] = p
	}
	for k, v := range s.counters {
		out.counters[k] = v
	}
	return out
}

type memTx struct {
	pgx.Tx
	state memState
}

// memStore is a transactional in-memory implementation of the ledger, posting and account ports.
// Commit publishes the transaction's copy; anything else discards it.
type memStore struct {
	mu       sync.Mutex
	state    memState
	accounts map[string]domain.Account

	failMarkUnposted bool
	failRevert       bool
	commits          int
}

var (
	_ portsrepo.LedgerRepositoryWithTx  = (*memStore)(nil)
	_ portsrepo.PostingRepositoryFacade = (*memStore)(nil)
	_ portsrepo.AccountReader           = (*memStore)(nil)
)

func newMemStore(accounts ...domain.Account) *memStore {
	m := &memStore{
		state: memState{
			ledgers:  map[string]domain.GeneralLedger{},
			postings: map[string]domain.Posting{},
			counters: map[string]int{},
		},
		accounts: map[string]domain.Account{},
	}
	for _, a := range accounts {
		m.accounts[a.AccountID] = a
	}
	return m
}

func (m *memStore) committed() memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// ledger returns the committed copy of a ledger.
func (m *memStore) ledger(id string) domain.GeneralLedger {
	return m.committed().ledgers[id]
}

// tamper changes committed state directly, as a concurrent writer bypassing the services would.
func (m *memStore) tamper(fn func(*memState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
}

func asMemTx(tx pgx.Tx) *memTx {
	return tx.(*memTx)
}

func ledgerNotFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("ledger %s not found", id))
}

// --- TransactionManager ---

func (m *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{state: m.committed()}, nil
}

func (m *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = asMemTx(tx).state.clone()
	m.commits++
	return nil
}

func (m *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	return nil
}

// --- AccountReader ---

func (m *memStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account not found")
	}
	return &a, nil
}

func (m *memStore) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account)
	for _, id := range accountIDs {
		if a, ok := m.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

// --- Ledger ports ---

func (m *memStore) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.GeneralLedger, error) {
	l, ok := m.committed().ledgers[ledgerID]
	if !ok {
		return nil, ledgerNotFound(ledgerID)
	}
	return &l, nil
}

func (m *memStore) ListLedgers(ctx context.Context, filter portsrepo.LedgerFilter, limit int, nextToken *string) ([]domain.GeneralLedger, *string, error) {
	var out []domain.GeneralLedger
	for _, l := range m.committed().ledgers {
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		if filter.WithEntriesOnly && len(l.Entries) == 0 {
			continue
		}
		l.Entries = nil
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionDate.After(out[j].TransactionDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (m *memStore) FindLedgerByIDForUpdate(ctx context.Context, tx pgx.Tx, ledgerID string) (*domain.GeneralLedger, error) {
	l, ok := asMemTx(tx).state.ledgers[ledgerID]
	if !ok {
		return nil, ledgerNotFound(ledgerID)
	}
	l.Entries = slices.Clone(l.Entries)
	return &l, nil
}

func (m *memStore) FindLedgerIDByEntryID(ctx context.Context, tx pgx.Tx, entryID string) (string, error) {
	for id, l := range asMemTx(tx).state.ledgers {
		for _, e := range l.Entries {
			if e.EntryID == entryID {
				return id, nil
			}
		}
	}
	return "", apperrors.NewNotFoundError("journal entry not found")
}

// chainOrder sorts ledgers by transaction date, creation time and ID.
func chainOrder(a, b domain.GeneralLedger) int {
	if c := a.TransactionDate.Compare(b.TransactionDate); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.LedgerID, b.LedgerID)
}

func (m *memStore) FindPreviousRemainingBalance(ctx context.Context, tx pgx.Tx, date time.Time, excludeLedgerID string) (decimal.Decimal, bool, error) {
	var (
		found  bool
		latest domain.GeneralLedger
	)
	for _, l := range asMemTx(tx).state.ledgers {
		if !l.TransactionDate.Before(date) || l.LedgerID == excludeLedgerID {
			continue
		}
		if !found || chainOrder(l, latest) > 0 {
			latest, found = l, true
		}
	}
	if !found {
		return decimal.Zero, false, nil
	}
	return latest.RemainingBalance, true, nil
}

func (m *memStore) ListLedgerBalancesFrom(ctx context.Context, tx pgx.Tx, from time.Time) ([]domain.LedgerBalance, error) {
	var ledgers []domain.GeneralLedger
	for _, l := range asMemTx(tx).state.ledgers {
		if !l.TransactionDate.Before(from) {
			ledgers = append(ledgers, l)
		}
	}
	slices.SortFunc(ledgers, chainOrder)
	out := make([]domain.LedgerBalance, 0, len(ledgers))
	for _, l := range ledgers {
		out = append(out, domain.LedgerBalance{
			LedgerID:                  l.LedgerID,
			TransactionDate:           l.TransactionDate,
			Status:                    l.Status,
			YesterdayRemainingBalance: l.YesterdayRemainingBalance,
			TotalDebit:                l.TotalDebit,
			TotalCredit:               l.TotalCredit,
			RemainingBalance:          l.RemainingBalance,
		})
	}
	return out, nil
}

func (m *memStore) UpdateCarryIns(ctx context.Context, tx pgx.Tx, balances []domain.LedgerBalance) error {
	st := asMemTx(tx).state
	for _, b := range balances {
		l, ok := st.ledgers[b.LedgerID]
		if !ok || l.Status != domain.LedgerDraft {
			return apperrors.NewConsistencyError("ledger " + b.LedgerID + " is no longer a draft")
		}
		l.YesterdayRemainingBalance = b.YesterdayRemainingBalance
		l.RemainingBalance = b.RemainingBalance
		st.ledgers[b.LedgerID] = l
	}
	return nil
}

func (m *memStore) SaveLedger(ctx context.Context, tx pgx.Tx, ledger domain.GeneralLedger) error {
	st := asMemTx(tx).state
	ledger.Entries = slices.Clone(ledger.Entries)
	st.ledgers[ledger.LedgerID] = ledger
	return nil
}

func (m *memStore) UpdateLedger(ctx context.Context, tx pgx.Tx, ledger domain.GeneralLedger) error {
	st := asMemTx(tx).state
	stored, ok := st.ledgers[ledger.LedgerID]
	if !ok {
		return ledgerNotFound(ledger.LedgerID)
	}
	stored.Description = ledger.Description
	stored.TransactionDate = ledger.TransactionDate
	stored.YesterdayRemainingBalance = ledger.YesterdayRemainingBalance
	stored.Status = ledger.Status
	stored.TransactionCode = ledger.TransactionCode
	stored.ApplyBalances(domain.Balances{
		TotalDebit:       ledger.TotalDebit,
		TotalCredit:      ledger.TotalCredit,
		RemainingBalance: ledger.RemainingBalance,
	})
	stored.LastUpdatedAt = ledger.LastUpdatedAt
	stored.LastUpdatedBy = ledger.LastUpdatedBy
	st.ledgers[ledger.LedgerID] = stored
	return nil
}

func (m *memStore) DeleteLedger(ctx context.Context, tx pgx.Tx, ledgerID string) error {
	delete(asMemTx(tx).state.ledgers, ledgerID)
	return nil
}

func (m *memStore) InsertEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	st := asMemTx(tx).state
	for _, e := range entries {
		l, ok := st.ledgers[e.LedgerID]
		if !ok {
			return ledgerNotFound(e.LedgerID)
		}
		l.Entries = append(slices.Clone(l.Entries), e)
		st.ledgers[e.LedgerID] = l
	}
	return nil
}

func (m *memStore) UpdateEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	st := asMemTx(tx).state
	for _, e := range entries {
		l := st.ledgers[e.LedgerID]
		idx := slices.IndexFunc(l.Entries, func(x domain.JournalEntry) bool { return x.EntryID == e.EntryID })
		if idx < 0 {
			return apperrors.NewNotFoundError("journal entry not found")
		}
		l.Entries = slices.Clone(l.Entries)
		l.Entries[idx] = e
		st.ledgers[e.LedgerID] = l
	}
	return nil
}

func (m *memStore) DeleteEntry(ctx context.Context, tx pgx.Tx, entryID string) error {
	st := asMemTx(tx).state
	for id, l := range st.ledgers {
		idx := slices.IndexFunc(l.Entries, func(x domain.JournalEntry) bool { return x.EntryID == entryID })
		if idx >= 0 {
			l.Entries = slices.Delete(slices.Clone(l.Entries), idx, idx+1)
			st.ledgers[id] = l
			return nil
		}
	}
	return apperrors.NewNotFoundError("journal entry not found")
}

func (m *memStore) RevertLedgersToDraft(ctx context.Context, tx pgx.Tx, ledgerIDs []string, userID string, now time.Time) (int64, error) {
	if m.failRevert {
		return 0, errInjected
	}
	st := asMemTx(tx).state
	var n int64
	for _, id := range ledgerIDs {
		l, ok := st.ledgers[id]
		if !ok || l.Status != domain.LedgerPosted {
			continue
		}
		l.Status = domain.LedgerDraft
		l.LastUpdatedAt = now
		l.LastUpdatedBy = userID
		st.ledgers[id] = l
		n++
	}
	return n, nil
}

// --- Posting ports ---

func (m *memStore) FindPostingByID(ctx context.Context, postingID string) (*domain.Posting, error) {
	p, ok := m.committed().postings[postingID]
	if !ok {
		return nil, apperrors.NewNotFoundError("posting not found")
	}
	return &p, nil
}

func (m *memStore) ListPostings(ctx context.Context, filter portsrepo.PostingFilter, limit int, nextToken *string) ([]domain.Posting, *string, error) {
	var out []domain.Posting
	for _, p := range m.committed().postings {
		if filter.Month != nil && p.Period.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && p.Period.Year != *filter.Year {
			continue
		}
		if filter.IsUnposted != nil && p.IsUnposted != *filter.IsUnposted {
			continue
		}
		p.Lines = nil
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostingDate.After(out[j].PostingDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func activeInPeriod(st memState, period domain.Period) []domain.Posting {
	var out []domain.Posting
	for _, p := range st.postings {
		if p.Period == period && !p.IsUnposted {
			p.Lines = nil
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionCode < out[j].TransactionCode })
	return out
}

func (m *memStore) FindActivePostingsByPeriod(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.Posting, error) {
	return activeInPeriod(asMemTx(tx).state, period), nil
}

func (m *memStore) NextTransactionCode(ctx context.Context, tx pgx.Tx, period domain.Period) (string, error) {
	st := asMemTx(tx).state
	st.counters[period.Key()]++
	return domain.TransactionCode(period, st.counters[period.Key()]), nil
}

func (m *memStore) SavePosting(ctx context.Context, tx pgx.Tx, posting domain.Posting) error {
	st := asMemTx(tx).state
	for _, p := range st.postings {
		if p.LedgerID == posting.LedgerID && !p.IsUnposted {
			return fmt.Errorf("%w: ledger %s already has an active posting", apperrors.ErrInvalidState, posting.LedgerID)
		}
	}
	posting.Lines = slices.Clone(posting.Lines)
	st.postings[posting.PostingID] = posting
	return nil
}

func (m *memStore) FindActivePostingsByPeriodForUpdate(ctx context.Context, tx pgx.Tx, period domain.Period) ([]domain.Posting, error) {
	return activeInPeriod(asMemTx(tx).state, period), nil
}

func (m *memStore) MarkPostingsUnposted(ctx context.Context, tx pgx.Tx, postingIDs []string, userID string, now time.Time) (int64, error) {
	if m.failMarkUnposted {
		return 0, errInjected
	}
	st := asMemTx(tx).state
	var n int64
	for _, id := range postingIDs {
		p, ok := st.postings[id]
		if !ok || p.IsUnposted {
			continue
		}
		if err := p.MarkUnposted(userID, now); err != nil {
			return n, err
		}
		st.postings[id] = p
		n++
	}
	return n, nil
}
