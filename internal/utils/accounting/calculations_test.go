package accounting

import (
	"math/rand"
	"testing"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(account, debit, credit string) domain.JournalEntry {
	return domain.JournalEntry{
		Account: domain.AccountRef{AccountID: account, AccountCode: account, AccountName: account},
		Debit:   decimal.RequireFromString(debit),
		Credit:  decimal.RequireFromString(credit),
	}
}

func TestComputeBalances_BalancedExample(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("1100", "100000", "0"),
		entry("4100", "0", "100000"),
	}

	b := ComputeBalances(decimal.Zero, entries)

	assert.True(t, b.TotalDebit.Equal(decimal.NewFromInt(100000)))
	assert.True(t, b.TotalCredit.Equal(decimal.NewFromInt(100000)))
	assert.True(t, b.RemainingBalance.IsZero())
	assert.True(t, b.IsBalanced())
}

func TestComputeBalances_CarriesYesterday(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("1100", "250.25", "0"),
		entry("5100", "0", "100.10"),
	}

	b := ComputeBalances(decimal.RequireFromString("1000"), entries)

	assert.Equal(t, "1150.15", b.RemainingBalance.StringFixed(2))
	assert.False(t, b.IsBalanced())
}

func TestComputeBalances_Empty(t *testing.T) {
	b := ComputeBalances(decimal.RequireFromString("42.00"), nil)
	assert.True(t, b.TotalDebit.IsZero())
	assert.True(t, b.TotalCredit.IsZero())
	assert.Equal(t, "42.00", b.RemainingBalance.StringFixed(2))
}

func TestComputeBalances_OrderIndependent(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("a", "10.01", "0"),
		entry("b", "0", "3.33"),
		entry("c", "7.77", "0"),
		entry("d", "0", "0.01"),
		entry("e", "1234.56", "0"),
		entry("f", "0", "999.99"),
	}
	yesterday := decimal.RequireFromString("-15.50")
	want := ComputeBalances(yesterday, entries)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := append([]domain.JournalEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := ComputeBalances(yesterday, shuffled)
		assert.True(t, want.TotalDebit.Equal(got.TotalDebit))
		assert.True(t, want.TotalCredit.Equal(got.TotalCredit))
		assert.True(t, want.RemainingBalance.Equal(got.RemainingBalance))
	}
}

func TestRunningBalances(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("1100", "100", "0"),
		entry("2100", "0", "30"),
		entry("4100", "0", "70"),
	}

	running := RunningBalances(decimal.RequireFromString("50"), entries)
	require.Len(t, running, 3)
	assert.Equal(t, "150.00", running[0].StringFixed(2))
	assert.Equal(t, "120.00", running[1].StringFixed(2))
	assert.Equal(t, "50.00", running[2].StringFixed(2))

	b := ComputeBalances(decimal.RequireFromString("50"), entries)
	assert.True(t, running[2].Equal(b.RemainingBalance))
}

func TestBuildPostingLines(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("1100", "100", "0"),
		entry("4100", "0", "100"),
	}
	entries[0].EntryID = "e1"
	entries[0].Description = "cash sale"

	lines := BuildPostingLines(decimal.Zero, entries)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].LineNo)
	assert.Equal(t, "e1", lines[0].EntryID)
	assert.Equal(t, "cash sale", lines[0].Description)
	assert.Equal(t, "100.00", lines[0].Balance.StringFixed(2))
	assert.Equal(t, 2, lines[1].LineNo)
	assert.True(t, lines[1].Balance.IsZero())
}

func TestVerifyPersistedTotals(t *testing.T) {
	computed := domain.Balances{
		TotalDebit:       decimal.RequireFromString("10"),
		TotalCredit:      decimal.RequireFromString("10"),
		RemainingBalance: decimal.Zero,
	}
	assert.NoError(t, VerifyPersistedTotals(computed, computed))

	stale := computed
	stale.TotalDebit = decimal.RequireFromString("9.99")
	assert.Error(t, VerifyPersistedTotals(stale, computed))
}

func balanceRow(id string, day int, status domain.LedgerStatus, yesterday, debit, credit string) domain.LedgerBalance {
	y := decimal.RequireFromString(yesterday)
	d := decimal.RequireFromString(debit)
	c := decimal.RequireFromString(credit)
	return domain.LedgerBalance{
		LedgerID:                  id,
		TransactionDate:           time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
		Status:                    status,
		YesterdayRemainingBalance: y,
		TotalDebit:                d,
		TotalCredit:               c,
		RemainingBalance:          y.Add(d).Sub(c),
	}
}

func TestChainCarryIns(t *testing.T) {
	rows := []domain.LedgerBalance{
		balanceRow("a", 1, domain.LedgerDraft, "0", "120", "0"),
		balanceRow("b", 1, domain.LedgerDraft, "7", "5", "0"),    // same date as a, stale
		balanceRow("c", 3, domain.LedgerDraft, "100", "50", "0"), // stale carry-in
		balanceRow("d", 3, domain.LedgerDraft, "100", "0", "0"),  // same date as c
		balanceRow("e", 5, domain.LedgerPosted, "150", "10", "0"),
		balanceRow("f", 7, domain.LedgerDraft, "0", "0", "1"),
	}

	changed := ChainCarryIns(decimal.Zero, rows)

	require.Len(t, changed, 4)
	assert.Equal(t, "b", changed[0].LedgerID)
	assert.True(t, changed[0].YesterdayRemainingBalance.IsZero(), "same-date ledgers share the seed")
	assert.Equal(t, "5.00", changed[0].RemainingBalance.StringFixed(2))
	assert.Equal(t, "c", changed[1].LedgerID)
	assert.Equal(t, "5.00", changed[1].YesterdayRemainingBalance.StringFixed(2), "carries the last ledger of the earlier date")
	assert.Equal(t, "55.00", changed[1].RemainingBalance.StringFixed(2))
	assert.Equal(t, "d", changed[2].LedgerID)
	assert.Equal(t, "5.00", changed[2].YesterdayRemainingBalance.StringFixed(2))
	assert.Equal(t, "f", changed[3].LedgerID)
	assert.Equal(t, "160.00", changed[3].YesterdayRemainingBalance.StringFixed(2), "posted ledgers keep their frozen figures")
	assert.Equal(t, "159.00", changed[3].RemainingBalance.StringFixed(2))
}

func TestChainCarryIns_NothingStale(t *testing.T) {
	rows := []domain.LedgerBalance{
		balanceRow("a", 1, domain.LedgerDraft, "10", "5", "0"),
		balanceRow("b", 2, domain.LedgerDraft, "15", "0", "15"),
	}

	assert.Empty(t, ChainCarryIns(decimal.RequireFromString("10"), rows))
}
