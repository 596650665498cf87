package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cash = domain.AccountRef{AccountID: "acc-cash", AccountCode: "1100", AccountName: "Cash"}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func draftLedger() *domain.GeneralLedger {
	return &domain.GeneralLedger{
		LedgerID:        "gl-1",
		TransactionDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:          domain.LedgerDraft,
	}
}

func TestJournalEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   domain.JournalEntry
		wantErr error
	}{
		{
			name:  "debit only",
			entry: domain.JournalEntry{Account: cash, Debit: dec("100000"), Credit: decimal.Zero},
		},
		{
			name:  "credit only",
			entry: domain.JournalEntry{Account: cash, Debit: decimal.Zero, Credit: dec("12.50")},
		},
		{
			name:    "both sides set",
			entry:   domain.JournalEntry{Account: cash, Debit: dec("50"), Credit: dec("50")},
			wantErr: domain.ErrAmbiguousEntry,
		},
		{
			name:    "both sides zero",
			entry:   domain.JournalEntry{Account: cash},
			wantErr: domain.ErrEmptyEntry,
		},
		{
			name:    "negative debit",
			entry:   domain.JournalEntry{Account: cash, Debit: dec("-1")},
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name:    "too many decimals",
			entry:   domain.JournalEntry{Account: cash, Credit: dec("1.005")},
			wantErr: domain.ErrAmountPrecision,
		},
		{
			name:    "missing account",
			entry:   domain.JournalEntry{Debit: dec("1")},
			wantErr: domain.ErrAccountMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestGeneralLedger_EntryMutations(t *testing.T) {
	l := draftLedger()
	l.ApplyBalances(domain.Balances{})
	assert.False(t, l.IsDirty())

	require.NoError(t, l.AddEntry(domain.JournalEntry{EntryID: "e1", Account: cash, Debit: dec("10")}))
	assert.True(t, l.IsDirty())
	assert.Equal(t, "gl-1", l.Entries[0].LedgerID)
	assert.Equal(t, l.TransactionDate, l.Entries[0].TransactionDate)

	_, err := l.Balances()
	assert.ErrorIs(t, err, apperrors.ErrConsistency)

	l.ApplyBalances(domain.Balances{TotalDebit: dec("10"), RemainingBalance: dec("10")})
	updated, err := l.UpdateEntry("e1", domain.EntryPatch{Debit: decPtr("0"), Credit: decPtr("10")})
	require.NoError(t, err)
	assert.True(t, updated.Credit.Equal(dec("10")))
	assert.True(t, l.IsDirty())

	_, err = l.UpdateEntry("e1", domain.EntryPatch{Debit: decPtr("5")})
	assert.ErrorIs(t, err, domain.ErrAmbiguousEntry)
	assert.True(t, l.Entries[0].Debit.IsZero(), "rejected patch must not change the entry")

	_, err = l.UpdateEntry("missing", domain.EntryPatch{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	removed, err := l.RemoveEntry("e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", removed.EntryID)
	assert.Empty(t, l.Entries)
}

func TestGeneralLedger_PostedIsFrozen(t *testing.T) {
	l := draftLedger()
	require.NoError(t, l.AddEntry(domain.JournalEntry{EntryID: "e1", Account: cash, Debit: dec("10")}))
	l.ApplyBalances(domain.Balances{TotalDebit: dec("10"), RemainingBalance: dec("10")})
	require.NoError(t, l.MarkPosted("GL-202403-00001", "u1", time.Now()))

	err := l.AddEntry(domain.JournalEntry{Account: cash, Credit: dec("10")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = l.UpdateEntry("e1", domain.EntryPatch{Description: new(string)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = l.RemoveEntry("e1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	assert.ErrorIs(t, l.MarkPosted("GL-202403-00002", "u1", time.Now()), apperrors.ErrInvalidState)
	assert.Equal(t, "GL-202403-00001", l.TransactionCode)
}

func TestGeneralLedger_ValidateForPosting(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		l := draftLedger()
		err := l.ValidateForPosting()
		assert.ErrorIs(t, err, domain.ErrEmptyLedger)
	})

	t.Run("ambiguous entry loaded from storage", func(t *testing.T) {
		l := draftLedger()
		l.Entries = []domain.JournalEntry{
			{Account: cash, Debit: dec("10")},
			{Account: cash, Debit: dec("5"), Credit: dec("5")},
		}
		err := l.ValidateForPosting()
		assert.ErrorIs(t, err, domain.ErrAmbiguousEntry)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("state is checked first", func(t *testing.T) {
		l := draftLedger()
		l.Status = domain.LedgerPosted
		assert.ErrorIs(t, l.ValidateForPosting(), domain.ErrLedgerNotDraft)
	})
}

func TestGeneralLedger_MarkPostedRequiresFreshTotals(t *testing.T) {
	l := draftLedger()
	require.NoError(t, l.AddEntry(domain.JournalEntry{Account: cash, Debit: dec("10")}))
	assert.ErrorIs(t, l.MarkPosted("GL-1", "u1", time.Now()), apperrors.ErrConsistency)
	assert.Equal(t, domain.LedgerDraft, l.Status)
}

func TestGeneralLedger_RevertToDraft(t *testing.T) {
	l := draftLedger()
	assert.ErrorIs(t, l.RevertToDraft("u1", time.Now()), domain.ErrLedgerNotPosted)

	require.NoError(t, l.AddEntry(domain.JournalEntry{Account: cash, Debit: dec("10")}))
	l.ApplyBalances(domain.Balances{TotalDebit: dec("10"), RemainingBalance: dec("10")})
	require.NoError(t, l.MarkPosted("GL-202403-00007", "u1", time.Now()))

	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, l.RevertToDraft("admin", now))
	assert.True(t, l.IsDraft())
	assert.Equal(t, "GL-202403-00007", l.TransactionCode)
	assert.Equal(t, "admin", l.LastUpdatedBy)
	assert.Equal(t, now, l.LastUpdatedAt)
}

func TestPeriod(t *testing.T) {
	p, err := domain.NewPeriod(3, 2024)
	require.NoError(t, err)
	assert.Equal(t, "202403", p.Key())
	assert.Equal(t, "03/2024", p.String())
	assert.Equal(t, "GL-202403-00012", domain.TransactionCode(p, 12))
	assert.Equal(t, p, domain.PeriodOf(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))

	for _, bad := range [][2]int{{0, 2024}, {13, 2024}, {5, 0}} {
		_, err := domain.NewPeriod(bad[0], bad[1])
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestPosting_MarkUnposted(t *testing.T) {
	p := &domain.Posting{PostingID: "p1"}
	assert.True(t, p.IsActive())

	now := time.Now()
	require.NoError(t, p.MarkUnposted("admin", now))
	assert.False(t, p.IsActive())
	require.NotNil(t, p.UnpostedBy)
	assert.Equal(t, "admin", *p.UnpostedBy)
	assert.Equal(t, now, *p.UnpostingDate)

	assert.ErrorIs(t, p.MarkUnposted("admin", now), apperrors.ErrInvalidState)
}
