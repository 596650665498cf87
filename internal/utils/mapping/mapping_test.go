package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/SscSPs/ledger_posting_app/internal/models"
)

func TestLedgerMapping_TransactionCodeNullability(t *testing.T) {
	draft := domain.GeneralLedger{LedgerID: "l1", Status: domain.LedgerDraft}
	assert.Nil(t, ToModelLedger(draft).TransactionCode)

	draft.TransactionCode = "GL-202401-00001"
	m := ToModelLedger(draft)
	require.NotNil(t, m.TransactionCode)
	assert.Equal(t, "GL-202401-00001", *m.TransactionCode)

	back := ToDomainLedger(m, nil)
	assert.Equal(t, "GL-202401-00001", back.TransactionCode)
	assert.Nil(t, back.Entries)
}

func TestToDomainLedger_TotalsAreReadable(t *testing.T) {
	m := models.GeneralLedger{
		LedgerID:         "l1",
		Status:           models.Draft,
		TotalDebit:       decimal.RequireFromString("12.50"),
		TotalCredit:      decimal.RequireFromString("2.50"),
		RemainingBalance: decimal.RequireFromString("10"),
	}
	entries := []models.JournalEntry{{
		EntryID:         "e1",
		LedgerID:        "l1",
		AccountID:       "a1",
		AccountCode:     "1100",
		AccountName:     "Cash",
		Debit:           decimal.RequireFromString("12.50"),
		Credit:          decimal.Zero,
		TransactionDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}}

	d := ToDomainLedger(m, entries)

	b, err := d.Balances()
	require.NoError(t, err)
	assert.Equal(t, "12.50", b.TotalDebit.StringFixed(2))
	require.Len(t, d.Entries, 1)
	assert.Equal(t, "1100", d.Entries[0].Account.AccountCode)
}

func TestPostingMapping(t *testing.T) {
	name := "Ana"
	m := models.Posting{
		PostingID:    "p1",
		PeriodMonth:  2,
		PeriodYear:   2024,
		PostedByName: &name,
	}
	lines := []models.PostingLine{{PostingID: "p1", LineNo: 1, AccountCode: "1100", Balance: decimal.RequireFromString("5")}}

	d := ToDomainPosting(m, lines)

	assert.Equal(t, domain.Period{Month: 2, Year: 2024}, d.Period)
	assert.Equal(t, "Ana", d.PostedByName)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, "p1", ToModelPostingLine("p1", d.Lines[0]).PostingID)
	assert.Equal(t, 2, ToModelPosting(d).PeriodMonth)
}
