package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeBalances derives the ledger totals from the carried-in balance and the entries.
//
//	total_debit       = sum of debits
//	total_credit      = sum of credits
//	remaining_balance = yesterday + total_debit - total_credit
//
// The result does not depend on entry order.
func ComputeBalances(yesterday decimal.Decimal, entries []domain.JournalEntry) domain.Balances {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}
	return domain.Balances{
		TotalDebit:       totalDebit.Round(domain.AmountScale),
		TotalCredit:      totalCredit.Round(domain.AmountScale),
		RemainingBalance: yesterday.Add(totalDebit).Sub(totalCredit).Round(domain.AmountScale),
	}
}

// RunningBalances returns the balance after each entry, in entry order.
// The last element equals ComputeBalances(...).RemainingBalance.
func RunningBalances(yesterday decimal.Decimal, entries []domain.JournalEntry) []decimal.Decimal {
	out := make([]decimal.Decimal, len(entries))
	running := yesterday
	for i, e := range entries {
		running = running.Add(e.Debit).Sub(e.Credit)
		out[i] = running.Round(domain.AmountScale)
	}
	return out
}

// ChainCarryIns walks ledgers ordered by transaction date and creation time and re-derives
// each carry-in as the remaining balance of the last ledger dated strictly before it.
// seed is the remaining balance of the last ledger dated before the first row.
//
// Only drafts are changed. Posted ledgers keep their frozen figures and the chain
// continues from their stored remaining balance. It returns the changed rows.
func ChainCarryIns(seed decimal.Decimal, rows []domain.LedgerBalance) []domain.LedgerBalance {
	var changed []domain.LedgerBalance
	carry, last := seed, seed
	for i, row := range rows {
		if i > 0 && !row.TransactionDate.Equal(rows[i-1].TransactionDate) {
			carry = last
		}
		if row.Status == domain.LedgerDraft && !row.YesterdayRemainingBalance.Equal(carry) {
			row.YesterdayRemainingBalance = carry
			row.RemainingBalance = carry.Add(row.TotalDebit).Sub(row.TotalCredit).Round(domain.AmountScale)
			changed = append(changed, row)
		}
		last = row.RemainingBalance
	}
	return changed
}

// BuildPostingLines freezes entries into posting lines carrying their running balance.
func BuildPostingLines(yesterday decimal.Decimal, entries []domain.JournalEntry) []domain.PostingLine {
	balances := RunningBalances(yesterday, entries)
	lines := make([]domain.PostingLine, len(entries))
	for i, e := range entries {
		lines[i] = domain.PostingLine{
			LineNo:      i + 1,
			EntryID:     e.EntryID,
			AccountID:   e.Account.AccountID,
			AccountCode: e.Account.AccountCode,
			AccountName: e.Account.AccountName,
			Description: e.Description,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Balance:     balances[i],
		}
	}
	return lines
}

// VerifyPersistedTotals compares stored totals with a fresh computation.
func VerifyPersistedTotals(stored, computed domain.Balances) error {
	if !stored.TotalDebit.Equal(computed.TotalDebit) ||
		!stored.TotalCredit.Equal(computed.TotalCredit) ||
		!stored.RemainingBalance.Equal(computed.RemainingBalance) {
		return fmt.Errorf("stored totals debit=%s credit=%s remaining=%s, computed debit=%s credit=%s remaining=%s",
			stored.TotalDebit, stored.TotalCredit, stored.RemainingBalance,
			computed.TotalDebit, computed.TotalCredit, computed.RemainingBalance)
	}
	return nil
}
