package mapping

import (
	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/SscSPs/ledger_posting_app/internal/models"
)

// ToModelLedger converts a domain GeneralLedger to a model GeneralLedger. Entries are not included.
func ToModelLedger(d domain.GeneralLedger) models.GeneralLedger {
	var code *string
	if d.TransactionCode != "" {
		c := d.TransactionCode
		code = &c
	}
	return models.GeneralLedger{
		LedgerID:                  d.LedgerID,
		TransactionCode:           code,
		TransactionDate:           d.TransactionDate,
		Description:               d.Description,
		Status:                    models.LedgerStatus(d.Status),
		YesterdayRemainingBalance: d.YesterdayRemainingBalance,
		TotalDebit:                d.TotalDebit,
		TotalCredit:               d.TotalCredit,
		RemainingBalance:          d.RemainingBalance,
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedger converts a model GeneralLedger and its entry rows to a domain GeneralLedger.
// The stored totals are applied as they are; callers decide whether to trust them.
func ToDomainLedger(m models.GeneralLedger, entries []models.JournalEntry) domain.GeneralLedger {
	d := domain.GeneralLedger{
		LedgerID:                  m.LedgerID,
		TransactionDate:           m.TransactionDate,
		Description:               m.Description,
		Status:                    domain.LedgerStatus(m.Status),
		YesterdayRemainingBalance: m.YesterdayRemainingBalance,
		Entries:                   ToDomainEntrySlice(entries),
		AuditFields:               ToDomainAuditFields(m.AuditFields),
	}
	if m.TransactionCode != nil {
		d.TransactionCode = *m.TransactionCode
	}
	d.ApplyBalances(domain.Balances{
		TotalDebit:       m.TotalDebit,
		TotalCredit:      m.TotalCredit,
		RemainingBalance: m.RemainingBalance,
	})
	return d
}

// ToModelEntry converts a domain JournalEntry to a model JournalEntry
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		LedgerID:        d.LedgerID,
		AccountID:       d.Account.AccountID,
		AccountCode:     d.Account.AccountCode,
		AccountName:     d.Account.AccountName,
		Description:     d.Description,
		Debit:           d.Debit,
		Credit:          d.Credit,
		TransactionDate: d.TransactionDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:  m.EntryID,
		LedgerID: m.LedgerID,
		Account: domain.AccountRef{
			AccountID:   m.AccountID,
			AccountCode: m.AccountCode,
			AccountName: m.AccountName,
		},
		Description:     m.Description,
		Debit:           m.Debit,
		Credit:          m.Credit,
		TransactionDate: m.TransactionDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model JournalEntries to a slice of domain JournalEntries
func ToDomainEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	if len(ms) == 0 {
		return nil
	}
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
