package mapping

import (
	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/SscSPs/ledger_posting_app/internal/models"
)

// ToModelPosting converts a domain Posting to a model Posting. Lines are converted separately.
func ToModelPosting(d domain.Posting) models.Posting {
	return models.Posting{
		PostingID:                 d.PostingID,
		LedgerID:                  d.LedgerID,
		TransactionCode:           d.TransactionCode,
		PostedBy:                  d.PostedBy,
		PostingDate:               d.PostingDate,
		PeriodMonth:               d.Period.Month,
		PeriodYear:                d.Period.Year,
		IsUnposted:                d.IsUnposted,
		UnpostingDate:             d.UnpostingDate,
		UnpostedBy:                d.UnpostedBy,
		TransactionDate:           d.TransactionDate,
		Description:               d.Description,
		YesterdayRemainingBalance: d.YesterdayRemainingBalance,
		TotalDebit:                d.TotalDebit,
		TotalCredit:               d.TotalCredit,
		RemainingBalance:          d.RemainingBalance,
	}
}

// ToDomainPosting converts a model Posting and its lines to a domain Posting
func ToDomainPosting(m models.Posting, lines []models.PostingLine) domain.Posting {
	d := domain.Posting{
		PostingID:                 m.PostingID,
		LedgerID:                  m.LedgerID,
		TransactionCode:           m.TransactionCode,
		PostedBy:                  m.PostedBy,
		PostingDate:               m.PostingDate,
		Period:                    domain.Period{Month: m.PeriodMonth, Year: m.PeriodYear},
		IsUnposted:                m.IsUnposted,
		UnpostingDate:             m.UnpostingDate,
		UnpostedBy:                m.UnpostedBy,
		TransactionDate:           m.TransactionDate,
		Description:               m.Description,
		YesterdayRemainingBalance: m.YesterdayRemainingBalance,
		TotalDebit:                m.TotalDebit,
		TotalCredit:               m.TotalCredit,
		RemainingBalance:          m.RemainingBalance,
	}
	if m.PostedByName != nil {
		d.PostedByName = *m.PostedByName
	}
	if len(lines) > 0 {
		d.Lines = make([]domain.PostingLine, len(lines))
		for i, l := range lines {
			d.Lines[i] = ToDomainPostingLine(l)
		}
	}
	return d
}

// ToModelPostingLine converts a domain PostingLine to a model PostingLine
func ToModelPostingLine(postingID string, d domain.PostingLine) models.PostingLine {
	return models.PostingLine{
		PostingID:   postingID,
		LineNo:      d.LineNo,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		AccountCode: d.AccountCode,
		AccountName: d.AccountName,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Balance:     d.Balance,
	}
}

// ToDomainPostingLine converts a model PostingLine to a domain PostingLine
func ToDomainPostingLine(m models.PostingLine) domain.PostingLine {
	return domain.PostingLine{
		LineNo:      m.LineNo,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Balance:     m.Balance,
	}
}
