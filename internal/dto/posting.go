package dto

import (
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostLedgerRequest asks for a draft ledger to be posted. The poster is the authenticated caller.
type PostLedgerRequest struct {
	LedgerID string `json:"ledger_id" binding:"required"`
}

// UnpostRequest asks for every active posting of a month to be reversed.
type UnpostRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=1"`
}

// UnpostResponse is returned after a period was unposted.
type UnpostResponse struct {
	Message   string   `json:"message"`
	Count     int      `json:"count"`
	Month     int      `json:"month"`
	Year      int      `json:"year"`
	LedgerIDs []string `json:"ledger_ids"`
}

// ListPostingsParams defines query parameters for listing postings.
type ListPostingsParams struct {
	Month      *int   `form:"month" binding:"omitempty,min=1,max=12"`
	Year       *int   `form:"year" binding:"omitempty,min=1"`
	IsUnposted *bool  `form:"is_unposted"`
	Limit      int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  string `form:"nextToken"`
}

// PeriodQuery selects a reporting period.
type PeriodQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=1"`
}

// PostingResponse defines the data returned for a posting header.
type PostingResponse struct {
	ID                        string          `json:"id"`
	LedgerID                  string          `json:"ledger_id"`
	TransactionCode           string          `json:"transaction_code"`
	PostedBy                  string          `json:"posted_by"`
	PostedByName              string          `json:"posted_by_name"`
	PostingDate               time.Time       `json:"posting_date"`
	PeriodMonth               int             `json:"period_month"`
	PeriodYear                int             `json:"period_year"`
	IsUnposted                bool            `json:"is_unposted"`
	UnpostingDate             *time.Time      `json:"unposting_date"`
	UnpostedBy                *string         `json:"unposted_by"`
	TransactionDate           time.Time       `json:"transaction_date"`
	Description               string          `json:"description"`
	YesterdayRemainingBalance decimal.Decimal `json:"yesterday_remaining_balance"`
	TotalDebit                decimal.Decimal `json:"total_debit"`
	TotalCredit               decimal.Decimal `json:"total_credit"`
	RemainingBalance          decimal.Decimal `json:"remaining_balance"`
}

// PostingLineResponse is one frozen line with its running balance.
type PostingLineResponse struct {
	LineNo      int             `json:"line_no"`
	EntryID     string          `json:"entry_id"`
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// PostingDetailResponse is the posting header plus its lines.
type PostingDetailResponse struct {
	Posting PostingResponse       `json:"posting"`
	Details []PostingLineResponse `json:"details"`
}

// ListPostingsResponse wraps a page of postings.
type ListPostingsResponse struct {
	Postings  []PostingResponse `json:"postings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// TrialBalanceRowResponse represents a row in the trial balance section of a report
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// PostingReportResponse is the period posting report.
type PostingReportResponse struct {
	Month        int                       `json:"month"`
	Year         int                       `json:"year"`
	Postings     []PostingResponse         `json:"postings"`
	TotalDebit   decimal.Decimal           `json:"total_debit"`
	TotalCredit  decimal.Decimal           `json:"total_credit"`
	TrialBalance []TrialBalanceRowResponse `json:"trial_balance"`
}

// ToPostingResponse converts a domain.Posting header to its response DTO.
func ToPostingResponse(p *domain.Posting) PostingResponse {
	return PostingResponse{
		ID:                        p.PostingID,
		LedgerID:                  p.LedgerID,
		TransactionCode:           p.TransactionCode,
		PostedBy:                  p.PostedBy,
		PostedByName:              p.PostedByName,
		PostingDate:               p.PostingDate,
		PeriodMonth:               p.Period.Month,
		PeriodYear:                p.Period.Year,
		IsUnposted:                p.IsUnposted,
		UnpostingDate:             p.UnpostingDate,
		UnpostedBy:                p.UnpostedBy,
		TransactionDate:           p.TransactionDate,
		Description:               p.Description,
		YesterdayRemainingBalance: p.YesterdayRemainingBalance,
		TotalDebit:                p.TotalDebit,
		TotalCredit:               p.TotalCredit,
		RemainingBalance:          p.RemainingBalance,
	}
}

// ToPostingDetailResponse converts a posting with lines.
func ToPostingDetailResponse(p *domain.Posting) PostingDetailResponse {
	details := make([]PostingLineResponse, len(p.Lines))
	for i, l := range p.Lines {
		details[i] = PostingLineResponse{
			LineNo:      l.LineNo,
			EntryID:     l.EntryID,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Balance:     l.Balance,
		}
	}
	return PostingDetailResponse{Posting: ToPostingResponse(p), Details: details}
}

// ToListPostingsResponse converts a page of postings.
func ToListPostingsResponse(postings []domain.Posting, nextToken *string) *ListPostingsResponse {
	resp := &ListPostingsResponse{
		Postings:  make([]PostingResponse, len(postings)),
		NextToken: nextToken,
	}
	for i := range postings {
		resp.Postings[i] = ToPostingResponse(&postings[i])
	}
	return resp
}

// ToUnpostResponse converts the result of a period unposting.
func ToUnpostResponse(r *domain.UnpostResult) UnpostResponse {
	return UnpostResponse{
		Message:   r.Message,
		Count:     r.Count,
		Month:     r.Period.Month,
		Year:      r.Period.Year,
		LedgerIDs: r.LedgerIDs,
	}
}

// ToPostingReportResponse converts a domain.PostingReport.
func ToPostingReportResponse(r *domain.PostingReport) PostingReportResponse {
	resp := PostingReportResponse{
		Month:        r.Period.Month,
		Year:         r.Period.Year,
		Postings:     make([]PostingResponse, len(r.Postings)),
		TotalDebit:   r.TotalDebit,
		TotalCredit:  r.TotalCredit,
		TrialBalance: make([]TrialBalanceRowResponse, len(r.TrialBalance)),
	}
	for i := range r.Postings {
		resp.Postings[i] = ToPostingResponse(&r.Postings[i])
	}
	for i, row := range r.TrialBalance {
		resp.TrialBalance[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	return resp
}
