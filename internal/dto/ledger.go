package dto

import (
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerRequest opens a new draft ledger.
type CreateLedgerRequest struct {
	TransactionDate time.Time `json:"transaction_date" binding:"required"`
	Description     string    `json:"description" binding:"max=255"`
}

// UpdateLedgerRequest changes the header of a draft ledger. Omitted fields are kept.
type UpdateLedgerRequest struct {
	TransactionDate *time.Time `json:"transaction_date"`
	Description     *string    `json:"description" binding:"omitempty,max=255"`
}

// CreateEntryRequest is a new journal entry. Exactly one of debit or credit must be non-zero.
type CreateEntryRequest struct {
	AccountID   string          `json:"account_id" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	Debit       decimal.Decimal `json:"debit" binding:"dec_gte0"`
	Credit      decimal.Decimal `json:"credit" binding:"dec_gte0"`
}

// UpdateEntryRequest patches an existing journal entry.
type UpdateEntryRequest struct {
	EntryID     string           `json:"id" binding:"required"`
	AccountID   *string          `json:"account_id" binding:"omitempty,min=1"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	Debit       *decimal.Decimal `json:"debit" binding:"omitempty,dec_gte0"`
	Credit      *decimal.Decimal `json:"credit" binding:"omitempty,dec_gte0"`
}

// SaveEntriesRequest creates and updates entries of one draft ledger in a single call.
type SaveEntriesRequest struct {
	LedgerID        string               `json:"ledger_id" binding:"required"`
	TransactionDate *time.Time           `json:"transaction_date"`
	CreateEntries   []CreateEntryRequest `json:"createEntries" binding:"dive"`
	UpdateEntries   []UpdateEntryRequest `json:"updateEntries" binding:"dive"`
}

// ListLedgersParams defines query parameters for listing ledgers.
type ListLedgersParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT POSTED"`
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	ID              string          `json:"id"`
	LedgerID        string          `json:"ledger_id"`
	AccountID       string          `json:"account_id"`
	AccountCode     string          `json:"account_code"`
	AccountName     string          `json:"account_name"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// LedgerResponse defines the data returned for a general ledger.
type LedgerResponse struct {
	ID                        string                 `json:"id"`
	TransactionCode           string                 `json:"transaction_code"`
	TransactionDate           time.Time              `json:"transaction_date"`
	Description               string                 `json:"description"`
	Status                    string                 `json:"status"`
	IsPosting                 bool                   `json:"isPosting"`
	YesterdayRemainingBalance decimal.Decimal        `json:"yesterday_remaining_balance"`
	TotalDebit                decimal.Decimal        `json:"total_debit"`
	TotalCredit               decimal.Decimal        `json:"total_credit"`
	RemainingBalance          decimal.Decimal        `json:"remaining_balance"`
	Entries                   []JournalEntryResponse `json:"entries,omitempty"`
	CreatedAt                 time.Time              `json:"created_at"`
	CreatedBy                 string                 `json:"created_by"`
	UpdatedAt                 time.Time              `json:"updated_at"`
	UpdatedBy                 string                 `json:"updated_by"`
}

// ListLedgersResponse wraps a page of ledgers.
type ListLedgersResponse struct {
	Ledgers   []LedgerResponse `json:"ledgers"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:              e.EntryID,
		LedgerID:        e.LedgerID,
		AccountID:       e.Account.AccountID,
		AccountCode:     e.Account.AccountCode,
		AccountName:     e.Account.AccountName,
		Description:     e.Description,
		Debit:           e.Debit,
		Credit:          e.Credit,
		TransactionDate: e.TransactionDate,
	}
}

// ToLedgerResponse converts a domain.GeneralLedger to its response DTO.
func ToLedgerResponse(l *domain.GeneralLedger) LedgerResponse {
	resp := LedgerResponse{
		ID:                        l.LedgerID,
		TransactionCode:           l.TransactionCode,
		TransactionDate:           l.TransactionDate,
		Description:               l.Description,
		Status:                    string(l.Status),
		IsPosting:                 l.Status == domain.LedgerPosted,
		YesterdayRemainingBalance: l.YesterdayRemainingBalance,
		TotalDebit:                l.TotalDebit,
		TotalCredit:               l.TotalCredit,
		RemainingBalance:          l.RemainingBalance,
		CreatedAt:                 l.CreatedAt,
		CreatedBy:                 l.CreatedBy,
		UpdatedAt:                 l.LastUpdatedAt,
		UpdatedBy:                 l.LastUpdatedBy,
	}
	if len(l.Entries) > 0 {
		resp.Entries = make([]JournalEntryResponse, len(l.Entries))
		for i, e := range l.Entries {
			resp.Entries[i] = ToJournalEntryResponse(e)
		}
	}
	return resp
}

// ToListLedgersResponse converts a page of ledgers.
func ToListLedgersResponse(ledgers []domain.GeneralLedger, nextToken *string) *ListLedgersResponse {
	resp := &ListLedgersResponse{
		Ledgers:   make([]LedgerResponse, len(ledgers)),
		NextToken: nextToken,
	}
	for i := range ledgers {
		resp.Ledgers[i] = ToLedgerResponse(&ledgers[i])
	}
	return resp
}
