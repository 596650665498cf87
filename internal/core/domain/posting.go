package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPeriod   = fmt.Errorf("%w: month must be 1-12 and year positive", apperrors.ErrValidation)
	ErrPostingUnposted = fmt.Errorf("%w: posting already unposted", apperrors.ErrInvalidState)
)

// Period is an accounting month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewPeriod validates and builds a Period.
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 || year <= 0 {
		return Period{}, fmt.Errorf("%w: got %d/%d", ErrInvalidPeriod, month, year)
	}
	return Period{Month: month, Year: year}, nil
}

// PeriodOf returns the period t falls in.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Key formats the period as YYYYMM.
func (p Period) Key() string {
	return fmt.Sprintf("%04d%02d", p.Year, p.Month)
}

func (p Period) String() string {
	return fmt.Sprintf("%02d/%04d", p.Month, p.Year)
}

// TransactionCode formats the seq-th code of a period, e.g. GL-202403-00012.
func TransactionCode(p Period, seq int) string {
	return fmt.Sprintf("GL-%s-%05d", p.Key(), seq)
}

// Actor is the authenticated caller of an engine operation.
type Actor struct {
	UserID string
	RoleID int
}

// PostingLine is a frozen copy of a journal entry at posting time.
type PostingLine struct {
	LineNo      int             `json:"lineNo"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"` // running balance after this line
}

// Posting records that a ledger was committed, and whether it was later undone.
// Unposting is logical; the record stays for audit.
type Posting struct {
	PostingID       string     `json:"postingID"`
	LedgerID        string     `json:"ledgerID"`
	TransactionCode string     `json:"transactionCode"`
	PostedBy        string     `json:"postedBy"`
	PostedByName    string     `json:"postedByName"`
	PostingDate     time.Time  `json:"postingDate"`
	Period          Period     `json:"period"`
	IsUnposted      bool       `json:"isUnposted"`
	UnpostingDate   *time.Time `json:"unpostingDate,omitempty"`
	UnpostedBy      *string    `json:"unpostedBy,omitempty"`

	// Header snapshot of the ledger as it was posted.
	TransactionDate           time.Time       `json:"transactionDate"`
	Description               string          `json:"description"`
	YesterdayRemainingBalance decimal.Decimal `json:"yesterdayRemainingBalance"`
	TotalDebit                decimal.Decimal `json:"totalDebit"`
	TotalCredit               decimal.Decimal `json:"totalCredit"`
	RemainingBalance          decimal.Decimal `json:"remainingBalance"`

	Lines []PostingLine `json:"lines,omitempty"`
}

// IsActive reports whether the posting currently holds its ledger in POSTED.
func (p *Posting) IsActive() bool {
	return !p.IsUnposted
}

// MarkUnposted flags the posting as undone.
func (p *Posting) MarkUnposted(userID string, now time.Time) error {
	if p.IsUnposted {
		return fmt.Errorf("%w: %s", ErrPostingUnposted, p.PostingID)
	}
	p.IsUnposted = true
	p.UnpostingDate = &now
	p.UnpostedBy = &userID
	return nil
}

// UnpostResult is returned by period-wide unposting.
type UnpostResult struct {
	Count     int      `json:"count"`
	Message   string   `json:"message"`
	Period    Period   `json:"period"`
	LedgerIDs []string `json:"ledgerIDs"`
}
