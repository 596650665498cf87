package services

import (
	"context"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
)

// ReportingService defines operations for generating posting reports
type ReportingService interface {
	// PostingReport lists a period's active postings with period totals and a per-account trial balance.
	PostingReport(ctx context.Context, period domain.Period) (*domain.PostingReport, error)
}
