package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_app/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	postingRepo   portsrepo.PostingReader
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(postingRepo portsrepo.PostingReader, reportingRepo portsrepo.ReportingRepository, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(options...),
		postingRepo:   postingRepo,
		reportingRepo: reportingRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// PostingReport summarises the active postings of a period
func (s *reportingService) PostingReport(ctx context.Context, period domain.Period) (*domain.PostingReport, error) {
	if _, err := domain.NewPeriod(period.Month, period.Year); err != nil {
		return nil, err
	}

	// Both reads share one snapshot.
	tx, err := s.reportingRepo.BeginSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin report snapshot", slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to begin report snapshot: %w", err)
	}
	defer s.reportingRepo.Rollback(ctx, tx)

	postings, err := s.postingRepo.FindActivePostingsByPeriod(ctx, tx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve postings for report", slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to retrieve postings: %w", err)
	}

	rows, err := s.reportingRepo.GetPeriodTrialBalanceData(ctx, tx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.PostingReport{
		Period:       period,
		Postings:     postings,
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
		TrialBalance: rows,
	}
	for _, p := range postings {
		report.TotalDebit = report.TotalDebit.Add(p.TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(p.TotalCredit)
	}

	s.LogInfo(ctx, "Posting report generated",
		slog.String("period", period.String()),
		slog.Int("postings", len(postings)),
		slog.Int("row_count", len(rows)))
	return report, nil
}
