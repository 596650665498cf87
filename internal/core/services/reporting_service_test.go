package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	"github.com/SscSPs/ledger_posting_app/internal/core/services"
)

func TestPostingReport(t *testing.T) {
	ctx := context.Background()
	period := domain.Period{Month: 4, Year: 2024}
	postingRepo := new(MockPostingRepository)
	reportingRepo := new(MockReportingRepository)
	svc := services.NewReportingService(postingRepo, reportingRepo)

	postings := []domain.Posting{
		{PostingID: "p1", TotalDebit: decimal.RequireFromString("100"), TotalCredit: decimal.RequireFromString("100")},
		{PostingID: "p2", TotalDebit: decimal.RequireFromString("25.50"), TotalCredit: decimal.RequireFromString("20")},
	}
	rows := []domain.TrialBalanceRow{
		{AccountID: "acc-cash", AccountCode: "1100", Debit: decimal.RequireFromString("125.50"), Credit: decimal.Zero},
		{AccountID: "acc-rev", AccountCode: "4100", Debit: decimal.Zero, Credit: decimal.RequireFromString("120")},
	}
	tx := &fakeTx{}
	reportingRepo.On("BeginSnapshot", ctx).Return(tx, nil).Once()
	postingRepo.On("FindActivePostingsByPeriod", ctx, tx, period).Return(postings, nil).Once()
	reportingRepo.On("GetPeriodTrialBalanceData", ctx, tx, period).Return(rows, nil).Once()
	reportingRepo.On("Rollback", ctx, tx).Return(nil).Once()

	report, err := svc.PostingReport(ctx, period)

	require.NoError(t, err)
	assert.Equal(t, period, report.Period)
	assert.Len(t, report.Postings, 2)
	assert.Equal(t, "125.50", report.TotalDebit.StringFixed(2))
	assert.Equal(t, "120.00", report.TotalCredit.StringFixed(2))
	assert.Equal(t, rows, report.TrialBalance)
	postingRepo.AssertExpectations(t)
	reportingRepo.AssertExpectations(t)
}

func TestPostingReport_InvalidPeriod(t *testing.T) {
	svc := services.NewReportingService(new(MockPostingRepository), new(MockReportingRepository))

	_, err := svc.PostingReport(context.Background(), domain.Period{Month: 0, Year: 2024})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPostingReport_RepositoryError(t *testing.T) {
	ctx := context.Background()
	period := domain.Period{Month: 4, Year: 2024}
	postingRepo := new(MockPostingRepository)
	reportingRepo := new(MockReportingRepository)
	tx := &fakeTx{}
	dbErr := errors.New("connection reset")
	reportingRepo.On("BeginSnapshot", ctx).Return(tx, nil).Once()
	postingRepo.On("FindActivePostingsByPeriod", ctx, tx, period).Return(nil, dbErr).Once()
	reportingRepo.On("Rollback", ctx, tx).Return(nil).Once()
	svc := services.NewReportingService(postingRepo, reportingRepo)

	_, err := svc.PostingReport(ctx, period)

	assert.ErrorIs(t, err, dbErr)
	reportingRepo.AssertNotCalled(t, "GetPeriodTrialBalanceData", mock.Anything, mock.Anything, mock.Anything)
	reportingRepo.AssertExpectations(t)
}

func TestPostingReport_SnapshotError(t *testing.T) {
	ctx := context.Background()
	period := domain.Period{Month: 4, Year: 2024}
	postingRepo := new(MockPostingRepository)
	reportingRepo := new(MockReportingRepository)
	dbErr := errors.New("too many connections")
	reportingRepo.On("BeginSnapshot", ctx).Return(nil, dbErr).Once()
	svc := services.NewReportingService(postingRepo, reportingRepo)

	_, err := svc.PostingReport(ctx, period)

	assert.ErrorIs(t, err, dbErr)
	postingRepo.AssertNotCalled(t, "FindActivePostingsByPeriod", mock.Anything, mock.Anything, mock.Anything)
	reportingRepo.AssertNotCalled(t, "Rollback", mock.Anything, mock.Anything)
}
