package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/SscSPs/ledger_posting_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_app/internal/dto"
	"github.com/SscSPs/ledger_posting_app/internal/utils/accounting"
	"github.com/SscSPs/ledger_posting_app/internal/utils/pagination"
)

var (
	ErrUnbalancedLedger = fmt.Errorf("%w: unbalanced ledger", apperrors.ErrValidation)
	ErrUnpostNotAllowed = fmt.Errorf("%w: role may not unpost periods", apperrors.ErrForbidden)
)

// PostingPolicy holds the configurable rules of the posting engine.
type PostingPolicy struct {
	// RequireBalanced rejects ledgers whose debits and credits differ.
	RequireBalanced bool
	// UnpostAllowedRoles lists the roles that may unpost a period. Empty allows everyone.
	UnpostAllowedRoles []int
}

// DefaultPostingPolicy is strict balancing with unposting open to roles 1 and 2.
func DefaultPostingPolicy() PostingPolicy {
	return PostingPolicy{RequireBalanced: true, UnpostAllowedRoles: []int{1, 2}}
}

func (p PostingPolicy) mayUnpost(roleID int) bool {
	return len(p.UnpostAllowedRoles) == 0 || slices.Contains(p.UnpostAllowedRoles, roleID)
}

// postingService commits draft ledgers into postings and reverses whole periods.
type postingService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	postingRepo portsrepo.PostingRepositoryFacade
	policy      PostingPolicy
}

// NewPostingService creates a new posting service.
// Postings share the ledger repository's transactions, so both repositories must use the same pool.
func NewPostingService(ledgerRepo portsrepo.LedgerRepositoryWithTx, postingRepo portsrepo.PostingRepositoryFacade, policy PostingPolicy, options ...ServiceOption) portssvc.PostingSvcFacade {
	return &postingService{
		BaseService: newBaseService(options...),
		ledgerRepo:  ledgerRepo,
		postingRepo: postingRepo,
		policy:      policy,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// Post validates a draft ledger and commits it. The ledger status change, the posting
// record and its lines are written in one transaction.
func (s *postingService) Post(ctx context.Context, ledgerID string, actor domain.Actor) (posting *domain.Posting, err error) {
	start := time.Now()
	defer func() { s.Metrics.ObservePost(err, time.Since(start)) }()

	if actor.UserID == "" {
		return nil, ErrActorMissing
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	ledger, err := s.ledgerRepo.FindLedgerByIDForUpdate(ctx, tx, ledgerID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateForPosting(); err != nil {
		s.LogDebug(ctx, "Ledger rejected for posting", slog.String("ledger_id", ledgerID), slog.String("reason", err.Error()))
		return nil, err
	}

	computed := accounting.ComputeBalances(ledger.YesterdayRemainingBalance, ledger.Entries)
	stored, err := ledger.Balances()
	if err != nil {
		return nil, err
	}
	if verr := accounting.VerifyPersistedTotals(stored, computed); verr != nil {
		s.LogError(ctx, verr, "Stored ledger totals disagree with entries", slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("%w: ledger %s: %v", apperrors.ErrConsistency, ledgerID, verr)
	}
	ledger.ApplyBalances(computed)

	if !computed.IsBalanced() {
		if s.policy.RequireBalanced {
			return nil, fmt.Errorf("%w: debit %s, credit %s", ErrUnbalancedLedger,
				computed.TotalDebit.StringFixed(domain.AmountScale), computed.TotalCredit.StringFixed(domain.AmountScale))
		}
		s.LogWarn(ctx, "Posting unbalanced ledger",
			slog.String("ledger_id", ledgerID),
			slog.String("total_debit", computed.TotalDebit.StringFixed(domain.AmountScale)),
			slog.String("total_credit", computed.TotalCredit.StringFixed(domain.AmountScale)))
	}

	now := s.Now()
	period := domain.PeriodOf(now)

	code := ledger.TransactionCode
	if code == "" {
		code, err = s.postingRepo.NextTransactionCode(ctx, tx, period)
		if err != nil {
			s.LogError(ctx, err, "Failed to allocate transaction code", slog.String("period", period.String()))
			return nil, fmt.Errorf("failed to allocate transaction code: %w", err)
		}
	}
	if err := ledger.MarkPosted(code, actor.UserID, now); err != nil {
		return nil, err
	}

	posting = &domain.Posting{
		PostingID:                 uuid.NewString(),
		LedgerID:                  ledger.LedgerID,
		TransactionCode:           code,
		PostedBy:                  actor.UserID,
		PostingDate:               now,
		Period:                    period,
		TransactionDate:           ledger.TransactionDate,
		Description:               ledger.Description,
		YesterdayRemainingBalance: ledger.YesterdayRemainingBalance,
		TotalDebit:                computed.TotalDebit,
		TotalCredit:               computed.TotalCredit,
		RemainingBalance:          computed.RemainingBalance,
		Lines:                     accounting.BuildPostingLines(ledger.YesterdayRemainingBalance, ledger.Entries),
	}

	if err := s.postingRepo.SavePosting(ctx, tx, *posting); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidState) {
			s.LogError(ctx, err, "Failed to save posting", slog.String("ledger_id", ledgerID))
		}
		return nil, err
	}
	if err := s.ledgerRepo.UpdateLedger(ctx, tx, *ledger); err != nil {
		s.LogError(ctx, err, "Failed to mark ledger posted", slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to update ledger: %w", err)
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Ledger posted",
		slog.String("ledger_id", ledgerID),
		slog.String("posting_id", posting.PostingID),
		slog.String("transaction_code", code),
		slog.String("period", period.String()),
		slog.Int("lines", len(posting.Lines)))
	return posting, nil
}

// UnpostPeriod reverses every active posting of a period. Either all of them are
// flagged and all their ledgers return to DRAFT, or nothing changes.
func (s *postingService) UnpostPeriod(ctx context.Context, period domain.Period, actor domain.Actor) (result *domain.UnpostResult, err error) {
	start := time.Now()
	defer func() {
		reversed := 0
		if result != nil {
			reversed = result.Count
		}
		s.Metrics.ObserveUnpost(err, reversed, time.Since(start))
	}()

	if actor.UserID == "" {
		return nil, ErrActorMissing
	}
	if !s.policy.mayUnpost(actor.RoleID) {
		s.LogWarn(ctx, "Unposting refused", slog.String("user_id", actor.UserID), slog.Int("role_id", actor.RoleID))
		return nil, fmt.Errorf("%w (role %d)", ErrUnpostNotAllowed, actor.RoleID)
	}
	if _, err := domain.NewPeriod(period.Month, period.Year); err != nil {
		return nil, err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	postings, err := s.postingRepo.FindActivePostingsByPeriodForUpdate(ctx, tx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to load postings", slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to load postings for period %s: %w", period, err)
	}
	if len(postings) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no active postings for period %s", period))
	}

	now := s.Now()
	postingIDs := make([]string, 0, len(postings))
	ledgerIDs := make([]string, 0, len(postings))
	for i := range postings {
		if err := postings[i].MarkUnposted(actor.UserID, now); err != nil {
			return nil, err
		}
		postingIDs = append(postingIDs, postings[i].PostingID)
		ledgerIDs = append(ledgerIDs, postings[i].LedgerID)
	}
	// Ledgers are locked in id order.
	slices.Sort(ledgerIDs)
	ledgerIDs = slices.Compact(ledgerIDs)
	if len(ledgerIDs) != len(postingIDs) {
		return nil, apperrors.NewConsistencyError(fmt.Sprintf("period %s has several active postings for one ledger", period))
	}

	for _, id := range ledgerIDs {
		ledger, err := s.ledgerRepo.FindLedgerByIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if err := ledger.RevertToDraft(actor.UserID, now); err != nil {
			s.LogError(ctx, err, "Active posting points at a ledger that is not posted", slog.String("ledger_id", id))
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConsistency, err)
		}
	}

	flagged, err := s.postingRepo.MarkPostingsUnposted(ctx, tx, postingIDs, actor.UserID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to flag postings", slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to flag postings: %w", err)
	}
	if flagged != int64(len(postingIDs)) {
		return nil, apperrors.NewConsistencyError(fmt.Sprintf("flagged %d of %d postings for period %s", flagged, len(postingIDs), period))
	}

	reverted, err := s.ledgerRepo.RevertLedgersToDraft(ctx, tx, ledgerIDs, actor.UserID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to revert ledgers", slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to revert ledgers: %w", err)
	}
	if reverted != int64(len(ledgerIDs)) {
		return nil, apperrors.NewConsistencyError(fmt.Sprintf("reverted %d of %d ledgers for period %s", reverted, len(ledgerIDs), period))
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	result = &domain.UnpostResult{
		Count:     len(postingIDs),
		Message:   fmt.Sprintf("Unposted %d postings for period %s", len(postingIDs), period),
		Period:    period,
		LedgerIDs: ledgerIDs,
	}
	s.LogInfo(ctx, "Period unposted",
		slog.String("period", period.String()),
		slog.Int("count", result.Count),
		slog.String("user_id", actor.UserID))
	return result, nil
}

// GetPostingDetail retrieves a posting with its lines.
func (s *postingService) GetPostingDetail(ctx context.Context, postingID string) (*domain.Posting, error) {
	posting, err := s.postingRepo.FindPostingByID(ctx, postingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load posting", slog.String("posting_id", postingID))
		}
		return nil, err
	}
	return posting, nil
}

// ListPostings retrieves a page of postings.
func (s *postingService) ListPostings(ctx context.Context, params dto.ListPostingsParams) (*dto.ListPostingsResponse, error) {
	filter := portsrepo.PostingFilter{
		Month:      params.Month,
		Year:       params.Year,
		IsUnposted: params.IsUnposted,
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}
	postings, next, err := s.postingRepo.ListPostings(ctx, filter, pagination.NormalizeLimit(params.Limit, maxPageSize), token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list postings")
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	return dto.ToListPostingsResponse(postings, next), nil
}

// ListUnpostedLedgers retrieves draft ledgers that have at least one entry.
func (s *postingService) ListUnpostedLedgers(ctx context.Context, params dto.ListLedgersParams) (*dto.ListLedgersResponse, error) {
	status := domain.LedgerDraft
	filter := portsrepo.LedgerFilter{Status: &status, WithEntriesOnly: true}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}
	ledgers, next, err := s.ledgerRepo.ListLedgers(ctx, filter, pagination.NormalizeLimit(params.Limit, maxPageSize), token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unposted ledgers")
		return nil, fmt.Errorf("failed to list unposted ledgers: %w", err)
	}
	return dto.ToListLedgersResponse(ledgers, next), nil
}
