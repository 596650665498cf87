package services

import (
	portsrepo "github.com/SscSPs/ledger_posting_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// options are applied to every service.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	policy := DefaultPostingPolicy()
	if cfg != nil {
		policy = PostingPolicy{
			RequireBalanced:    cfg.PostingRequireBalanced,
			UnpostAllowedRoles: cfg.UnpostAllowedRoles,
		}
	}

	return &portssvc.ServiceContainer{
		Ledger:    NewLedgerService(repos.LedgerRepo, repos.AccountRepo, options...),
		Posting:   NewPostingService(repos.LedgerRepo, repos.PostingRepo, policy, options...),
		Reporting: NewReportingService(repos.PostingRepo, repos.ReportingRepo, options...),
	}
}
