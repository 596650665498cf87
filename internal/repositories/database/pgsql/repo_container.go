package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_posting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	postingRepo := newPgxPostingRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		LedgerRepo:    ledgerRepo,
		PostingRepo:   postingRepo,
		ReportingRepo: reportingRepo,
	}
}
