package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/syscompta/ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		EntryRepo:        newPgxEntryRepository(dbPool),
		TrialBalanceRepo: newPgxTrialBalanceRepository(dbPool),
	}
}
