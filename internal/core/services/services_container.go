package services

import (
	"github.com/syscompta/ledger/internal/core/domain"
	portsrepo "github.com/syscompta/ledger/internal/core/ports/repositories"
	portssvc "github.com/syscompta/ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The standard registry ships with the SYSCOHADA
// classification table registered.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	standards := domain.NewStandardRegistry()

	container := &portssvc.ServiceContainer{}
	container.Account = NewAccountService(repos.AccountRepo)
	container.Entry = NewEntryService(repos.EntryRepo, repos.AccountRepo)
	container.TrialBalance = NewTrialBalanceService(repos.TrialBalanceRepo, repos.EntryRepo, repos.AccountRepo, standards)
	container.Statement = NewStatementService(container.TrialBalance, standards)
	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.EntrySvcFacade        = (*entryService)(nil)
	_ portssvc.TrialBalanceSvcFacade = (*trialBalanceService)(nil)
	_ portssvc.StatementSvcFacade    = (*statementService)(nil)
)
