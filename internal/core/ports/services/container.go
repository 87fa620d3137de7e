package services

// ServiceContainer holds every service facade the handler layer depends on.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Entry        EntrySvcFacade
	TrialBalance TrialBalanceSvcFacade
	Statement    StatementSvcFacade
}
