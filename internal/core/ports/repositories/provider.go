package repositories

// RepositoryProvider bundles every repository facade the service layer
// needs, so wiring happens in one place.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	EntryRepo        EntryRepositoryFacade
	TrialBalanceRepo TrialBalanceRepositoryFacade
}
