package repositories

import (
	"context"
	"time"

	"github.com/syscompta/ledger/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts.
type AccountReader interface {
	// FindAccountByNumber retrieves one account of a company by its number.
	FindAccountByNumber(ctx context.Context, companyID, number string) (*domain.Account, error)

	// FindAccountsByNumbers retrieves several accounts at once, keyed by
	// account number. Missing numbers are simply absent from the map.
	FindAccountsByNumbers(ctx context.Context, companyID string, numbers []string) (map[string]domain.Account, error)

	// ListActiveAccounts retrieves every active account of a company,
	// ordered by account number.
	ListActiveAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for the chart of accounts.
type AccountWriter interface {
	// SaveAccount persists a new account. Returns ErrDuplicate when the
	// (company, number) pair already exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive toggles the active flag of an account.
	SetAccountActive(ctx context.Context, companyID, number string, active bool, updatedBy string, updatedAt time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
