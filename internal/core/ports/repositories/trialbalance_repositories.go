package repositories

import (
	"context"
	"time"

	"github.com/syscompta/ledger/internal/core/domain"
)

// TrialBalanceReader defines read operations for trial balances.
type TrialBalanceReader interface {
	// FindTrialBalanceByID retrieves a trial balance with its account
	// balances, ordered by account number.
	FindTrialBalanceByID(ctx context.Context, trialBalanceID string) (*domain.TrialBalance, error)

	// ExistsForPeriodEnd reports whether the company already has a trial
	// balance with the given asOfDate.
	ExistsForPeriodEnd(ctx context.Context, companyID string, periodEnd time.Time) (bool, error)

	// ListTrialBalancesByCompany retrieves a paginated list of trial
	// balances (without account balances), newest period first.
	ListTrialBalancesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.TrialBalance, *string, error)
}

// TrialBalanceWriter defines write operations for trial balances.
type TrialBalanceWriter interface {
	// SaveTrialBalance persists the trial balance and its account balances
	// atomically. Returns ErrDuplicate when a trial balance already exists
	// for the (company, periodEnd) pair.
	SaveTrialBalance(ctx context.Context, tb domain.TrialBalance) error

	// UpdateTrialBalanceStatus transitions a trial balance.
	UpdateTrialBalanceStatus(ctx context.Context, trialBalanceID string, status domain.TrialBalanceStatus, updatedBy string, updatedAt time.Time) error
}

// TrialBalanceRepositoryFacade combines all trial balance repository
// interfaces.
type TrialBalanceRepositoryFacade interface {
	TrialBalanceReader
	TrialBalanceWriter
}
