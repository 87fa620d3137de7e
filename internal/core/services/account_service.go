package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/syscompta/ledger/internal/apperrors"
	"github.com/syscompta/ledger/internal/core/domain"
	portsrepo "github.com/syscompta/ledger/internal/core/ports/repositories"
	portssvc "github.com/syscompta/ledger/internal/core/ports/services"
	"github.com/syscompta/ledger/internal/dto"
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account in the company's chart. The number
// must be all digits with a class digit 1-7 in front; duplicates within the
// company are rejected.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !domain.ValidAccountNumber(req.Number) {
		return nil, fmt.Errorf("%w: account number %q must be digits starting with a class 1-7", apperrors.ErrValidation, req.Number)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      companyID,
		Number:         req.Number,
		Name:           req.Name,
		IsActive:       true,
		OpeningBalance: req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_number", req.Number), slog.String("company_id", companyID))
		}
		return nil, fmt.Errorf("failed to save account %s: %w", req.Number, err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_number", account.Number), slog.String("company_id", companyID))
	return &account, nil
}

// GetAccountByNumber retrieves one account of the company.
func (s *accountService) GetAccountByNumber(ctx context.Context, companyID, number string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, companyID, number)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_number", number))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", number, err)
	}
	return account, nil
}

// ListActiveAccounts retrieves the company's active chart, ordered by number.
func (s *accountService) ListActiveAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}
	return accounts, nil
}

// SetAccountActive toggles the active flag. Inactive accounts are rejected by
// entry validation but keep contributing their history to balances.
func (s *accountService) SetAccountActive(ctx context.Context, companyID, number string, active bool, userID string) error {
	if err := s.accountRepo.SetAccountActive(ctx, companyID, number, active, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to toggle account", slog.String("account_number", number))
		}
		return fmt.Errorf("failed to toggle account %s: %w", number, err)
	}
	s.LogInfo(ctx, "Account toggled", slog.String("account_number", number), slog.Bool("active", active))
	return nil
}
