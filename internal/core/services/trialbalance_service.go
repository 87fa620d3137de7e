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
	"github.com/syscompta/ledger/internal/utils/accounting"
)

// trialBalanceService generates and manages period trial balances.
type trialBalanceService struct {
	BaseService
	tbRepo      portsrepo.TrialBalanceRepositoryFacade
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	standards   *domain.StandardRegistry
}

// NewTrialBalanceService creates a new TrialBalanceService.
func NewTrialBalanceService(tbRepo portsrepo.TrialBalanceRepositoryFacade, entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, standards *domain.StandardRegistry) portssvc.TrialBalanceSvcFacade {
	return &trialBalanceService{
		tbRepo:      tbRepo,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		standards:   standards,
	}
}

var _ portssvc.TrialBalanceSvcFacade = (*trialBalanceService)(nil)

// Generate computes a fresh trial balance over [periodStart, periodEnd] from
// the company's posted lines and active chart. One trial balance per
// (company, periodEnd); regeneration for the same date is rejected.
func (s *trialBalanceService) Generate(ctx context.Context, companyID, standardID string, periodStart, periodEnd time.Time, userID string) (*domain.TrialBalance, error) {
	if standardID == "" {
		standardID = domain.SYSCOHADAStandardID
	}
	if _, ok := s.standards.Lookup(standardID); !ok {
		return nil, fmt.Errorf("%w: unknown accounting standard %q", apperrors.ErrValidation, standardID)
	}
	if periodStart.After(periodEnd) {
		return nil, fmt.Errorf("%w: period start %s is after period end %s",
			apperrors.ErrValidation, periodStart.Format(time.DateOnly), periodEnd.Format(time.DateOnly))
	}

	exists, err := s.tbRepo.ExistsForPeriodEnd(ctx, companyID, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to check trial balance existence", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to check trial balance existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: a trial balance already exists for %s",
			apperrors.ErrDuplicate, periodEnd.Format(time.DateOnly))
	}

	accounts, err := s.accountRepo.ListActiveAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for trial balance", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: company has no active accounts", apperrors.ErrValidation)
	}

	// One pass over every posted line through periodEnd; ComputeAccountBalance
	// splits opening from movement per account.
	lines, err := s.entryRepo.ListPostedLines(ctx, companyID, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to list posted lines", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list posted lines: %w", err)
	}

	now := time.Now().UTC()
	tb := domain.TrialBalance{
		TrialBalanceID: uuid.NewString(),
		CompanyID:      companyID,
		StandardID:     standardID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Status:         domain.TrialBalanceGenerated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tb.Balances = make([]domain.AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		balance, err := accounting.ComputeAccountBalance(account, lines, periodStart, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance for account %s: %w", account.Number, err)
		}
		balance.BalanceID = uuid.NewString()
		balance.TrialBalanceID = tb.TrialBalanceID
		tb.Balances = append(tb.Balances, balance)
	}
	tb.RecomputeTotals()

	if err := s.tbRepo.SaveTrialBalance(ctx, tb); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save trial balance", slog.String("company_id", companyID))
		}
		return nil, fmt.Errorf("failed to save trial balance: %w", err)
	}

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("trial_balance_id", tb.TrialBalanceID),
		slog.Int("account_count", tb.AccountCount),
		slog.Bool("is_balanced", tb.IsBalanced))
	return &tb, nil
}

// GetByID retrieves a trial balance with its account balances.
func (s *trialBalanceService) GetByID(ctx context.Context, companyID, trialBalanceID string) (*domain.TrialBalance, error) {
	tb, err := s.tbRepo.FindTrialBalanceByID(ctx, trialBalanceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find trial balance", slog.String("trial_balance_id", trialBalanceID))
		}
		return nil, fmt.Errorf("failed to find trial balance %s: %w", trialBalanceID, err)
	}
	if tb.CompanyID != companyID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return tb, nil
}

// List retrieves a page of the company's trial balances, newest period first.
func (s *trialBalanceService) List(ctx context.Context, companyID string, params dto.ListTrialBalancesParams) (*dto.ListTrialBalancesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	tbs, nextToken, err := s.tbRepo.ListTrialBalancesByCompany(ctx, companyID, limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list trial balances", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list trial balances: %w", err)
	}

	resp := &dto.ListTrialBalancesResponse{TrialBalances: []dto.TrialBalanceResponse{}}
	for i := range tbs {
		if params.Status != "" && string(tbs[i].Status) != params.Status {
			continue
		}
		resp.TrialBalances = append(resp.TrialBalances, dto.ToTrialBalanceResponse(&tbs[i]))
	}
	if nextToken != nil {
		resp.NextToken = *nextToken
	}
	return resp, nil
}

// Validate promotes a Generated trial balance to Validated. Unbalanced trial
// balances can never be validated.
func (s *trialBalanceService) Validate(ctx context.Context, companyID, trialBalanceID string, userID string) (*domain.TrialBalance, error) {
	tb, err := s.GetByID(ctx, companyID, trialBalanceID)
	if err != nil {
		return nil, err
	}
	if tb.Status != domain.TrialBalanceGenerated {
		return nil, fmt.Errorf("%w: trial balance %s is %s, only generated ones can be validated",
			apperrors.ErrConflict, trialBalanceID, tb.Status)
	}
	if !tb.IsBalanced {
		return nil, fmt.Errorf("%w: trial balance %s is not balanced (debit %s, credit %s)",
			apperrors.ErrConflict, trialBalanceID, tb.TotalDebit.String(), tb.TotalCredit.String())
	}
	return s.transition(ctx, tb, domain.TrialBalanceValidated, userID)
}

// Publish promotes a Validated trial balance to Published.
func (s *trialBalanceService) Publish(ctx context.Context, companyID, trialBalanceID string, userID string) (*domain.TrialBalance, error) {
	tb, err := s.GetByID(ctx, companyID, trialBalanceID)
	if err != nil {
		return nil, err
	}
	if tb.Status != domain.TrialBalanceValidated {
		return nil, fmt.Errorf("%w: trial balance %s is %s, only validated ones can be published",
			apperrors.ErrConflict, trialBalanceID, tb.Status)
	}
	return s.transition(ctx, tb, domain.TrialBalancePublished, userID)
}

func (s *trialBalanceService) transition(ctx context.Context, tb *domain.TrialBalance, status domain.TrialBalanceStatus, userID string) (*domain.TrialBalance, error) {
	now := time.Now().UTC()
	if err := s.tbRepo.UpdateTrialBalanceStatus(ctx, tb.TrialBalanceID, status, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to transition trial balance", slog.String("trial_balance_id", tb.TrialBalanceID))
		return nil, fmt.Errorf("failed to transition trial balance %s to %s: %w", tb.TrialBalanceID, status, err)
	}
	tb.Status = status
	tb.LastUpdatedAt = now
	tb.LastUpdatedBy = userID
	s.LogInfo(ctx, "Trial balance transitioned", slog.String("trial_balance_id", tb.TrialBalanceID), slog.String("status", string(status)))
	return tb, nil
}
