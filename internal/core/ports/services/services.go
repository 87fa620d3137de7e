package services

import (
	"context"
	"time"

	"github.com/syscompta/ledger/internal/core/domain"
	"github.com/syscompta/ledger/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, companyID, number string) (*domain.Account, error)
	ListActiveAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
	SetAccountActive(ctx context.Context, companyID, number string, active bool, userID string) error
}

// EntrySvcFacade exposes journal entry lifecycle operations. The single
// validator behind ValidateEntry is invoked by every write path.
type EntrySvcFacade interface {
	CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	UpdateDraftEntry(ctx context.Context, companyID, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)
	DeleteDraftEntry(ctx context.Context, companyID, entryID string, userID string) error

	// CheckEntry runs the validator without applying any transition.
	CheckEntry(ctx context.Context, companyID, entryID string) (*domain.ValidationErrors, error)
	// ValidateEntry moves a draft to Validated, recomputing totals.
	ValidateEntry(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error)
	// ValidateAndPost creates an entry and validates it in one step.
	ValidateAndPost(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	// UnvalidateEntry reverts a Validated entry to Draft.
	UnvalidateEntry(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error)
	// CloseEntry moves a Validated entry to Closed; Closed is final.
	CloseEntry(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error)
}

// TrialBalanceSvcFacade exposes trial balance generation and lifecycle.
type TrialBalanceSvcFacade interface {
	Generate(ctx context.Context, companyID, standardID string, periodStart, periodEnd time.Time, userID string) (*domain.TrialBalance, error)
	GetByID(ctx context.Context, companyID, trialBalanceID string) (*domain.TrialBalance, error)
	List(ctx context.Context, companyID string, params dto.ListTrialBalancesParams) (*dto.ListTrialBalancesResponse, error)
	// Validate promotes Generated to Validated; rejected unless balanced.
	Validate(ctx context.Context, companyID, trialBalanceID string, userID string) (*domain.TrialBalance, error)
	// Publish promotes Validated to Published.
	Publish(ctx context.Context, companyID, trialBalanceID string, userID string) (*domain.TrialBalance, error)
}

// StatementSvcFacade derives the three primary financial statements from
// generated trial balances.
type StatementSvcFacade interface {
	BalanceSheet(ctx context.Context, companyID, trialBalanceID string) (*domain.BalanceSheet, error)
	IncomeStatement(ctx context.Context, companyID, trialBalanceID string) (*domain.IncomeStatement, error)
	CashFlowStatement(ctx context.Context, companyID, openingTrialBalanceID, closingTrialBalanceID string) (*domain.CashFlowStatement, error)
	// DeriveAll derives all three statements from the closing trial balance
	// in one pass; the opening one feeds the cash flow statement.
	DeriveAll(ctx context.Context, companyID, openingTrialBalanceID, closingTrialBalanceID string) (*domain.FinancialStatements, error)
}
