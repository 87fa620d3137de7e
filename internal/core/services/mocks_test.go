package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/syscompta/ledger/internal/core/domain"
	portsrepo "github.com/syscompta/ledger/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, companyID, number string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByNumbers(ctx context.Context, companyID string, numbers []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, companyID, number string, active bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, companyID, number, active, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockEntryRepository) ListPostedLines(ctx context.Context, companyID string, through time.Time) ([]domain.PostedLine, error) {
	args := m.Called(ctx, companyID, through)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLine), args.Error(1)
}

func (m *MockEntryRepository) CountEntriesForMonth(ctx context.Context, companyID string, year int, month time.Month) (int, error) {
	args := m.Called(ctx, companyID, year, month)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, totalDebit, totalCredit decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, totalDebit, totalCredit, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock TrialBalanceRepository ---

type MockTrialBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.TrialBalanceRepositoryFacade = (*MockTrialBalanceRepository)(nil)

func (m *MockTrialBalanceRepository) FindTrialBalanceByID(ctx context.Context, trialBalanceID string) (*domain.TrialBalance, error) {
	args := m.Called(ctx, trialBalanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockTrialBalanceRepository) ExistsForPeriodEnd(ctx context.Context, companyID string, periodEnd time.Time) (bool, error) {
	args := m.Called(ctx, companyID, periodEnd)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrialBalanceRepository) ListTrialBalancesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.TrialBalance, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.TrialBalance), returnedNextToken, args.Error(2)
}

func (m *MockTrialBalanceRepository) SaveTrialBalance(ctx context.Context, tb domain.TrialBalance) error {
	args := m.Called(ctx, tb)
	return args.Error(0)
}

func (m *MockTrialBalanceRepository) UpdateTrialBalanceStatus(ctx context.Context, trialBalanceID string, status domain.TrialBalanceStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, trialBalanceID, status, updatedBy, updatedAt)
	return args.Error(0)
}
