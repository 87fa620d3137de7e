package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syscompta/ledger/internal/apperrors"
	"github.com/syscompta/ledger/internal/core/domain"
	"github.com/syscompta/ledger/internal/utils/accounting"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeAccountBalance_SplitsOpeningFromMovement(t *testing.T) {
	account := domain.Account{Number: "571", Name: "Caisse", IsActive: true}
	lines := []domain.PostedLine{
		{AccountNumber: "571", EntryDate: day(2023, 12, 31), Debit: decimal.NewFromInt(100)},
		{AccountNumber: "571", EntryDate: day(2024, 1, 1), Debit: decimal.NewFromInt(50)},  // first day, inclusive
		{AccountNumber: "571", EntryDate: day(2024, 6, 15), Credit: decimal.NewFromInt(30)},
		{AccountNumber: "571", EntryDate: day(2024, 12, 31), Debit: decimal.NewFromInt(20)}, // last day, inclusive
		{AccountNumber: "571", EntryDate: day(2025, 1, 1), Debit: decimal.NewFromInt(999)},  // past the window, ignored
		{AccountNumber: "701", EntryDate: day(2024, 6, 15), Credit: decimal.NewFromInt(30)}, // other account, ignored
	}

	balance, err := accounting.ComputeAccountBalance(account, lines, day(2024, 1, 1), day(2024, 12, 31))

	require.NoError(t, err)
	assert.Equal(t, "571", balance.AccountNumber)
	assert.Equal(t, 5, balance.Class)
	assert.Equal(t, domain.NatureAsset, balance.Nature)
	assert.True(t, balance.OpeningDebit.Equal(decimal.NewFromInt(100)))
	assert.True(t, balance.OpeningCredit.IsZero())
	assert.True(t, balance.MovementDebit.Equal(decimal.NewFromInt(70)))
	assert.True(t, balance.MovementCredit.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 3, balance.MovementCount)
	require.NotNil(t, balance.LastMovementDate)
	assert.True(t, balance.LastMovementDate.Equal(day(2024, 12, 31)))
	assert.True(t, balance.ClosingDebit.Equal(decimal.NewFromInt(170)))
	assert.True(t, balance.ClosingCredit.Equal(decimal.NewFromInt(30)))
}

func TestComputeAccountBalance_OpeningBalanceSigns(t *testing.T) {
	start, end := day(2024, 1, 1), day(2024, 12, 31)

	debit, err := accounting.ComputeAccountBalance(domain.Account{Number: "411", OpeningBalance: decimal.NewFromInt(250)}, nil, start, end)
	require.NoError(t, err)
	assert.True(t, debit.OpeningDebit.Equal(decimal.NewFromInt(250)))
	assert.True(t, debit.OpeningCredit.IsZero())

	credit, err := accounting.ComputeAccountBalance(domain.Account{Number: "401", OpeningBalance: decimal.NewFromInt(-250)}, nil, start, end)
	require.NoError(t, err)
	assert.True(t, credit.OpeningDebit.IsZero())
	assert.True(t, credit.OpeningCredit.Equal(decimal.NewFromInt(250)))
}

func TestComputeAccountBalance_NoMovements(t *testing.T) {
	balance, err := accounting.ComputeAccountBalance(domain.Account{Number: "101"}, nil, day(2024, 1, 1), day(2024, 12, 31))

	require.NoError(t, err)
	assert.Zero(t, balance.MovementCount)
	assert.Nil(t, balance.LastMovementDate)
	assert.True(t, balance.ClosingDebit.IsZero())
	assert.True(t, balance.ClosingCredit.IsZero())
}

func TestComputeAccountBalance_CarryForward(t *testing.T) {
	account := domain.Account{Number: "521", Name: "Banque"}
	lines := []domain.PostedLine{
		{AccountNumber: "521", EntryDate: day(2024, 2, 10), Debit: decimal.NewFromInt(400)},
		{AccountNumber: "521", EntryDate: day(2024, 5, 20), Credit: decimal.NewFromInt(150)},
		{AccountNumber: "521", EntryDate: day(2024, 9, 1), Debit: decimal.NewFromInt(75)},
	}

	firstHalf, err := accounting.ComputeAccountBalance(account, lines, day(2024, 1, 1), day(2024, 6, 30))
	require.NoError(t, err)
	secondHalf, err := accounting.ComputeAccountBalance(account, lines, day(2024, 7, 1), day(2024, 12, 31))
	require.NoError(t, err)

	// Closing columns at the end of one period equal the opening columns of
	// the next.
	assert.True(t, secondHalf.OpeningDebit.Equal(firstHalf.ClosingDebit))
	assert.True(t, secondHalf.OpeningCredit.Equal(firstHalf.ClosingCredit))
}

func TestComputeAccountBalance_RejectsMalformedNumber(t *testing.T) {
	_, err := accounting.ComputeAccountBalance(domain.Account{Number: "9X1"}, nil, day(2024, 1, 1), day(2024, 12, 31))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestComputeAccountBalance_RejectsInvertedPeriod(t *testing.T) {
	_, err := accounting.ComputeAccountBalance(domain.Account{Number: "571"}, nil, day(2024, 12, 31), day(2024, 1, 1))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
