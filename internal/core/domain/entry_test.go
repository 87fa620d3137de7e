package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/syscompta/ledger/internal/core/domain"
)

func TestJournalEntry_SumLinesAndBalance(t *testing.T) {
	entry := domain.JournalEntry{
		Lines: []domain.EntryLine{
			{AccountNumber: "571", Debit: decimal.NewFromInt(600)},
			{AccountNumber: "701", Credit: decimal.NewFromInt(500)},
			{AccountNumber: "443", Credit: decimal.NewFromInt(100)},
		},
	}

	debit, credit := entry.SumLines()
	assert.True(t, debit.Equal(decimal.NewFromInt(600)))
	assert.True(t, credit.Equal(decimal.NewFromInt(600)))
	assert.True(t, entry.IsBalanced())

	entry.Lines = entry.Lines[:2]
	assert.False(t, entry.IsBalanced())
}

func TestJournalEntry_IsPosted(t *testing.T) {
	assert.False(t, domain.JournalEntry{Status: domain.EntryDraft}.IsPosted())
	assert.True(t, domain.JournalEntry{Status: domain.EntryValidated}.IsPosted())
	assert.True(t, domain.JournalEntry{Status: domain.EntryClosed}.IsPosted())
}

func TestValidationErrors_AddAndError(t *testing.T) {
	verrs := &domain.ValidationErrors{}
	assert.False(t, verrs.HasViolations())

	verrs.Add(domain.ViolationUnbalanced, -1, "debits sum to %s but credits sum to %s", "100", "90")
	verrs.Add(domain.ViolationEmptyLine, 2, "line carries neither a debit nor a credit")

	assert.True(t, verrs.HasViolations())
	assert.Len(t, verrs.Violations, 2)
	assert.Equal(t, -1, verrs.Violations[0].LineOrder)
	assert.Contains(t, verrs.Error(), "debits sum to 100 but credits sum to 90")
	assert.Contains(t, verrs.Error(), "neither a debit nor a credit")
}

func TestValidAccountNumber(t *testing.T) {
	assert.True(t, domain.ValidAccountNumber("1"))
	assert.True(t, domain.ValidAccountNumber("701"))
	assert.True(t, domain.ValidAccountNumber("4091"))
	assert.False(t, domain.ValidAccountNumber(""))
	assert.False(t, domain.ValidAccountNumber("0123"))
	assert.False(t, domain.ValidAccountNumber("801"))
	assert.False(t, domain.ValidAccountNumber("57A"))
}

func TestClassOfNumber(t *testing.T) {
	assert.Equal(t, 5, domain.ClassOfNumber("571"))
	assert.Equal(t, 0, domain.ClassOfNumber(""))
	assert.Equal(t, 0, domain.ClassOfNumber("9"))
}

func TestAccountNature(t *testing.T) {
	assert.Equal(t, domain.NatureExpense, domain.Account{Number: "601"}.Nature())
	assert.Equal(t, domain.NatureRevenue, domain.Account{Number: "701"}.Nature())
	assert.Equal(t, domain.NatureAsset, domain.Account{Number: "215"}.Nature())
	assert.Equal(t, domain.NatureAsset, domain.Account{Number: "571"}.Nature())
	assert.Equal(t, domain.NatureLiability, domain.Account{Number: "101"}.Nature())
	assert.Equal(t, domain.NatureLiability, domain.Account{Number: "401"}.Nature())
}

func TestTrialBalance_RecomputeTotals(t *testing.T) {
	tb := domain.TrialBalance{
		Balances: []domain.AccountBalance{
			{MovementDebit: decimal.NewFromInt(300), MovementCount: 2},
			{MovementCredit: decimal.NewFromInt(300), MovementCount: 1},
		},
	}
	tb.RecomputeTotals()

	assert.True(t, tb.TotalDebit.Equal(decimal.NewFromInt(300)))
	assert.True(t, tb.TotalCredit.Equal(decimal.NewFromInt(300)))
	assert.True(t, tb.IsBalanced)
	assert.Equal(t, 2, tb.AccountCount)
	assert.Equal(t, 3, tb.MovementCount)

	tb.Balances[0].MovementDebit = decimal.NewFromInt(301)
	tb.RecomputeTotals()
	assert.False(t, tb.IsBalanced)
}

func TestTrialBalance_BalancesByClass(t *testing.T) {
	tb := domain.TrialBalance{
		Balances: []domain.AccountBalance{
			{AccountNumber: "101", Class: 1},
			{AccountNumber: "571", Class: 5},
			{AccountNumber: "521", Class: 5},
			{AccountNumber: "701"}, // class derived from the number when unset
		},
	}

	byClass := tb.BalancesByClass()

	assert.Len(t, byClass[1], 1)
	assert.Len(t, byClass[5], 2)
	assert.Equal(t, "571", byClass[5][0].AccountNumber)
	assert.Len(t, byClass[7], 1)
}

func TestAccountBalance_Positions(t *testing.T) {
	b := domain.AccountBalance{
		ClosingDebit:   decimal.NewFromInt(100),
		ClosingCredit:  decimal.NewFromInt(30),
		MovementDebit:  decimal.NewFromInt(40),
		MovementCredit: decimal.NewFromInt(10),
	}

	assert.True(t, b.ClosingPosition(domain.DebitIncreasing).Equal(decimal.NewFromInt(70)))
	assert.True(t, b.ClosingPosition(domain.CreditIncreasing).Equal(decimal.NewFromInt(-70)))
	assert.True(t, b.MovementPosition(domain.DebitIncreasing).Equal(decimal.NewFromInt(30)))
	assert.True(t, b.MovementPosition(domain.CreditIncreasing).Equal(decimal.NewFromInt(-30)))
}
