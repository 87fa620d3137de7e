package accounting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/syscompta/ledger/internal/apperrors"
	"github.com/syscompta/ledger/internal/core/domain"
)

// ComputeAccountBalance aggregates the posted lines of one account into
// opening, movement and closing figures for the given period. It is a pure
// function over the supplied line set: opening figures sum every line dated
// strictly before periodStart plus the account's configured opening balance;
// movement figures sum lines dated within [periodStart, periodEnd]
// inclusive. Closing columns accumulate symmetrically; the two sides are
// never netted here.
func ComputeAccountBalance(account domain.Account, lines []domain.PostedLine, periodStart, periodEnd time.Time) (domain.AccountBalance, error) {
	if !domain.ValidAccountNumber(account.Number) {
		return domain.AccountBalance{}, fmt.Errorf("%w: account number %q", apperrors.ErrValidation, account.Number)
	}
	if periodStart.After(periodEnd) {
		return domain.AccountBalance{}, fmt.Errorf("%w: period start %s is after period end %s",
			apperrors.ErrValidation, periodStart.Format(time.DateOnly), periodEnd.Format(time.DateOnly))
	}

	balance := domain.AccountBalance{
		AccountNumber:  account.Number,
		AccountName:    account.Name,
		Class:          account.Class(),
		Nature:         account.Nature(),
		OpeningDebit:   decimal.Zero,
		OpeningCredit:  decimal.Zero,
		MovementDebit:  decimal.Zero,
		MovementCredit: decimal.Zero,
	}

	// The configured opening balance is folded in once, as a debit when
	// positive and as a credit (absolute value) when negative.
	switch {
	case account.OpeningBalance.IsPositive():
		balance.OpeningDebit = balance.OpeningDebit.Add(account.OpeningBalance)
	case account.OpeningBalance.IsNegative():
		balance.OpeningCredit = balance.OpeningCredit.Add(account.OpeningBalance.Abs())
	}

	for _, line := range lines {
		if line.AccountNumber != account.Number {
			continue
		}
		switch {
		case line.EntryDate.Before(periodStart):
			balance.OpeningDebit = balance.OpeningDebit.Add(line.Debit)
			balance.OpeningCredit = balance.OpeningCredit.Add(line.Credit)
		case !line.EntryDate.After(periodEnd):
			balance.MovementDebit = balance.MovementDebit.Add(line.Debit)
			balance.MovementCredit = balance.MovementCredit.Add(line.Credit)
			balance.MovementCount++
			if balance.LastMovementDate == nil || line.EntryDate.After(*balance.LastMovementDate) {
				d := line.EntryDate
				balance.LastMovementDate = &d
			}
		}
	}

	balance.ClosingDebit = balance.OpeningDebit.Add(balance.MovementDebit)
	balance.ClosingCredit = balance.OpeningCredit.Add(balance.MovementCredit)
	return balance, nil
}
