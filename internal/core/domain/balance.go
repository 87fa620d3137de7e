package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceStatus indicates the lifecycle state of a trial balance.
// Draft -> Generated -> Validated -> Published, no skipping, no going back.
type TrialBalanceStatus string

const (
	TrialBalanceDraft     TrialBalanceStatus = "DRAFT"
	TrialBalanceGenerated TrialBalanceStatus = "GENERATED"
	TrialBalanceValidated TrialBalanceStatus = "VALIDATED"
	TrialBalancePublished TrialBalanceStatus = "PUBLISHED"
)

// AccountBalance holds one account's opening, movement and closing figures
// for a trial balance run. Debit and credit columns are accumulated
// symmetrically; netting happens only at statement classification time.
type AccountBalance struct {
	BalanceID        string          `json:"balanceID"` // Primary key (UUID)
	TrialBalanceID   string          `json:"trialBalanceID"`
	AccountNumber    string          `json:"accountNumber"`
	AccountName      string          `json:"accountName"`
	Class            int             `json:"class"`
	Nature           AccountNature   `json:"nature"`
	OpeningDebit     decimal.Decimal `json:"openingDebit"`
	OpeningCredit    decimal.Decimal `json:"openingCredit"`
	MovementDebit    decimal.Decimal `json:"movementDebit"`
	MovementCredit   decimal.Decimal `json:"movementCredit"`
	MovementCount    int             `json:"movementCount"`
	LastMovementDate *time.Time      `json:"lastMovementDate,omitempty"`
	ClosingDebit     decimal.Decimal `json:"closingDebit"`
	ClosingCredit    decimal.Decimal `json:"closingCredit"`
}

// ClosingPosition returns the account's signed closing figure under the
// given sign convention.
func (b AccountBalance) ClosingPosition(sign SignConvention) decimal.Decimal {
	if sign == CreditIncreasing {
		return b.ClosingCredit.Sub(b.ClosingDebit)
	}
	return b.ClosingDebit.Sub(b.ClosingCredit)
}

// MovementPosition returns the account's signed period movement under the
// given sign convention.
func (b AccountBalance) MovementPosition(sign SignConvention) decimal.Decimal {
	if sign == CreditIncreasing {
		return b.MovementCredit.Sub(b.MovementDebit)
	}
	return b.MovementDebit.Sub(b.MovementCredit)
}

// TrialBalance is a period snapshot of every active account's balances,
// with aggregate movement totals and the equilibrium flag.
type TrialBalance struct {
	TrialBalanceID string             `json:"trialBalanceID"` // Primary key (UUID)
	CompanyID      string             `json:"companyID"`
	StandardID     string             `json:"standardID"` // Accounting standard the chart follows
	PeriodStart    time.Time          `json:"periodStart"`
	PeriodEnd      time.Time          `json:"periodEnd"` // Also the unique asOfDate per company
	Status         TrialBalanceStatus `json:"status"`
	Balances       []AccountBalance   `json:"balances,omitempty"`
	TotalDebit     decimal.Decimal    `json:"totalDebit"`  // Sum of period movement debits
	TotalCredit    decimal.Decimal    `json:"totalCredit"` // Sum of period movement credits
	IsBalanced     bool               `json:"isBalanced"`
	AccountCount   int                `json:"accountCount"`
	MovementCount  int                `json:"movementCount"`
	AuditFields
}

// RecomputeTotals recalculates the aggregate columns from the attached
// balances. IsBalanced is always derived, never stored stale.
func (t *TrialBalance) RecomputeTotals() {
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	movements := 0
	for _, b := range t.Balances {
		totalDebit = totalDebit.Add(b.MovementDebit)
		totalCredit = totalCredit.Add(b.MovementCredit)
		movements += b.MovementCount
	}
	t.TotalDebit = totalDebit
	t.TotalCredit = totalCredit
	t.IsBalanced = totalDebit.Equal(totalCredit)
	t.AccountCount = len(t.Balances)
	t.MovementCount = movements
}

// BalancesByClass groups the attached balances by account class digit,
// preserving their order within each class.
func (t *TrialBalance) BalancesByClass() map[int][]AccountBalance {
	byClass := make(map[int][]AccountBalance)
	for _, b := range t.Balances {
		class := b.Class
		if class == 0 {
			class = ClassOfNumber(b.AccountNumber)
		}
		byClass[class] = append(byClass[class], b)
	}
	return byClass
}
