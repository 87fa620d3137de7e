package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one account's contribution to a statement section.
// Negative amounts are retained, not clamped; they surface anomalies.
type StatementLine struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Amount        decimal.Decimal `json:"amount"`
}

// StatementSection groups the lines of one statement section with its total.
type StatementSection struct {
	Lines []StatementLine `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Add appends a line and accumulates the section total.
func (s *StatementSection) Add(line StatementLine) {
	s.Lines = append(s.Lines, line)
	s.Total = s.Total.Add(line.Amount)
}

// BalanceSheet partitions account closing positions into the seven
// SYSCOHADA sections. The period result accumulated on classes 6-7 is
// folded into equity as a synthetic result line so the balance sheet
// identity holds whenever the underlying trial balance is balanced.
type BalanceSheet struct {
	TrialBalanceID string    `json:"trialBalanceID"`
	CompanyID      string    `json:"companyID"`
	StandardID     string    `json:"standardID"`
	AsOfDate       time.Time `json:"asOfDate"`

	FixedAssets   StatementSection `json:"fixedAssets"`
	CurrentAssets StatementSection `json:"currentAssets"`
	CashAssets    StatementSection `json:"cashAssets"`

	Equity               StatementSection `json:"equity"`
	FinancialLiabilities StatementSection `json:"financialLiabilities"`
	CurrentLiabilities   StatementSection `json:"currentLiabilities"`
	CashLiabilities      StatementSection `json:"cashLiabilities"`

	// AccumulatedResult is the synthetic result line included in Equity.
	AccumulatedResult decimal.Decimal `json:"accumulatedResult"`

	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalEquityAndLiabilities decimal.Decimal `json:"totalEquityAndLiabilities"`
	IsBalanced                bool            `json:"isBalanced"`
	GeneratedAt               time.Time       `json:"generatedAt"`
}

// CashPosition returns net cash: cash assets minus cash liabilities.
func (b BalanceSheet) CashPosition() decimal.Decimal {
	return b.CashAssets.Total.Sub(b.CashLiabilities.Total)
}

// IncomeStatement partitions the period's revenue and expense movements
// into classifier buckets and derives the fixed chain of intermediate
// aggregates (SIG). Aggregates are computed once, in order; later ones may
// reference earlier ones only.
type IncomeStatement struct {
	TrialBalanceID string    `json:"trialBalanceID"`
	CompanyID      string    `json:"companyID"`
	StandardID     string    `json:"standardID"`
	PeriodStart    time.Time `json:"periodStart"`
	PeriodEnd      time.Time `json:"periodEnd"`

	Revenue  StatementSection `json:"revenue"`
	Expenses StatementSection `json:"expenses"`

	Buckets map[IncomeBucket]decimal.Decimal `json:"buckets"`

	GrossMargin       decimal.Decimal `json:"grossMargin"`
	ValueAdded        decimal.Decimal `json:"valueAdded"`
	OperatingSurplus  decimal.Decimal `json:"operatingSurplus"` // EBE
	OperatingResult   decimal.Decimal `json:"operatingResult"`
	FinancialResult   decimal.Decimal `json:"financialResult"`
	ExceptionalResult decimal.Decimal `json:"exceptionalResult"`
	PreTaxResult      decimal.Decimal `json:"preTaxResult"`
	NetResult         decimal.Decimal `json:"netResult"`

	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	IsProfitable  bool            `json:"isProfitable"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// Bucket returns a bucket total, zero when the bucket is absent.
func (s IncomeStatement) Bucket(b IncomeBucket) decimal.Decimal {
	if v, ok := s.Buckets[b]; ok {
		return v
	}
	return decimal.Zero
}

// CashFlowLine is one labelled flow amount within a cash flow group.
type CashFlowLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CashFlowSection groups the lines of one flow group with its total.
type CashFlowSection struct {
	Lines []CashFlowLine  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Add appends a line and accumulates the group total.
func (s *CashFlowSection) Add(label string, amount decimal.Decimal) {
	s.Lines = append(s.Lines, CashFlowLine{Label: label, Amount: amount})
	s.Total = s.Total.Add(amount)
}

// CashFlowStatement is the indirect-method cash flow statement derived from
// two balance sheets and the period's income statement. IsConsistent is the
// mandatory cross-check: the summed variation must equal the cash delta
// read directly off the two balance sheets.
type CashFlowStatement struct {
	CompanyID   string    `json:"companyID"`
	StandardID  string    `json:"standardID"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	Operating CashFlowSection `json:"operating"`
	Investing CashFlowSection `json:"investing"`
	Financing CashFlowSection `json:"financing"`

	// SelfFinancingCapacity is the CAFG: net result plus depreciation.
	SelfFinancingCapacity decimal.Decimal `json:"selfFinancingCapacity"`

	CashVariation decimal.Decimal `json:"cashVariation"`
	CashStart     decimal.Decimal `json:"cashStart"`
	CashEnd       decimal.Decimal `json:"cashEnd"`
	IsConsistent  bool            `json:"isConsistent"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// FinancialStatements bundles the three statements derived from the same
// closing trial balance in one pass.
type FinancialStatements struct {
	BalanceSheet      *BalanceSheet      `json:"balanceSheet"`
	IncomeStatement   *IncomeStatement   `json:"incomeStatement"`
	CashFlowStatement *CashFlowStatement `json:"cashFlowStatement"`
}
