package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/syscompta/ledger/internal/apperrors"
	"github.com/syscompta/ledger/internal/core/domain"
	portssvc "github.com/syscompta/ledger/internal/core/ports/services"
)

// statementService derives balance sheets, income statements and cash flow
// statements from generated trial balances. Derivation is pure: it reads a
// trial balance and a classification table and never touches the journal.
type statementService struct {
	BaseService
	tbSvc     portssvc.TrialBalanceSvcFacade
	standards *domain.StandardRegistry
}

// NewStatementService creates a new StatementService.
func NewStatementService(tbSvc portssvc.TrialBalanceSvcFacade, standards *domain.StandardRegistry) portssvc.StatementSvcFacade {
	return &statementService{tbSvc: tbSvc, standards: standards}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

func (s *statementService) tableFor(tb *domain.TrialBalance) (*domain.ClassificationTable, error) {
	table, ok := s.standards.Lookup(tb.StandardID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown accounting standard %q", apperrors.ErrInternal, tb.StandardID)
	}
	return table, nil
}

// BalanceSheet derives the balance sheet from a trial balance's closing
// positions.
func (s *statementService) BalanceSheet(ctx context.Context, companyID, trialBalanceID string) (*domain.BalanceSheet, error) {
	tb, err := s.tbSvc.GetByID(ctx, companyID, trialBalanceID)
	if err != nil {
		return nil, err
	}
	table, err := s.tableFor(tb)
	if err != nil {
		return nil, err
	}
	bs := deriveBalanceSheet(tb, table)
	s.LogInfo(ctx, "Balance sheet derived",
		slog.String("trial_balance_id", trialBalanceID),
		slog.Bool("is_balanced", bs.IsBalanced))
	return bs, nil
}

// IncomeStatement derives the income statement and its aggregate chain from
// a trial balance's period movements.
func (s *statementService) IncomeStatement(ctx context.Context, companyID, trialBalanceID string) (*domain.IncomeStatement, error) {
	tb, err := s.tbSvc.GetByID(ctx, companyID, trialBalanceID)
	if err != nil {
		return nil, err
	}
	table, err := s.tableFor(tb)
	if err != nil {
		return nil, err
	}
	is := deriveIncomeStatement(tb, table)
	s.LogInfo(ctx, "Income statement derived",
		slog.String("trial_balance_id", trialBalanceID),
		slog.String("net_result", is.NetResult.String()))
	return is, nil
}

// CashFlowStatement derives the indirect-method cash flow statement from two
// trial balances: the opening one ending just before the reporting period and
// the closing one covering it.
func (s *statementService) CashFlowStatement(ctx context.Context, companyID, openingTrialBalanceID, closingTrialBalanceID string) (*domain.CashFlowStatement, error) {
	all, err := s.DeriveAll(ctx, companyID, openingTrialBalanceID, closingTrialBalanceID)
	if err != nil {
		return nil, err
	}
	return all.CashFlowStatement, nil
}

// DeriveAll derives the three statements in one pass: balance sheet and
// income statement off the closing trial balance, the cash flow statement
// across the two.
func (s *statementService) DeriveAll(ctx context.Context, companyID, openingTrialBalanceID, closingTrialBalanceID string) (*domain.FinancialStatements, error) {
	openingTB, err := s.tbSvc.GetByID(ctx, companyID, openingTrialBalanceID)
	if err != nil {
		return nil, err
	}
	closingTB, err := s.tbSvc.GetByID(ctx, companyID, closingTrialBalanceID)
	if err != nil {
		return nil, err
	}

	if openingTB.StandardID != closingTB.StandardID {
		return nil, fmt.Errorf("%w: trial balances follow different standards (%s vs %s)",
			apperrors.ErrValidation, openingTB.StandardID, closingTB.StandardID)
	}
	if !openingTB.PeriodEnd.Before(closingTB.PeriodStart) {
		return nil, fmt.Errorf("%w: opening period must end before the closing period starts (%s vs %s)",
			apperrors.ErrValidation,
			openingTB.PeriodEnd.Format(time.DateOnly),
			closingTB.PeriodStart.Format(time.DateOnly))
	}

	table, err := s.tableFor(closingTB)
	if err != nil {
		return nil, err
	}

	opening := deriveBalanceSheet(openingTB, table)
	closing := deriveBalanceSheet(closingTB, table)
	income := deriveIncomeStatement(closingTB, table)
	cf := deriveCashFlow(opening, closing, income)

	s.LogInfo(ctx, "Full statement set derived",
		slog.String("closing_trial_balance_id", closingTrialBalanceID),
		slog.Bool("balance_sheet_balanced", closing.IsBalanced),
		slog.Bool("cash_flow_consistent", cf.IsConsistent))
	return &domain.FinancialStatements{
		BalanceSheet:      closing,
		IncomeStatement:   income,
		CashFlowStatement: cf,
	}, nil
}

// deriveBalanceSheet partitions closing positions into the seven sections
// and folds the result accumulated on revenue/expense accounts into equity
// as a synthetic line so the balance sheet identity holds whenever the
// trial balance is balanced. Zero positions are not listed; negative ones
// are, so anomalies stay visible.
func deriveBalanceSheet(tb *domain.TrialBalance, table *domain.ClassificationTable) *domain.BalanceSheet {
	bs := &domain.BalanceSheet{
		TrialBalanceID: tb.TrialBalanceID,
		CompanyID:      tb.CompanyID,
		StandardID:     tb.StandardID,
		AsOfDate:       tb.PeriodEnd,
		GeneratedAt:    time.Now().UTC(),
	}

	result := decimal.Zero
	for _, b := range tb.Balances {
		rule, ok := table.Classify(b.AccountNumber)
		if !ok {
			continue
		}
		pos := b.ClosingPosition(rule.Sign)

		switch rule.Section {
		case domain.SectionRevenue:
			result = result.Add(pos)
			continue
		case domain.SectionExpense:
			result = result.Sub(pos)
			continue
		}

		if pos.IsZero() {
			continue
		}
		line := domain.StatementLine{AccountNumber: b.AccountNumber, AccountName: b.AccountName, Amount: pos}
		switch rule.Section {
		case domain.SectionFixedAssets:
			bs.FixedAssets.Add(line)
		case domain.SectionCurrentAssets:
			bs.CurrentAssets.Add(line)
		case domain.SectionCashAssets:
			bs.CashAssets.Add(line)
		case domain.SectionEquity:
			bs.Equity.Add(line)
		case domain.SectionFinancialLiabilities:
			bs.FinancialLiabilities.Add(line)
		case domain.SectionCurrentLiabilities:
			bs.CurrentLiabilities.Add(line)
		case domain.SectionCashLiabilities:
			bs.CashLiabilities.Add(line)
		}
	}

	bs.AccumulatedResult = result
	bs.Equity.Add(domain.StatementLine{
		AccountNumber: "13",
		AccountName:   "Net result for the period",
		Amount:        result,
	})

	bs.TotalAssets = bs.FixedAssets.Total.Add(bs.CurrentAssets.Total).Add(bs.CashAssets.Total)
	bs.TotalEquityAndLiabilities = bs.Equity.Total.
		Add(bs.FinancialLiabilities.Total).
		Add(bs.CurrentLiabilities.Total).
		Add(bs.CashLiabilities.Total)
	bs.IsBalanced = bs.TotalAssets.Equal(bs.TotalEquityAndLiabilities)
	return bs
}

// deriveIncomeStatement partitions the period's revenue and expense
// movements into classifier buckets and computes the aggregate chain in its
// fixed order; each aggregate references only earlier ones.
func deriveIncomeStatement(tb *domain.TrialBalance, table *domain.ClassificationTable) *domain.IncomeStatement {
	is := &domain.IncomeStatement{
		TrialBalanceID: tb.TrialBalanceID,
		CompanyID:      tb.CompanyID,
		StandardID:     tb.StandardID,
		PeriodStart:    tb.PeriodStart,
		PeriodEnd:      tb.PeriodEnd,
		Buckets:        make(map[domain.IncomeBucket]decimal.Decimal),
		GeneratedAt:    time.Now().UTC(),
	}

	for _, b := range tb.Balances {
		rule, ok := table.Classify(b.AccountNumber)
		if !ok || (rule.Section != domain.SectionRevenue && rule.Section != domain.SectionExpense) {
			continue
		}
		pos := b.MovementPosition(rule.Sign)
		is.Buckets[rule.Bucket] = is.Buckets[rule.Bucket].Add(pos)
		if pos.IsZero() {
			continue
		}
		line := domain.StatementLine{AccountNumber: b.AccountNumber, AccountName: b.AccountName, Amount: pos}
		if rule.Section == domain.SectionRevenue {
			is.Revenue.Add(line)
		} else {
			is.Expenses.Add(line)
		}
	}

	is.GrossMargin = is.Bucket(domain.BucketMerchandiseSales).
		Sub(is.Bucket(domain.BucketMerchandisePurchases)).
		Sub(is.Bucket(domain.BucketInventoryVariation))
	is.ValueAdded = is.GrossMargin.
		Add(is.Bucket(domain.BucketProduction)).
		Sub(is.Bucket(domain.BucketExternalConsumption)).
		Sub(is.Bucket(domain.BucketTaxes))
	is.OperatingSurplus = is.ValueAdded.Sub(is.Bucket(domain.BucketStaffCosts))
	is.OperatingResult = is.OperatingSurplus.
		Sub(is.Bucket(domain.BucketDepreciation)).
		Add(is.Bucket(domain.BucketOtherOperatingRevenue)).
		Sub(is.Bucket(domain.BucketOtherOperatingExpense))
	is.FinancialResult = is.Bucket(domain.BucketFinancialRevenue).
		Sub(is.Bucket(domain.BucketFinancialExpense))
	is.ExceptionalResult = is.Bucket(domain.BucketDisposalProceeds).
		Sub(is.Bucket(domain.BucketDisposalValues))
	is.PreTaxResult = is.OperatingResult.Add(is.FinancialResult).Add(is.ExceptionalResult)
	is.NetResult = is.PreTaxResult.Sub(is.Bucket(domain.BucketIncomeTax))

	is.TotalRevenue = is.Revenue.Total
	is.TotalExpenses = is.Expenses.Total
	is.IsProfitable = is.NetResult.IsPositive()
	return is
}

// deriveCashFlow builds the indirect-method cash flow statement from the
// opening and closing balance sheets and the period's income statement.
// The cross-check compares the summed variation against the cash delta read
// directly off the two balance sheets; the two agree whenever both trial
// balances are balanced and the periods are adjacent.
func deriveCashFlow(opening, closing *domain.BalanceSheet, income *domain.IncomeStatement) *domain.CashFlowStatement {
	cf := &domain.CashFlowStatement{
		CompanyID:   closing.CompanyID,
		StandardID:  closing.StandardID,
		PeriodStart: income.PeriodStart,
		PeriodEnd:   income.PeriodEnd,
		GeneratedAt: time.Now().UTC(),
	}

	depreciation := income.Bucket(domain.BucketDepreciation)
	cf.SelfFinancingCapacity = income.NetResult.Add(depreciation)

	deltaFixedAssets := closing.FixedAssets.Total.Sub(opening.FixedAssets.Total)
	deltaCurrentAssets := closing.CurrentAssets.Total.Sub(opening.CurrentAssets.Total)
	deltaEquity := closing.Equity.Total.Sub(opening.Equity.Total)
	deltaResult := closing.AccumulatedResult.Sub(opening.AccumulatedResult)
	deltaFinancialLiabilities := closing.FinancialLiabilities.Total.Sub(opening.FinancialLiabilities.Total)
	deltaCurrentLiabilities := closing.CurrentLiabilities.Total.Sub(opening.CurrentLiabilities.Total)

	cf.Operating.Add("Self-financing capacity (CAFG)", cf.SelfFinancingCapacity)
	cf.Operating.Add("Change in current assets", deltaCurrentAssets.Neg())
	cf.Operating.Add("Change in current liabilities", deltaCurrentLiabilities)

	// Gross investment: the change in net fixed assets plus the depreciation
	// charged against them over the period.
	cf.Investing.Add("Acquisitions of fixed assets, net of disposals", deltaFixedAssets.Add(depreciation).Neg())

	cf.Financing.Add("Change in equity excluding the period result", deltaEquity.Sub(deltaResult))
	cf.Financing.Add("Change in financial liabilities", deltaFinancialLiabilities)

	cf.CashVariation = cf.Operating.Total.Add(cf.Investing.Total).Add(cf.Financing.Total)
	cf.CashStart = opening.CashPosition()
	cf.CashEnd = closing.CashPosition()
	cf.IsConsistent = cf.CashVariation.Equal(cf.CashEnd.Sub(cf.CashStart))
	return cf
}
