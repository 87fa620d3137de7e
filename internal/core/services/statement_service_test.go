package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/syscompta/ledger/internal/apperrors"
	"github.com/syscompta/ledger/internal/core/domain"
	portssvc "github.com/syscompta/ledger/internal/core/ports/services"
	"github.com/syscompta/ledger/internal/core/services"
)

type StatementServiceTestSuite struct {
	suite.Suite
	mockTBRepo      *MockTrialBalanceRepository
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.StatementSvcFacade
	ctx             context.Context

	companyID string
}

func (s *StatementServiceTestSuite) SetupTest() {
	s.mockTBRepo = new(MockTrialBalanceRepository)
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	registry := domain.NewStandardRegistry()
	tbSvc := services.NewTrialBalanceService(s.mockTBRepo, s.mockEntryRepo, s.mockAccountRepo, registry)
	s.service = services.NewStatementService(tbSvc, registry)
	s.ctx = context.Background()
	s.companyID = "company-1"
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// openingTrialBalance is the year-one snapshot: capital of 1000 fully held
// as cash, no activity yet.
func (s *StatementServiceTestSuite) openingTrialBalance() *domain.TrialBalance {
	tb := &domain.TrialBalance{
		TrialBalanceID: "tb-2023",
		CompanyID:      s.companyID,
		StandardID:     domain.SYSCOHADAStandardID,
		PeriodStart:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:         domain.TrialBalanceValidated,
		Balances: []domain.AccountBalance{
			{AccountNumber: "101", AccountName: "Capital", ClosingCredit: dec(1000)},
			{AccountNumber: "571", AccountName: "Caisse", ClosingDebit: dec(1000)},
		},
	}
	tb.RecomputeTotals()
	return tb
}

// closingTrialBalance reflects one year of activity on top of the opening
// snapshot: an equipment purchase for 400 cash, merchandise bought on credit
// for 300, cash sales of 900, staff paid 200 and depreciation of 100.
func (s *StatementServiceTestSuite) closingTrialBalance() *domain.TrialBalance {
	tb := &domain.TrialBalance{
		TrialBalanceID: "tb-2024",
		CompanyID:      s.companyID,
		StandardID:     domain.SYSCOHADAStandardID,
		PeriodStart:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:         domain.TrialBalanceValidated,
		Balances: []domain.AccountBalance{
			{AccountNumber: "101", AccountName: "Capital", OpeningCredit: dec(1000), ClosingCredit: dec(1000)},
			{AccountNumber: "215", AccountName: "Matériel", MovementDebit: dec(400), ClosingDebit: dec(400)},
			{AccountNumber: "281", AccountName: "Amortissements", MovementCredit: dec(100), ClosingCredit: dec(100)},
			{AccountNumber: "401", AccountName: "Fournisseurs", MovementCredit: dec(300), ClosingCredit: dec(300)},
			{AccountNumber: "571", AccountName: "Caisse", OpeningDebit: dec(1000), MovementDebit: dec(900), MovementCredit: dec(600), ClosingDebit: dec(1900), ClosingCredit: dec(600)},
			{AccountNumber: "601", AccountName: "Achats de marchandises", MovementDebit: dec(300), ClosingDebit: dec(300)},
			{AccountNumber: "661", AccountName: "Rémunérations", MovementDebit: dec(200), ClosingDebit: dec(200)},
			{AccountNumber: "681", AccountName: "Dotations aux amortissements", MovementDebit: dec(100), ClosingDebit: dec(100)},
			{AccountNumber: "701", AccountName: "Ventes de marchandises", MovementCredit: dec(900), ClosingCredit: dec(900)},
		},
	}
	tb.RecomputeTotals()
	return tb
}

func (s *StatementServiceTestSuite) TestBalanceSheet_IdentityHolds() {
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2024").Return(s.closingTrialBalance(), nil).Once()

	bs, err := s.service.BalanceSheet(s.ctx, s.companyID, "tb-2024")

	s.Require().NoError(err)
	// Fixed assets net of amortization: 400 - 100.
	s.True(bs.FixedAssets.Total.Equal(dec(300)))
	s.True(bs.CurrentAssets.Total.IsZero())
	s.True(bs.CashAssets.Total.Equal(dec(1300)))
	s.True(bs.TotalAssets.Equal(dec(1600)))

	// Equity = capital 1000 + period result 300 folded in as a synthetic line.
	s.True(bs.AccumulatedResult.Equal(dec(300)))
	s.True(bs.Equity.Total.Equal(dec(1300)))
	s.True(bs.CurrentLiabilities.Total.Equal(dec(300)))
	s.True(bs.TotalEquityAndLiabilities.Equal(dec(1600)))
	s.True(bs.IsBalanced)

	last := bs.Equity.Lines[len(bs.Equity.Lines)-1]
	s.Equal("13", last.AccountNumber)
	s.True(last.Amount.Equal(dec(300)))
	s.mockTBRepo.AssertExpectations(s.T())
}

func (s *StatementServiceTestSuite) TestBalanceSheet_NegativePositionStaysVisible() {
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2024").Return(s.closingTrialBalance(), nil).Once()

	bs, err := s.service.BalanceSheet(s.ctx, s.companyID, "tb-2024")

	s.Require().NoError(err)
	var amortization *domain.StatementLine
	for i := range bs.FixedAssets.Lines {
		if bs.FixedAssets.Lines[i].AccountNumber == "281" {
			amortization = &bs.FixedAssets.Lines[i]
		}
	}
	s.Require().NotNil(amortization)
	s.True(amortization.Amount.Equal(dec(-100)))
}

func (s *StatementServiceTestSuite) TestIncomeStatement_AggregateChain() {
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2024").Return(s.closingTrialBalance(), nil).Once()

	is, err := s.service.IncomeStatement(s.ctx, s.companyID, "tb-2024")

	s.Require().NoError(err)
	s.True(is.Bucket(domain.BucketMerchandiseSales).Equal(dec(900)))
	s.True(is.Bucket(domain.BucketMerchandisePurchases).Equal(dec(300)))
	s.True(is.GrossMargin.Equal(dec(600)))
	s.True(is.ValueAdded.Equal(dec(600)))
	s.True(is.OperatingSurplus.Equal(dec(400)))
	s.True(is.OperatingResult.Equal(dec(300)))
	s.True(is.FinancialResult.IsZero())
	s.True(is.ExceptionalResult.IsZero())
	s.True(is.PreTaxResult.Equal(dec(300)))
	s.True(is.NetResult.Equal(dec(300)))
	s.True(is.IsProfitable)

	// The chain must reconcile with the raw section totals.
	s.True(is.NetResult.Equal(is.TotalRevenue.Sub(is.TotalExpenses)))
	s.True(is.TotalRevenue.Equal(dec(900)))
	s.True(is.TotalExpenses.Equal(dec(600)))
}

func (s *StatementServiceTestSuite) TestCashFlowStatement_ConsistentAcrossAdjacentPeriods() {
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2023").Return(s.openingTrialBalance(), nil).Once()
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2024").Return(s.closingTrialBalance(), nil).Once()

	cf, err := s.service.CashFlowStatement(s.ctx, s.companyID, "tb-2023", "tb-2024")

	s.Require().NoError(err)
	// CAFG = net result 300 + depreciation 100.
	s.True(cf.SelfFinancingCapacity.Equal(dec(400)))
	// Operating: CAFG 400 + supplier credit growth 300.
	s.True(cf.Operating.Total.Equal(dec(700)))
	// Investing: gross equipment acquisitions of 400, as an outflow.
	s.True(cf.Investing.Total.Equal(dec(-400)))
	s.True(cf.Financing.Total.IsZero())

	s.True(cf.CashVariation.Equal(dec(300)))
	s.True(cf.CashStart.Equal(dec(1000)))
	s.True(cf.CashEnd.Equal(dec(1300)))
	s.True(cf.IsConsistent)
	s.mockTBRepo.AssertExpectations(s.T())
}

func (s *StatementServiceTestSuite) TestDeriveAll_BundlesConsistentStatements() {
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2023").Return(s.openingTrialBalance(), nil).Once()
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2024").Return(s.closingTrialBalance(), nil).Once()

	all, err := s.service.DeriveAll(s.ctx, s.companyID, "tb-2023", "tb-2024")

	s.Require().NoError(err)
	s.Require().NotNil(all.BalanceSheet)
	s.Require().NotNil(all.IncomeStatement)
	s.Require().NotNil(all.CashFlowStatement)
	s.True(all.BalanceSheet.IsBalanced)
	s.True(all.IncomeStatement.NetResult.Equal(dec(300)))
	s.True(all.CashFlowStatement.IsConsistent)
	// The balance sheet's folded result and the income statement agree.
	s.True(all.BalanceSheet.AccumulatedResult.Equal(all.IncomeStatement.NetResult))
	s.mockTBRepo.AssertExpectations(s.T())
}

func (s *StatementServiceTestSuite) TestCashFlowStatement_RejectsMixedStandards() {
	opening := s.openingTrialBalance()
	opening.StandardID = "OTHER"
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2023").Return(opening, nil).Once()
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2024").Return(s.closingTrialBalance(), nil).Once()

	_, err := s.service.CashFlowStatement(s.ctx, s.companyID, "tb-2023", "tb-2024")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *StatementServiceTestSuite) TestCashFlowStatement_RejectsOverlappingPeriods() {
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "tb-2024").Return(s.closingTrialBalance(), nil).Twice()

	_, err := s.service.CashFlowStatement(s.ctx, s.companyID, "tb-2024", "tb-2024")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *StatementServiceTestSuite) TestBalanceSheet_NotFoundPropagates() {
	s.mockTBRepo.On("FindTrialBalanceByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.BalanceSheet(s.ctx, s.companyID, "missing")

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}
