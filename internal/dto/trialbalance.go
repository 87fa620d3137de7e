package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/syscompta/ledger/internal/core/domain"
)

// GenerateTrialBalanceRequest defines the payload for generating a trial
// balance over an accounting period.
type GenerateTrialBalanceRequest struct {
	StandardID  string    `json:"standardId"`
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
}

// ListTrialBalancesParams carries the query parameters for listing trial
// balances.
type ListTrialBalancesParams struct {
	Status    string `form:"status"`
	Limit     int    `form:"limit"`
	NextToken string `form:"nextToken"`
}

// AccountBalanceResponse defines the data returned for one account line of
// a trial balance.
type AccountBalanceResponse struct {
	AccountNumber    string          `json:"accountNumber"`
	AccountName      string          `json:"accountName"`
	Class            int             `json:"class"`
	Nature           string          `json:"nature"`
	OpeningDebit     decimal.Decimal `json:"openingDebit"`
	OpeningCredit    decimal.Decimal `json:"openingCredit"`
	MovementDebit    decimal.Decimal `json:"movementDebit"`
	MovementCredit   decimal.Decimal `json:"movementCredit"`
	MovementCount    int             `json:"movementCount"`
	LastMovementDate *time.Time      `json:"lastMovementDate,omitempty"`
	ClosingDebit     decimal.Decimal `json:"closingDebit"`
	ClosingCredit    decimal.Decimal `json:"closingCredit"`
}

// TrialBalanceResponse defines the data returned for a trial balance.
type TrialBalanceResponse struct {
	TrialBalanceID string                   `json:"trialBalanceId"`
	StandardID     string                   `json:"standardId"`
	PeriodStart    time.Time                `json:"periodStart"`
	PeriodEnd      time.Time                `json:"periodEnd"`
	Status         string                   `json:"status"`
	TotalDebit     decimal.Decimal          `json:"totalDebit"`
	TotalCredit    decimal.Decimal          `json:"totalCredit"`
	IsBalanced     bool                     `json:"isBalanced"`
	AccountCount   int                      `json:"accountCount"`
	MovementCount  int                      `json:"movementCount"`
	Balances       []AccountBalanceResponse `json:"balances,omitempty"`
	GeneratedAt    time.Time                `json:"generatedAt"`
}

// ListTrialBalancesResponse wraps a page of trial balances with the
// continuation token.
type ListTrialBalancesResponse struct {
	TrialBalances []TrialBalanceResponse `json:"trialBalances"`
	NextToken     string                 `json:"nextToken,omitempty"`
}

// ToAccountBalanceResponse converts one domain.AccountBalance to its
// response DTO.
func ToAccountBalanceResponse(b domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountNumber:    b.AccountNumber,
		AccountName:      b.AccountName,
		Class:            b.Class,
		Nature:           string(b.Nature),
		OpeningDebit:     b.OpeningDebit,
		OpeningCredit:    b.OpeningCredit,
		MovementDebit:    b.MovementDebit,
		MovementCredit:   b.MovementCredit,
		MovementCount:    b.MovementCount,
		LastMovementDate: b.LastMovementDate,
		ClosingDebit:     b.ClosingDebit,
		ClosingCredit:    b.ClosingCredit,
	}
}

// ToBalancesByClassResponse converts the class-grouped view of a trial
// balance's account balances.
func ToBalancesByClassResponse(t *domain.TrialBalance) map[int][]AccountBalanceResponse {
	grouped := make(map[int][]AccountBalanceResponse)
	for class, balances := range t.BalancesByClass() {
		out := make([]AccountBalanceResponse, len(balances))
		for i, b := range balances {
			out[i] = ToAccountBalanceResponse(b)
		}
		grouped[class] = out
	}
	return grouped
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its response
// DTO. Balances are included only when loaded.
func ToTrialBalanceResponse(t *domain.TrialBalance) TrialBalanceResponse {
	balances := make([]AccountBalanceResponse, len(t.Balances))
	for i, b := range t.Balances {
		balances[i] = ToAccountBalanceResponse(b)
	}
	return TrialBalanceResponse{
		TrialBalanceID: t.TrialBalanceID,
		StandardID:     t.StandardID,
		PeriodStart:    t.PeriodStart,
		PeriodEnd:      t.PeriodEnd,
		Status:         string(t.Status),
		TotalDebit:     t.TotalDebit,
		TotalCredit:    t.TotalCredit,
		IsBalanced:     t.IsBalanced,
		AccountCount:   t.AccountCount,
		MovementCount:  t.MovementCount,
		Balances:       balances,
		GeneratedAt:    t.CreatedAt,
	}
}
