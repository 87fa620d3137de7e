package dto

import (
	"github.com/shopspring/decimal"

	"github.com/syscompta/ledger/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Number         string          `json:"number" binding:"required,accountnumber"`
	Name           string          `json:"name" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	Number         string          `json:"number"`
	Name           string          `json:"name"`
	Class          int             `json:"class"`
	Nature         string          `json:"nature"`
	IsActive       bool            `json:"isActive"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		Number:         a.Number,
		Name:           a.Name,
		Class:          a.Class(),
		Nature:         string(a.Nature()),
		IsActive:       a.IsActive,
		OpeningBalance: a.OpeningBalance,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
