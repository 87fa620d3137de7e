package domain

import (
	"github.com/shopspring/decimal"
)

// AccountNature groups accounts into the four broad natures used by
// financial reporting.
type AccountNature string

const (
	NatureAsset     AccountNature = "ACTIF"
	NatureLiability AccountNature = "PASSIF"
	NatureExpense   AccountNature = "CHARGES"
	NatureRevenue   AccountNature = "PRODUITS"
)

// Account represents one account of the chart of accounts. Its Number is the
// immutable identity; the leading digit is the account class (1-7).
type Account struct {
	AccountID      string          `json:"accountID"` // Primary key (UUID)
	CompanyID      string          `json:"companyID"`
	Number         string          `json:"number"` // Unique per company, first char 1-7
	Name           string          `json:"name"`
	IsActive       bool            `json:"isActive"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Signed; folded into opening figures once
	AuditFields
}

// Class returns the SYSCOHADA class digit (1-7) derived from the account
// number, or 0 when the number is malformed.
func (a Account) Class() int {
	return ClassOfNumber(a.Number)
}

// Nature returns the reporting nature of the account derived from its class.
func (a Account) Nature() AccountNature {
	switch a.Class() {
	case 6:
		return NatureExpense
	case 7:
		return NatureRevenue
	case 2, 3, 5:
		return NatureAsset
	default:
		// Classes 1 and 4 carry mostly equity/liability balances; statement
		// classification refines this per sub-range.
		return NatureLiability
	}
}

// ClassOfNumber derives the class digit from an account number, or 0 when
// the number does not start with a digit 1-7.
func ClassOfNumber(number string) int {
	if number == "" {
		return 0
	}
	c := number[0]
	if c < '1' || c > '7' {
		return 0
	}
	return int(c - '0')
}

// ValidAccountNumber reports whether the number is non-empty, all digits,
// and starts with a class digit 1-7.
func ValidAccountNumber(number string) bool {
	if ClassOfNumber(number) == 0 {
		return false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	return true
}
