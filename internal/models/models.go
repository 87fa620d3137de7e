// Package models holds the persistence-layer representations of the domain
// entities. They mirror the table columns; repositories map between these
// and the domain types.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}

// Account maps the accounts table.
type Account struct {
	AccountID      string
	CompanyID      string
	Number         string
	Name           string
	IsActive       bool
	OpeningBalance decimal.Decimal
	AuditFields
}

// JournalEntry maps the journal_entries table.
type JournalEntry struct {
	EntryID     string
	CompanyID   string
	EntryDate   time.Time
	Reference   string
	Label       string
	Status      string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	AuditFields
}

// EntryLine maps the entry_lines table.
type EntryLine struct {
	LineID        string
	EntryID       string
	AccountNumber string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Label         string
	LineOrder     int
}

// TrialBalance maps the trial_balances table.
type TrialBalance struct {
	TrialBalanceID string
	CompanyID      string
	StandardID     string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Status         string
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	IsBalanced     bool
	AccountCount   int
	MovementCount  int
	AuditFields
}

// AccountBalance maps the account_balances table.
type AccountBalance struct {
	BalanceID        string
	TrialBalanceID   string
	AccountNumber    string
	AccountName      string
	Class            int
	Nature           string
	OpeningDebit     decimal.Decimal
	OpeningCredit    decimal.Decimal
	MovementDebit    decimal.Decimal
	MovementCredit   decimal.Decimal
	MovementCount    int
	LastMovementDate *time.Time
	ClosingDebit     decimal.Decimal
	ClosingCredit    decimal.Decimal
}
