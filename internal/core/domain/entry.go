package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
// Transitions are one-way Draft -> Validated -> Closed, except that a
// Validated entry may be reverted to Draft. Closed entries are immutable.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryValidated EntryStatus = "VALIDATED"
	EntryClosed    EntryStatus = "CLOSED"
)

// EntryLine is one account-tagged debit or credit amount within a journal
// entry. Exactly one of Debit/Credit is strictly positive.
type EntryLine struct {
	LineID        string          `json:"lineID"` // Primary key (UUID)
	EntryID       string          `json:"entryID"`
	AccountNumber string          `json:"accountNumber"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Label         string          `json:"label"`
	Order         int             `json:"order"` // Stable display ordering
}

// JournalEntry represents a dated, multi-line double-entry transaction.
type JournalEntry struct {
	EntryID     string          `json:"entryID"` // Primary key (UUID)
	CompanyID   string          `json:"companyID"`
	Date        time.Time       `json:"date"`
	Reference   string          `json:"reference"` // Piece number, auto-generated when blank
	Label       string          `json:"label"`
	Status      EntryStatus     `json:"status"`
	Lines       []EntryLine     `json:"lines,omitempty"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`  // Recomputed on validation
	TotalCredit decimal.Decimal `json:"totalCredit"` // Recomputed on validation
	AuditFields
}

// SumLines returns the debit and credit sums across all lines.
func (e JournalEntry) SumLines() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether debit and credit line sums are exactly equal.
func (e JournalEntry) IsBalanced() bool {
	d, c := e.SumLines()
	return d.Equal(c)
}

// IsPosted reports whether the entry contributes to balances, i.e. it has
// been validated or closed.
func (e JournalEntry) IsPosted() bool {
	return e.Status == EntryValidated || e.Status == EntryClosed
}

// PostedLine is the read-model fed to balance computation: one line of a
// Validated or Closed entry together with the entry's date.
type PostedLine struct {
	AccountNumber string
	EntryDate     time.Time
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}
