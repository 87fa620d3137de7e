package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/syscompta/ledger/internal/core/domain"
)

// CreateEntryLineRequest defines one line of a journal entry payload.
type CreateEntryLineRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,accountnumber"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Label         string          `json:"label"`
	Order         int             `json:"order"`
}

// CreateEntryRequest defines the payload for creating a journal entry.
type CreateEntryRequest struct {
	Date      time.Time                `json:"date" binding:"required"`
	Reference string                   `json:"reference"`
	Label     string                   `json:"label" binding:"required"`
	Lines     []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest defines the payload for rewriting a draft entry.
// The line set replaces the stored one wholesale.
type UpdateEntryRequest struct {
	Date      time.Time                `json:"date" binding:"required"`
	Reference string                   `json:"reference"`
	Label     string                   `json:"label" binding:"required"`
	Lines     []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListEntriesParams carries the query parameters for listing entries.
type ListEntriesParams struct {
	Status    string     `form:"status"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit     int        `form:"limit"`
	NextToken string     `form:"nextToken"`
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineID        string          `json:"lineId"`
	AccountNumber string          `json:"accountNumber"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Label         string          `json:"label"`
	Order         int             `json:"order"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string              `json:"entryId"`
	Date        time.Time           `json:"date"`
	Reference   string              `json:"reference"`
	Label       string              `json:"label"`
	Status      string              `json:"status"`
	TotalDebit  decimal.Decimal     `json:"totalDebit"`
	TotalCredit decimal.Decimal     `json:"totalCredit"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ListEntriesResponse wraps a page of entries with the continuation token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken string          `json:"nextToken,omitempty"`
}

// ValidationReportResponse reports the outcome of checking an entry.
type ValidationReportResponse struct {
	EntryID    string              `json:"entryId"`
	IsValid    bool                `json:"isValid"`
	Violations []ViolationResponse `json:"violations"`
}

// ViolationResponse describes one validation violation.
type ViolationResponse struct {
	Code      string `json:"code"`
	LineOrder int    `json:"lineOrder,omitempty"`
	Message   string `json:"message"`
}

// ToEntryResponse converts a domain.JournalEntry to its response DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:        l.LineID,
			AccountNumber: l.AccountNumber,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Label:         l.Label,
			Order:         l.Order,
		}
	}
	return EntryResponse{
		EntryID:     e.EntryID,
		Date:        e.Date,
		Reference:   e.Reference,
		Label:       e.Label,
		Status:      string(e.Status),
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
	}
}

// ToValidationReportResponse converts check results to the report DTO.
func ToValidationReportResponse(entryID string, verrs *domain.ValidationErrors) ValidationReportResponse {
	report := ValidationReportResponse{EntryID: entryID, IsValid: true, Violations: []ViolationResponse{}}
	if verrs == nil {
		return report
	}
	for _, v := range verrs.Violations {
		report.Violations = append(report.Violations, ViolationResponse{
			Code:      string(v.Code),
			LineOrder: v.LineOrder,
			Message:   v.Message,
		})
	}
	report.IsValid = !verrs.HasViolations()
	return report
}
