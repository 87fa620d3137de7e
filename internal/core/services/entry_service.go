package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/syscompta/ledger/internal/apperrors"
	"github.com/syscompta/ledger/internal/core/domain"
	portsrepo "github.com/syscompta/ledger/internal/core/ports/repositories"
	portssvc "github.com/syscompta/ledger/internal/core/ports/services"
	"github.com/syscompta/ledger/internal/dto"
)

// entryService provides journal entry operations. Every write path funnels
// through the same validator so no invalid entry can reach Validated status.
type entryService struct {
	BaseService
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.EntrySvcFacade {
	return &entryService{entryRepo: entryRepo, accountRepo: accountRepo}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// validateEntry runs every rule and reports all violations at once. The
// returned error is non-nil only for infrastructure failures; rule failures
// come back in the ValidationErrors.
func (s *entryService) validateEntry(ctx context.Context, companyID string, entry domain.JournalEntry) (*domain.ValidationErrors, error) {
	verrs := &domain.ValidationErrors{}

	if len(entry.Lines) < 2 {
		verrs.Add(domain.ViolationTooFewLines, -1, "entry has %d line(s), at least 2 required", len(entry.Lines))
		return verrs, nil
	}

	numbers := make([]string, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		numbers = append(numbers, line.AccountNumber)
	}
	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, companyID, numbers)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry validation", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, line := range entry.Lines {
		account, found := accounts[line.AccountNumber]
		if !found {
			verrs.Add(domain.ViolationUnknownAccount, line.Order, "account %s does not exist", line.AccountNumber)
		} else if !account.IsActive {
			verrs.Add(domain.ViolationUnknownAccount, line.Order, "account %s is inactive", line.AccountNumber)
		}

		switch {
		case line.Debit.IsNegative() || line.Credit.IsNegative():
			verrs.Add(domain.ViolationNegativeAmount, line.Order, "line amounts must not be negative")
		case line.Debit.IsPositive() && line.Credit.IsPositive():
			verrs.Add(domain.ViolationMixedSides, line.Order, "line carries both a debit and a credit")
		case line.Debit.IsZero() && line.Credit.IsZero():
			verrs.Add(domain.ViolationEmptyLine, line.Order, "line carries neither a debit nor a credit")
		}
	}

	if debit, credit := entry.SumLines(); !debit.Equal(credit) {
		verrs.Add(domain.ViolationUnbalanced, -1, "debits sum to %s but credits sum to %s", debit.String(), credit.String())
	}

	return verrs, nil
}

// nextPieceNumber builds the auto-generated reference ECR-YYYYMM-NNNN, where
// NNNN is the one-based entry rank within the month.
func (s *entryService) nextPieceNumber(ctx context.Context, companyID string, date time.Time) (string, error) {
	count, err := s.entryRepo.CountEntriesForMonth(ctx, companyID, date.Year(), date.Month())
	if err != nil {
		return "", fmt.Errorf("failed to count entries for piece number: %w", err)
	}
	return fmt.Sprintf("ECR-%04d%02d-%04d", date.Year(), int(date.Month()), count+1), nil
}

// buildEntry assembles a domain entry from the request payload.
func buildEntry(companyID, reference string, date time.Time, label string, lineReqs []dto.CreateEntryLineRequest, userID string, now time.Time) domain.JournalEntry {
	entryID := uuid.NewString()
	lines := make([]domain.EntryLine, len(lineReqs))
	for i, lr := range lineReqs {
		order := lr.Order
		if order == 0 {
			order = i + 1
		}
		lines[i] = domain.EntryLine{
			LineID:        uuid.NewString(),
			EntryID:       entryID,
			AccountNumber: lr.AccountNumber,
			Debit:         lr.Debit,
			Credit:        lr.Credit,
			Label:         lr.Label,
			Order:         order,
		}
	}
	return domain.JournalEntry{
		EntryID:   entryID,
		CompanyID: companyID,
		Date:      date,
		Reference: reference,
		Label:     label,
		Status:    domain.EntryDraft,
		Lines:     lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// CreateEntry creates a new draft entry after validation.
func (s *entryService) CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	now := time.Now().UTC()

	reference := req.Reference
	if reference == "" {
		var err error
		reference, err = s.nextPieceNumber(ctx, companyID, req.Date)
		if err != nil {
			s.LogError(ctx, err, "Failed to generate piece number", slog.String("company_id", companyID))
			return nil, err
		}
	}

	entry := buildEntry(companyID, reference, req.Date, req.Label, req.Lines, creatorUserID, now)

	verrs, err := s.validateEntry(ctx, companyID, entry)
	if err != nil {
		return nil, err
	}
	if verrs.HasViolations() {
		return nil, verrs
	}
	entry.TotalDebit, entry.TotalCredit = entry.SumLines()

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.LogInfo(ctx, "Entry created", slog.String("entry_id", entry.EntryID), slog.String("reference", entry.Reference))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines. Entries of other companies
// come back as not found.
func (s *entryService) GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.CompanyID != companyID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListEntries retrieves a page of the company's entries, newest first.
// Status and date filters apply within the page.
func (s *entryService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	entries, nextToken, err := s.entryRepo.ListEntriesByCompany(ctx, companyID, limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{Entries: []dto.EntryResponse{}}
	for i := range entries {
		e := &entries[i]
		if params.Status != "" && string(e.Status) != params.Status {
			continue
		}
		if params.DateFrom != nil && e.Date.Before(*params.DateFrom) {
			continue
		}
		if params.DateTo != nil && e.Date.After(*params.DateTo) {
			continue
		}
		resp.Entries = append(resp.Entries, dto.ToEntryResponse(e))
	}
	if nextToken != nil {
		resp.NextToken = *nextToken
	}
	return resp, nil
}

// UpdateDraftEntry rewrites a draft entry wholesale after validation.
// Validated and Closed entries are immutable through this path.
func (s *entryService) UpdateDraftEntry(ctx context.Context, companyID, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	existing, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s, only drafts can be updated", apperrors.ErrConflict, entryID, existing.Status)
	}

	now := time.Now().UTC()
	updated := buildEntry(companyID, req.Reference, req.Date, req.Label, req.Lines, userID, now)
	updated.EntryID = existing.EntryID
	updated.Reference = req.Reference
	if updated.Reference == "" {
		updated.Reference = existing.Reference
	}
	for i := range updated.Lines {
		updated.Lines[i].EntryID = existing.EntryID
	}
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedBy = existing.CreatedBy

	verrs, err := s.validateEntry(ctx, companyID, updated)
	if err != nil {
		return nil, err
	}
	if verrs.HasViolations() {
		return nil, verrs
	}
	updated.TotalDebit, updated.TotalCredit = updated.SumLines()

	if err := s.entryRepo.ReplaceEntry(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to replace entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to replace entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Entry updated", slog.String("entry_id", entryID))
	return &updated, nil
}

// DeleteDraftEntry removes a draft entry and its lines. Posted entries can
// never be deleted.
func (s *entryService) DeleteDraftEntry(ctx context.Context, companyID, entryID string, userID string) error {
	existing, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	if existing.Status != domain.EntryDraft {
		return fmt.Errorf("%w: entry %s is %s, only drafts can be deleted", apperrors.ErrConflict, entryID, existing.Status)
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", userID))
	return nil
}

// CheckEntry runs the validator against a stored entry without changing it.
func (s *entryService) CheckEntry(ctx context.Context, companyID, entryID string) (*domain.ValidationErrors, error) {
	entry, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	return s.validateEntry(ctx, companyID, *entry)
}

// ValidateEntry moves a draft entry to Validated, recomputing its totals.
// The entry starts contributing to balances from this point on.
func (s *entryService) ValidateEntry(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s, only drafts can be validated", apperrors.ErrConflict, entryID, entry.Status)
	}

	verrs, err := s.validateEntry(ctx, companyID, *entry)
	if err != nil {
		return nil, err
	}
	if verrs.HasViolations() {
		return nil, verrs
	}

	return s.transition(ctx, entry, domain.EntryValidated, userID)
}

// ValidateAndPost creates an entry and validates it in one step.
func (s *entryService) ValidateAndPost(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entry, err := s.CreateEntry(ctx, companyID, req, creatorUserID)
	if err != nil {
		return nil, err
	}
	return s.ValidateEntry(ctx, companyID, entry.EntryID, creatorUserID)
}

// UnvalidateEntry reverts a Validated entry to Draft, pulling it out of
// balance computation. Closed entries cannot be reopened.
func (s *entryService) UnvalidateEntry(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryValidated {
		return nil, fmt.Errorf("%w: entry %s is %s, only validated entries can be reverted", apperrors.ErrConflict, entryID, entry.Status)
	}
	return s.transition(ctx, entry, domain.EntryDraft, userID)
}

// CloseEntry moves a Validated entry to Closed. Closed is final.
func (s *entryService) CloseEntry(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryValidated {
		return nil, fmt.Errorf("%w: entry %s is %s, only validated entries can be closed", apperrors.ErrConflict, entryID, entry.Status)
	}
	return s.transition(ctx, entry, domain.EntryClosed, userID)
}

// transition persists a status change with recomputed totals and returns the
// refreshed entry.
func (s *entryService) transition(ctx context.Context, entry *domain.JournalEntry, status domain.EntryStatus, userID string) (*domain.JournalEntry, error) {
	now := time.Now().UTC()
	debit, credit := entry.SumLines()
	if status == domain.EntryDraft {
		// Totals are only authoritative for posted entries.
		debit, credit = decimal.Zero, decimal.Zero
	}

	if err := s.entryRepo.UpdateEntryStatus(ctx, entry.EntryID, status, debit, credit, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to transition entry", slog.String("entry_id", entry.EntryID), slog.String("to_status", string(status)))
		return nil, fmt.Errorf("failed to transition entry %s to %s: %w", entry.EntryID, status, err)
	}

	entry.Status = status
	entry.TotalDebit = debit
	entry.TotalCredit = credit
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Entry transitioned", slog.String("entry_id", entry.EntryID), slog.String("status", string(status)))
	return entry, nil
}
