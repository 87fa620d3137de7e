package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/syscompta/ledger/internal/core/domain"
)

// EntryReader defines read operations for journal entries and their lines.
type EntryReader interface {
	// FindEntryByID retrieves one journal entry with its lines, ordered by
	// line order.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByCompany retrieves a paginated list of entries (without
	// lines) using token pagination, newest first.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListPostedLines retrieves every line of Validated or Closed entries
	// of a company dated on or before the given date. This is the feed for
	// balance computation.
	ListPostedLines(ctx context.Context, companyID string, through time.Time) ([]domain.PostedLine, error)

	// CountEntriesForMonth returns how many entries of the company are
	// dated in the given month. Used for piece number generation.
	CountEntriesForMonth(ctx context.Context, companyID string, year int, month time.Month) (int, error)
}

// EntryWriter defines write operations for journal entries.
type EntryWriter interface {
	// SaveEntry persists a new entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceEntry rewrites a draft entry's header and replaces its lines
	// wholesale, atomically.
	ReplaceEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryStatus transitions an entry and stores its recomputed
	// totals.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, totalDebit, totalCredit decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// DeleteEntry removes an entry and its lines atomically.
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
