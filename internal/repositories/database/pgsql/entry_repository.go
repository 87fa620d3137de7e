package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/syscompta/ledger/internal/apperrors"
	"github.com/syscompta/ledger/internal/core/domain"
	portsrepo "github.com/syscompta/ledger/internal/core/ports/repositories"
	"github.com/syscompta/ledger/internal/models"
	"github.com/syscompta/ledger/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func toDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		CompanyID:   m.CompanyID,
		Date:        m.EntryDate,
		Reference:   m.Reference,
		Label:       m.Label,
		Status:      domain.EntryStatus(m.Status),
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const entryColumns = `entry_id, company_id, entry_date, reference, label, status, total_debit, total_credit, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryDate,
		&m.Reference,
		&m.Label,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertLines writes the given entry lines inside the transaction.
func insertLines(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.EntryLine) error {
	query := `
		INSERT INTO entry_lines (line_id, entry_id, account_number, debit, credit, label, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range lines {
		if _, err := tx.Exec(ctx, query,
			line.LineID,
			entryID,
			line.AccountNumber,
			line.Debit,
			line.Credit,
			line.Label,
			line.Order,
		); err != nil {
			return fmt.Errorf("failed to insert entry line %d: %w", line.Order, err)
		}
	}
	return nil
}

// SaveEntry persists a new entry and its lines atomically.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		entry.EntryID,
		entry.CompanyID,
		entry.Date,
		entry.Reference,
		entry.Label,
		string(entry.Status),
		entry.TotalDebit,
		entry.TotalCredit,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry %s already exists", apperrors.ErrDuplicate, entry.EntryID)
		}
		return fmt.Errorf("failed to save entry %s: %w", entry.EntryID, err)
	}

	if err := insertLines(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceEntry rewrites a draft entry's header and replaces its lines
// wholesale, atomically.
func (r *PgxEntryRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET entry_date = $2, reference = $3, label = $4, total_debit = $5, total_credit = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.Date,
		entry.Reference,
		entry.Label,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to clear entry lines for %s: %w", entry.EntryID, err)
	}
	if err := insertLines(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves one entry with its lines ordered by line order.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	entry := toDomainEntry(m)

	lineQuery := `
		SELECT line_id, entry_id, account_number, debit, credit, label, line_order
		FROM entry_lines
		WHERE entry_id = $1
		ORDER BY line_order;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of entry %s: %w", entryID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var lm models.EntryLine
		if err := rows.Scan(&lm.LineID, &lm.EntryID, &lm.AccountNumber, &lm.Debit, &lm.Credit, &lm.Label, &lm.LineOrder); err != nil {
			return nil, fmt.Errorf("failed to scan line of entry %s: %w", entryID, err)
		}
		entry.Lines = append(entry.Lines, domain.EntryLine{
			LineID:        lm.LineID,
			EntryID:       lm.EntryID,
			AccountNumber: lm.AccountNumber,
			Debit:         lm.Debit,
			Credit:        lm.Credit,
			Label:         lm.Label,
			Order:         lm.LineOrder,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lines of entry %s: %w", entryID, err)
	}
	return &entry, nil
}

// ListEntriesByCompany retrieves a page of entries (without lines) using
// keyset pagination, newest first.
func (r *PgxEntryRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1
	`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{companyID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($2, $3) `
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for company "+companyID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		newToken := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = toDomainEntry(m)
	}
	return entries, nextTokenVal, nil
}

// ListPostedLines retrieves every line of Validated or Closed entries dated
// on or before the given date. This feeds balance computation.
func (r *PgxEntryRepository) ListPostedLines(ctx context.Context, companyID string, through time.Time) ([]domain.PostedLine, error) {
	query := `
		SELECT l.account_number, e.entry_date, l.debit, l.credit
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1
		  AND e.status IN ('VALIDATED', 'CLOSED')
		  AND e.entry_date <= $2
		ORDER BY e.entry_date, l.line_order;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, through)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.PostedLine, 0)
	for rows.Next() {
		var line domain.PostedLine
		if err := rows.Scan(&line.AccountNumber, &line.EntryDate, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan posted line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted lines: %w", err)
	}
	return lines, nil
}

// CountEntriesForMonth returns how many entries of the company are dated in
// the given month.
func (r *PgxEntryRepository) CountEntriesForMonth(ctx context.Context, companyID string, year int, month time.Month) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries
		WHERE company_id = $1
		  AND EXTRACT(YEAR FROM entry_date) = $2
		  AND EXTRACT(MONTH FROM entry_date) = $3;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID, year, int(month)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries for %d-%02d: %w", year, int(month), err)
	}
	return count, nil
}

// UpdateEntryStatus transitions an entry and stores its recomputed totals.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, totalDebit, totalCredit decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, total_debit = $3, total_credit = $4, last_updated_by = $5, last_updated_at = $6
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, string(status), totalDebit, totalCredit, updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes an entry and its lines atomically.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}
