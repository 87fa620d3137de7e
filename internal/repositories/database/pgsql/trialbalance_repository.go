package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syscompta/ledger/internal/apperrors"
	"github.com/syscompta/ledger/internal/core/domain"
	portsrepo "github.com/syscompta/ledger/internal/core/ports/repositories"
	"github.com/syscompta/ledger/internal/models"
	"github.com/syscompta/ledger/internal/utils/pagination"
)

type PgxTrialBalanceRepository struct {
	BaseRepository
}

// newPgxTrialBalanceRepository creates a new repository for trial balance
// data.
func newPgxTrialBalanceRepository(pool *pgxpool.Pool) portsrepo.TrialBalanceRepositoryFacade {
	return &PgxTrialBalanceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TrialBalanceRepositoryFacade = (*PgxTrialBalanceRepository)(nil)

func toDomainTrialBalance(m models.TrialBalance) domain.TrialBalance {
	return domain.TrialBalance{
		TrialBalanceID: m.TrialBalanceID,
		CompanyID:      m.CompanyID,
		StandardID:     m.StandardID,
		PeriodStart:    m.PeriodStart,
		PeriodEnd:      m.PeriodEnd,
		Status:         domain.TrialBalanceStatus(m.Status),
		TotalDebit:     m.TotalDebit,
		TotalCredit:    m.TotalCredit,
		IsBalanced:     m.IsBalanced,
		AccountCount:   m.AccountCount,
		MovementCount:  m.MovementCount,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const trialBalanceColumns = `trial_balance_id, company_id, standard_id, period_start, period_end, status, total_debit, total_credit, is_balanced, account_count, movement_count, created_at, created_by, last_updated_at, last_updated_by`

func scanTrialBalance(row pgx.Row) (models.TrialBalance, error) {
	var m models.TrialBalance
	err := row.Scan(
		&m.TrialBalanceID,
		&m.CompanyID,
		&m.StandardID,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IsBalanced,
		&m.AccountCount,
		&m.MovementCount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTrialBalance persists the trial balance and its account balances
// atomically. The unique index on (company_id, period_end) backs the
// one-per-date rule.
func (r *PgxTrialBalanceRepository) SaveTrialBalance(ctx context.Context, tb domain.TrialBalance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO trial_balances (` + trialBalanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		tb.TrialBalanceID,
		tb.CompanyID,
		tb.StandardID,
		tb.PeriodStart,
		tb.PeriodEnd,
		string(tb.Status),
		tb.TotalDebit,
		tb.TotalCredit,
		tb.IsBalanced,
		tb.AccountCount,
		tb.MovementCount,
		tb.CreatedAt,
		tb.CreatedBy,
		tb.LastUpdatedAt,
		tb.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: a trial balance already exists for %s", apperrors.ErrDuplicate, tb.PeriodEnd.Format(time.DateOnly))
		}
		return fmt.Errorf("failed to save trial balance %s: %w", tb.TrialBalanceID, err)
	}

	balanceQuery := `
		INSERT INTO account_balances (balance_id, trial_balance_id, account_number, account_name, class, nature,
		       opening_debit, opening_credit, movement_debit, movement_credit, movement_count, last_movement_date,
		       closing_debit, closing_credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, b := range tb.Balances {
		if _, err := tx.Exec(ctx, balanceQuery,
			b.BalanceID,
			tb.TrialBalanceID,
			b.AccountNumber,
			b.AccountName,
			b.Class,
			string(b.Nature),
			b.OpeningDebit,
			b.OpeningCredit,
			b.MovementDebit,
			b.MovementCredit,
			b.MovementCount,
			b.LastMovementDate,
			b.ClosingDebit,
			b.ClosingCredit,
		); err != nil {
			return fmt.Errorf("failed to save balance of account %s: %w", b.AccountNumber, err)
		}
	}
	return r.Commit(ctx, tx)
}

// FindTrialBalanceByID retrieves a trial balance with its account balances
// ordered by account number.
func (r *PgxTrialBalanceRepository) FindTrialBalanceByID(ctx context.Context, trialBalanceID string) (*domain.TrialBalance, error) {
	query := `
		SELECT ` + trialBalanceColumns + `
		FROM trial_balances
		WHERE trial_balance_id = $1;
	`
	m, err := scanTrialBalance(r.Pool.QueryRow(ctx, query, trialBalanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trial balance %s: %w", trialBalanceID, err)
	}
	tb := toDomainTrialBalance(m)

	balanceQuery := `
		SELECT balance_id, trial_balance_id, account_number, account_name, class, nature,
		       opening_debit, opening_credit, movement_debit, movement_credit, movement_count, last_movement_date,
		       closing_debit, closing_credit
		FROM account_balances
		WHERE trial_balance_id = $1
		ORDER BY account_number;
	`
	rows, err := r.Pool.Query(ctx, balanceQuery, trialBalanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances of trial balance %s: %w", trialBalanceID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bm models.AccountBalance
		if err := rows.Scan(
			&bm.BalanceID,
			&bm.TrialBalanceID,
			&bm.AccountNumber,
			&bm.AccountName,
			&bm.Class,
			&bm.Nature,
			&bm.OpeningDebit,
			&bm.OpeningCredit,
			&bm.MovementDebit,
			&bm.MovementCredit,
			&bm.MovementCount,
			&bm.LastMovementDate,
			&bm.ClosingDebit,
			&bm.ClosingCredit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance row of trial balance %s: %w", trialBalanceID, err)
		}
		tb.Balances = append(tb.Balances, domain.AccountBalance{
			BalanceID:        bm.BalanceID,
			TrialBalanceID:   bm.TrialBalanceID,
			AccountNumber:    bm.AccountNumber,
			AccountName:      bm.AccountName,
			Class:            bm.Class,
			Nature:           domain.AccountNature(bm.Nature),
			OpeningDebit:     bm.OpeningDebit,
			OpeningCredit:    bm.OpeningCredit,
			MovementDebit:    bm.MovementDebit,
			MovementCredit:   bm.MovementCredit,
			MovementCount:    bm.MovementCount,
			LastMovementDate: bm.LastMovementDate,
			ClosingDebit:     bm.ClosingDebit,
			ClosingCredit:    bm.ClosingCredit,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balances of trial balance %s: %w", trialBalanceID, err)
	}
	return &tb, nil
}

// ExistsForPeriodEnd reports whether the company already has a trial balance
// for the given asOfDate.
func (r *PgxTrialBalanceRepository) ExistsForPeriodEnd(ctx context.Context, companyID string, periodEnd time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM trial_balances WHERE company_id = $1 AND period_end = $2
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, companyID, periodEnd).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check trial balance existence: %w", err)
	}
	return exists, nil
}

// ListTrialBalancesByCompany retrieves a page of trial balances (without
// account balances) using keyset pagination, newest period first.
func (r *PgxTrialBalanceRepository) ListTrialBalancesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.TrialBalance, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + trialBalanceColumns + `
		FROM trial_balances
		WHERE company_id = $1
	`
	orderByClause := `ORDER BY period_end DESC, created_at DESC`

	args := []interface{}{companyID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastPeriodEnd, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (period_end, created_at) < ($2, $3) `
		args = append(args, lastPeriodEnd, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query trial balances for company "+companyID, err)
	}
	defer rows.Close()

	modelTBs := make([]models.TrialBalance, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTrialBalance(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan trial balance row for company "+companyID, scanErr)
		}
		modelTBs = append(modelTBs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating trial balance rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelTBs
	if len(modelTBs) > limit {
		last := modelTBs[limit-1]
		newToken := pagination.EncodeToken(last.PeriodEnd, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelTBs[:limit]
	}

	tbs := make([]domain.TrialBalance, len(results))
	for i, m := range results {
		tbs[i] = toDomainTrialBalance(m)
	}
	return tbs, nextTokenVal, nil
}

// UpdateTrialBalanceStatus transitions a trial balance.
func (r *PgxTrialBalanceRepository) UpdateTrialBalanceStatus(ctx context.Context, trialBalanceID string, status domain.TrialBalanceStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE trial_balances
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE trial_balance_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, trialBalanceID, string(status), updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status of trial balance %s: %w", trialBalanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
