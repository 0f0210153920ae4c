package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guidutra-china/Impex-project-final-sub006/internal/apperrors"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/core/domain"
	portsrepo "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/repositories"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, base_currency_code, target_currency_code, rate, inverse_rate, rate_date, source, source_name, status, approved_by, approved_at, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (domain.ExchangeRate, error) {
	var er domain.ExchangeRate
	err := row.Scan(
		&er.ExchangeRateID,
		&er.BaseCurrencyCode,
		&er.TargetCurrencyCode,
		&er.Rate,
		&er.InverseRate,
		&er.Date,
		&er.Source,
		&er.SourceName,
		&er.Status,
		&er.ApprovedBy,
		&er.ApprovedAt,
		&er.Notes,
		&er.CreatedAt,
		&er.CreatedBy,
		&er.LastUpdatedAt,
		&er.LastUpdatedBy,
	)
	return er, err
}

// SaveExchangeRate inserts a rate row. Multiple rows per (base, target, date)
// triple are kept as history; a new row never overwrites an earlier one.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.ExchangeRateID,
		rate.BaseCurrencyCode,
		rate.TargetCurrencyCode,
		rate.Rate,
		rate.InverseRate,
		rate.Date,
		rate.Source,
		rate.SourceName,
		rate.Status,
		rate.ApprovedBy,
		rate.ApprovedAt,
		rate.Notes,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate %s/%s: %w", rate.BaseCurrencyCode, rate.TargetCurrencyCode, err)
	}
	return nil
}

// UpdateRateStatus moves a rate row between pending/approved/rejected.
func (r *PgxExchangeRateRepository) UpdateRateStatus(ctx context.Context, rateID string, status domain.RateStatus, reviewerUserID string, reviewedAt time.Time) error {
	query := `
		UPDATE exchange_rates
		SET status = $2, approved_by = $3, approved_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE exchange_rate_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, rateID, status, reviewerUserID, reviewedAt)
	if err != nil {
		return fmt.Errorf("failed to update rate status for %s: %w", rateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindLatestApprovedRate retrieves the most recent approved rate for the pair
// with date at or before onDate. Future-dated rows are never considered; when
// several approved rows share the newest date the most recently created wins.
func (r *PgxExchangeRateRepository) FindLatestApprovedRate(ctx context.Context, baseCode, targetCode string, onDate time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency_code = $1 AND target_currency_code = $2
		  AND status = $3 AND rate_date <= $4
		ORDER BY rate_date DESC, created_at DESC
		LIMIT 1;
	`
	er, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, baseCode, targetCode, domain.RateStatusApproved, onDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate %s/%s: %w", baseCode, targetCode, err)
	}
	return &er, nil
}

// GetExchangeRateByID retrieves an exchange rate row by its ID.
func (r *PgxExchangeRateRepository) GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`
	er, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get exchange rate %s: %w", rateID, err)
	}
	return &er, nil
}

// ListExchangeRates retrieves rate history, newest first, optionally filtered
// by one or both pair sides.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, baseCode, targetCode *string, limit, offset int) ([]domain.ExchangeRate, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1
	if baseCode != nil {
		where += fmt.Sprintf(" AND base_currency_code = $%d", argPos)
		args = append(args, *baseCode)
		argPos++
	}
	if targetCode != nil {
		where += fmt.Sprintf(" AND target_currency_code = $%d", argPos)
		args = append(args, *targetCode)
		argPos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM exchange_rates` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchange rates: %w", err)
	}

	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates` + where +
		fmt.Sprintf(` ORDER BY rate_date DESC, created_at DESC LIMIT $%d OFFSET $%d;`, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	return rates, total, nil
}
