package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
	"github.com/kvillagran/bancal_backend/internal/models"
	"github.com/kvillagran/bancal_backend/internal/utils/mapping"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

// SaveCurrency inserts a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (currency_id, symbol, name, key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCurr.CurrencyID,
		modelCurr.Symbol,
		modelCurr.Name,
		modelCurr.Key,
		modelCurr.Status,
		modelCurr.CreatedAt,
		modelCurr.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: currency with key %s already exists", apperrors.ErrDuplicate, modelCurr.Key)
		}
		return fmt.Errorf("failed to save currency %s: %w", modelCurr.CurrencyID, err)
	}
	return nil
}

const currencyColumns = `currency_id, symbol, name, key, status, created_at, updated_at`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyID,
		&m.Symbol,
		&m.Name,
		&m.Key,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// FindCurrencyByID retrieves a currency regardless of status.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_id = $1;`

	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by ID %s: %w", currencyID, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// FindActiveCurrencyByID retrieves a currency only when it is ACTIVE.
func (r *PgxCurrencyRepository) FindActiveCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_id = $1 AND status = $2;`

	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyID, models.Active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active currency by ID %s: %w", currencyID, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves a page of currencies ordered by key, with the total count.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, limit, page int) (int64, []domain.Currency, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM currencies;`).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("failed to count currencies: %w", err)
	}

	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY key LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	var modelCurrs []models.Currency
	for rows.Next() {
		m, err := scanCurrency(rows)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to scan currency row: %w", err)
		}
		modelCurrs = append(modelCurrs, m)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("failed to iterate currency rows: %w", err)
	}

	return total, mapping.ToDomainCurrencySlice(modelCurrs), nil
}

// UpdateCurrency updates the mutable display fields of a currency.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	query := `
		UPDATE currencies
		SET symbol = $2, name = $3, key = $4, updated_at = $5
		WHERE currency_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelCurr.CurrencyID,
		modelCurr.Symbol,
		modelCurr.Name,
		modelCurr.Key,
		modelCurr.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: currency with key %s already exists", apperrors.ErrDuplicate, modelCurr.Key)
		}
		return fmt.Errorf("failed to update currency %s: %w", modelCurr.CurrencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCurrency flips a currency to INACTIVE. Already-inactive
// currencies report ErrNotFound, matching the read path.
func (r *PgxCurrencyRepository) DeactivateCurrency(ctx context.Context, currencyID string, now time.Time) error {
	query := `
		UPDATE currencies
		SET status = $2, updated_at = $3
		WHERE currency_id = $1 AND status = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, currencyID, models.Inactive, now, models.Active)
	if err != nil {
		return fmt.Errorf("failed to deactivate currency %s: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
