package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
	"github.com/kvillagran/bancal_backend/internal/models"
	"github.com/kvillagran/bancal_backend/internal/utils/mapping"
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

// FindExchangeRate retrieves the stored rate for the exact (from, to) pair.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, from_currency_id, to_currency_id, rate, created_at, updated_at
		FROM exchange_rates
		WHERE from_currency_id = $1 AND to_currency_id = $2;
	`
	var m models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCurrencyID, toCurrencyID).Scan(
		&m.ExchangeRateID,
		&m.FromCurrencyID,
		&m.ToCurrencyID,
		&m.Rate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s->%s: %w", fromCurrencyID, toCurrencyID, err)
	}

	domainRate := mapping.ToDomainExchangeRate(m)
	return &domainRate, nil
}

// UpsertExchangeRate inserts or replaces the rate for a currency pair. The
// pair is unique per direction, so replacing updates rate and updated_at only.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (exchange_rate_id, from_currency_id, to_currency_id, rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (from_currency_id, to_currency_id) DO UPDATE SET
			rate = EXCLUDED.rate,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID,
		m.FromCurrencyID,
		m.ToCurrencyID,
		m.Rate,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate %s->%s: %w", m.FromCurrencyID, m.ToCurrencyID, err)
	}
	return nil
}
