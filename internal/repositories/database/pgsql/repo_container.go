package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kvillagran/bancal_backend/internal/core/services"
)

// NewRepositoryBundle wires every pgx repository over one connection pool.
func NewRepositoryBundle(dbPool *pgxpool.Pool) services.RepositoryBundle {
	accountRepo := newPgxAccountRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	transferenceRepo := newPgxTransferenceRepository(dbPool, accountRepo)

	return services.RepositoryBundle{
		Currency:     currencyRepo,
		ExchangeRate: exchangeRateRepo,
		Account:      accountRepo,
		Transference: transferenceRepo,
	}
}
