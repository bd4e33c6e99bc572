package repositories

import (
	"context"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the stored rate for the exact (from, to)
	// pair. The resolver derives the inverse direction itself.
	FindExchangeRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// UpsertExchangeRate inserts or replaces the rate for a currency pair.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
