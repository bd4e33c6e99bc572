package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
	"github.com/kvillagran/bancal_backend/internal/dto"
)

// RateResolverSvc resolves conversion multipliers between currencies.
type RateResolverSvc interface {
	// Rate returns the positive multiplier converting an amount quoted in
	// `from` into `to`. Identical currencies resolve to exactly 1. Fails with
	// services.ErrRateUnavailable when the pair cannot be priced.
	Rate(ctx context.Context, from, to *domain.Currency) (decimal.Decimal, error)
}

// ExchangeRateWriterSvc defines the administrative write operations feeding
// the rate source.
type ExchangeRateWriterSvc interface {
	// UpsertExchangeRate inserts or replaces the stored rate for a pair.
	UpsertExchangeRate(ctx context.Context, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error)

	// GetExchangeRate retrieves the stored or derived rate for a pair.
	GetExchangeRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines the resolver with its administrative surface.
type ExchangeRateSvcFacade interface {
	RateResolverSvc
	ExchangeRateWriterSvc
}
