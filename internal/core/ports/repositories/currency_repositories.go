package repositories

import (
	"context"
	"time"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
)

// CurrencyReader defines read operations for currency data.
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency regardless of status, for
	// historical display of settled transferences.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// FindActiveCurrencyByID retrieves a currency only when its status is
	// ACTIVE; a retired currency behaves as absent.
	FindActiveCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves a page of currencies together with the total count.
	ListCurrencies(ctx context.Context, limit, page int) (int64, []domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data.
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency updates the mutable display fields of a currency.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error

	// DeactivateCurrency soft-deletes a currency by flipping it to INACTIVE.
	DeactivateCurrency(ctx context.Context, currencyID string, now time.Time) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
