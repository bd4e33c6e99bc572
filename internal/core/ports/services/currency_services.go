package services

import (
	"context"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
	"github.com/kvillagran/bancal_backend/internal/dto"
)

// CurrencyReaderSvc defines read operations of the currency directory.
type CurrencyReaderSvc interface {
	// FindActiveCurrency retrieves a currency by id, treating INACTIVE
	// currencies as absent.
	FindActiveCurrency(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves a page of currencies and the total count.
	ListCurrencies(ctx context.Context, limit, page int) (int64, []domain.Currency, error)
}

// CurrencyWriterSvc defines the administrative write operations of the directory.
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error)

	// UpdateCurrency updates the display fields of a currency.
	UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest) (*domain.Currency, error)

	// DeactivateCurrency retires a currency; historical transferences keep
	// referencing it.
	DeactivateCurrency(ctx context.Context, currencyID string) error
}

// CurrencySvcFacade combines all currency directory interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
