package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
	portssvc "github.com/kvillagran/bancal_backend/internal/core/ports/services"
	"github.com/kvillagran/bancal_backend/internal/dto"
	"github.com/kvillagran/bancal_backend/internal/middleware"
)

// currencyService is the currency directory: the authoritative set of active
// currencies. It knows nothing about accounts or transfers.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency directory service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// FindActiveCurrency retrieves a currency by id. INACTIVE currencies behave
// as absent so that new transfers cannot reference a retired currency.
func (s *currencyService) FindActiveCurrency(ctx context.Context, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindActiveCurrencyByID(ctx, currencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active currency %s: %w", currencyID, err)
	}
	return currency, nil
}

// ListCurrencies retrieves a page of currencies with the total count.
func (s *currencyService) ListCurrencies(ctx context.Context, limit, page int) (int64, []domain.Currency, error) {
	total, currencies, err := s.currencyRepo.ListCurrencies(ctx, limit, page)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		currencies = []domain.Currency{}
	}
	return total, currencies, nil
}

// CreateCurrency registers a new currency in the directory.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	currency := domain.Currency{
		CurrencyID: uuid.NewString(),
		Symbol:     req.Symbol,
		Name:       req.Name,
		Key:        req.Key,
		Status:     domain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		logger.Error("Failed to save currency", slog.String("key", req.Key), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	logger.Info("Currency created", slog.String("currency_id", currency.CurrencyID), slog.String("key", currency.Key))
	return &currency, nil
}

// UpdateCurrency updates the display fields of an existing currency.
func (s *currencyService) UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
		updated = true
	}
	if req.Name != nil {
		currency.Name = *req.Name
		updated = true
	}
	if req.Key != nil {
		currency.Key = *req.Key
		updated = true
	}
	if !updated {
		return currency, nil
	}

	currency.UpdatedAt = time.Now().UTC()
	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		logger.Error("Failed to update currency", slog.String("currency_id", currencyID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update currency %s: %w", currencyID, err)
	}

	logger.Info("Currency updated", slog.String("currency_id", currencyID))
	return currency, nil
}

// DeactivateCurrency soft-deletes a currency. Historical transferences keep
// referencing it; only new transfers stop resolving it.
func (s *currencyService) DeactivateCurrency(ctx context.Context, currencyID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.currencyRepo.DeactivateCurrency(ctx, currencyID, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to deactivate currency", slog.String("currency_id", currencyID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate currency %s: %w", currencyID, err)
	}

	logger.Info("Currency deactivated", slog.String("currency_id", currencyID))
	return nil
}
