package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
	portssvc "github.com/kvillagran/bancal_backend/internal/core/ports/services"
	"github.com/kvillagran/bancal_backend/internal/dto"
	"github.com/kvillagran/bancal_backend/internal/middleware"
)

// ErrRateUnavailable indicates no conversion path exists between two
// currencies, neither as a stored pair nor as the inverse of one.
var ErrRateUnavailable = errors.New("no exchange rate available for currency pair")

var one = decimal.NewFromInt(1)

type exchangeRateService struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new rate resolver service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// Rate resolves the multiplier that converts an amount denominated in from
// into to. Identical currencies resolve to exactly 1 without touching
// storage. A stored pair is preferred; failing that the inverse pair is
// inverted. Both orientations missing yields ErrRateUnavailable.
func (s *exchangeRateService) Rate(ctx context.Context, from, to *domain.Currency) (decimal.Decimal, error) {
	if from == nil || to == nil {
		return decimal.Zero, apperrors.NewValidationError("both currencies are required for rate resolution")
	}
	if from.CurrencyID == to.CurrencyID {
		return one, nil
	}

	direct, err := s.rateRepo.FindExchangeRate(ctx, from.CurrencyID, to.CurrencyID)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to resolve rate %s->%s: %w", from.Key, to.Key, err)
	}

	inverse, err := s.rateRepo.FindExchangeRate(ctx, to.CurrencyID, from.CurrencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, ErrRateUnavailable
		}
		return decimal.Zero, fmt.Errorf("failed to resolve inverse rate %s->%s: %w", to.Key, from.Key, err)
	}
	if inverse.Rate.IsZero() {
		return decimal.Zero, ErrRateUnavailable
	}
	return one.Div(inverse.Rate), nil
}

// GetExchangeRate returns the stored rate row for a directed pair.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCurrencyID, toCurrencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get exchange rate %s->%s: %w", fromCurrencyID, toCurrencyID, err)
	}
	return rate, nil
}

// UpsertExchangeRate creates or replaces the stored rate for a directed pair.
func (s *exchangeRateService) UpsertExchangeRate(ctx context.Context, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromCurrencyID == req.ToCurrencyID {
		return nil, apperrors.NewValidationError("cannot store a rate from a currency to itself")
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("rate must be greater than zero")
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrencyID: req.FromCurrencyID,
		ToCurrencyID:   req.ToCurrencyID,
		Rate:           req.Rate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.rateRepo.UpsertExchangeRate(ctx, rate); err != nil {
		logger.Error("Failed to upsert exchange rate",
			slog.String("from", req.FromCurrencyID), slog.String("to", req.ToCurrencyID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to upsert exchange rate: %w", err)
	}

	logger.Info("Exchange rate upserted",
		slog.String("from", req.FromCurrencyID), slog.String("to", req.ToCurrencyID), slog.String("rate", req.Rate.String()))
	return &rate, nil
}
