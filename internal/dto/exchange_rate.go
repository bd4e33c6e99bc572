package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
)

// UpsertExchangeRateRequest defines the data needed to set a conversion rate.
type UpsertExchangeRateRequest struct {
	FromCurrencyID string          `json:"fromCurrencyID" binding:"required,uuid"`
	ToCurrencyID   string          `json:"toCurrencyID" binding:"required,uuid"`
	Rate           decimal.Decimal `json:"rate" binding:"decimalgt0"`
}

// ExchangeRateResponse defines the data returned for an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID,omitempty"`
	FromCurrencyID string          `json:"fromCurrencyID"`
	ToCurrencyID   string          `json:"toCurrencyID"`
	Rate           decimal.Decimal `json:"rate"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt,omitempty"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its response DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		FromCurrencyID: rate.FromCurrencyID,
		ToCurrencyID:   rate.ToCurrencyID,
		Rate:           rate.Rate,
		CreatedAt:      rate.CreatedAt,
		UpdatedAt:      rate.UpdatedAt,
	}
}
