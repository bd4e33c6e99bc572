package dto

import (
	"time"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to register a new currency.
type CreateCurrencyRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Key    string `json:"key" binding:"required,uppercase,min=3,max=5"`
}

// UpdateCurrencyRequest defines the updatable display fields of a currency.
type UpdateCurrencyRequest struct {
	Symbol *string `json:"symbol"`
	Name   *string `json:"name"`
	Key    *string `json:"key" binding:"omitempty,uppercase,min=3,max=5"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID string    `json:"currencyID"`
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	Key        string    `json:"key"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ListCurrenciesResponse wraps a currency page with its total count.
type ListCurrenciesResponse struct {
	Total      int64              `json:"total"`
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToCurrencyResponse converts a domain.Currency to its response DTO.
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID: curr.CurrencyID,
		Symbol:     curr.Symbol,
		Name:       curr.Name,
		Key:        curr.Key,
		Status:     string(curr.Status),
		CreatedAt:  curr.CreatedAt,
		UpdatedAt:  curr.UpdatedAt,
	}
}

// ToCurrencyResponses converts a slice of domain currencies to response DTOs.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
