package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
)

// CreateTransferenceRequest defines the inbound transfer request. Quantity is
// expressed in the quote currency identified by Currency.
type CreateTransferenceRequest struct {
	AccountGiven    string          `json:"accountGiven" binding:"required,uuid"`
	AccountReceiver string          `json:"accountReceiver" binding:"required,uuid"`
	Quantity        decimal.Decimal `json:"quantity" binding:"decimalgt0"`
	Currency        string          `json:"currency" binding:"required,uuid"`
	Description     string          `json:"description" binding:"max=255"`
}

// ListTransferencesParams narrows the per-account transference listing.
type ListTransferencesParams struct {
	Limit      int     `form:"limit"`
	Page       int     `form:"page"`
	CurrencyID *string `form:"currency" binding:"omitempty,uuid"`
}

// TransferenceResponse defines the data returned for a transference.
type TransferenceResponse struct {
	TransferenceID  string          `json:"transferenceID"`
	AccountGiven    string          `json:"accountGiven"`
	AccountReceiver string          `json:"accountReceiver"`
	Quantity        decimal.Decimal `json:"quantity"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description,omitempty"`
	AmountDebited   decimal.Decimal `json:"amountDebited"`
	AmountCredited  decimal.Decimal `json:"amountCredited"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListTransferencesResponse wraps a transference page with its total count.
type ListTransferencesResponse struct {
	Total         int64                  `json:"total"`
	Transferences []TransferenceResponse `json:"transferences"`
}

// ToTransferenceResponse converts a domain.Transference to its response DTO.
func ToTransferenceResponse(t *domain.Transference) TransferenceResponse {
	return TransferenceResponse{
		TransferenceID:  t.TransferenceID,
		AccountGiven:    t.AccountGivenID,
		AccountReceiver: t.AccountReceiverID,
		Quantity:        t.Quantity,
		Currency:        t.CurrencyID,
		Description:     t.Description,
		AmountDebited:   t.AmountDebited,
		AmountCredited:  t.AmountCredited,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
	}
}

// ToTransferenceResponses converts a slice of domain transferences.
func ToTransferenceResponses(ts []domain.Transference) []TransferenceResponse {
	res := make([]TransferenceResponse, len(ts))
	for i := range ts {
		res[i] = ToTransferenceResponse(&ts[i])
	}
	return res
}
