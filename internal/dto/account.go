package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	OwnerID    string          `json:"ownerID" binding:"required"`
	CurrencyID string          `json:"currencyID" binding:"required,uuid"`
	Balance    decimal.Decimal `json:"balance" binding:"decimalgte0"`
}

// UpdateAccountCurrencyRequest changes an account's denomination.
// Administrative operation only.
type UpdateAccountCurrencyRequest struct {
	CurrencyID string `json:"currencyID" binding:"required,uuid"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID  string            `json:"accountID"`
	OwnerID    string            `json:"ownerID"`
	CurrencyID string            `json:"currencyID"`
	Currency   *CurrencyResponse `json:"currency,omitempty"`
	Balance    decimal.Decimal   `json:"balance"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// ListAccountsResponse wraps an account page with its total count.
type ListAccountsResponse struct {
	Total    int64             `json:"total"`
	Accounts []AccountResponse `json:"accounts"`
}

// AccountUsageResponse pairs an account with its transference count.
type AccountUsageResponse struct {
	Account    AccountResponse `json:"account"`
	TotalUsage int64           `json:"totalUsage"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:  acc.AccountID,
		OwnerID:    acc.OwnerID,
		CurrencyID: acc.CurrencyID,
		Balance:    acc.Balance,
		Status:     string(acc.Status),
		CreatedAt:  acc.CreatedAt,
		UpdatedAt:  acc.UpdatedAt,
	}
	if acc.Currency != nil {
		curr := ToCurrencyResponse(acc.Currency)
		resp.Currency = &curr
	}
	return resp
}

// ToAccountResponses converts a slice of domain accounts to response DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToAccountUsageResponses converts usage aggregates to response DTOs.
func ToAccountUsageResponses(usages []domain.AccountUsage) []AccountUsageResponse {
	res := make([]AccountUsageResponse, len(usages))
	for i := range usages {
		res[i] = AccountUsageResponse{
			Account:    ToAccountResponse(&usages[i].Account),
			TotalUsage: usages[i].TotalUsage,
		}
	}
	return res
}
