package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion multiplier between two currencies.
// Rate is always positive; a pair has at most one stored rate and the inverse
// direction is derived as 1/rate.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	FromCurrencyID string          `json:"fromCurrencyID"`
	ToCurrencyID   string          `json:"toCurrencyID"`
	Rate           decimal.Decimal `json:"rate"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
