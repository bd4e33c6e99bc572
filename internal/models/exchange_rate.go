package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents a row of the exchange_rates table.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	FromCurrencyID string          `db:"from_currency_id"`
	ToCurrencyID   string          `db:"to_currency_id"`
	Rate           decimal.Decimal `db:"rate"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
