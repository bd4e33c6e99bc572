package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a row of the accounts table.
type Account struct {
	AccountID  string          `db:"account_id"`
	OwnerID    string          `db:"owner_id"`
	CurrencyID string          `db:"currency_id"`
	Balance    decimal.Decimal `db:"balance"`
	Status     Status          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
