package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transference represents a row of the transferences table.
type Transference struct {
	TransferenceID    string          `db:"transference_id"`
	AccountGivenID    string          `db:"account_given"`
	AccountReceiverID string          `db:"account_receiver"`
	Quantity          decimal.Decimal `db:"quantity"`
	CurrencyID        string          `db:"currency_id"`
	Description       string          `db:"description"`
	AmountDebited     decimal.Decimal `db:"amount_debited"`
	AmountCredited    decimal.Decimal `db:"amount_credited"`
	Status            Status          `db:"status"`
	CreatedAt         time.Time       `db:"created_at"`
}
