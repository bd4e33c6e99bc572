package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transference is the permanent audit record of a settled transfer.
//
// Quantity is expressed in the quote currency (CurrencyID); AmountDebited and
// AmountCredited are the converted amounts actually applied to each account's
// balance at settlement, in that account's own currency. Cancellation reverses
// those stored amounts so that both balances are restored exactly even when
// the two conversion rates differ.
type Transference struct {
	TransferenceID    string          `json:"transferenceID"` // Primary Key (UUID)
	AccountGivenID    string          `json:"accountGiven"`   // Debited account
	AccountReceiverID string          `json:"accountReceiver"`
	Quantity          decimal.Decimal `json:"quantity"` // Quote-currency amount
	CurrencyID        string          `json:"currency"` // Quote currency
	Description       string          `json:"description,omitempty"`
	AmountDebited     decimal.Decimal `json:"amountDebited"`
	AmountCredited    decimal.Decimal `json:"amountCredited"`
	Status            Status          `json:"status"` // ACTIVE = settled, INACTIVE = cancelled
	CreatedAt         time.Time       `json:"createdAt"`
}
