package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
)

// Account represents a balance-holding account denominated in a single currency.
// Balance is always >= 0 at committed states; the mutation helpers below keep
// the invariant inside a unit of work, and the repository re-validates it
// under row locks before persisting.
type Account struct {
	AccountID  string          `json:"accountID"` // Primary Key (UUID)
	OwnerID    string          `json:"ownerID"`   // External user reference
	CurrencyID string          `json:"currencyID"`
	Currency   *Currency       `json:"currency,omitempty"` // Populated on load
	Balance    decimal.Decimal `json:"balance"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Debit decreases the balance by amount. It fails with ErrInsufficientFunds
// when the result would be negative, leaving the balance untouched.
func (a *Account) Debit(amount decimal.Decimal) error {
	newBalance := a.Balance.Sub(amount)
	if newBalance.IsNegative() {
		return apperrors.ErrInsufficientFunds
	}
	a.Balance = newBalance
	return nil
}

// Credit increases the balance by amount. No upper bound is enforced.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// AccountUsage pairs an account with the number of transferences that touched
// it. Accounts with no related activity carry a zero, not an error.
type AccountUsage struct {
	Account    Account `json:"account"`
	TotalUsage int64   `json:"totalUsage"`
}
