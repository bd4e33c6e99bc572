package models

import "time"

// Currency represents a row of the currencies table.
type Currency struct {
	CurrencyID string    `db:"currency_id"`
	Symbol     string    `db:"symbol"`
	Name       string    `db:"name"`
	Key        string    `db:"key"`
	Status     Status    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
