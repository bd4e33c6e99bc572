package domain

import "time"

// Currency represents a supported currency in the directory.
type Currency struct {
	CurrencyID string    `json:"currencyID"` // Primary Key (UUID)
	Symbol     string    `json:"symbol"`     // Display glyph, e.g. "$"
	Name       string    `json:"name"`       // e.g. "US Dollar"
	Key        string    `json:"key"`        // ISO-like short code, e.g. "USD"
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
