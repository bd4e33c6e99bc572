package mapping

import (
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	"github.com/kvillagran/bancal_backend/internal/models"
)

// ToModelCurrency converts a domain.Currency to its storage model.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID: d.CurrencyID,
		Symbol:     d.Symbol,
		Name:       d.Name,
		Key:        d.Key,
		Status:     models.Status(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDomainCurrency converts a storage model to a domain.Currency.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID: m.CurrencyID,
		Symbol:     m.Symbol,
		Name:       m.Name,
		Key:        m.Key,
		Status:     domain.Status(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToDomainCurrencySlice converts a slice of storage models to domain currencies.
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
