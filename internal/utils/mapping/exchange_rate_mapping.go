package mapping

import (
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	"github.com/kvillagran/bancal_backend/internal/models"
)

// ToModelExchangeRate converts a domain.ExchangeRate to its storage model.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		FromCurrencyID: d.FromCurrencyID,
		ToCurrencyID:   d.ToCurrencyID,
		Rate:           d.Rate,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDomainExchangeRate converts a storage model to a domain.ExchangeRate.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		FromCurrencyID: m.FromCurrencyID,
		ToCurrencyID:   m.ToCurrencyID,
		Rate:           m.Rate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
