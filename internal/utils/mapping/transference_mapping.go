package mapping

import (
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	"github.com/kvillagran/bancal_backend/internal/models"
)

// ToModelTransference converts a domain.Transference to its storage model.
func ToModelTransference(d domain.Transference) models.Transference {
	return models.Transference{
		TransferenceID:    d.TransferenceID,
		AccountGivenID:    d.AccountGivenID,
		AccountReceiverID: d.AccountReceiverID,
		Quantity:          d.Quantity,
		CurrencyID:        d.CurrencyID,
		Description:       d.Description,
		AmountDebited:     d.AmountDebited,
		AmountCredited:    d.AmountCredited,
		Status:            models.Status(d.Status),
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainTransference converts a storage model to a domain.Transference.
func ToDomainTransference(m models.Transference) domain.Transference {
	return domain.Transference{
		TransferenceID:    m.TransferenceID,
		AccountGivenID:    m.AccountGivenID,
		AccountReceiverID: m.AccountReceiverID,
		Quantity:          m.Quantity,
		CurrencyID:        m.CurrencyID,
		Description:       m.Description,
		AmountDebited:     m.AmountDebited,
		AmountCredited:    m.AmountCredited,
		Status:            domain.Status(m.Status),
		CreatedAt:         m.CreatedAt,
	}
}

// ToDomainTransferenceSlice converts a slice of storage models to domain transferences.
func ToDomainTransferenceSlice(ms []models.Transference) []domain.Transference {
	ds := make([]domain.Transference, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransference(m)
	}
	return ds
}
