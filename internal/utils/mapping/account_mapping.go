package mapping

import (
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	"github.com/kvillagran/bancal_backend/internal/models"
)

// ToModelAccount converts a domain.Account to its storage model.
// The joined Currency is not part of the accounts table and is dropped.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:  d.AccountID,
		OwnerID:    d.OwnerID,
		CurrencyID: d.CurrencyID,
		Balance:    d.Balance,
		Status:     models.Status(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDomainAccount converts a storage model to a domain.Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:  m.AccountID,
		OwnerID:    m.OwnerID,
		CurrencyID: m.CurrencyID,
		Balance:    m.Balance,
		Status:     domain.Status(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToDomainAccountSlice converts a slice of storage models to domain accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
