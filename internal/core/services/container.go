package services

import (
	"time"

	"github.com/shopspring/decimal"

	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
	portssvc "github.com/kvillagran/bancal_backend/internal/core/ports/services"
)

// RepositoryBundle holds the repository facades the services are built on.
type RepositoryBundle struct {
	Currency     portsrepo.CurrencyRepositoryFacade
	ExchangeRate portsrepo.ExchangeRateRepositoryFacade
	Account      portsrepo.AccountRepositoryFacade
	Transference portsrepo.TransferenceRepositoryFacade
}

// NewServiceContainer wires every service facade over the repositories.
func NewServiceContainer(repos RepositoryBundle, transferCeiling decimal.Decimal, cancelWindow time.Duration) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.Currency)
	rateSvc := NewExchangeRateService(repos.ExchangeRate)
	accountSvc := NewAccountService(repos.Account, repos.Currency)
	transferenceSvc := NewTransferenceService(repos.Transference, repos.Account, repos.Currency, rateSvc, transferCeiling, cancelWindow)

	return &portssvc.ServiceContainer{
		Currency:     currencySvc,
		ExchangeRate: rateSvc,
		Account:      accountSvc,
		Transference: transferenceSvc,
	}
}
