package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Account      AccountSvcFacade
	Transference TransferenceSvcFacade
}
