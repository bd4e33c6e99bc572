package services

import (
	"context"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
	"github.com/kvillagran/bancal_backend/internal/dto"
)

// AccountReaderSvc defines read operations of the account ledger.
type AccountReaderSvc interface {
	// LoadAccount retrieves an ACTIVE account with its currency populated;
	// an INACTIVE account behaves as absent to the transfer path.
	LoadAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of ACTIVE accounts and the total count.
	ListAccounts(ctx context.Context, limit, page int) (int64, []domain.Account, error)

	// ListAccountsByBalance retrieves ACTIVE accounts ordered by balance.
	ListAccountsByBalance(ctx context.Context, ascending bool) ([]domain.Account, error)

	// ListAccountsByUsage retrieves ACTIVE accounts ordered by transference count.
	ListAccountsByUsage(ctx context.Context, ascending bool) ([]domain.AccountUsage, error)
}

// AccountWriterSvc defines the administrative write operations of the ledger.
type AccountWriterSvc interface {
	// CreateAccount persists a new account denominated in an active currency.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccountCurrency changes the account's denomination. This is the
	// only path that may do so; transfers never touch it.
	UpdateAccountCurrency(ctx context.Context, accountID string, req dto.UpdateAccountCurrencyRequest) (*domain.Account, error)

	// DeactivateAccount retires an account.
	DeactivateAccount(ctx context.Context, accountID string) error
}

// AccountSvcFacade combines all account ledger interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
