package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindActiveAccountByID retrieves an ACTIVE account with its currency
	// populated. An INACTIVE account behaves as absent.
	FindActiveAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of ACTIVE accounts together with the total count.
	ListAccounts(ctx context.Context, limit, page int) (int64, []domain.Account, error)

	// ListAccountsByBalance retrieves all ACTIVE accounts ordered by balance.
	ListAccountsByBalance(ctx context.Context, ascending bool) ([]domain.Account, error)

	// ListAccountsByUsage retrieves all ACTIVE accounts ordered by the number
	// of transferences touching each account. Accounts with no activity
	// contribute a zero count.
	ListAccountsByUsage(ctx context.Context, ascending bool) ([]domain.AccountUsage, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountCurrency changes the account's denomination. Administrative
	// operation; the transfer path never calls it.
	UpdateAccountCurrency(ctx context.Context, accountID, currencyID string, now time.Time) error

	// DeactivateAccount soft-deletes an account by flipping it to INACTIVE.
	DeactivateAccount(ctx context.Context, accountID string, now time.Time) error
}

// AccountTxOperator exposes the row-locking balance operations used inside a
// unit of work. Both methods must be called with the transaction that owns
// the locks.
type AccountTxOperator interface {
	// FindAccountsByIDsForUpdate locks the account rows with SELECT ... FOR
	// UPDATE and returns their current state. Missing accounts produce
	// apperrors.ErrNotFound.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies signed balance deltas to the locked rows.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTxOperator
}
