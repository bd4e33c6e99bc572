package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
	portssvc "github.com/kvillagran/bancal_backend/internal/core/ports/services"
	"github.com/kvillagran/bancal_backend/internal/dto"
	"github.com/kvillagran/bancal_backend/internal/middleware"
)

type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewAccountService creates a new account ledger service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, currencyRepo: currencyRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// LoadAccount retrieves an active account with its currency attached.
// INACTIVE accounts behave as absent.
func (s *accountService) LoadAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindActiveAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a page of active accounts with the total count.
func (s *accountService) ListAccounts(ctx context.Context, limit, page int) (int64, []domain.Account, error) {
	total, accounts, err := s.accountRepo.ListAccounts(ctx, limit, page)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return total, accounts, nil
}

// ListAccountsByBalance ranks active accounts by balance, ascending or
// descending.
func (s *accountService) ListAccountsByBalance(ctx context.Context, ascending bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByBalance(ctx, ascending)
	if err != nil {
		return nil, fmt.Errorf("failed to rank accounts by balance: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// ListAccountsByUsage ranks active accounts by how many transferences they
// appear in, on either side.
func (s *accountService) ListAccountsByUsage(ctx context.Context, ascending bool) ([]domain.AccountUsage, error) {
	usage, err := s.accountRepo.ListAccountsByUsage(ctx, ascending)
	if err != nil {
		return nil, fmt.Errorf("failed to rank accounts by usage: %w", err)
	}
	if usage == nil {
		usage = []domain.AccountUsage{}
	}
	return usage, nil
}

// CreateAccount opens a new account in the given currency. The currency must
// be active, and the opening balance may not be negative.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.currencyRepo.FindActiveCurrencyByID(ctx, req.CurrencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("currency %s does not exist or is inactive", req.CurrencyID))
		}
		return nil, fmt.Errorf("failed to resolve currency for new account: %w", err)
	}

	if req.Balance.IsNegative() {
		return nil, apperrors.NewValidationError("opening balance cannot be negative")
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:  uuid.NewString(),
		OwnerID:    req.OwnerID,
		CurrencyID: currency.CurrencyID,
		Currency:   currency,
		Balance:    req.Balance,
		Status:     domain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("owner_id", req.OwnerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("currency_id", account.CurrencyID),
		slog.String("balance", account.Balance.String()))
	return &account, nil
}

// UpdateAccountCurrency redenominates an account into another active
// currency. The stored balance is kept as-is; only the denomination changes.
func (s *accountService) UpdateAccountCurrency(ctx context.Context, accountID string, req dto.UpdateAccountCurrencyRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindActiveAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}

	currency, err := s.currencyRepo.FindActiveCurrencyByID(ctx, req.CurrencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("currency %s does not exist or is inactive", req.CurrencyID))
		}
		return nil, fmt.Errorf("failed to resolve currency %s: %w", req.CurrencyID, err)
	}

	if account.CurrencyID == currency.CurrencyID {
		return account, nil
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountCurrency(ctx, accountID, currency.CurrencyID, now); err != nil {
		logger.Error("Failed to update account currency",
			slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account %s currency: %w", accountID, err)
	}

	account.CurrencyID = currency.CurrencyID
	account.Currency = currency
	account.UpdatedAt = now

	logger.Info("Account currency updated",
		slog.String("account_id", accountID), slog.String("currency_id", currency.CurrencyID))
	return account, nil
}

// DeactivateAccount soft-deletes an account. Its transference history stays
// queryable; the account just stops resolving for new transfers.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, time.Now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
