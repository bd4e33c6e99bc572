package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
)

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindActiveCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, limit, page int) (int64, []domain.Currency, error) {
	args := m.Called(ctx, limit, page)
	if args.Get(1) == nil {
		return args.Get(0).(int64), nil, args.Error(2)
	}
	return args.Get(0).(int64), args.Get(1).([]domain.Currency), args.Error(2)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) DeactivateCurrency(ctx context.Context, currencyID string, now time.Time) error {
	args := m.Called(ctx, currencyID, now)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindActiveAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit, page int) (int64, []domain.Account, error) {
	args := m.Called(ctx, limit, page)
	if args.Get(1) == nil {
		return args.Get(0).(int64), nil, args.Error(2)
	}
	return args.Get(0).(int64), args.Get(1).([]domain.Account), args.Error(2)
}

func (m *MockAccountRepository) ListAccountsByBalance(ctx context.Context, ascending bool) ([]domain.Account, error) {
	args := m.Called(ctx, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUsage(ctx context.Context, ascending bool) ([]domain.AccountUsage, error) {
	args := m.Called(ctx, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountUsage), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountCurrency(ctx context.Context, accountID, currencyID string, now time.Time) error {
	args := m.Called(ctx, accountID, currencyID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, now time.Time) error {
	args := m.Called(ctx, accountID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, now)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---

type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyID, toCurrencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock TransferenceRepository ---

type MockTransferenceRepository struct {
	mock.Mock
}

var _ portsrepo.TransferenceRepositoryFacade = (*MockTransferenceRepository)(nil)

func (m *MockTransferenceRepository) FindTransferenceByID(ctx context.Context, transferenceID string) (*domain.Transference, error) {
	args := m.Called(ctx, transferenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transference), args.Error(1)
}

func (m *MockTransferenceRepository) ListTransferencesByAccount(ctx context.Context, accountID string, filter portsrepo.ListTransferencesFilter) (int64, []domain.Transference, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(1) == nil {
		return args.Get(0).(int64), nil, args.Error(2)
	}
	return args.Get(0).(int64), args.Get(1).([]domain.Transference), args.Error(2)
}

func (m *MockTransferenceRepository) SaveTransference(ctx context.Context, transference domain.Transference, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transference, balanceChanges)
	return args.Error(0)
}

func (m *MockTransferenceRepository) CancelTransference(ctx context.Context, transferenceID string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transferenceID, balanceChanges)
	return args.Error(0)
}
