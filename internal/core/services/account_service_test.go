package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portssvc "github.com/kvillagran/bancal_backend/internal/core/ports/services"
	"github.com/kvillagran/bancal_backend/internal/core/services"
	"github.com/kvillagran/bancal_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	accountRepo  *MockAccountRepository
	currencyRepo *MockCurrencyRepository
	service      portssvc.AccountSvcFacade
	ctx          context.Context

	usd *domain.Currency
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.accountRepo = new(MockAccountRepository)
	s.currencyRepo = new(MockCurrencyRepository)
	s.service = services.NewAccountService(s.accountRepo, s.currencyRepo)
	s.ctx = context.Background()

	s.usd = &domain.Currency{CurrencyID: uuid.NewString(), Symbol: "$", Name: "US Dollar", Key: "USD", Status: domain.StatusActive}
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestCreateAccount() {
	req := dto.CreateAccountRequest{OwnerID: "alice", CurrencyID: s.usd.CurrencyID, Balance: decimal.NewFromInt(100)}

	s.currencyRepo.On("FindActiveCurrencyByID", s.ctx, s.usd.CurrencyID).Return(s.usd, nil)
	s.accountRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.OwnerID == "alice" && a.Balance.Equal(decimal.NewFromInt(100)) && a.Status == domain.StatusActive
	})).Return(nil)

	account, err := s.service.CreateAccount(s.ctx, req)

	s.Require().NoError(err)
	s.NotEmpty(account.AccountID)
	s.Equal(s.usd.CurrencyID, account.CurrencyID)
	s.Require().NotNil(account.Currency)
	s.Equal("USD", account.Currency.Key)
	s.accountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_InactiveCurrencyRejected() {
	req := dto.CreateAccountRequest{OwnerID: "alice", CurrencyID: s.usd.CurrencyID}

	s.currencyRepo.On("FindActiveCurrencyByID", s.ctx, s.usd.CurrencyID).Return(nil, apperrors.ErrNotFound)

	_, err := s.service.CreateAccount(s.ctx, req)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.accountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestLoadAccount_InactiveIsAbsent() {
	id := uuid.NewString()
	s.accountRepo.On("FindActiveAccountByID", s.ctx, id).Return(nil, apperrors.ErrNotFound)

	_, err := s.service.LoadAccount(s.ctx, id)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestUpdateAccountCurrency() {
	account := &domain.Account{
		AccountID:  uuid.NewString(),
		OwnerID:    "alice",
		CurrencyID: s.usd.CurrencyID,
		Currency:   s.usd,
		Balance:    decimal.NewFromInt(50),
		Status:     domain.StatusActive,
	}
	eur := &domain.Currency{CurrencyID: uuid.NewString(), Key: "EUR", Status: domain.StatusActive}

	s.accountRepo.On("FindActiveAccountByID", s.ctx, account.AccountID).Return(account, nil)
	s.currencyRepo.On("FindActiveCurrencyByID", s.ctx, eur.CurrencyID).Return(eur, nil)
	s.accountRepo.On("UpdateAccountCurrency", s.ctx, account.AccountID, eur.CurrencyID, mock.AnythingOfType("time.Time")).Return(nil)

	updated, err := s.service.UpdateAccountCurrency(s.ctx, account.AccountID, dto.UpdateAccountCurrencyRequest{CurrencyID: eur.CurrencyID})

	s.Require().NoError(err)
	s.Equal(eur.CurrencyID, updated.CurrencyID)
	// Redenomination keeps the stored balance untouched.
	s.True(updated.Balance.Equal(decimal.NewFromInt(50)))
}

func (s *AccountServiceTestSuite) TestUpdateAccountCurrency_SameCurrencyIsNoop() {
	account := &domain.Account{
		AccountID:  uuid.NewString(),
		CurrencyID: s.usd.CurrencyID,
		Currency:   s.usd,
		Status:     domain.StatusActive,
	}

	s.accountRepo.On("FindActiveAccountByID", s.ctx, account.AccountID).Return(account, nil)
	s.currencyRepo.On("FindActiveCurrencyByID", s.ctx, s.usd.CurrencyID).Return(s.usd, nil)

	_, err := s.service.UpdateAccountCurrency(s.ctx, account.AccountID, dto.UpdateAccountCurrencyRequest{CurrencyID: s.usd.CurrencyID})

	s.Require().NoError(err)
	s.accountRepo.AssertNotCalled(s.T(), "UpdateAccountCurrency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	id := uuid.NewString()
	s.accountRepo.On("DeactivateAccount", s.ctx, id, mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotFound)

	err := s.service.DeactivateAccount(s.ctx, id)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestListAccountsByBalance() {
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Balance: decimal.NewFromInt(10)},
		{AccountID: uuid.NewString(), Balance: decimal.NewFromInt(500)},
	}
	s.accountRepo.On("ListAccountsByBalance", s.ctx, true).Return(accounts, nil)

	result, err := s.service.ListAccountsByBalance(s.ctx, true)

	s.Require().NoError(err)
	s.Len(result, 2)
}

func (s *AccountServiceTestSuite) TestListAccountsByUsage_EmptyIsNotNil() {
	s.accountRepo.On("ListAccountsByUsage", s.ctx, false).Return(nil, nil)

	result, err := s.service.ListAccountsByUsage(s.ctx, false)

	s.Require().NoError(err)
	s.NotNil(result)
	s.Empty(result)
}
