package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
	portssvc "github.com/kvillagran/bancal_backend/internal/core/ports/services"
	"github.com/kvillagran/bancal_backend/internal/dto"
	"github.com/kvillagran/bancal_backend/internal/middleware"
)

// Engine-level sentinels. Handlers map these to HTTP statuses with errors.Is.
var (
	// ErrSelfTransferNotAllowed indicates the giver and receiver are the same account.
	ErrSelfTransferNotAllowed = errors.New("cannot transfer funds to the same account")
	// ErrCurrencyNotFound indicates the quote currency does not exist or is inactive.
	ErrCurrencyNotFound = errors.New("currency not found")
	// ErrAccountNotFound indicates one of the accounts does not exist or is inactive.
	ErrAccountNotFound = errors.New("account not found")
	// ErrTransferLimitExceeded indicates the quantity exceeds the per-transfer ceiling.
	ErrTransferLimitExceeded = errors.New("transfer quantity exceeds the allowed limit")
	// ErrTransferenceNotFound indicates the transference does not exist or is
	// no longer ACTIVE. An already-cancelled transference reports this too,
	// which is what makes repeated cancellation harmless.
	ErrTransferenceNotFound = errors.New("transference not found")
	// ErrCancellationExpired indicates the cancellation window has closed.
	ErrCancellationExpired = errors.New("transference can no longer be cancelled")
)

// transferenceService is the funds-transfer engine. It is the only component
// that moves balances, and it always does so through a single unit of work in
// the repository layer.
type transferenceService struct {
	transferenceRepo portsrepo.TransferenceRepositoryFacade
	accountRepo      portsrepo.AccountRepositoryFacade
	currencyRepo     portsrepo.CurrencyRepositoryFacade
	rateResolver     portssvc.RateResolverSvc
	transferCeiling  decimal.Decimal
	cancelWindow     time.Duration
}

// NewTransferenceService creates the funds-transfer engine. transferCeiling
// bounds the quantity of a single transfer in quote-currency units;
// cancelWindow bounds how long after settlement a transfer stays cancellable.
func NewTransferenceService(
	transferenceRepo portsrepo.TransferenceRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	rateResolver portssvc.RateResolverSvc,
	transferCeiling decimal.Decimal,
	cancelWindow time.Duration,
) portssvc.TransferenceSvcFacade {
	return &transferenceService{
		transferenceRepo: transferenceRepo,
		accountRepo:      accountRepo,
		currencyRepo:     currencyRepo,
		rateResolver:     rateResolver,
		transferCeiling:  transferCeiling,
		cancelWindow:     cancelWindow,
	}
}

var _ portssvc.TransferenceSvcFacade = (*transferenceService)(nil)

// CreateTransference runs the validation pipeline and settles the transfer.
// The quantity is quoted in req.Currency; each account is debited or credited
// in its own currency after conversion. Rejections happen before the unit of
// work starts, so a failed transfer never leaves partial state behind.
func (s *transferenceService) CreateTransference(ctx context.Context, req dto.CreateTransferenceRequest) (*domain.Transference, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AccountGiven == req.AccountReceiver {
		return nil, ErrSelfTransferNotAllowed
	}

	quote, err := s.currencyRepo.FindActiveCurrencyByID(ctx, req.Currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCurrencyNotFound, req.Currency)
		}
		return nil, fmt.Errorf("failed to resolve quote currency: %w", err)
	}

	given, err := s.accountRepo.FindActiveAccountByID(ctx, req.AccountGiven)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: giver %s", ErrAccountNotFound, req.AccountGiven)
		}
		return nil, fmt.Errorf("failed to load giver account: %w", err)
	}
	receiver, err := s.accountRepo.FindActiveAccountByID(ctx, req.AccountReceiver)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: receiver %s", ErrAccountNotFound, req.AccountReceiver)
		}
		return nil, fmt.Errorf("failed to load receiver account: %w", err)
	}

	if req.Quantity.GreaterThan(s.transferCeiling) {
		return nil, fmt.Errorf("%w: %s > %s", ErrTransferLimitExceeded, req.Quantity, s.transferCeiling)
	}

	rateGiven, err := s.rateResolver.Rate(ctx, quote, given.Currency)
	if err != nil {
		return nil, err
	}
	rateReceiver, err := s.rateResolver.Rate(ctx, quote, receiver.Currency)
	if err != nil {
		return nil, err
	}

	amountDebited := req.Quantity.Mul(rateGiven)
	amountCredited := req.Quantity.Mul(rateReceiver)

	if err := given.Debit(amountDebited); err != nil {
		return nil, err
	}
	receiver.Credit(amountCredited)

	transference := domain.Transference{
		TransferenceID:    uuid.NewString(),
		AccountGivenID:    given.AccountID,
		AccountReceiverID: receiver.AccountID,
		Quantity:          req.Quantity,
		CurrencyID:        quote.CurrencyID,
		Description:       req.Description,
		AmountDebited:     amountDebited,
		AmountCredited:    amountCredited,
		Status:            domain.StatusActive,
		CreatedAt:         time.Now().UTC(),
	}

	balanceChanges := map[string]decimal.Decimal{
		given.AccountID:    amountDebited.Neg(),
		receiver.AccountID: amountCredited,
	}
	if err := s.transferenceRepo.SaveTransference(ctx, transference, balanceChanges); err != nil {
		// A concurrent debit can drain the giver between our read and the
		// row lock; the unit of work re-validates and reports it here.
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			return nil, apperrors.ErrInsufficientFunds
		}
		logger.Error("Failed to settle transference",
			slog.String("transference_id", transference.TransferenceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to settle transference: %w", err)
	}

	logger.Info("Transference settled",
		slog.String("transference_id", transference.TransferenceID),
		slog.String("account_given", given.AccountID),
		slog.String("account_receiver", receiver.AccountID),
		slog.String("quantity", req.Quantity.String()),
		slog.String("currency_id", quote.CurrencyID))
	return &transference, nil
}

// CancelTransference reverses an ACTIVE transference. The window is checked
// against the time the request arrived, before any state changes, so a
// request that was in time stays in time however long settlement takes. The
// reversal restores the exact converted amounts recorded at creation, which
// keeps balances intact even if rates changed since.
func (s *transferenceService) CancelTransference(ctx context.Context, transferenceID string) (*domain.Transference, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	transference, err := s.transferenceRepo.FindTransferenceByID(ctx, transferenceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTransferenceNotFound, transferenceID)
		}
		return nil, fmt.Errorf("failed to load transference %s: %w", transferenceID, err)
	}
	if transference.Status != domain.StatusActive {
		return nil, fmt.Errorf("%w: %s", ErrTransferenceNotFound, transferenceID)
	}
	if now.Sub(transference.CreatedAt) > s.cancelWindow {
		return nil, fmt.Errorf("%w: created at %s", ErrCancellationExpired, transference.CreatedAt.Format(time.RFC3339))
	}

	balanceChanges := map[string]decimal.Decimal{
		transference.AccountGivenID:    transference.AmountDebited,
		transference.AccountReceiverID: transference.AmountCredited.Neg(),
	}
	if err := s.transferenceRepo.CancelTransference(ctx, transferenceID, balanceChanges); err != nil {
		// Someone else flipped it first; report it as already gone.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTransferenceNotFound, transferenceID)
		}
		logger.Error("Failed to cancel transference",
			slog.String("transference_id", transferenceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to cancel transference %s: %w", transferenceID, err)
	}

	transference.Status = domain.StatusInactive

	logger.Info("Transference cancelled", slog.String("transference_id", transferenceID))
	return transference, nil
}

// ListTransferencesByAccount retrieves transferences debited from the
// account, newest first.
func (s *transferenceService) ListTransferencesByAccount(ctx context.Context, accountID string, params dto.ListTransferencesParams) (int64, []domain.Transference, error) {
	if _, err := s.accountRepo.FindActiveAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return 0, nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}

	filter := portsrepo.ListTransferencesFilter{
		Limit:      params.Limit,
		Page:       params.Page,
		CurrencyID: params.CurrencyID,
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	total, transferences, err := s.transferenceRepo.ListTransferencesByAccount(ctx, accountID, filter)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list transferences for account %s: %w", accountID, err)
	}
	if transferences == nil {
		transferences = []domain.Transference{}
	}
	return total, transferences, nil
}
