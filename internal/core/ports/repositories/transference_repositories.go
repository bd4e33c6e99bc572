package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
)

// ListTransferencesFilter narrows ListTransferencesByAccount.
type ListTransferencesFilter struct {
	Limit      int
	Page       int
	CurrencyID *string
}

// TransferenceReader defines read operations for transference data.
type TransferenceReader interface {
	// FindTransferenceByID retrieves a transference regardless of status.
	FindTransferenceByID(ctx context.Context, transferenceID string) (*domain.Transference, error)

	// ListTransferencesByAccount retrieves a page of transferences debited
	// from the given account, newest first, together with the total count.
	ListTransferencesByAccount(ctx context.Context, accountID string, filter ListTransferencesFilter) (int64, []domain.Transference, error)
}

// TransferenceWriter defines the two atomic units of work of the engine.
// Each method runs a single database transaction spanning the transference
// record and both account rows; on any failure nothing is visible.
type TransferenceWriter interface {
	// SaveTransference inserts the transference and applies the two balance
	// deltas after locking the account rows and re-validating that no balance
	// goes negative. Returns apperrors.ErrInsufficientFunds when a racing
	// debit would break the invariant.
	SaveTransference(ctx context.Context, transference domain.Transference, balanceChanges map[string]decimal.Decimal) error

	// CancelTransference flips an ACTIVE transference to INACTIVE and applies
	// the reversing balance deltas in the same transaction. Returns
	// apperrors.ErrNotFound when the record is missing or already INACTIVE,
	// which keeps repeated cancellation idempotent.
	CancelTransference(ctx context.Context, transferenceID string, balanceChanges map[string]decimal.Decimal) error
}

// TransferenceRepositoryFacade combines all transference-related repository interfaces.
type TransferenceRepositoryFacade interface {
	TransferenceReader
	TransferenceWriter
}
