package services

import (
	"context"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
	"github.com/kvillagran/bancal_backend/internal/dto"
)

// TransferenceSvcFacade is the funds-transfer engine: the only component that
// mutates balances, always inside a single atomic unit of work.
type TransferenceSvcFacade interface {
	// CreateTransference validates, converts and settles a transfer. The
	// returned record has status ACTIVE. Every rejection leaves the ledger
	// untouched.
	CreateTransference(ctx context.Context, req dto.CreateTransferenceRequest) (*domain.Transference, error)

	// CancelTransference reverses a settled transference while it is still
	// ACTIVE and inside the cancellation window. Repeating the call yields
	// services.ErrTransferenceNotFound without further effect.
	CancelTransference(ctx context.Context, transferenceID string) (*domain.Transference, error)

	// ListTransferencesByAccount retrieves transferences debited from the
	// account, newest first, with the total count.
	ListTransferencesByAccount(ctx context.Context, accountID string, params dto.ListTransferencesParams) (int64, []domain.Transference, error)
}
