package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
	"github.com/kvillagran/bancal_backend/internal/models"
	"github.com/kvillagran/bancal_backend/internal/utils/mapping"
)

type PgxTransferenceRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransferenceRepository creates a new repository for transference data.
func newPgxTransferenceRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransferenceRepositoryFacade {
	return &PgxTransferenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransferenceRepositoryFacade = (*PgxTransferenceRepository)(nil)

// applyBalanceChangesLocked locks the touched account rows, re-validates that
// no debit drives a balance negative, and applies the deltas. The service
// validated against a snapshot; this is the authoritative check under locks.
func (r *PgxTransferenceRepository) applyBalanceChangesLocked(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}

	for accID, delta := range balanceChanges {
		if delta.IsNegative() && lockedAccounts[accID].Balance.Add(delta).IsNegative() {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accID)
		}
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, now); err != nil {
		return fmt.Errorf("failed to apply balance changes: %w", err)
	}
	return nil
}

// SaveTransference inserts the transference and settles both balances inside
// one database transaction. Nothing is visible unless the whole unit commits.
func (r *PgxTransferenceRepository) SaveTransference(ctx context.Context, transference domain.Transference, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransference(transference)
	query := `
		INSERT INTO transferences (
			transference_id, account_given, account_receiver, quantity, currency_id,
			description, amount_debited, amount_credited, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		m.TransferenceID,
		m.AccountGivenID,
		m.AccountReceiverID,
		m.Quantity,
		m.CurrencyID,
		m.Description,
		m.AmountDebited,
		m.AmountCredited,
		m.Status,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transference %s: %w", m.TransferenceID, err)
	}

	if err := r.applyBalanceChangesLocked(ctx, tx, balanceChanges, transference.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// CancelTransference flips an ACTIVE transference to INACTIVE and applies the
// reversing deltas in the same transaction. The status flip is conditional on
// the row still being ACTIVE, so of two racing cancellations exactly one
// reverses the balances; the loser sees ErrNotFound.
func (r *PgxTransferenceRepository) CancelTransference(ctx context.Context, transferenceID string, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transferences
		SET status = $2
		WHERE transference_id = $1 AND status = $3;
	`
	tag, err := tx.Exec(ctx, query, transferenceID, models.Inactive, models.Active)
	if err != nil {
		return fmt.Errorf("failed to cancel transference %s: %w", transferenceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChangesLocked(ctx, tx, balanceChanges, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

const transferenceColumns = `transference_id, account_given, account_receiver, quantity, currency_id,
	description, amount_debited, amount_credited, status, created_at`

func scanTransference(row pgx.Row) (models.Transference, error) {
	var m models.Transference
	err := row.Scan(
		&m.TransferenceID,
		&m.AccountGivenID,
		&m.AccountReceiverID,
		&m.Quantity,
		&m.CurrencyID,
		&m.Description,
		&m.AmountDebited,
		&m.AmountCredited,
		&m.Status,
		&m.CreatedAt,
	)
	return m, err
}

// FindTransferenceByID retrieves a transference regardless of status.
func (r *PgxTransferenceRepository) FindTransferenceByID(ctx context.Context, transferenceID string) (*domain.Transference, error) {
	query := `SELECT ` + transferenceColumns + ` FROM transferences WHERE transference_id = $1;`

	m, err := scanTransference(r.Pool.QueryRow(ctx, query, transferenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transference by ID %s: %w", transferenceID, err)
	}

	domainT := mapping.ToDomainTransference(m)
	return &domainT, nil
}

// ListTransferencesByAccount retrieves a page of transferences debited from
// the account, newest first, optionally narrowed to one quote currency.
func (r *PgxTransferenceRepository) ListTransferencesByAccount(ctx context.Context, accountID string, filter portsrepo.ListTransferencesFilter) (int64, []domain.Transference, error) {
	where := `WHERE account_given = $1`
	args := []any{accountID}
	if filter.CurrencyID != nil {
		where += ` AND currency_id = $2`
		args = append(args, *filter.CurrencyID)
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transferences `+where+`;`, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("failed to count transferences for account %s: %w", accountID, err)
	}

	query := fmt.Sprintf(`
		SELECT `+transferenceColumns+`
		FROM transferences
		%s
		ORDER BY created_at DESC, transference_id
		LIMIT $%d OFFSET $%d;
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list transferences for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var modelTs []models.Transference
	for rows.Next() {
		m, err := scanTransference(rows)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to scan transference row: %w", err)
		}
		modelTs = append(modelTs, m)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("failed to iterate transference rows: %w", err)
	}

	return total, mapping.ToDomainTransferenceSlice(modelTs), nil
}
