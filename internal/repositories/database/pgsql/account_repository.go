package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kvillagran/bancal_backend/internal/apperrors"
	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portsrepo "github.com/kvillagran/bancal_backend/internal/core/ports/repositories"
	"github.com/kvillagran/bancal_backend/internal/models"
	"github.com/kvillagran/bancal_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, owner_id, currency_id, balance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.OwnerID,
		modelAcc.CurrencyID,
		modelAcc.Balance,
		modelAcc.Status,
		modelAcc.CreatedAt,
		modelAcc.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

const accountWithCurrencyColumns = `
	a.account_id, a.owner_id, a.currency_id, a.balance, a.status, a.created_at, a.updated_at,
	c.currency_id, c.symbol, c.name, c.key, c.status, c.created_at, c.updated_at`

func scanAccountWithCurrency(row pgx.Row) (domain.Account, error) {
	var modelAcc models.Account
	var modelCurr models.Currency
	err := row.Scan(
		&modelAcc.AccountID,
		&modelAcc.OwnerID,
		&modelAcc.CurrencyID,
		&modelAcc.Balance,
		&modelAcc.Status,
		&modelAcc.CreatedAt,
		&modelAcc.UpdatedAt,
		&modelCurr.CurrencyID,
		&modelCurr.Symbol,
		&modelCurr.Name,
		&modelCurr.Key,
		&modelCurr.Status,
		&modelCurr.CreatedAt,
		&modelCurr.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	domainCurr := mapping.ToDomainCurrency(modelCurr)
	domainAcc.Currency = &domainCurr
	return domainAcc, nil
}

// FindActiveAccountByID retrieves an ACTIVE account with its currency joined in.
func (r *PgxAccountRepository) FindActiveAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountWithCurrencyColumns + `
		FROM accounts a
		JOIN currencies c ON c.currency_id = a.currency_id
		WHERE a.account_id = $1 AND a.status = $2;
	`
	domainAcc, err := scanAccountWithCurrency(r.Pool.QueryRow(ctx, query, accountID, models.Active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active account by ID %s: %w", accountID, err)
	}
	return &domainAcc, nil
}

// ListAccounts retrieves a page of ACTIVE accounts, oldest first, with the total count.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit, page int) (int64, []domain.Account, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE status = $1;`, models.Active).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("failed to count accounts: %w", err)
	}

	query := `
		SELECT ` + accountWithCurrencyColumns + `
		FROM accounts a
		JOIN currencies c ON c.currency_id = a.currency_id
		WHERE a.status = $1
		ORDER BY a.created_at
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, models.Active, limit, (page-1)*limit)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccountWithCurrency(rows)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}

	return total, accounts, nil
}

// ListAccountsByBalance retrieves all ACTIVE accounts ordered by balance.
func (r *PgxAccountRepository) ListAccountsByBalance(ctx context.Context, ascending bool) ([]domain.Account, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := `
		SELECT ` + accountWithCurrencyColumns + `
		FROM accounts a
		JOIN currencies c ON c.currency_id = a.currency_id
		WHERE a.status = $1
		ORDER BY a.balance ` + direction + `, a.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, models.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by balance: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccountWithCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}
	return accounts, nil
}

// ListAccountsByUsage retrieves all ACTIVE accounts ordered by the number of
// transferences touching each account, counting both sides. Accounts that
// never transferred rank with a zero count.
func (r *PgxAccountRepository) ListAccountsByUsage(ctx context.Context, ascending bool) ([]domain.AccountUsage, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := `
		SELECT ` + accountWithCurrencyColumns + `, COALESCE(u.usage_count, 0) AS usage_count
		FROM accounts a
		JOIN currencies c ON c.currency_id = a.currency_id
		LEFT JOIN (
			SELECT account_id, COUNT(*) AS usage_count
			FROM (
				SELECT account_given AS account_id FROM transferences
				UNION ALL
				SELECT account_receiver AS account_id FROM transferences
			) sides
			GROUP BY account_id
		) u ON u.account_id = a.account_id
		WHERE a.status = $1
		ORDER BY usage_count ` + direction + `, a.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, models.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by usage: %w", err)
	}
	defer rows.Close()

	var usages []domain.AccountUsage
	for rows.Next() {
		var modelAcc models.Account
		var modelCurr models.Currency
		var count int64
		err := rows.Scan(
			&modelAcc.AccountID,
			&modelAcc.OwnerID,
			&modelAcc.CurrencyID,
			&modelAcc.Balance,
			&modelAcc.Status,
			&modelAcc.CreatedAt,
			&modelAcc.UpdatedAt,
			&modelCurr.CurrencyID,
			&modelCurr.Symbol,
			&modelCurr.Name,
			&modelCurr.Key,
			&modelCurr.Status,
			&modelCurr.CreatedAt,
			&modelCurr.UpdatedAt,
			&count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account usage row: %w", err)
		}
		domainAcc := mapping.ToDomainAccount(modelAcc)
		domainCurr := mapping.ToDomainCurrency(modelCurr)
		domainAcc.Currency = &domainCurr
		usages = append(usages, domain.AccountUsage{Account: domainAcc, TotalUsage: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account usage rows: %w", err)
	}
	return usages, nil
}

// UpdateAccountCurrency changes the account's denomination.
func (r *PgxAccountRepository) UpdateAccountCurrency(ctx context.Context, accountID, currencyID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET currency_id = $2, updated_at = $3
		WHERE account_id = $1 AND status = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, currencyID, now, models.Active)
	if err != nil {
		return fmt.Errorf("failed to update account %s currency: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount flips an account to INACTIVE.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET status = $2, updated_at = $3
		WHERE account_id = $1 AND status = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, models.Inactive, now, models.Active)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate locks the given account rows with FOR UPDATE and
// returns their current state. Rows are locked in sorted ID order by the
// query planner via ORDER BY, which keeps concurrent settlements from
// deadlocking each other.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT account_id, owner_id, currency_id, balance, status, created_at, updated_at
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		var modelAcc models.Account
		err := rows.Scan(
			&modelAcc.AccountID,
			&modelAcc.OwnerID,
			&modelAcc.CurrencyID,
			&modelAcc.Balance,
			&modelAcc.Status,
			&modelAcc.CreatedAt,
			&modelAcc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[modelAcc.AccountID] = mapping.ToDomainAccount(modelAcc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locked account rows: %w", err)
	}

	for _, id := range accountIDs {
		if _, ok := accountsMap[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accountsMap, nil
}

// ApplyBalanceChangesInTx applies signed deltas to the locked account rows in
// one batch. Callers must hold the FOR UPDATE locks on every touched row.
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = $3
		WHERE account_id = $1;
	`
	for accountID, delta := range balanceChanges {
		batch.Queue(query, accountID, delta, now)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range balanceChanges {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to apply balance change: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account disappeared during balance update", apperrors.ErrNotFound)
		}
	}
	return nil
}
