package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/shopspring/decimal"
)

// ErrAccountNotFound is returned when no account row matches the given id.
var ErrAccountNotFound = errors.New("account not found")

// AccountsRepository defines contract for account reads and balance writes.
// Every write is a single-table statement.
type AccountsRepository interface {
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, at time.Time) error
	UpdateStartingBalance(ctx context.Context, id string, startingBalance decimal.Decimal, at time.Time) error
}

type accountsRepository struct {
	db *sql.DB
}

func NewAccountsRepository(db *sql.DB) AccountsRepository {
	return &accountsRepository{db: db}
}

const accountColumns = `
	a.id, a.client_id, COALESCE(c.name, ''), a.account_number, a.label, a.platform,
	a.starting_balance, a.balance, a.equity, a.updated_at`

func scanAccount(s interface{ Scan(...any) error }) (models.Account, error) {
	var a models.Account
	var platform string
	err := s.Scan(
		&a.ID, &a.ClientID, &a.ClientName, &a.AccountNumber, &a.Label, &platform,
		&a.StartingBalance, &a.Balance, &a.Equity, &a.UpdatedAt,
	)
	a.Platform = models.Platform(platform)
	return a, err
}

// GetAccount loads one account joined with its client's name.
func (r *accountsRepository) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT`+accountColumns+`
		FROM accounts a
		LEFT JOIN clients c ON c.id = a.client_id
		WHERE a.id = $1
	`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAccounts returns every account, used to build the filename match index.
func (r *accountsRepository) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+accountColumns+`
		FROM accounts a
		LEFT JOIN clients c ON c.id = a.client_id
		ORDER BY a.account_number
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateBalance writes balance and equity together.
func (r *accountsRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET balance = $2, equity = $2, updated_at = $3 WHERE id = $1`,
		id, balance, at,
	)
	return affectedOne(res, err)
}

// UpdateStartingBalance changes the operator-set baseline only; callers must reconcile afterwards.
func (r *accountsRepository) UpdateStartingBalance(ctx context.Context, id string, startingBalance decimal.Decimal, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET starting_balance = $2, updated_at = $3 WHERE id = $1`,
		id, startingBalance, at,
	)
	return affectedOne(res, err)
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}
