package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/tradedesk/internal/domain/models"
	pq "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// TradesRepository defines contract for trade persistence.
type TradesRepository interface {
	ExistingIdentityKeys(ctx context.Context, accountID string) ([]string, error)
	InsertTradesBatch(ctx context.Context, trades []models.Trade) error
	SumPnL(ctx context.Context, accountID string) (decimal.Decimal, error)
	DeleteTradesByAccount(ctx context.Context, accountID string) (int64, error)
	ListTrades(ctx context.Context, accountID string, limit int) ([]models.Trade, error)
	GetStats(ctx context.Context, accountID string) (*models.AccountStats, error)
}

type tradesRepository struct {
	db *sql.DB
}

func NewTradesRepository(db *sql.DB) TradesRepository {
	return &tradesRepository{db: db}
}

// ExistingIdentityKeys returns every identity key already stored for the account.
func (r *tradesRepository) ExistingIdentityKeys(ctx context.Context, accountID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT identity_key FROM trades WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// InsertTradesBatch inserts multiple trades in a single transaction using COPY.
// Either the whole batch is committed or none of it is.
func (r *tradesRepository) InsertTradesBatch(ctx context.Context, trades []models.Trade) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"trades",
		"id",
		"account_id",
		"identity_key",
		"symbol",
		"trade_type",
		"entry_price",
		"exit_price",
		"position_size",
		"pnl",
		"opened_at",
		"closed_at",
		"duration",
		"status",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx,
			t.ID,
			t.AccountID,
			t.IdentityKey,
			t.Symbol,
			t.TradeType,
			t.EntryPrice,
			t.ExitPrice,
			t.PositionSize,
			t.PnL,
			t.OpenedAt,
			t.ClosedAt,
			t.Duration,
			t.Status,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// SumPnL returns the sum of PnL over every trade on record for the account (0 when none).
func (r *tradesRepository) SumPnL(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(pnl), 0) FROM trades WHERE account_id = $1`, accountID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// DeleteTradesByAccount removes the account's whole trade history.
func (r *tradesRepository) DeleteTradesByAccount(ctx context.Context, accountID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListTrades returns the most recently closed trades first.
func (r *tradesRepository) ListTrades(ctx context.Context, accountID string, limit int) ([]models.Trade, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, identity_key, symbol, trade_type, entry_price, exit_price,
		       position_size, pnl, opened_at, closed_at, duration, status, created_at
		FROM trades
		WHERE account_id = $1
		ORDER BY closed_at DESC, id DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	trades := make([]models.Trade, 0)
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(
			&t.ID, &t.AccountID, &t.IdentityKey, &t.Symbol, &t.TradeType, &t.EntryPrice, &t.ExitPrice,
			&t.PositionSize, &t.PnL, &t.OpenedAt, &t.ClosedAt, &t.Duration, &t.Status, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// GetStats returns trade counts, total PnL and monthly PnL buckets for the account.
// WinRate is left for the caller to derive.
func (r *tradesRepository) GetStats(ctx context.Context, accountID string) (*models.AccountStats, error) {
	stats := models.AccountStats{AccountID: accountID, Monthly: []models.MonthlyPnL{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS total_trades,
			COUNT(*) FILTER (WHERE pnl > 0) AS wins,
			COUNT(*) FILTER (WHERE pnl < 0) AS losses,
			COALESCE(SUM(pnl), 0) AS total_pnl
		FROM trades
		WHERE account_id = $1
	`, accountID).Scan(&stats.TotalTrades, &stats.Wins, &stats.Losses, &stats.TotalPnL)
	if err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(date_trunc('month', closed_at), 'YYYY-MM') AS month,
		       COUNT(*) AS trades,
		       COALESCE(SUM(pnl), 0) AS pnl
		FROM trades
		WHERE account_id = $1
		GROUP BY 1
		ORDER BY 1
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("monthly: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var m models.MonthlyPnL
		if err := rows.Scan(&m.Month, &m.Trades, &m.PnL); err != nil {
			return nil, fmt.Errorf("monthly scan: %w", err)
		}
		stats.Monthly = append(stats.Monthly, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monthly rows: %w", err)
	}

	return &stats, nil
}
