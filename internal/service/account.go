package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/storage"
	"github.com/shopspring/decimal"
)

const (
	defaultTradeListLimit = 100
	maxTradeListLimit     = 1000
)

// ClearResult reports a bulk trade deletion and the balance it reverted to.
type ClearResult struct {
	Deleted int64
	Balance decimal.Decimal
}

// AccountService covers the account operations that mutate or read trade-derived state.
// Every mutation of an account's trade set or baseline is followed by a reconciliation.
type AccountService interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	ListTrades(ctx context.Context, accountID string, limit int) ([]models.Trade, error)
	ClearTrades(ctx context.Context, accountID string) (*ClearResult, error)
	UpdateStartingBalance(ctx context.Context, accountID string, startingBalance decimal.Decimal) (*models.Account, error)
	Reconcile(ctx context.Context, accountID string) (*models.Account, error)
	Stats(ctx context.Context, accountID string) (*models.AccountStats, error)
}

type accountService struct {
	accounts   storage.AccountsRepository
	trades     storage.TradesRepository
	reconciler BalanceReconciler
	now        func() time.Time
}

func NewAccountService(accounts storage.AccountsRepository, trades storage.TradesRepository, reconciler BalanceReconciler) AccountService {
	return &accountService{accounts: accounts, trades: trades, reconciler: reconciler, now: time.Now}
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	return s.accounts.GetAccount(ctx, accountID)
}

// ListTrades clamps limit to (0, maxTradeListLimit], defaulting to defaultTradeListLimit.
func (s *accountService) ListTrades(ctx context.Context, accountID string, limit int) ([]models.Trade, error) {
	if _, err := s.accounts.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = defaultTradeListLimit
	case limit > maxTradeListLimit:
		limit = maxTradeListLimit
	}
	return s.trades.ListTrades(ctx, accountID, limit)
}

// ClearTrades deletes the account's trade history; the balance reverts to the starting balance.
func (s *accountService) ClearTrades(ctx context.Context, accountID string) (*ClearResult, error) {
	if _, err := s.accounts.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	n, err := s.trades.DeleteTradesByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("delete trades: %w", err)
	}
	balance, err := s.reconciler.Reconcile(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &ClearResult{Deleted: n, Balance: balance}, nil
}

func (s *accountService) UpdateStartingBalance(ctx context.Context, accountID string, startingBalance decimal.Decimal) (*models.Account, error) {
	if err := s.accounts.UpdateStartingBalance(ctx, accountID, startingBalance, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, accountID)
}

// Reconcile forces a recompute and returns the refreshed account.
func (s *accountService) Reconcile(ctx context.Context, accountID string) (*models.Account, error) {
	if _, err := s.reconciler.Reconcile(ctx, accountID); err != nil {
		return nil, err
	}
	return s.accounts.GetAccount(ctx, accountID)
}

// Stats derives the win rate (percentage, 2 dp) on top of the repository aggregates.
func (s *accountService) Stats(ctx context.Context, accountID string) (*models.AccountStats, error) {
	if _, err := s.accounts.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	stats, err := s.trades.GetStats(ctx, accountID)
	if err != nil {
		return nil, err
	}
	stats.WinRate = decimal.Zero
	if stats.TotalTrades > 0 {
		stats.WinRate = decimal.NewFromInt(stats.Wins).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(stats.TotalTrades)).
			Round(2)
	}
	return stats, nil
}
