package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/tradedesk/internal/logger"
	"github.com/guttosm/tradedesk/internal/storage"
	"github.com/shopspring/decimal"
)

// BalanceReconciler recomputes an account's derived balance from persisted state.
type BalanceReconciler interface {
	Reconcile(ctx context.Context, accountID string) (decimal.Decimal, error)
}

type reconciler struct {
	accounts storage.AccountsRepository
	trades   storage.TradesRepository
	now      func() time.Time
}

func NewReconciler(accounts storage.AccountsRepository, trades storage.TradesRepository) BalanceReconciler {
	return &reconciler{accounts: accounts, trades: trades, now: time.Now}
}

// Reconcile sets balance = equity = starting_balance + SUM(pnl) over every trade
// currently stored for the account. It is a full re-sum, never an incremental delta.
//
// No lock is taken: two concurrent reconciliations of the same account race on
// the final UPDATE and the last writer wins.
func (r *reconciler) Reconcile(ctx context.Context, accountID string) (decimal.Decimal, error) {
	acc, err := r.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load account %s: %w", accountID, err)
	}

	sum, err := r.trades.SumPnL(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum pnl for %s: %w", accountID, err)
	}

	balance := acc.StartingBalance.Add(sum)
	if err := r.accounts.UpdateBalance(ctx, accountID, balance, r.now().UTC()); err != nil {
		return decimal.Zero, fmt.Errorf("update balance for %s: %w", accountID, err)
	}

	logger.L().Info().
		Str("account_id", accountID).
		Str("starting_balance", acc.StartingBalance.String()).
		Str("pnl_sum", sum.String()).
		Str("balance", balance.String()).
		Msg("balance reconciled")

	return balance, nil
}
