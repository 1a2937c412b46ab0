package models

import "github.com/shopspring/decimal"

// AccountStats is the performance summary computed over an account's trades.
//
// Fields:
//   - TotalTrades: number of trades on record.
//   - Wins/Losses: trades with positive / negative PnL (breakeven counts as neither).
//   - WinRate: Wins / TotalTrades as a percentage, rounded to 2 places.
//   - TotalPnL: sum of PnL over all trades.
//   - Monthly: PnL bucketed by the calendar month of the close time, oldest first.
type AccountStats struct {
	AccountID   string          `json:"account_id"`
	TotalTrades int64           `json:"total_trades"`
	Wins        int64           `json:"wins"`
	Losses      int64           `json:"losses"`
	WinRate     decimal.Decimal `json:"win_rate"`
	TotalPnL    decimal.Decimal `json:"total_pnl"`
	Monthly     []MonthlyPnL    `json:"monthly"`
}

// MonthlyPnL is one month bucket, Month formatted as YYYY-MM.
type MonthlyPnL struct {
	Month  string          `json:"month"`
	Trades int64           `json:"trades"`
	PnL    decimal.Decimal `json:"pnl"`
}
