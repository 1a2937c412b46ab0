package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Platform identifies the broker or exchange an account trades on.
type Platform string

const (
	PlatformTradovate Platform = "tradovate"
	PlatformMT4       Platform = "mt4"
	PlatformMT5       Platform = "mt5"
	PlatformBinance   Platform = "binance"
	PlatformBybit     Platform = "bybit"
	PlatformAlpaca    Platform = "alpaca"
)

// Account is a brokerage account owned by a client.
//
// Balance and Equity are derived: after every trade mutation they equal
// StartingBalance plus the sum of PnL over all of the account's trades.
type Account struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	ClientName      string          `json:"client_name"`
	AccountNumber   string          `json:"account_number"`
	Label           string          `json:"label"`
	Platform        Platform        `json:"platform"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	Balance         decimal.Decimal `json:"balance"`
	Equity          decimal.Decimal `json:"equity"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
