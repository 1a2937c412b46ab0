package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade sides and statuses as stored in the trades table.
const (
	TradeTypeBuy  = "Buy"
	TradeTypeSell = "Sell"

	TradeStatusClosed = "Closed"
)

// Trade is one closed position imported from a broker CSV export.
//
// IdentityKey ("{buyFillId}-{sellFillId}") is unique per account and is the
// de-duplication key used on re-import.
type Trade struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	IdentityKey  string          `json:"identity_key"`
	Symbol       string          `json:"symbol" validate:"required"`
	TradeType    string          `json:"trade_type" validate:"oneof=Buy Sell"`
	EntryPrice   decimal.Decimal `json:"entry_price"`
	ExitPrice    decimal.Decimal `json:"exit_price"`
	PositionSize string          `json:"position_size"`
	PnL          decimal.Decimal `json:"pnl"`
	OpenedAt     time.Time       `json:"opened_at"`
	ClosedAt     time.Time       `json:"closed_at"`
	Duration     string          `json:"duration"`
	Status       string          `json:"status" validate:"eq=Closed"`
	CreatedAt    time.Time       `json:"created_at"`
}
