package dto

import "github.com/shopspring/decimal"

// UpdateStartingBalanceRequest is the only accepted body for
// PATCH /api/v1/accounts/:id/starting-balance. Unknown keys are ignored.
type UpdateStartingBalanceRequest struct {
	StartingBalance *decimal.Decimal `json:"starting_balance" validate:"required" swaggertype:"string" example:"50000.00"`
}

// ClearTradesResponse reports the effect of DELETE /api/v1/accounts/:id/trades.
type ClearTradesResponse struct {
	AccountID    string          `json:"account_id"`
	DeletedCount int64           `json:"deleted_count"`
	Balance      decimal.Decimal `json:"balance" swaggertype:"string"`
	Equity       decimal.Decimal `json:"equity" swaggertype:"string"`
}
