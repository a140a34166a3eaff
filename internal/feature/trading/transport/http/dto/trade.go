// Package dto defines the request/response payloads for the trading endpoints.
package dto

import (
	"time"

	"danset_exchange/internal/feature/trading/domain/entity"
)

// TradeRequest is the JSON body for POST /trades.
type TradeRequest struct {
	CompanyID uint   `json:"company_id" binding:"required"`
	Side      string `json:"side" binding:"required,oneof=buy sell"`
	Shares    int64  `json:"shares" binding:"required,gt=0"`
}

// TransactionResponse is the public view of one executed trade.
type TransactionResponse struct {
	Reference     string    `json:"reference"`
	Ticker        string    `json:"ticker"`
	Type          string    `json:"type"`
	Shares        int64     `json:"shares"`
	PricePerShare float64   `json:"price_per_share"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewTransactionResponses maps transaction entities to their public view.
func NewTransactionResponses(ts []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, TransactionResponse{
			Reference:     t.Reference,
			Ticker:        t.Ticker,
			Type:          t.Type,
			Shares:        t.Shares,
			PricePerShare: t.PricePerShare,
			TotalAmount:   t.TotalAmount,
			CreatedAt:     t.CreatedAt,
		})
	}
	return out
}
