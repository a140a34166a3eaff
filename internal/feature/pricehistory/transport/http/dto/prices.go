// Package dto defines the response payloads for the price history endpoints.
package dto

import (
	"time"

	"danset_exchange/internal/feature/pricehistory/domain/entity"
)

// PricePointResponse is one sampled price for a company.
type PricePointResponse struct {
	Price float64   `json:"price"`
	Time  time.Time `json:"time"`
}

// HistoryResponse is the ordered price series for one company.
type HistoryResponse struct {
	CompanyID uint                 `json:"company_id"`
	Points    []PricePointResponse `json:"points"`
}

// NewHistoryResponse maps price points to the public series view.
func NewHistoryResponse(companyID uint, points []entity.PricePoint) HistoryResponse {
	out := make([]PricePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, PricePointResponse{Price: p.Price, Time: p.Time})
	}
	return HistoryResponse{CompanyID: companyID, Points: out}
}
