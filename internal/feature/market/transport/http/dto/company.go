// Package dto defines the request/response payloads for the market endpoints.
package dto

import "danset_exchange/internal/feature/market/domain/entity"

// ListingRequest is the JSON body for registering a company.
type ListingRequest struct {
	Ticker       string  `json:"ticker" binding:"required,max=5"`
	Name         string  `json:"name" binding:"required"`
	Sector       string  `json:"sector"`
	Description  string  `json:"description"`
	InitialPrice float64 `json:"initial_price" binding:"required,gt=0"`
	TotalShares  int64   `json:"total_shares" binding:"required,gt=0"`
}

// StatusRequest is the JSON body for approving or rejecting a company.
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// UpdateRequest is the JSON body for editing company details.
type UpdateRequest struct {
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	Description      string  `json:"description"`
	MarketVolatility float64 `json:"market_volatility"`
}

// CompanyResponse is the public view of a company.
type CompanyResponse struct {
	ID               uint    `json:"id"`
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	Description      string  `json:"description"`
	InitialPrice     float64 `json:"initial_price"`
	CurrentPrice     float64 `json:"current_price"`
	ChangePercent    float64 `json:"change_percent"`
	TotalShares      int64   `json:"total_shares"`
	AvailableShares  int64   `json:"available_shares"`
	MarketVolatility float64 `json:"market_volatility"`
	Status           string  `json:"status"`
}

// NewCompanyResponse maps a company entity to its public view.
func NewCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:               c.ID,
		Ticker:           c.Ticker,
		Name:             c.Name,
		Sector:           c.Sector,
		Description:      c.Description,
		InitialPrice:     c.InitialPrice,
		CurrentPrice:     c.CurrentPrice,
		ChangePercent:    c.ChangePercent(),
		TotalShares:      c.TotalShares,
		AvailableShares:  c.AvailableShares,
		MarketVolatility: c.MarketVolatility,
		Status:           c.Status,
	}
}

// NewCompanyResponses maps a slice of companies.
func NewCompanyResponses(cs []entity.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(cs))
	for i := range cs {
		out = append(out, NewCompanyResponse(&cs[i]))
	}
	return out
}
