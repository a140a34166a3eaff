// Package dto defines the request/response payloads for the news endpoints.
package dto

import (
	"time"

	"danset_exchange/internal/feature/news/domain/entity"
)

// PublishRequest is the JSON body for POST /admin/news.
type PublishRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	CompanyID uint   `json:"company_id" binding:"required"`
	Impact    string `json:"impact" binding:"required,oneof=very_positive positive neutral negative very_negative"`
}

// NewsResponse is the public view of a published news item.
type NewsResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CompanyID uint      `json:"company_id"`
	Ticker    string    `json:"ticker"`
	Impact    string    `json:"impact"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNewsResponse maps a news entity to its public view.
func NewNewsResponse(n *entity.News) NewsResponse {
	return NewsResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CompanyID: n.CompanyID,
		Ticker:    n.Ticker,
		Impact:    n.Impact,
		CreatedAt: n.CreatedAt,
	}
}

// NewNewsResponses maps news entities to their public views.
func NewNewsResponses(items []entity.News) []NewsResponse {
	out := make([]NewsResponse, 0, len(items))
	for i := range items {
		out = append(out, NewNewsResponse(&items[i]))
	}
	return out
}
