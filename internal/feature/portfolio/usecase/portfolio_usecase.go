// Package usecase はポートフォリオ参照のビジネスロジックを実装します。
package usecase

import (
	"context"

	marketentity "danset_exchange/internal/feature/market/domain/entity"
	tradingentity "danset_exchange/internal/feature/trading/domain/entity"
)

// HoldingReader はユーザー保有の読み取りレイヤーを抽象化します。
type HoldingReader interface {
	// HoldingsByUser は指定ユーザーの全保有を返します。
	HoldingsByUser(ctx context.Context, userID uint) ([]tradingentity.Holding, error)
}

// CompanyReader は承認済み企業の読み取りレイヤーを抽象化します。
type CompanyReader interface {
	ListByStatus(ctx context.Context, status string) ([]marketentity.Company, error)
}

// Position はひとつの保有の評価ビューです。
type Position struct {
	CompanyID     uint    `json:"company_id"`
	Ticker        string  `json:"ticker"`
	CompanyName   string  `json:"company_name"`
	Shares        int64   `json:"shares"`
	AveragePrice  float64 `json:"average_price"`
	CurrentPrice  float64 `json:"current_price"`
	TotalInvested float64 `json:"total_invested"`
	MarketValue   float64 `json:"market_value"`
	ProfitLoss    float64 `json:"profit_loss"`
}

// Summary はポートフォリオ全体の集計です。
type Summary struct {
	Positions         []Position `json:"positions"`
	PortfolioValue    float64    `json:"portfolio_value"`
	TotalInvested     float64    `json:"total_invested"`
	ProfitLoss        float64    `json:"profit_loss"`
	ProfitLossPercent float64    `json:"profit_loss_percent"`
}

// portfolioUsecase は保有と企業を突き合わせて評価額を計算します。
type portfolioUsecase struct {
	holdings  HoldingReader
	companies CompanyReader
}

// NewPortfolioUsecase はportfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(holdings HoldingReader, companies CompanyReader) *portfolioUsecase {
	return &portfolioUsecase{holdings: holdings, companies: companies}
}

// Portfolio は指定ユーザーの保有評価と損益の集計を返します。
// 企業が見つからない保有（上場廃止など）は集計から除外されます。
func (u *portfolioUsecase) Portfolio(ctx context.Context, userID uint) (*Summary, error) {
	holdings, err := u.holdings.HoldingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	companies, err := u.companies.ListByStatus(ctx, marketentity.StatusApproved)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]marketentity.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	summary := &Summary{Positions: make([]Position, 0, len(holdings))}
	for _, h := range holdings {
		c, ok := byID[h.CompanyID]
		if !ok {
			continue
		}
		value := float64(h.Shares) * c.CurrentPrice
		summary.Positions = append(summary.Positions, Position{
			CompanyID:     h.CompanyID,
			Ticker:        h.Ticker,
			CompanyName:   c.Name,
			Shares:        h.Shares,
			AveragePrice:  h.AveragePrice,
			CurrentPrice:  c.CurrentPrice,
			TotalInvested: h.TotalInvested,
			MarketValue:   value,
			ProfitLoss:    value - h.TotalInvested,
		})
		summary.PortfolioValue += value
		summary.TotalInvested += h.TotalInvested
	}

	summary.ProfitLoss = summary.PortfolioValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.ProfitLossPercent = summary.ProfitLoss / summary.TotalInvested * 100
	}
	return summary, nil
}
