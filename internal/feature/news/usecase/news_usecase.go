// Package usecase はnewsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	marketentity "danset_exchange/internal/feature/market/domain/entity"
	"danset_exchange/internal/feature/news/domain/entity"
)

// minPrice は価格インパクト適用後の価格下限です。
const minPrice = 0.01

var (
	// ErrInvalidNews is returned when a news item is missing required
	// fields or has an unknown impact level.
	ErrInvalidNews = errors.New("invalid news item")

	// ErrCompanyNotFound is returned when the affected company vanished.
	ErrCompanyNotFound = errors.New("company not found")
)

// NewsRepository はニュースの永続化層を抽象化します。
type NewsRepository interface {
	// Create はニュースを永続化します。
	Create(ctx context.Context, n *entity.News) error

	// MarkApplied は価格インパクト適用済みフラグを立てます（一度だけ）。
	MarkApplied(ctx context.Context, id uint) error

	// List は公開済みニュースを新しい順に返します。
	List(ctx context.Context, limit int) ([]entity.News, error)
}

// CompanyPricer はニュースが影響を与える企業レコードへのアクセスを
// 抽象化します。
type CompanyPricer interface {
	FindByID(ctx context.Context, id uint) (*marketentity.Company, error)
	UpdatePrice(ctx context.Context, id uint, price float64) error
}

// PriceRecorder は価格変動を価格履歴に記録します。
type PriceRecorder interface {
	RecordPrice(ctx context.Context, companyID uint, ticker string, price float64, at time.Time) error
}

// PublishRequest はニュース公開の入力です。
type PublishRequest struct {
	Title     string
	Content   string
	CompanyID uint
	Impact    string
}

// newsUsecase はニュースの公開と価格インパクト適用を実装します。
type newsUsecase struct {
	news      NewsRepository
	companies CompanyPricer
	prices    PriceRecorder
	now       func() time.Time
}

// NewNewsUsecase はnewsUsecaseの新しいインスタンスを生成します。
// prices は nil でも構いません。
func NewNewsUsecase(news NewsRepository, companies CompanyPricer, prices PriceRecorder) *newsUsecase {
	return &newsUsecase{
		news:      news,
		companies: companies,
		prices:    prices,
		now:       time.Now,
	}
}

// Publish はニュースを公開し、対象企業の株価にインパクトを即時適用します。
// インパクトは一度だけ適用され、適用後に impact_applied が立ちます。
func (u *newsUsecase) Publish(ctx context.Context, req PublishRequest) (*entity.News, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidNews)
	}
	impactPct, ok := entity.ImpactPercent[req.Impact]
	if !ok {
		return nil, fmt.Errorf("%w: unknown impact level %q", ErrInvalidNews, req.Impact)
	}

	company, err := u.companies.FindByID(ctx, req.CompanyID)
	if err != nil {
		return nil, ErrCompanyNotFound
	}

	news := &entity.News{
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		CompanyID: company.ID,
		Ticker:    company.Ticker,
		Impact:    req.Impact,
	}
	if err := u.news.Create(ctx, news); err != nil {
		return nil, err
	}

	// 価格インパクト適用。下限は取引と同じ 0.01
	newPrice := math.Max(minPrice, company.CurrentPrice+company.CurrentPrice*impactPct)
	if err := u.companies.UpdatePrice(ctx, company.ID, newPrice); err != nil {
		return nil, err
	}
	if err := u.news.MarkApplied(ctx, news.ID); err != nil {
		return nil, err
	}
	news.ImpactApplied = true

	if u.prices != nil {
		if err := u.prices.RecordPrice(ctx, company.ID, company.Ticker, newPrice, u.now()); err != nil {
			return nil, err
		}
	}

	return news, nil
}

// List は公開済みニュースを新しい順に返します。
func (u *newsUsecase) List(ctx context.Context, limit int) ([]entity.News, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return u.news.List(ctx, limit)
}
