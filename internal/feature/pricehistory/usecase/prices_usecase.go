// Package usecase は価格履歴の記録と参照のビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"danset_exchange/internal/feature/pricehistory/domain/entity"
)

const (
	// DefaultOutputSize はデフォルトの価格ポイント返却件数です。
	DefaultOutputSize = 100
	// MaxOutputSize は価格ポイントの最大返却件数です。
	MaxOutputSize = 1000
)

// PriceRepository は価格履歴の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	// Append は価格ポイントを追記します。
	Append(ctx context.Context, p entity.PricePoint) error

	// Latest は指定企業の直近の価格ポイントを古い順に返します。
	Latest(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error)
}

// pricesUsecase は価格履歴のユースケースを定義します。
type pricesUsecase struct {
	prices PriceRepository
}

// NewPricesUsecase はpricesUsecaseの新しいインスタンスを生成します。
func NewPricesUsecase(prices PriceRepository) *pricesUsecase {
	return &pricesUsecase{prices: prices}
}

// RecordPrice は約定・ニュース反映後の新価格を履歴へ追記します。
// tradingフィーチャーのPriceRecorderを満たします。
func (u *pricesUsecase) RecordPrice(ctx context.Context, companyID uint, ticker string, price float64, at time.Time) error {
	return u.prices.Append(ctx, entity.PricePoint{
		CompanyID: companyID,
		Ticker:    ticker,
		Price:     price,
		Time:      at,
	})
}

// History は指定企業の価格履歴を返します。
func (u *pricesUsecase) History(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
	if limit <= 0 || limit > MaxOutputSize {
		limit = DefaultOutputSize
	}
	return u.prices.Latest(ctx, companyID, limit)
}
