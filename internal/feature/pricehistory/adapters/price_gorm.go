package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"danset_exchange/internal/feature/pricehistory/domain/entity"
	"danset_exchange/internal/feature/pricehistory/usecase"
)

type priceGorm struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceGorm)(nil)

func NewPriceRepository(db *gorm.DB) *priceGorm {
	return &priceGorm{db: db}
}

// PricePointModel is the storage model for a sampled price.
type PricePointModel struct {
	ID        uint      `gorm:"primaryKey"`
	CompanyID uint      `gorm:"not null;index:price_company_time,priority:1"`
	Ticker    string    `gorm:"size:5;not null"`
	Price     float64   `gorm:"not null"`
	Time      time.Time `gorm:"not null;index:price_company_time,priority:2"`
}

func (PricePointModel) TableName() string {
	return "price_points"
}

func toModel(p entity.PricePoint) PricePointModel {
	return PricePointModel{
		CompanyID: p.CompanyID,
		Ticker:    p.Ticker,
		Price:     p.Price,
		Time:      p.Time,
	}
}

func (r *priceGorm) Append(ctx context.Context, p entity.PricePoint) error {
	m := toModel(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *priceGorm) Latest(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
	var rows []PricePointModel
	q := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("time DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	// 新しい順に取り出してから古い順へ並べ直す（チャート描画用）
	out := make([]entity.PricePoint, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		m := rows[i]
		out = append(out, entity.PricePoint{
			CompanyID: m.CompanyID,
			Ticker:    m.Ticker,
			Price:     m.Price,
			Time:      m.Time,
		})
	}
	return out, nil
}
