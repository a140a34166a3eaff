// Package adapters はportfolioフィーチャーの読み取りリポジトリを提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	tradingentity "danset_exchange/internal/feature/trading/domain/entity"
	"danset_exchange/internal/feature/portfolio/usecase"
)

// holdingGorm はHoldingReaderインターフェースのGORM実装です。
type holdingGorm struct {
	db *gorm.DB
}

var _ usecase.HoldingReader = (*holdingGorm)(nil)

// NewHoldingReader はholdingGormの新しいインスタンスを生成します。
func NewHoldingReader(db *gorm.DB) *holdingGorm {
	return &holdingGorm{db: db}
}

// HoldingsByUser は指定ユーザーの全保有をティッカー順に返します。
func (r *holdingGorm) HoldingsByUser(ctx context.Context, userID uint) ([]tradingentity.Holding, error) {
	var hs []tradingentity.Holding
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ticker").
		Find(&hs).Error
	if err != nil {
		return nil, err
	}
	return hs, nil
}
