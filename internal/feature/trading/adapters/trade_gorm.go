// Package adapters はtradingフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	authentity "danset_exchange/internal/feature/auth/domain/entity"
	marketentity "danset_exchange/internal/feature/market/domain/entity"
	"danset_exchange/internal/feature/trading/domain/entity"
	"danset_exchange/internal/feature/trading/usecase"
)

// tradeGorm はStoreインターフェースのGORM実装です。
// InTx で渡されるインスタンスはトランザクションに束縛されています。
type tradeGorm struct {
	db *gorm.DB
}

// tradeGormがStoreを実装していることをコンパイル時に検証します。
var _ usecase.Store = (*tradeGorm)(nil)

// NewTradeStore は指定されたgorm.DB接続でtradeGormの新しいインスタンスを生成します。
func NewTradeStore(db *gorm.DB) *tradeGorm {
	return &tradeGorm{db: db}
}

// InTx は fn をひとつのデータベーストランザクションで実行します。
// fn がエラーを返した場合、全エフェクトはロールバックされます。
func (r *tradeGorm) InTx(ctx context.Context, fn func(usecase.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tradeGorm{db: tx})
	})
}

// UserByID はIDでユーザーを取得します。
func (r *tradeGorm) UserByID(ctx context.Context, id uint) (*authentity.User, error) {
	var u authentity.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetUserBalance はユーザーの現金残高のみを更新します。
func (r *tradeGorm) SetUserBalance(ctx context.Context, id uint, balance float64) error {
	res := r.db.WithContext(ctx).Model(&authentity.User{}).
		Where("id = ?", id).
		Update("cash_balance", balance)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ApprovedCompanyByID は承認済み企業をIDで取得します。
func (r *tradeGorm) ApprovedCompanyByID(ctx context.Context, id uint) (*marketentity.Company, error) {
	var c marketentity.Company
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, marketentity.StatusApproved).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateCompanyTrade は約定で変わるカラムのみを書き込みます。
func (r *tradeGorm) UpdateCompanyTrade(ctx context.Context, c *marketentity.Company) error {
	res := r.db.WithContext(ctx).Model(&marketentity.Company{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"available_shares": c.AvailableShares,
			"current_price":    c.CurrentPrice,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCompanyNotFound
	}
	return nil
}

// HoldingFor は (user, company) の保有を取得します。
func (r *tradeGorm) HoldingFor(ctx context.Context, userID, companyID uint) (*entity.Holding, error) {
	var h entity.Holding
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrHoldingNotFound
		}
		return nil, err
	}
	return &h, nil
}

// SaveHolding は保有を作成または更新します。
func (r *tradeGorm) SaveHolding(ctx context.Context, h *entity.Holding) error {
	return r.db.WithContext(ctx).Save(h).Error
}

// DeleteHolding は保有を削除します。
func (r *tradeGorm) DeleteHolding(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Holding{}, id).Error
}

// AppendTransaction は取引記録を追記します。
func (r *tradeGorm) AppendTransaction(ctx context.Context, t *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// RecentTransactions は全ユーザーの直近の取引を新しい順に返します。
func (r *tradeGorm) RecentTransactions(ctx context.Context, limit int) ([]entity.Transaction, error) {
	var ts []entity.Transaction
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&ts).Error
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// TransactionsByUser は指定ユーザーの取引を新しい順に返します。
func (r *tradeGorm) TransactionsByUser(ctx context.Context, userID uint, limit int) ([]entity.Transaction, error) {
	var ts []entity.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&ts).Error
	if err != nil {
		return nil, err
	}
	return ts, nil
}
