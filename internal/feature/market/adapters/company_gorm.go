// Package adapters はmarketフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"danset_exchange/internal/feature/market/domain/entity"
	"danset_exchange/internal/feature/market/usecase"
)

// companyGorm はCompanyRepositoryインターフェースのGORM実装です。
type companyGorm struct {
	db *gorm.DB
}

// companyGormがCompanyRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CompanyRepository = (*companyGorm)(nil)

// NewCompanyRepository は指定されたgorm.DB接続でcompanyGormの新しい
// インスタンスを生成します。
func NewCompanyRepository(db *gorm.DB) *companyGorm {
	return &companyGorm{db: db}
}

// Create は企業をデータベースに追加します。ティッカーが重複する場合、
// usecase.ErrTickerAlreadyExistsを返します。
func (r *companyGorm) Create(ctx context.Context, c *entity.Company) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		// ドライバ非依存の重複検出: GORMの翻訳エラーと、SQLiteの
		// UNIQUE制約メッセージの両方を拾う
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(strings.ToLower(err.Error()), "unique") {
			return usecase.ErrTickerAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID はIDで企業を取得します。
func (r *companyGorm) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	var c entity.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByStatus は指定ステータスの企業を新しい順に返します。
func (r *companyGorm) ListByStatus(ctx context.Context, status string) ([]entity.Company, error) {
	var cs []entity.Company
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&cs).Error
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// ListAll は全企業を新しい順に返します。
func (r *companyGorm) ListAll(ctx context.Context) ([]entity.Company, error) {
	var cs []entity.Company
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&cs).Error
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// Update は企業レコードを保存します。
func (r *companyGorm) Update(ctx context.Context, c *entity.Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete は企業を削除します。
func (r *companyGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Company{}, id).Error
}

// UpdatePrice は株価のみを更新します。ニュースのインパクト適用で使われます。
// news/usecase.CompanyPricer を満たします。
func (r *companyGorm) UpdatePrice(ctx context.Context, id uint, price float64) error {
	res := r.db.WithContext(ctx).Model(&entity.Company{}).
		Where("id = ?", id).
		Update("current_price", price)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCompanyNotFound
	}
	return nil
}

// ResetBaselines は承認済み全企業の initial_price を current_price に
// 揃えます。スケジューラと手動閉場の両方から使われます。
// schedule/usecase.CompanyBaselines を満たします。
func (r *companyGorm) ResetBaselines(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&entity.Company{}).
		Where("status = ?", entity.StatusApproved).
		Update("initial_price", gorm.Expr("current_price")).Error
}
