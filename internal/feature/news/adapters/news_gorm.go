// Package adapters はnewsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"danset_exchange/internal/feature/news/domain/entity"
	"danset_exchange/internal/feature/news/usecase"
)

// newsGorm はNewsRepositoryインターフェースのGORM実装です。
type newsGorm struct {
	db *gorm.DB
}

var _ usecase.NewsRepository = (*newsGorm)(nil)

// NewNewsRepository はnewsGormの新しいインスタンスを生成します。
func NewNewsRepository(db *gorm.DB) *newsGorm {
	return &newsGorm{db: db}
}

// Create はニュースを追加します。
func (r *newsGorm) Create(ctx context.Context, n *entity.News) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// MarkApplied は impact_applied フラグを立てます。
func (r *newsGorm) MarkApplied(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.News{}).
		Where("id = ?", id).
		Update("impact_applied", true).Error
}

// List はニュースを新しい順に返します。
func (r *newsGorm) List(ctx context.Context, limit int) ([]entity.News, error) {
	var ns []entity.News
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&ns).Error
	if err != nil {
		return nil, err
	}
	return ns, nil
}
