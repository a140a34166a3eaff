// Package adapters はscheduleフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"danset_exchange/internal/feature/schedule/domain/entity"
	"danset_exchange/internal/feature/schedule/usecase"
)

// scheduleGorm はScheduleRepositoryインターフェースのGORM実装です。
// シングルトンは「最初の1行」で表現し、get-or-default / upsert で扱います。
type scheduleGorm struct {
	db *gorm.DB
}

var _ usecase.ScheduleRepository = (*scheduleGorm)(nil)

// NewScheduleRepository はscheduleGormの新しいインスタンスを生成します。
func NewScheduleRepository(db *gorm.DB) *scheduleGorm {
	return &scheduleGorm{db: db}
}

// Get はスケジュールシングルトンを取得します。
func (r *scheduleGorm) Get(ctx context.Context) (*entity.MarketSchedule, error) {
	var s entity.MarketSchedule
	if err := r.db.WithContext(ctx).Order("id").First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Upsert はスケジュールを作成または更新します。
func (r *scheduleGorm) Upsert(ctx context.Context, s *entity.MarketSchedule) error {
	var existing entity.MarketSchedule
	err := r.db.WithContext(ctx).Order("id").First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(s).Error
		}
		return err
	}
	s.ID = existing.ID
	return r.db.WithContext(ctx).Save(s).Error
}

// statusGorm はStatusRepositoryインターフェースのGORM実装です。
type statusGorm struct {
	db *gorm.DB
}

var _ usecase.StatusRepository = (*statusGorm)(nil)

// NewStatusRepository はstatusGormの新しいインスタンスを生成します。
func NewStatusRepository(db *gorm.DB) *statusGorm {
	return &statusGorm{db: db}
}

// Get はステータスシングルトンを取得します。
func (r *statusGorm) Get(ctx context.Context) (*entity.MarketStatus, error) {
	var st entity.MarketStatus
	if err := r.db.WithContext(ctx).Order("id").First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrStatusNotFound
		}
		return nil, err
	}
	return &st, nil
}

// Upsert はステータスを作成または更新します。
func (r *statusGorm) Upsert(ctx context.Context, isOpen bool, message string) error {
	var existing entity.MarketStatus
	err := r.db.WithContext(ctx).Order("id").First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(&entity.MarketStatus{
				IsOpen:  isOpen,
				Message: message,
			}).Error
		}
		return err
	}
	return r.db.WithContext(ctx).Model(&existing).
		Updates(map[string]any{
			"is_open": isOpen,
			"message": message,
		}).Error
}
