package usecase

import (
	"context"
	"errors"
	"fmt"

	"danset_exchange/internal/feature/schedule/domain/entity"
)

// ScheduleRepository はMarketScheduleシングルトンの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type ScheduleRepository interface {
	// Get は現在のスケジュールを返します。レコードが存在しない場合は
	// ErrScheduleNotFound を返します。
	Get(ctx context.Context) (*entity.MarketSchedule, error)

	// Upsert はスケジュールを作成または更新します（get-or-create）。
	Upsert(ctx context.Context, s *entity.MarketSchedule) error
}

// StatusRepository はMarketStatusシングルトンの永続化層を抽象化します。
type StatusRepository interface {
	// Get は現在のステータスを返します。レコードが存在しない場合は
	// ErrStatusNotFound を返します。
	Get(ctx context.Context) (*entity.MarketStatus, error)

	// Upsert はステータスを作成または更新します。
	Upsert(ctx context.Context, isOpen bool, message string) error
}

// CompanyBaselines は企業のベースライン価格リセットを抽象化します。
type CompanyBaselines interface {
	// ResetBaselines は承認済み全企業の initial_price を current_price
	// に揃えます。閉場直後の騰落率表示がゼロから始まるようにするためです。
	ResetBaselines(ctx context.Context) error
}

// scheduleUsecase は市場スケジュールとステータスの参照・管理を実装します。
type scheduleUsecase struct {
	schedules ScheduleRepository
	status    StatusRepository
	companies CompanyBaselines
}

// NewScheduleUsecase はscheduleUsecaseの新しいインスタンスを生成します。
func NewScheduleUsecase(schedules ScheduleRepository, status StatusRepository, companies CompanyBaselines) *scheduleUsecase {
	return &scheduleUsecase{
		schedules: schedules,
		status:    status,
		companies: companies,
	}
}

// GetSchedule は現在のスケジュールを返します。未設定の場合は
// デフォルトスケジュール（20:00-08:00、昼休み00:00-01:00 UTC）を返します。
func (u *scheduleUsecase) GetSchedule(ctx context.Context) (*entity.MarketSchedule, error) {
	s, err := u.schedules.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			return entity.DefaultSchedule(), nil
		}
		return nil, err
	}
	return s, nil
}

// UpdateSchedule は検証済みのスケジュールを保存します。
func (u *scheduleUsecase) UpdateSchedule(ctx context.Context, s *entity.MarketSchedule) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}
	return u.schedules.Upsert(ctx, s)
}

// GetStatus は現在の開閉状態を返します。ステータスレコードが存在しない
// 場合は「開場」として扱います（fail-open）。
func (u *scheduleUsecase) GetStatus(ctx context.Context) (*entity.MarketStatus, error) {
	st, err := u.status.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrStatusNotFound) {
			return &entity.MarketStatus{IsOpen: true}, nil
		}
		return nil, err
	}
	return st, nil
}

// CurrentStatus はtradingフィーチャーのMarketStatusReaderを満たします。
func (u *scheduleUsecase) CurrentStatus(ctx context.Context) (bool, string, error) {
	st, err := u.GetStatus(ctx)
	if err != nil {
		return false, "", err
	}
	return st.IsOpen, st.Message, nil
}

// SetMarketStatus は管理者による手動の開閉操作です。閉場時はスケジューラ
// と同様にベースライン価格をリセットしてからステータスを書き込みます。
func (u *scheduleUsecase) SetMarketStatus(ctx context.Context, isOpen bool, message string) error {
	if !isOpen {
		if err := u.companies.ResetBaselines(ctx); err != nil {
			return fmt.Errorf("baseline reset failed: %w", err)
		}
	}
	return u.status.Upsert(ctx, isOpen, message)
}
