package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"danset_exchange/internal/feature/schedule/domain/entity"
)

// TickInterval is the nominal period of the scheduler loop.
const TickInterval = 60 * time.Second

// Scheduler drives the market session state machine. On every tick it
// compares the current UTC time against the configured schedule and, on a
// transition, rewrites the market status. A close transition (except for the
// lunch break) also resets every company's baseline price.
type Scheduler struct {
	schedules ScheduleRepository
	status    StatusRepository
	companies CompanyBaselines
	now       func() time.Time
}

// NewScheduler creates a Scheduler over the given repositories.
func NewScheduler(schedules ScheduleRepository, status StatusRepository, companies CompanyBaselines) *Scheduler {
	return &Scheduler{
		schedules: schedules,
		status:    status,
		companies: companies,
		now:       time.Now,
	}
}

// WithClock overrides the time source. For tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Run ticks once immediately and then every TickInterval until the context
// is cancelled. Tick errors are logged, never fatal.
func (s *Scheduler) Run(ctx context.Context) {
	if err := s.Tick(ctx); err != nil {
		slog.Error("scheduler tick failed", "error", err)
	}

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				slog.Error("scheduler tick failed", "error", err)
			}
		}
	}
}

// Tick evaluates the schedule once and applies at most one transition.
// With no schedule record, or auto scheduling disabled, it does nothing
// (manual admin control only).
func (s *Scheduler) Tick(ctx context.Context) error {
	schedule, err := s.schedules.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			return nil
		}
		return err
	}
	if !schedule.AutoScheduleEnabled {
		return nil
	}

	openTime, err := entity.ParseMinuteOfDay(schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("bad open_time: %w", err)
	}
	closeTime, err := entity.ParseMinuteOfDay(schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("bad close_time: %w", err)
	}
	lunchStart, err := entity.ParseMinuteOfDay(schedule.LunchBreakStart)
	if err != nil {
		return fmt.Errorf("bad lunch_break_start: %w", err)
	}
	lunchEnd, err := entity.ParseMinuteOfDay(schedule.LunchBreakEnd)
	if err != nil {
		return fmt.Errorf("bad lunch_break_end: %w", err)
	}

	now := s.now().UTC()
	currentMinute := now.Hour()*60 + now.Minute()

	status, err := s.status.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrStatusNotFound) {
			return err
		}
		// no record yet: every reader treats the market as open
		status = &entity.MarketStatus{IsOpen: true}
	}

	// The lunch window takes precedence over the open/close window, and a
	// lunch close never resets baseline prices.
	if lunchStart <= currentMinute && currentMinute < lunchEnd {
		if status.IsOpen {
			msg := fmt.Sprintf("Market closed for lunch break (%s-%s UTC)",
				schedule.LunchBreakStart, schedule.LunchBreakEnd)
			slog.Info("market closing for lunch", "until", schedule.LunchBreakEnd)
			return s.status.Upsert(ctx, false, msg)
		}
		return nil
	}

	var shouldBeOpen bool
	if closeTime > openTime {
		// session opens and closes on the same day
		shouldBeOpen = openTime <= currentMinute && currentMinute < closeTime
	} else {
		// session spans midnight
		shouldBeOpen = currentMinute >= openTime || currentMinute < closeTime
	}

	switch {
	case shouldBeOpen && !status.IsOpen:
		slog.Info("market opening", "open_time", schedule.OpenTime)
		return s.status.Upsert(ctx, true, "")
	case !shouldBeOpen && status.IsOpen:
		// reset baselines first so percentage change reads zero at close
		if err := s.companies.ResetBaselines(ctx); err != nil {
			return fmt.Errorf("baseline reset failed: %w", err)
		}
		msg := fmt.Sprintf("Market closed. Opens at %s UTC", schedule.OpenTime)
		slog.Info("market closing", "opens_at", schedule.OpenTime)
		return s.status.Upsert(ctx, false, msg)
	default:
		return nil
	}
}
