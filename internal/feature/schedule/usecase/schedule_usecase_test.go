package usecase

import (
	"context"
	"errors"
	"testing"

	"danset_exchange/internal/feature/schedule/domain/entity"
)

func TestScheduleUsecase_GetSchedule(t *testing.T) {
	t.Run("falls back to the default schedule", func(t *testing.T) {
		uc := NewScheduleUsecase(&mockScheduleRepo{}, &mockStatusRepo{}, &mockBaselines{})

		s, err := uc.GetSchedule(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.OpenTime != "20:00" || s.CloseTime != "08:00" {
			t.Errorf("default schedule: got %s-%s", s.OpenTime, s.CloseTime)
		}
		if !s.AutoScheduleEnabled {
			t.Error("default schedule should enable auto scheduling")
		}
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		repo := &mockScheduleRepo{GetFunc: func() (*entity.MarketSchedule, error) {
			return nil, errors.New("db down")
		}}
		uc := NewScheduleUsecase(repo, &mockStatusRepo{}, &mockBaselines{})

		if _, err := uc.GetSchedule(context.Background()); err == nil {
			t.Fatal("expected error but got nil")
		}
	})
}

func TestScheduleUsecase_UpdateSchedule(t *testing.T) {
	t.Run("rejects malformed times", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		uc := NewScheduleUsecase(repo, &mockStatusRepo{}, &mockBaselines{})

		s := entity.DefaultSchedule()
		s.OpenTime = "25:00"
		if err := uc.UpdateSchedule(context.Background(), s); err == nil {
			t.Fatal("expected error but got nil")
		}
		if repo.saved != nil {
			t.Error("invalid schedule was saved")
		}
	})

	t.Run("saves a valid schedule", func(t *testing.T) {
		repo := &mockScheduleRepo{}
		uc := NewScheduleUsecase(repo, &mockStatusRepo{}, &mockBaselines{})

		s := &entity.MarketSchedule{
			OpenTime: "09:00", CloseTime: "17:00",
			LunchBreakStart: "12:00", LunchBreakEnd: "13:00",
			AutoScheduleEnabled: true,
		}
		if err := uc.UpdateSchedule(context.Background(), s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.saved != s {
			t.Error("schedule was not saved")
		}
	})
}

func TestScheduleUsecase_Status(t *testing.T) {
	t.Run("missing record reads as open", func(t *testing.T) {
		uc := NewScheduleUsecase(&mockScheduleRepo{}, &mockStatusRepo{}, &mockBaselines{})

		st, err := uc.GetStatus(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !st.IsOpen {
			t.Error("missing status record should read as open")
		}
	})

	t.Run("CurrentStatus mirrors the stored record", func(t *testing.T) {
		statusRepo := &mockStatusRepo{GetFunc: func() (*entity.MarketStatus, error) {
			return &entity.MarketStatus{IsOpen: false, Message: "Market closed. Opens at 20:00 UTC"}, nil
		}}
		uc := NewScheduleUsecase(&mockScheduleRepo{}, statusRepo, &mockBaselines{})

		isOpen, message, err := uc.CurrentStatus(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if isOpen {
			t.Error("expected closed")
		}
		if message != "Market closed. Opens at 20:00 UTC" {
			t.Errorf("unexpected message: %q", message)
		}
	})
}

func TestScheduleUsecase_SetMarketStatus(t *testing.T) {
	t.Run("manual close resets baselines first", func(t *testing.T) {
		statusRepo := &mockStatusRepo{}
		baselines := &mockBaselines{}
		uc := NewScheduleUsecase(&mockScheduleRepo{}, statusRepo, baselines)

		if err := uc.SetMarketStatus(context.Background(), false, "maintenance"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if baselines.resets != 1 {
			t.Errorf("expected 1 baseline reset, got %d", baselines.resets)
		}
		if len(statusRepo.upserts) != 1 || statusRepo.upserts[0].IsOpen || statusRepo.upserts[0].Message != "maintenance" {
			t.Errorf("status write: got %+v", statusRepo.upserts)
		}
	})

	t.Run("manual open leaves baselines alone", func(t *testing.T) {
		statusRepo := &mockStatusRepo{}
		baselines := &mockBaselines{}
		uc := NewScheduleUsecase(&mockScheduleRepo{}, statusRepo, baselines)

		if err := uc.SetMarketStatus(context.Background(), true, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if baselines.resets != 0 {
			t.Error("open must not reset baselines")
		}
	})

	t.Run("failed reset aborts the close", func(t *testing.T) {
		statusRepo := &mockStatusRepo{}
		baselines := &mockBaselines{ResetFunc: func() error { return errors.New("db down") }}
		uc := NewScheduleUsecase(&mockScheduleRepo{}, statusRepo, baselines)

		if err := uc.SetMarketStatus(context.Background(), false, ""); err == nil {
			t.Fatal("expected error but got nil")
		}
		if len(statusRepo.upserts) != 0 {
			t.Error("status written despite failed baseline reset")
		}
	})
}
