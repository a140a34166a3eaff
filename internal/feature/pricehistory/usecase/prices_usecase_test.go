package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"danset_exchange/internal/feature/pricehistory/domain/entity"
)

// mockPriceRepository はテスト用のPriceRepositoryモック実装です。
type mockPriceRepository struct {
	appended   []entity.PricePoint
	LatestFunc func(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error)
}

func (m *mockPriceRepository) Append(_ context.Context, p entity.PricePoint) error {
	m.appended = append(m.appended, p)
	return nil
}

func (m *mockPriceRepository) Latest(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, companyID, limit)
	}
	return nil, nil
}

func TestPricesUsecase_RecordPrice(t *testing.T) {
	repo := &mockPriceRepository{}
	uc := NewPricesUsecase(repo)

	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	if err := uc.RecordPrice(context.Background(), 1, "DNST", 10.25, at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.appended) != 1 {
		t.Fatalf("expected 1 appended point, got %d", len(repo.appended))
	}
	p := repo.appended[0]
	if p.CompanyID != 1 || p.Ticker != "DNST" || p.Price != 10.25 || !p.Time.Equal(at) {
		t.Errorf("unexpected point appended: %+v", p)
	}
}

func TestPricesUsecase_History(t *testing.T) {
	t.Run("limit is clamped to the default", func(t *testing.T) {
		for _, limit := range []int{0, -5, MaxOutputSize + 1} {
			repo := &mockPriceRepository{
				LatestFunc: func(_ context.Context, _ uint, got int) ([]entity.PricePoint, error) {
					if got != DefaultOutputSize {
						t.Errorf("limit %d: expected %d forwarded, got %d", limit, DefaultOutputSize, got)
					}
					return nil, nil
				},
			}
			uc := NewPricesUsecase(repo)
			if _, err := uc.History(context.Background(), 1, limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	})

	t.Run("valid limit passes through", func(t *testing.T) {
		repo := &mockPriceRepository{
			LatestFunc: func(_ context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
				if companyID != 3 || limit != 25 {
					t.Errorf("expected (3, 25), got (%d, %d)", companyID, limit)
				}
				return []entity.PricePoint{{CompanyID: 3, Price: 5.5}}, nil
			},
		}
		uc := NewPricesUsecase(repo)

		points, err := uc.History(context.Background(), 3, 25)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(points) != 1 || points[0].Price != 5.5 {
			t.Errorf("unexpected points: %+v", points)
		}
	})

	t.Run("repository errors propagate", func(t *testing.T) {
		wantErr := errors.New("db down")
		repo := &mockPriceRepository{
			LatestFunc: func(_ context.Context, _ uint, _ int) ([]entity.PricePoint, error) {
				return nil, wantErr
			},
		}
		uc := NewPricesUsecase(repo)

		if _, err := uc.History(context.Background(), 1, 10); !errors.Is(err, wantErr) {
			t.Errorf("expected repository error, got: %v", err)
		}
	})
}
