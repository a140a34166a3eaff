package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	marketentity "danset_exchange/internal/feature/market/domain/entity"
	"danset_exchange/internal/feature/news/domain/entity"
)

// mockNewsRepository is a mock implementation of the NewsRepository interface.
type mockNewsRepository struct {
	created []*entity.News
	applied []uint
	// ListFunc is called when the List method is invoked.
	ListFunc func(limit int) ([]entity.News, error)
}

func (m *mockNewsRepository) Create(ctx context.Context, n *entity.News) error {
	n.ID = uint(len(m.created) + 1)
	m.created = append(m.created, n)
	return nil
}

func (m *mockNewsRepository) MarkApplied(ctx context.Context, id uint) error {
	m.applied = append(m.applied, id)
	return nil
}

func (m *mockNewsRepository) List(ctx context.Context, limit int) ([]entity.News, error) {
	if m.ListFunc != nil {
		return m.ListFunc(limit)
	}
	return nil, nil
}

// mockCompanyPricer is a mock implementation of the CompanyPricer interface.
type mockCompanyPricer struct {
	company *marketentity.Company
	updates []float64
}

func (m *mockCompanyPricer) FindByID(ctx context.Context, id uint) (*marketentity.Company, error) {
	if m.company == nil || m.company.ID != id {
		return nil, errors.New("record not found")
	}
	copied := *m.company
	return &copied, nil
}

func (m *mockCompanyPricer) UpdatePrice(ctx context.Context, id uint, price float64) error {
	m.updates = append(m.updates, price)
	return nil
}

// mockPriceRecorder captures recorded prices.
type mockPriceRecorder struct {
	prices []float64
}

func (m *mockPriceRecorder) RecordPrice(ctx context.Context, companyID uint, ticker string, price float64, at time.Time) error {
	m.prices = append(m.prices, price)
	return nil
}

func testCompany() *marketentity.Company {
	return &marketentity.Company{
		ID:           1,
		Ticker:       "DNST",
		Name:         "Danset Heavy Industries",
		CurrentPrice: 100.00,
		Status:       marketentity.StatusApproved,
	}
}

func validPublish() PublishRequest {
	return PublishRequest{
		Title:     "Record quarterly earnings",
		Content:   "Profits doubled year over year.",
		CompanyID: 1,
		Impact:    entity.ImpactVeryPositive,
	}
}

func TestNewsUsecase_Publish(t *testing.T) {
	t.Run("applies the impact once and marks it", func(t *testing.T) {
		newsRepo := &mockNewsRepository{}
		pricer := &mockCompanyPricer{company: testCompany()}
		rec := &mockPriceRecorder{}
		uc := NewNewsUsecase(newsRepo, pricer, rec)

		item, err := uc.Publish(context.Background(), validPublish())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if item.Ticker != "DNST" {
			t.Errorf("ticker not denormalized: %q", item.Ticker)
		}
		if !item.ImpactApplied {
			t.Error("impact not marked as applied")
		}
		if len(newsRepo.applied) != 1 || newsRepo.applied[0] != item.ID {
			t.Errorf("MarkApplied calls: %v", newsRepo.applied)
		}

		// very_positive は +15%: 100.00 -> 115.00
		if len(pricer.updates) != 1 || math.Abs(pricer.updates[0]-115.00) > 1e-9 {
			t.Errorf("price updates: got %v, want [115.00]", pricer.updates)
		}
		if len(rec.prices) != 1 || math.Abs(rec.prices[0]-115.00) > 1e-9 {
			t.Errorf("recorded prices: got %v, want [115.00]", rec.prices)
		}
	})

	t.Run("negative impact lowers the price", func(t *testing.T) {
		pricer := &mockCompanyPricer{company: testCompany()}
		uc := NewNewsUsecase(&mockNewsRepository{}, pricer, nil)

		req := validPublish()
		req.Impact = entity.ImpactNegative
		if _, err := uc.Publish(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// negative は -7%: 100.00 -> 93.00
		if len(pricer.updates) != 1 || math.Abs(pricer.updates[0]-93.00) > 1e-9 {
			t.Errorf("price updates: got %v, want [93.00]", pricer.updates)
		}
	})

	t.Run("price never drops below the floor", func(t *testing.T) {
		company := testCompany()
		company.CurrentPrice = 0.01
		pricer := &mockCompanyPricer{company: company}
		uc := NewNewsUsecase(&mockNewsRepository{}, pricer, nil)

		req := validPublish()
		req.Impact = entity.ImpactVeryNegative
		if _, err := uc.Publish(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pricer.updates) != 1 || pricer.updates[0] != 0.01 {
			t.Errorf("price updates: got %v, want [0.01]", pricer.updates)
		}
	})

	t.Run("neutral impact still publishes", func(t *testing.T) {
		newsRepo := &mockNewsRepository{}
		pricer := &mockCompanyPricer{company: testCompany()}
		uc := NewNewsUsecase(newsRepo, pricer, nil)

		req := validPublish()
		req.Impact = entity.ImpactNeutral
		item, err := uc.Publish(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !item.ImpactApplied {
			t.Error("neutral news must still be marked applied")
		}
		if len(pricer.updates) != 1 || pricer.updates[0] != 100.00 {
			t.Errorf("price updates: got %v, want [100.00]", pricer.updates)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		uc := NewNewsUsecase(&mockNewsRepository{}, &mockCompanyPricer{company: testCompany()}, nil)

		for name, mutate := range map[string]func(*PublishRequest){
			"empty title":    func(r *PublishRequest) { r.Title = "  " },
			"empty content":  func(r *PublishRequest) { r.Content = "" },
			"unknown impact": func(r *PublishRequest) { r.Impact = "catastrophic" },
		} {
			t.Run(name, func(t *testing.T) {
				req := validPublish()
				mutate(&req)
				if _, err := uc.Publish(context.Background(), req); !errors.Is(err, ErrInvalidNews) {
					t.Errorf("expected ErrInvalidNews, got: %v", err)
				}
			})
		}
	})

	t.Run("missing company", func(t *testing.T) {
		uc := NewNewsUsecase(&mockNewsRepository{}, &mockCompanyPricer{}, nil)

		if _, err := uc.Publish(context.Background(), validPublish()); !errors.Is(err, ErrCompanyNotFound) {
			t.Errorf("expected ErrCompanyNotFound, got: %v", err)
		}
	})
}

func TestNewsUsecase_List(t *testing.T) {
	t.Run("clamps the limit", func(t *testing.T) {
		var gotLimit int
		repo := &mockNewsRepository{ListFunc: func(limit int) ([]entity.News, error) {
			gotLimit = limit
			return nil, nil
		}}
		uc := NewNewsUsecase(repo, &mockCompanyPricer{}, nil)

		if _, err := uc.List(context.Background(), 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLimit != 50 {
			t.Errorf("limit: got %d, want 50", gotLimit)
		}

		if _, err := uc.List(context.Background(), 500); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLimit != 50 {
			t.Errorf("limit: got %d, want 50", gotLimit)
		}
	})
}
