package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"danset_exchange/internal/feature/pricehistory/domain/entity"
)

// mockPriceRepository はテスト用のPriceRepositoryモック実装です。
type mockPriceRepository struct {
	appendFn func(ctx context.Context, p entity.PricePoint) error
	latestFn func(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error)
}

// Append はモックのAppend関数を呼び出します。
func (m *mockPriceRepository) Append(ctx context.Context, p entity.PricePoint) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, p)
	}
	return nil
}

// Latest はモックのLatest関数を呼び出します。
func (m *mockPriceRepository) Latest(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, companyID, limit)
	}
	return nil, nil
}

// TestNewCachingPriceRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingPriceRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       30 * time.Second,
			expectedNamespace: "prices",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Second,
			namespace:         "",
			expectedTTL:       30 * time.Second,
			expectedNamespace: "prices",
		},
		{
			name:              "custom values preserved",
			ttl:               2 * time.Minute,
			namespace:         "custom",
			expectedTTL:       2 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingPriceRepository(nil, tt.ttl, &mockPriceRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingPriceRepository_Latest_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingPriceRepository_Latest_NilRedis(t *testing.T) {
	t.Parallel()

	expectedPoints := []entity.PricePoint{
		{CompanyID: 1, Ticker: "DNST", Price: 10.5},
	}

	inner := &mockPriceRepository{
		latestFn: func(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
			return expectedPoints, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingPriceRepository(nil, 30*time.Second, inner, "prices")

	points, err := repo.Latest(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != len(expectedPoints) {
		t.Errorf("expected %d points, got %d", len(expectedPoints), len(points))
	}
}

// TestCachingPriceRepository_Latest_CacheHit はキャッシュヒット時にRedisからデータを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingPriceRepository_Latest_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedPoints := []entity.PricePoint{
		{CompanyID: 1, Ticker: "DNST", Price: 10.5},
	}
	cachedJSON, _ := json.Marshal(cachedPoints)

	mock.ExpectGet("prices:1:100").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockPriceRepository{
		latestFn: func(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingPriceRepository(rdb, 30*time.Second, inner, "prices")

	points, err := repo.Latest(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(points) != 1 || points[0].Price != 10.5 {
		t.Errorf("unexpected points from cache: %+v", points)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPriceRepository_Latest_CacheMiss はキャッシュミス時に内部リポジトリから取得しキャッシュへ保存することを検証します。
func TestCachingPriceRepository_Latest_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	dbPoints := []entity.PricePoint{
		{CompanyID: 1, Ticker: "DNST", Price: 9.8},
		{CompanyID: 1, Ticker: "DNST", Price: 10.1},
	}
	expectedJSON, _ := json.Marshal(dbPoints)

	mock.ExpectGet("prices:1:100").RedisNil()
	mock.ExpectSet("prices:1:100", expectedJSON, 30*time.Second).SetVal("OK")

	inner := &mockPriceRepository{
		latestFn: func(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
			return dbPoints, nil
		},
	}

	repo := NewCachingPriceRepository(rdb, 30*time.Second, inner, "prices")

	points, err := repo.Latest(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("expected 2 points, got %d", len(points))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPriceRepository_Latest_InnerError は内部リポジトリのエラーがそのまま伝播することを検証します。
func TestCachingPriceRepository_Latest_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("prices:1:100").RedisNil()

	wantErr := errors.New("db unavailable")
	inner := &mockPriceRepository{
		latestFn: func(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
			return nil, wantErr
		},
	}

	repo := NewCachingPriceRepository(rdb, 30*time.Second, inner, "prices")

	_, err := repo.Latest(context.Background(), 1, 100)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected inner error, got %v", err)
	}
}

// TestCachingPriceRepository_Latest_CorruptedCache は壊れたキャッシュを削除して内部リポジトリへフォールバックすることを検証します。
func TestCachingPriceRepository_Latest_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	dbPoints := []entity.PricePoint{
		{CompanyID: 1, Ticker: "DNST", Price: 10.0},
	}
	expectedJSON, _ := json.Marshal(dbPoints)

	// Return invalid JSON from cache
	mock.ExpectGet("prices:1:100").SetVal("invalid json")
	// Delete corrupted cache
	mock.ExpectDel("prices:1:100").SetVal(1)
	// Set new cache after fetching from inner
	mock.ExpectSet("prices:1:100", expectedJSON, 30*time.Second).SetVal("OK")

	inner := &mockPriceRepository{
		latestFn: func(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
			return dbPoints, nil
		},
	}

	repo := NewCachingPriceRepository(rdb, 30*time.Second, inner, "prices")

	points, err := repo.Latest(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Errorf("expected 1 point, got %d", len(points))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPriceRepository_Append_NilRedis はRedisがnilの場合でも書き込みが内部リポジトリへ届くことを検証します。
func TestCachingPriceRepository_Append_NilRedis(t *testing.T) {
	t.Parallel()

	var appended entity.PricePoint
	inner := &mockPriceRepository{
		appendFn: func(ctx context.Context, p entity.PricePoint) error {
			appended = p
			return nil
		},
	}

	repo := NewCachingPriceRepository(nil, 30*time.Second, inner, "prices")

	err := repo.Append(context.Background(), entity.PricePoint{CompanyID: 1, Ticker: "DNST", Price: 10.25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appended.Price != 10.25 {
		t.Errorf("expected point to reach inner, got %+v", appended)
	}
}

// TestCachingPriceRepository_Append_InvalidatesCache は追記後に該当企業のキャッシュがSCANとDELで無効化されることを検証します。
func TestCachingPriceRepository_Append_InvalidatesCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockPriceRepository{}

	// Expect cache invalidation via SCAN and DEL
	mock.ExpectScan(0, "prices:1:*", 200).SetVal([]string{"prices:1:100", "prices:1:50"}, 0)
	mock.ExpectDel("prices:1:100", "prices:1:50").SetVal(2)

	repo := NewCachingPriceRepository(rdb, 30*time.Second, inner, "prices")

	err := repo.Append(context.Background(), entity.PricePoint{CompanyID: 1, Ticker: "DNST", Price: 10.25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPriceRepository_Append_InnerError は内部リポジトリが失敗した場合に無効化を行わずエラーを返すことを検証します。
func TestCachingPriceRepository_Append_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	wantErr := errors.New("insert failed")
	inner := &mockPriceRepository{
		appendFn: func(ctx context.Context, p entity.PricePoint) error {
			return wantErr
		},
	}

	repo := NewCachingPriceRepository(rdb, 30*time.Second, inner, "prices")

	err := repo.Append(context.Background(), entity.PricePoint{CompanyID: 1})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected inner error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
