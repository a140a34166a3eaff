package adapters

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"danset_exchange/internal/feature/news/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.News{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestNewsGorm_CreateAndMarkApplied(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNewsRepository(db)

	n := &entity.News{
		Title:     "Record earnings",
		Content:   "Profits doubled.",
		CompanyID: 1,
		Ticker:    "DNST",
		Impact:    entity.ImpactPositive,
	}
	require.NoError(t, repo.Create(context.Background(), n))
	require.NotZero(t, n.ID)
	assert.False(t, n.ImpactApplied)

	require.NoError(t, repo.MarkApplied(context.Background(), n.ID))

	var got entity.News
	require.NoError(t, db.First(&got, n.ID).Error)
	assert.True(t, got.ImpactApplied)
}

func TestNewsGorm_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNewsRepository(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(context.Background(), &entity.News{
			Title:     fmt.Sprintf("headline %d", i),
			Content:   "body",
			CompanyID: 1,
			Ticker:    "DNST",
			Impact:    entity.ImpactNeutral,
		}))
	}

	ns, err := repo.List(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, ns, 3)
	assert.Equal(t, "headline 4", ns[0].Title, "newest first")
}
