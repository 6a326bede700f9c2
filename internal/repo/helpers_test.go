package repo

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gulfquotes/quoticon/internal/domain"
)

// newTestDB opens a migrated in-memory database unique to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedQuotes inserts n quotes (ids q000..) under one author and category.
func seedQuotes(t *testing.T, db *gorm.DB, n int, createdAt time.Time) []domain.Quote {
	t.Helper()
	author := domain.AuthorProfile{ID: "a1", Name: "Maya Angelou", Slug: "maya-angelou"}
	cat := domain.Category{ID: "c1", Name: "Wisdom", Slug: "wisdom"}
	tag := domain.Tag{ID: "t1", Name: "hope", Slug: "hope"}
	if err := db.FirstOrCreate(&author, "id = ?", author.ID).Error; err != nil {
		t.Fatalf("seed author: %v", err)
	}
	if err := db.FirstOrCreate(&cat, "id = ?", cat.ID).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if err := db.FirstOrCreate(&tag, "id = ?", tag.ID).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	out := make([]domain.Quote, 0, n)
	for i := 0; i < n; i++ {
		q := domain.Quote{
			ID:         fmt.Sprintf("q%03d", i),
			Slug:       fmt.Sprintf("quote-%03d", i),
			Content:    fmt.Sprintf("Quote number %d", i),
			AuthorID:   author.ID,
			CategoryID: cat.ID,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
			Tags:       []domain.Tag{tag},
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seed quote %d: %v", i, err)
		}
		out = append(out, q)
	}
	return out
}

// seedHistory inserts inactive daily quote rows for the given quote ids.
func seedHistory(t *testing.T, db *gorm.DB, at time.Time, quoteIDs ...string) {
	t.Helper()
	for i, id := range quoteIDs {
		rec := domain.DailyQuote{
			ID:             fmt.Sprintf("h-%s-%d", id, i),
			QuoteID:        id,
			SelectionDate:  at.UTC(),
			ExpirationDate: at.Add(24 * time.Hour).UTC(),
			CreatedAt:      at.UTC(),
		}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("seed history %s: %v", id, err)
		}
	}
}

func countActive(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&domain.DailyQuote{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		t.Fatalf("count active: %v", err)
	}
	return n
}
