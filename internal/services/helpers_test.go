package services

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gulfquotes/quoticon/internal/domain"
	"github.com/gulfquotes/quoticon/internal/repo"
)

var baseNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
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
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedQuotes inserts n quotes with ids q000.. created at createdAt.
func seedQuotes(t *testing.T, db *gorm.DB, n int, createdAt time.Time) {
	t.Helper()
	author := domain.AuthorProfile{ID: "a1", Name: "Rumi", Slug: "rumi"}
	cat := domain.Category{ID: "c1", Name: "Love", Slug: "love"}
	if err := db.FirstOrCreate(&author, "id = ?", author.ID).Error; err != nil {
		t.Fatalf("seed author: %v", err)
	}
	if err := db.FirstOrCreate(&cat, "id = ?", cat.ID).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	for i := 0; i < n; i++ {
		q := domain.Quote{
			ID:         fmt.Sprintf("q%03d", i),
			Slug:       fmt.Sprintf("quote-%03d", i),
			Content:    fmt.Sprintf("Quote %d", i),
			AuthorID:   author.ID,
			CategoryID: cat.ID,
			CreatedAt:  createdAt.UTC(),
			UpdatedAt:  createdAt.UTC(),
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seed quote %d: %v", i, err)
		}
	}
}

// seedHistory inserts inactive daily quote records selected at at.
func seedHistory(t *testing.T, db *gorm.DB, at time.Time, quoteIDs ...string) {
	t.Helper()
	for i, id := range quoteIDs {
		rec := domain.DailyQuote{
			ID:             fmt.Sprintf("h-%s-%d-%d", id, i, at.Unix()),
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

func countRows(t *testing.T, db *gorm.DB, active bool) int64 {
	t.Helper()
	q := db.Model(&domain.DailyQuote{})
	if active {
		q = q.Where("is_active = ?", true)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count daily quotes: %v", err)
	}
	return n
}

// clock is a settable time source for services.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }
