package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gulfquotes/quoticon/internal/domain"
)

func TestEngagementService_Record(t *testing.T) {
	db := newTestDB(t)
	seedQuotes(t, db, 1, baseNow)
	s := NewEngagementService(db)
	ctx := context.Background()

	for _, k := range []domain.EngagementKind{
		domain.EngagementView, domain.EngagementView,
		domain.EngagementLike, domain.EngagementShare, domain.EngagementDownload,
	} {
		if err := s.Record(ctx, "q000", k); err != nil {
			t.Fatalf("Record(%s): %v", k, err)
		}
	}

	var q domain.Quote
	if err := db.First(&q, "id = ?", "q000").Error; err != nil {
		t.Fatal(err)
	}
	if q.Views != 2 || q.Likes != 1 || q.ShareCount != 1 || q.DownloadCount != 1 {
		t.Fatalf("counters = views %d likes %d shares %d downloads %d", q.Views, q.Likes, q.ShareCount, q.DownloadCount)
	}
	if !q.UpdatedAt.After(baseNow) {
		t.Fatalf("updated_at not bumped: %v", q.UpdatedAt)
	}
}

func TestEngagementService_UnlikeNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	seedQuotes(t, db, 1, baseNow.Add(-time.Hour))
	s := NewEngagementService(db)
	ctx := context.Background()

	if err := s.Record(ctx, "q000", domain.EngagementUnlike); err != nil {
		t.Fatalf("unlike at zero: %v", err)
	}
	_ = s.Record(ctx, "q000", domain.EngagementLike)
	_ = s.Record(ctx, "q000", domain.EngagementUnlike)
	_ = s.Record(ctx, "q000", domain.EngagementUnlike)

	var likes int64
	if err := db.Model(&domain.Quote{}).Where("id = ?", "q000").Pluck("likes", &likes).Error; err != nil {
		t.Fatal(err)
	}
	if likes != 0 {
		t.Fatalf("likes = %d, want 0", likes)
	}
}

func TestEngagementService_Errors(t *testing.T) {
	db := newTestDB(t)
	seedQuotes(t, db, 1, baseNow)
	s := NewEngagementService(db)
	ctx := context.Background()

	if err := s.Record(ctx, "q000", domain.EngagementKind("poke")); !errors.Is(err, ErrInvalidEngagement) {
		t.Fatalf("err = %v, want ErrInvalidEngagement", err)
	}
	if err := s.Record(ctx, "nope", domain.EngagementView); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("err = %v, want ErrQuoteNotFound", err)
	}
}
