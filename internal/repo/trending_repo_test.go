package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gulfquotes/quoticon/internal/domain"
)

func TestListTrendingCandidates_WindowAndRelationCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	seedQuotes(t, db, 3, now.Add(-time.Hour))
	// q002 is old and untouched: outside the window.
	old := now.Add(-30 * 24 * time.Hour)
	if err := db.Model(&domain.Quote{}).Where("id = ?", "q002").
		UpdateColumns(map[string]any{"created_at": old, "updated_at": old}).Error; err != nil {
		t.Fatalf("age q002: %v", err)
	}
	if err := db.Model(&domain.Quote{}).Where("id = ?", "q000").
		UpdateColumns(map[string]any{"likes": 4, "views": 10, "download_count": 2, "share_count": 1}).Error; err != nil {
		t.Fatalf("bump q000: %v", err)
	}
	for i, uid := range []string{"u1", "u2"} {
		c := domain.Comment{ID: "cm" + uid, QuoteID: "q000", UserID: uid, Content: "nice", CreatedAt: now}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("comment %d: %v", i, err)
		}
	}
	deleted := domain.Comment{ID: "cm-del", QuoteID: "q000", UserID: "u3", Content: "gone", CreatedAt: now}
	if err := db.Create(&deleted).Error; err != nil {
		t.Fatalf("comment: %v", err)
	}
	if err := db.Delete(&deleted).Error; err != nil {
		t.Fatalf("soft delete comment: %v", err)
	}
	if err := db.Create(&domain.QuoteBookmark{ID: "b1", QuoteID: "q000", UserID: "u1", CreatedAt: now}).Error; err != nil {
		t.Fatalf("bookmark: %v", err)
	}

	got, err := ListTrendingCandidates(ctx, db, now.Add(-7*24*time.Hour), 0)
	if err != nil {
		t.Fatalf("ListTrendingCandidates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("candidates = %d; want 2 (q002 is outside the window)", len(got))
	}
	var q0 *TrendingCandidate
	for i := range got {
		if got[i].ID == "q002" {
			t.Fatalf("q002 must not be a candidate")
		}
		if got[i].ID == "q000" {
			q0 = &got[i]
		}
	}
	if q0 == nil {
		t.Fatalf("q000 missing from candidates")
	}
	if q0.Likes != 4 || q0.Views != 10 || q0.DownloadCount != 2 || q0.ShareCount != 1 {
		t.Fatalf("counters = %+v", q0)
	}
	if q0.CommentCount != 2 || q0.BookmarkCount != 1 {
		t.Fatalf("relation counts = comments %d bookmarks %d; want 2, 1", q0.CommentCount, q0.BookmarkCount)
	}

	capped, err := ListTrendingCandidates(ctx, db, now.Add(-7*24*time.Hour), 1)
	if err != nil || len(capped) != 1 {
		t.Fatalf("capped = %d, %v; want 1", len(capped), err)
	}
}

func TestListTrendingCandidates_NonUTCTimestamps(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	since := now.Add(-7 * 24 * time.Hour)
	plus4 := time.FixedZone("UTC+04:00", 4*3600)
	minus5 := time.FixedZone("UTC-05:00", -5*3600)

	seedQuotes(t, db, 0, now) // author and category only
	seed := map[string]time.Time{
		// Two hours outside the window, written in a zone ahead of UTC.
		"old": since.Add(-2 * time.Hour).In(plus4),
		// Two hours inside the window, written in a zone behind UTC.
		"new": since.Add(2 * time.Hour).In(minus5),
	}
	for id, at := range seed {
		q := domain.Quote{ID: id, Slug: id, Content: id, AuthorID: "a1", CategoryID: "c1", CreatedAt: at, UpdatedAt: at}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	got, err := ListTrendingCandidates(ctx, db, since.In(plus4), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("candidates = %+v, want only the quote inside the window", got)
	}
}

func TestQuoteBeforeSave_StoresUTC(t *testing.T) {
	db := newTestDB(t)
	plus4 := time.FixedZone("UTC+04:00", 4*3600)
	at := time.Date(2025, 6, 10, 3, 0, 0, 0, plus4)

	seedQuotes(t, db, 0, at)
	q := domain.Quote{ID: "qz", Slug: "qz", Content: "c", AuthorID: "a1", CategoryID: "c1", CreatedAt: at, UpdatedAt: at}
	if err := db.Create(&q).Error; err != nil {
		t.Fatal(err)
	}
	if q.CreatedAt.Location() != time.UTC || !q.CreatedAt.Equal(at) {
		t.Fatalf("created_at = %v", q.CreatedAt)
	}

	var raw string
	if err := db.Raw("SELECT created_at FROM quotes WHERE id = ?", "qz").Scan(&raw).Error; err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(raw, "2025-06-09") {
		t.Fatalf("stored created_at = %q, want the UTC date", raw)
	}
}
