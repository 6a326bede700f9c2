package repo

import (
	"context"
	"testing"
	"time"
)

func TestDailyQuoteStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, latest, err := DailyQuoteStats(ctx, db)
	if err != nil || n != 0 || latest != nil {
		t.Fatalf("empty stats = %d, %v, %v", n, latest, err)
	}

	seedQuotes(t, db, 2, time.Now().UTC())
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if _, err := ActivateDailyQuote(ctx, db, "q000", t0, t0.Add(10*time.Hour)); err != nil {
		t.Fatal(err)
	}
	_, first, _ := DailyQuoteStats(ctx, db)
	if _, err := ActivateDailyQuote(ctx, db, "q001", t0.Add(10*time.Hour), t0.Add(34*time.Hour)); err != nil {
		t.Fatal(err)
	}

	n, latest, err = DailyQuoteStats(ctx, db)
	if err != nil || n != 2 || latest == nil {
		t.Fatalf("stats = %d, %v, %v", n, latest, err)
	}
	if latest.Before(*first) {
		t.Fatalf("latest %v before first %v", latest, first)
	}
}
