// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the engagement aggregate query that
// feeds the trending ranking.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gulfquotes/quoticon/internal/domain"
)

// TrendingCandidate is one quote with every engagement signal the trending
// score consumes. Comment and bookmark counts come from relation counts.
type TrendingCandidate struct {
	ID            string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Likes         int64
	Views         int64
	DownloadCount int64
	ShareCount    int64
	CommentCount  int64
	BookmarkCount int64
}

const trendingSelect = `quotes.id, quotes.created_at, quotes.updated_at,
quotes.likes, quotes.views, quotes.download_count, quotes.share_count,
(SELECT COUNT(*) FROM comments c WHERE c.quote_id = quotes.id AND c.deleted_at IS NULL) AS comment_count,
(SELECT COUNT(*) FROM quote_bookmarks b WHERE b.quote_id = quotes.id) AS bookmark_count`

// ListTrendingCandidates returns quotes created or updated at or after since,
// most recently updated first, capped at max rows. Older quotes are never
// candidates regardless of their engagement. Stored timestamps are UTC, so
// since is converted before comparing.
func ListTrendingCandidates(ctx context.Context, db *gorm.DB, since time.Time, max int) ([]TrendingCandidate, error) {
	since = since.UTC()
	out := []TrendingCandidate{}
	q := db.WithContext(ctx).
		Model(&domain.Quote{}).
		Select(trendingSelect).
		Where("(quotes.created_at >= ? OR quotes.updated_at >= ?)", since, since).
		Order("quotes.updated_at DESC")
	if max > 0 {
		q = q.Limit(max)
	}
	err := q.Scan(&out).Error
	return out, err
}
