// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the quote queries the selection core
// needs: candidate counting with an optional anti-repeat exclusion, offset
// based single-row fetches, display projections, and counter adjustments.
//
// Error semantics:
//   - When a quote is not found, functions return ErrNotFound.
//   - On DB errors, the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gulfquotes/quoticon/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// counterColumns whitelists the quote columns AdjustQuoteCounter may touch.
var counterColumns = map[string]struct{}{
	"likes":          {},
	"views":          {},
	"download_count": {},
	"share_count":    {},
}

// candidateScope returns a quotes query, excluding quotes that were selected
// as daily quote at or after excludeSince. A zero excludeSince disables the
// exclusion (full catalog).
func candidateScope(ctx context.Context, db *gorm.DB, excludeSince time.Time) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.Quote{})
	if excludeSince.IsZero() {
		return q
	}
	recent := db.WithContext(ctx).
		Model(&domain.DailyQuote{}).
		Select("quote_id").
		Where("selection_date >= ?", excludeSince.UTC())
	return q.Where("quotes.id NOT IN (?)", recent)
}

// CountCandidateQuotes returns how many quotes are eligible for selection.
// See candidateScope for the meaning of excludeSince.
func CountCandidateQuotes(ctx context.Context, db *gorm.DB, excludeSince time.Time) (int64, error) {
	var n int64
	err := candidateScope(ctx, db, excludeSince).Count(&n).Error
	return n, err
}

// CandidateQuoteIDAt returns the id of the eligible quote at offset in a
// stable (id ascending) order. Callers draw offset uniformly in [0, count)
// from CountCandidateQuotes; ErrNotFound is returned when the offset is past
// the end (e.g. the catalog shrank in between).
func CandidateQuoteIDAt(ctx context.Context, db *gorm.DB, excludeSince time.Time, offset int64) (string, error) {
	var ids []string
	err := candidateScope(ctx, db, excludeSince).
		Order("quotes.id ASC").
		Offset(int(offset)).
		Limit(1).
		Pluck("quotes.id", &ids).Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", ErrNotFound
	}
	return ids[0], nil
}

// preloadDisplay loads the relations needed by domain.QuoteDisplay.
func preloadDisplay(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Category").Preload("Tags")
}

// GetQuoteDisplay fetches a quote with author, category and tags and returns
// its display projection, or ErrNotFound.
func GetQuoteDisplay(ctx context.Context, db *gorm.DB, id string) (*domain.QuoteDisplay, error) {
	var q domain.Quote
	if err := preloadDisplay(db.WithContext(ctx)).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return domain.NewQuoteDisplay(&q), nil
}

// ListQuoteDisplays loads display projections for ids, keyed by id. Missing
// ids are simply absent from the map.
func ListQuoteDisplays(ctx context.Context, db *gorm.DB, ids []string) (map[string]*domain.QuoteDisplay, error) {
	out := make(map[string]*domain.QuoteDisplay, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var quotes []domain.Quote
	if err := preloadDisplay(db.WithContext(ctx)).Where("id IN ?", ids).Find(&quotes).Error; err != nil {
		return nil, err
	}
	for i := range quotes {
		out[quotes[i].ID] = domain.NewQuoteDisplay(&quotes[i])
	}
	return out, nil
}

// AdjustQuoteCounter atomically adds delta to one engagement counter of a
// quote. Decrements never take the counter below zero: a decrement on a zero
// counter is a silent no-op. Returns ErrNotFound if the quote does not exist.
func AdjustQuoteCounter(ctx context.Context, db *gorm.DB, id, column string, delta int64) error {
	if _, ok := counterColumns[column]; !ok {
		return fmt.Errorf("unknown counter column %q", column)
	}
	if delta == 0 {
		return nil
	}
	q := db.WithContext(ctx).Model(&domain.Quote{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where(column+" >= ?", -delta)
	}
	res := q.Update(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing updated: either the quote is missing or the floor guard hit.
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Quote{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is the repository's not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
