// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the DailyQuote
// history table: reading the active record, the anti-repeat window, history
// listing, and the atomic rotation that swaps the active record.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gulfquotes/quoticon/internal/domain"
)

// ErrActiveConflict is returned by ActivateDailyQuote when the partial unique
// index on is_active rejected the insert, i.e. a concurrent rotation from
// another process committed first.
var ErrActiveConflict = errors.New("another daily quote is already active")

// GetActiveDailyQuote returns the active record or ErrNotFound.
func GetActiveDailyQuote(ctx context.Context, db *gorm.DB) (*domain.DailyQuote, error) {
	var rec domain.DailyQuote
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("selection_date DESC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecentDailyQuoteIDs returns the distinct quote ids selected at or after since.
func RecentDailyQuoteIDs(ctx context.Context, db *gorm.DB, since time.Time) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.DailyQuote{}).
		Where("selection_date >= ?", since.UTC()).
		Distinct().
		Pluck("quote_id", &ids).Error
	return ids, err
}

// ActivateDailyQuote rotates the quote of the day inside one transaction: the
// currently active record (if any) is deactivated and a new active record for
// quoteID is inserted. Readers observe either the old or the new active row,
// never zero or two.
func ActivateDailyQuote(ctx context.Context, db *gorm.DB, quoteID string, selectedAt, expiresAt time.Time) (*domain.DailyQuote, error) {
	rec := &domain.DailyQuote{
		ID:             uuid.NewString(),
		QuoteID:        quoteID,
		SelectionDate:  selectedAt.UTC(),
		ExpirationDate: expiresAt.UTC(),
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.DailyQuote{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrActiveConflict
		}
		return nil, err
	}
	return rec, nil
}

// ListDailyQuoteHistory returns up to limit records, most recent first.
func ListDailyQuoteHistory(ctx context.Context, db *gorm.DB, limit int) ([]domain.DailyQuote, error) {
	out := []domain.DailyQuote{}
	err := db.WithContext(ctx).
		Order("selection_date DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite: "UNIQUE constraint failed"; postgres: "duplicate key value violates unique constraint"
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
