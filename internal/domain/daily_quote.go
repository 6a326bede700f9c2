package domain

import (
	"time"

	"gorm.io/gorm"
)

// DailyQuote is one entry of the quote-of-the-day history.
//
// At most one row has IsActive = true at any time; that row is "today's
// quote" until ExpirationDate. Rotating deactivates the previous row instead
// of deleting it so the history can drive the anti-repeat window.
//
// The single-active rule is backed by a partial unique index created in
// repo.AutoMigrate (gorm tags cannot express the WHERE clause).
type DailyQuote struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	QuoteID        string    `json:"quote_id"        gorm:"type:char(36);not null;index"`
	SelectionDate  time.Time `json:"selection_date"  gorm:"not null;index"`
	ExpirationDate time.Time `json:"expiration_date" gorm:"not null"`
	IsActive       bool      `json:"is_active"       gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`

	Quote Quote `json:"-" gorm:"foreignKey:QuoteID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for DailyQuote.
func (DailyQuote) TableName() string { return "daily_quotes" }

// BeforeSave normalizes the cycle bounds to UTC.
func (d *DailyQuote) BeforeSave(*gorm.DB) error {
	d.SelectionDate = utc(d.SelectionDate)
	d.ExpirationDate = utc(d.ExpirationDate)
	d.CreatedAt = utc(d.CreatedAt)
	return nil
}

// Expired reports whether the record is no longer current at now.
func (d *DailyQuote) Expired(now time.Time) bool {
	return !now.Before(d.ExpirationDate)
}

// CurrentDailyQuote pairs the active record with the quote it points at. Both
// come from the same read, so the cycle bounds always belong to Quote.
type CurrentDailyQuote struct {
	Record *DailyQuote
	Quote  *QuoteDisplay
}
