// Package domain defines the persistence models for quotes, their authors,
// categories and tags, the daily quote history, and the engagement relations
// (comments, bookmarks) that feed the trending ranking. These types are
// mapped with GORM and form the core data layer of the application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Quote is a single quotation in the catalog.
//
// Fields:
//   - ID / Slug: stable identifiers (UUID primary key, unique slug).
//   - Content: the quotation text.
//   - Likes, Views, DownloadCount, ShareCount: engagement counters. They are
//     only ever adjusted with atomic increments/decrements and never go below 0.
//   - AuthorID / CategoryID: owning author profile and category.
//   - Tags: many-to-many through quote_tags.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM, stored in UTC
//     (see BeforeSave).
//   - DeletedAt: soft deletion marker.
type Quote struct {
	ID            string         `json:"id"             gorm:"type:char(36);primaryKey"`
	Slug          string         `json:"slug"           gorm:"type:varchar(255);not null;uniqueIndex"`
	Content       string         `json:"content"        gorm:"type:text;not null"`
	Likes         int64          `json:"likes"          gorm:"not null;default:0;check:likes >= 0"`
	Views         int64          `json:"views"          gorm:"not null;default:0;check:views >= 0"`
	DownloadCount int64          `json:"download_count" gorm:"not null;default:0;check:download_count >= 0"`
	ShareCount    int64          `json:"share_count"    gorm:"not null;default:0;check:share_count >= 0"`
	AuthorID      string         `json:"author_id"      gorm:"type:char(36);not null;index"`
	CategoryID    string         `json:"category_id"    gorm:"type:char(36);not null;index"`
	CreatedAt     time.Time      `json:"created_at"     gorm:"index"`
	UpdatedAt     time.Time      `json:"updated_at"     gorm:"index"`
	DeletedAt     gorm.DeletedAt `json:"-"              gorm:"index"`

	Author   AuthorProfile `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category Category      `json:"-" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Tags     []Tag         `json:"-" gorm:"many2many:quote_tags"`
}

// TableName returns the database table name for Quote.
func (Quote) TableName() string { return "quotes" }

// BeforeSave normalizes explicit timestamps to UTC so that stored values
// compare correctly against UTC bounds.
func (q *Quote) BeforeSave(*gorm.DB) error {
	q.CreatedAt = utc(q.CreatedAt)
	q.UpdatedAt = utc(q.UpdatedAt)
	return nil
}

// utc converts t to UTC, leaving the zero time alone so GORM still fills it.
func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// AuthorProfile is the public profile of a quoted author.
type AuthorProfile struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	Slug      string    `json:"slug"       gorm:"type:varchar(255);not null;uniqueIndex"`
	Image     string    `json:"image"      gorm:"type:varchar(512)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for AuthorProfile.
func (AuthorProfile) TableName() string { return "author_profiles" }

// Category groups quotes by theme.
type Category struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(128);not null"`
	Slug      string    `json:"slug"       gorm:"type:varchar(128);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// Tag is a free-form label attached to quotes.
type Tag struct {
	ID   string `json:"id"   gorm:"type:char(36);primaryKey"`
	Name string `json:"name" gorm:"type:varchar(64);not null"`
	Slug string `json:"slug" gorm:"type:varchar(64);not null;uniqueIndex"`
}

// TableName returns the database table name for Tag.
func (Tag) TableName() string { return "tags" }
