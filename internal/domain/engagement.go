package domain

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a user comment on a quote. Only the count per quote matters to
// the trending ranking.
type Comment struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	QuoteID   string         `json:"quote_id"   gorm:"type:char(36);not null;index"`
	UserID    string         `json:"user_id"    gorm:"type:varchar(64);not null;index"`
	Content   string         `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`

	Quote Quote `json:"-" gorm:"foreignKey:QuoteID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// QuoteBookmark records that a user saved a quote. A user bookmarks a quote
// at most once (unique index).
type QuoteBookmark struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	QuoteID   string    `json:"quote_id"   gorm:"type:char(36);not null;uniqueIndex:ux_bookmark_quote_user"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_bookmark_quote_user"`
	CreatedAt time.Time `json:"created_at"`

	Quote Quote `json:"-" gorm:"foreignKey:QuoteID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for QuoteBookmark.
func (QuoteBookmark) TableName() string { return "quote_bookmarks" }

// EngagementKind names a counter on Quote that can be adjusted from the outside.
type EngagementKind string

const (
	EngagementView     EngagementKind = "view"
	EngagementDownload EngagementKind = "download"
	EngagementShare    EngagementKind = "share"
	EngagementLike     EngagementKind = "like"
	EngagementUnlike   EngagementKind = "unlike"
)

// Column returns the quotes column and delta for the kind. ok is false for
// unknown kinds.
func (k EngagementKind) Column() (column string, delta int64, ok bool) {
	switch k {
	case EngagementView:
		return "views", 1, true
	case EngagementDownload:
		return "download_count", 1, true
	case EngagementShare:
		return "share_count", 1, true
	case EngagementLike:
		return "likes", 1, true
	case EngagementUnlike:
		return "likes", -1, true
	}
	return "", 0, false
}
