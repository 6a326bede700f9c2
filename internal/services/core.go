package services

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gulfquotes/quoticon/internal/config"
)

// Core bundles the selection services sharing one database and one
// revalidation hook. The HTTP server and the CLI both build it.
type Core struct {
	Daily      *DailyQuoteService
	Trending   *TrendingService
	Engagement *EngagementService
}

// NewCore wires the services from configuration.
func NewCore(db *gorm.DB, cfg config.Config) *Core {
	rv := NewRevalidator(cfg.Revalidate, log.With().Str("component", "revalidate").Logger())
	return &Core{
		Daily:      NewDailyQuoteService(db, cfg.DailyQuote, rv),
		Trending:   NewTrendingService(GormTrendingStore{DB: db}, nil, cfg.Trending, rv),
		Engagement: NewEngagementService(db),
	}
}
