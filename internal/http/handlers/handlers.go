package handlers

import (
	"context"

	"github.com/gulfquotes/quoticon/internal/domain"
	"github.com/gulfquotes/quoticon/internal/scheduler"
)

//
// Service contracts (context-aware)
//

// DailyQuoteService is the quote-of-the-day surface consumed by handlers.
//
// Implementations must be safe for concurrent use and honor ctx.
type DailyQuoteService interface {
	// GetCurrentSelection returns today's quote with its active record,
	// selecting one lazily.
	GetCurrentSelection(ctx context.Context) (*domain.CurrentDailyQuote, error)
	// SelectNewDailyQuote forces a new selection.
	SelectNewDailyQuote(ctx context.Context) (*domain.QuoteDisplay, error)
	// GetQuoteHistory lists past selections, most recent first.
	GetQuoteHistory(ctx context.Context, limit int) ([]domain.DailyQuote, error)
	// HistoryETag returns a weak ETag for the history at limit.
	HistoryETag(ctx context.Context, limit int) (string, error)
}

// TrendingService is the trending surface consumed by handlers.
type TrendingService interface {
	GetTrendingQuotes(ctx context.Context, limit int) ([]domain.TrendingQuote, error)
	CalculateTrendingQuotes(ctx context.Context, limit int) ([]domain.TrendingQuote, error)
	InvalidateCache()
}

// EngagementService records interactions that feed the trending score.
type EngagementService interface {
	Record(ctx context.Context, quoteID string, kind domain.EngagementKind) error
}

// Job is a scheduler job triggered over HTTP.
type Job interface {
	Run(ctx context.Context) scheduler.Result
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints. It depends on service interfaces only.
type Handlers struct {
	daily      DailyQuoteService
	trending   TrendingService
	engagement EngagementService

	dailyJob    Job
	trendingJob Job
}

// New constructs Handlers bound to the given services and jobs.
func New(daily DailyQuoteService, trending TrendingService, engagement EngagementService, dailyJob, trendingJob Job) *Handlers {
	return &Handlers{
		daily:       daily,
		trending:    trending,
		engagement:  engagement,
		dailyJob:    dailyJob,
		trendingJob: trendingJob,
	}
}
