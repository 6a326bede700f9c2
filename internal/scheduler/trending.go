package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gulfquotes/quoticon/internal/domain"
)

// TrendingCalculator recomputes the trending ranking and marks the pages
// embedding it stale. services.TrendingService implements it.
type TrendingCalculator interface {
	CalculateTrendingQuotes(ctx context.Context, limit int) ([]domain.TrendingQuote, error)
}

// TrendingJob is the periodic trending refresh.
type TrendingJob struct {
	Calculator TrendingCalculator
	Timeout    time.Duration
	Logger     zerolog.Logger
}

// NewTrendingJob constructs a TrendingJob.
func NewTrendingJob(c TrendingCalculator, timeout time.Duration) *TrendingJob {
	return &TrendingJob{
		Calculator: c,
		Timeout:    timeout,
		Logger:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Run recomputes the trending list. Page revalidation happens inside the
// calculator on success.
func (j *TrendingJob) Run(ctx context.Context) Result {
	return run(ctx, "trending", j.Timeout, j.Logger, func(ctx context.Context) (string, error) {
		items, err := j.Calculator.CalculateTrendingQuotes(ctx, 0)
		if err != nil {
			return "", err
		}
		return printer.Sprintf("Recalculated trending quotes (top %d)", len(items)), nil
	})
}
