package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gulfquotes/quoticon/internal/domain"
)

// DailyRotator rotates the quote of the day only when the active record is
// missing or expired. services.DailyQuoteService implements it.
type DailyRotator interface {
	RotateIfStale(ctx context.Context) (*domain.QuoteDisplay, bool, error)
}

// DailyQuoteJob is the daily trigger. Invoking it more often than once a day
// is safe: while the active record is fresh it does nothing.
type DailyQuoteJob struct {
	Rotator DailyRotator
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewDailyQuoteJob constructs a DailyQuoteJob.
func NewDailyQuoteJob(r DailyRotator, timeout time.Duration) *DailyQuoteJob {
	return &DailyQuoteJob{
		Rotator: r,
		Timeout: timeout,
		Logger:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Run checks the active record and selects a new quote when needed.
func (j *DailyQuoteJob) Run(ctx context.Context) Result {
	return run(ctx, "daily-quote", j.Timeout, j.Logger, func(ctx context.Context) (string, error) {
		q, rotated, err := j.Rotator.RotateIfStale(ctx)
		if err != nil {
			return "", err
		}
		if !rotated {
			return printer.Sprintf("Daily quote %s is still active; nothing to do", q.ID), nil
		}
		return printer.Sprintf("Selected new daily quote %s by %s", q.ID, q.Author.Name), nil
	})
}
