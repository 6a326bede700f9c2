// Package services – DailyQuoteService
//
// This file implements the quote of the day. Exactly one DailyQuote record is
// active at a time; once it expires (local midnight in the configured UTC
// offset) a new quote is drawn uniformly at random from the catalog, skipping
// quotes that were picked within the anti-repeat window. When the window
// would leave no candidates the exclusion is dropped instead of failing.
//
// Selections are serialized in-process by a mutex, and across processes by
// the deactivate+insert transaction plus the partial unique index on
// is_active (see repo.ActivateDailyQuote).
//
// Observability: public methods are OpenTelemetry-instrumented; outcomes are
// counted in quoticon_daily_quote_selections_total.
package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gulfquotes/quoticon/internal/config"
	"github.com/gulfquotes/quoticon/internal/domain"
	"github.com/gulfquotes/quoticon/internal/repo"
)

const (
	defaultRepeatWindow = 30 * 24 * time.Hour
	defaultHistoryLimit = 10
	defaultHistoryMax   = 100

	// maxPickAttempts bounds retries when the catalog shrinks between the
	// candidate count and the offset fetch.
	maxPickAttempts = 3
)

// DailyQuoteService selects and serves the quote of the day.
type DailyQuoteService struct {
	DB *gorm.DB

	// Zone defines the local calendar day; a cycle ends at its midnight.
	Zone *time.Location
	// RepeatWindow excludes quotes selected within this trailing period.
	// Zero disables the exclusion.
	RepeatWindow time.Duration
	// HistoryMax caps GetQuoteHistory.
	HistoryMax int

	// Revalidator is told about the pages that embed the daily quote after
	// each successful selection. Failures are logged, not returned.
	Revalidator Revalidator
	Logger      zerolog.Logger

	// Now and RandN are seams for tests. RandN must return a uniform value in [0, n).
	Now   func() time.Time
	RandN func(n int64) int64

	mu sync.Mutex
}

// NewDailyQuoteService constructs a DailyQuoteService from configuration.
// A nil revalidator is replaced by NopRevalidator.
func NewDailyQuoteService(db *gorm.DB, cfg config.DailyQuoteConfig, rv Revalidator) *DailyQuoteService {
	if rv == nil {
		rv = NopRevalidator{}
	}
	historyMax := cfg.HistoryMax
	if historyMax <= 0 {
		historyMax = defaultHistoryMax
	}
	return &DailyQuoteService{
		DB:           db,
		Zone:         FixedZone(cfg.UTCOffset),
		RepeatWindow: cfg.RepeatWindow,
		HistoryMax:   historyMax,
		Revalidator:  rv,
		Logger:       log.With().Str("component", "daily_quote").Logger(),
		Now:          func() time.Time { return time.Now().UTC() },
		RandN:        rand.Int64N,
	}
}

// FixedZone returns a location for a fixed UTC offset, named like "UTC+04:00".
func FixedZone(offset time.Duration) *time.Location {
	secs := int(offset / time.Second)
	sign := '+'
	abs := secs
	if secs < 0 {
		sign = '-'
		abs = -secs
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs/3600, (abs%3600)/60)
	return time.FixedZone(name, secs)
}

// NextExpiration returns the first local midnight in zone strictly after now,
// expressed in UTC. A selection made exactly at midnight lasts a full day.
func NextExpiration(now time.Time, zone *time.Location) time.Time {
	if zone == nil {
		zone = time.UTC
	}
	local := now.In(zone)
	midnight := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, zone)
	return midnight.UTC()
}

// GetCurrentDailyQuote returns the quote of the active record, selecting a
// new one first when there is no active record or it has expired.
func (s *DailyQuoteService) GetCurrentDailyQuote(ctx context.Context) (*domain.QuoteDisplay, error) {
	ctx, span := s.tracer().Start(ctx, "GetCurrentDailyQuote")
	defer span.End()

	cur, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return cur.Quote, nil
}

// GetCurrentSelection is GetCurrentDailyQuote plus the active record the
// quote was read with.
func (s *DailyQuoteService) GetCurrentSelection(ctx context.Context) (*domain.CurrentDailyQuote, error) {
	ctx, span := s.tracer().Start(ctx, "GetCurrentSelection")
	defer span.End()

	return s.current(ctx)
}

func (s *DailyQuoteService) current(ctx context.Context) (*domain.CurrentDailyQuote, error) {
	if cur, ok, err := s.currentIfFresh(ctx); err != nil {
		return nil, err
	} else if ok {
		return cur, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, _, err := s.rotateLocked(ctx)
	return cur, err
}

// GetActiveRecord returns the active record without forcing a selection.
// ErrNoActiveRecord is returned when none exists.
func (s *DailyQuoteService) GetActiveRecord(ctx context.Context) (*domain.DailyQuote, error) {
	ctx, span := s.tracer().Start(ctx, "GetActiveRecord")
	defer span.End()

	rec, err := repo.GetActiveDailyQuote(ctx, s.DB)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNoActiveRecord
		}
		return nil, fmt.Errorf("load active daily quote: %w", err)
	}
	return rec, nil
}

// NeedsRotation reports whether the active record is missing or expired at
// the service clock's current time. The active record is returned when present.
func (s *DailyQuoteService) NeedsRotation(ctx context.Context) (bool, *domain.DailyQuote, error) {
	rec, err := s.GetActiveRecord(ctx)
	if errors.Is(err, ErrNoActiveRecord) {
		return true, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return rec.Expired(s.now()), rec, nil
}

// SelectNewDailyQuote unconditionally selects a new quote of the day.
func (s *DailyQuoteService) SelectNewDailyQuote(ctx context.Context) (*domain.QuoteDisplay, error) {
	ctx, span := s.tracer().Start(ctx, "SelectNewDailyQuote")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.selectLocked(ctx)
	if err != nil {
		return nil, err
	}
	return cur.Quote, nil
}

// RotateIfStale selects a new quote only if, once the selection lock is held,
// the active record is still missing, expired, or points at a deleted quote.
// rotated reports whether a selection happened. Concurrent callers that all
// observed an expired record therefore rotate exactly once.
func (s *DailyQuoteService) RotateIfStale(ctx context.Context) (q *domain.QuoteDisplay, rotated bool, err error) {
	ctx, span := s.tracer().Start(ctx, "RotateIfStale")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	cur, rotated, err := s.rotateLocked(ctx)
	span.SetAttributes(attribute.Bool("rotated", rotated))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	return cur.Quote, rotated, nil
}

// rotateLocked re-checks freshness and selects when needed. Callers must hold s.mu.
func (s *DailyQuoteService) rotateLocked(ctx context.Context) (*domain.CurrentDailyQuote, bool, error) {
	if cur, ok, err := s.currentIfFresh(ctx); err != nil {
		return nil, false, err
	} else if ok {
		return cur, false, nil
	}
	cur, err := s.selectLocked(ctx)
	return cur, err == nil, err
}

// GetQuoteHistory returns up to limit records, most recent first. A
// non-positive limit falls back to a default and large limits are capped.
func (s *DailyQuoteService) GetQuoteHistory(ctx context.Context, limit int) ([]domain.DailyQuote, error) {
	ctx, span := s.tracer().Start(ctx, "GetQuoteHistory")
	defer span.End()

	limit = clampLimit(limit, defaultHistoryLimit, s.HistoryMax)
	span.SetAttributes(attribute.Int("limit", limit))

	out, err := repo.ListDailyQuoteHistory(ctx, s.DB, limit)
	if err != nil {
		return nil, fmt.Errorf("list daily quote history: %w", err)
	}
	return out, nil
}

// HistoryETag returns a weak validator for GetQuoteHistory(limit). It
// changes whenever a selection is recorded.
func (s *DailyQuoteService) HistoryETag(ctx context.Context, limit int) (string, error) {
	count, latest, err := repo.DailyQuoteStats(ctx, s.DB)
	if err != nil {
		return "", fmt.Errorf("daily quote stats: %w", err)
	}
	var ts int64
	if latest != nil {
		ts = latest.UnixNano()
	}
	return fmt.Sprintf(`W/"daily-history:%d:%d:%d"`, clampLimit(limit, defaultHistoryLimit, s.HistoryMax), count, ts), nil
}

// currentIfFresh returns the active selection when the record is unexpired
// and its quote still exists. ok is false when a selection is needed.
func (s *DailyQuoteService) currentIfFresh(ctx context.Context) (*domain.CurrentDailyQuote, bool, error) {
	stale, rec, err := s.NeedsRotation(ctx)
	if err != nil || stale {
		return nil, false, err
	}
	q, err := repo.GetQuoteDisplay(ctx, s.DB, rec.QuoteID)
	if repo.IsNotFound(err) {
		s.Logger.Warn().Str("quote_id", rec.QuoteID).Msg("active daily quote points at a missing quote")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load daily quote %s: %w", rec.QuoteID, err)
	}
	return &domain.CurrentDailyQuote{Record: rec, Quote: q}, true, nil
}

// selectLocked runs the selection algorithm. Callers must hold s.mu.
func (s *DailyQuoteService) selectLocked(ctx context.Context) (*domain.CurrentDailyQuote, error) {
	now := s.now()

	var excludeSince time.Time
	if s.RepeatWindow > 0 {
		excludeSince = now.Add(-s.RepeatWindow)
	}

	quoteID, fallback, err := s.pickCandidate(ctx, excludeSince)
	if err != nil {
		dailySelections.WithLabelValues("error").Inc()
		return nil, err
	}

	expires := NextExpiration(now, s.Zone)
	rec, err := repo.ActivateDailyQuote(ctx, s.DB, quoteID, now, expires)
	if errors.Is(err, repo.ErrActiveConflict) {
		// Another process rotated between our deactivate and insert; serve its pick.
		dailySelections.WithLabelValues("conflict").Inc()
		s.Logger.Warn().Str("quote_id", quoteID).Msg("daily quote rotation lost a race; serving the winner")
		active, aerr := repo.GetActiveDailyQuote(ctx, s.DB)
		if aerr != nil {
			return nil, fmt.Errorf("load active daily quote after conflict: %w", aerr)
		}
		q, derr := s.display(ctx, active.QuoteID)
		if derr != nil {
			return nil, derr
		}
		return &domain.CurrentDailyQuote{Record: active, Quote: q}, nil
	}
	if err != nil {
		dailySelections.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("activate daily quote: %w", err)
	}

	outcome := "selected"
	if fallback {
		outcome = "fallback"
	}
	dailySelections.WithLabelValues(outcome).Inc()
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("quote.id", quoteID),
		attribute.Bool("fallback", fallback),
	)
	s.Logger.Info().
		Str("record_id", rec.ID).
		Str("quote_id", quoteID).
		Time("expires_at", rec.ExpirationDate).
		Bool("fallback", fallback).
		Msg("daily quote selected")

	q, err := s.display(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if rerr := s.Revalidator.Revalidate(ctx, PathHome, PathDailyQuote); rerr != nil {
		s.Logger.Warn().Err(rerr).Msg("revalidate after daily quote selection failed")
	}
	return &domain.CurrentDailyQuote{Record: rec, Quote: q}, nil
}

// pickCandidate draws a quote id uniformly from the eligible set. fallback
// reports whether the anti-repeat exclusion had to be relaxed.
func (s *DailyQuoteService) pickCandidate(ctx context.Context, excludeSince time.Time) (id string, fallback bool, err error) {
	for attempt := 0; attempt < maxPickAttempts; attempt++ {
		since := excludeSince
		count, err := repo.CountCandidateQuotes(ctx, s.DB, since)
		if err != nil {
			return "", false, fmt.Errorf("count candidate quotes: %w", err)
		}
		fallback = false
		if count == 0 && !since.IsZero() {
			since = time.Time{}
			fallback = true
			if count, err = repo.CountCandidateQuotes(ctx, s.DB, since); err != nil {
				return "", false, fmt.Errorf("count quotes: %w", err)
			}
		}
		if count == 0 {
			return "", false, ErrNoQuotes
		}

		id, err := repo.CandidateQuoteIDAt(ctx, s.DB, since, s.RandN(count))
		if repo.IsNotFound(err) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("fetch candidate quote: %w", err)
		}
		return id, fallback, nil
	}
	return "", false, fmt.Errorf("candidate set kept shrinking after %d attempts", maxPickAttempts)
}

func (s *DailyQuoteService) display(ctx context.Context, quoteID string) (*domain.QuoteDisplay, error) {
	q, err := repo.GetQuoteDisplay(ctx, s.DB, quoteID)
	if err != nil {
		return nil, fmt.Errorf("load quote %s: %w", quoteID, err)
	}
	return q, nil
}

func (s *DailyQuoteService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *DailyQuoteService) tracer() trace.Tracer {
	return otel.Tracer("services/DailyQuoteService")
}

// clampLimit maps non-positive limits to def and caps at max (when max > 0).
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}
