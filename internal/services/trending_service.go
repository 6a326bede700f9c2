// Package services – TrendingService
//
// TrendingService ranks recently active quotes by a time-decayed, weighted
// engagement score and keeps the ranked list in an in-process TTL cache.
//
// Reads are served from the cache while it is fresh. A miss triggers a
// synchronous recomputation; concurrent recomputations are collapsed into a
// single in-flight query with singleflight. If a recomputation fails and any
// list was cached before, that list keeps being served; only a cold cache
// surfaces the error.
//
// Every successful recomputation, lazy or forced, marks the pages embedding
// the list stale through the Revalidator.
package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
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
	defaultTrendingLimit  = 6
	defaultTrendingMax    = 50
	defaultComputeTimeout = 30 * time.Second

	computeKey = "trending"
)

// TrendingStore is the data access TrendingService depends on.
type TrendingStore interface {
	ListTrendingCandidates(ctx context.Context, since time.Time, max int) ([]repo.TrendingCandidate, error)
	ListQuoteDisplays(ctx context.Context, ids []string) (map[string]*domain.QuoteDisplay, error)
}

// GormTrendingStore implements TrendingStore on top of the repo package.
type GormTrendingStore struct {
	DB *gorm.DB
}

func (s GormTrendingStore) ListTrendingCandidates(ctx context.Context, since time.Time, max int) ([]repo.TrendingCandidate, error) {
	return repo.ListTrendingCandidates(ctx, s.DB, since, max)
}

func (s GormTrendingStore) ListQuoteDisplays(ctx context.Context, ids []string) (map[string]*domain.QuoteDisplay, error) {
	return repo.ListQuoteDisplays(ctx, s.DB, ids)
}

// TrendingService computes and serves the trending list.
type TrendingService struct {
	Store  TrendingStore
	Cache  *TrendingCache
	Policy ScoringPolicy

	Window        time.Duration // candidate recency window
	MaxCandidates int           // cap on candidate rows scored per computation
	DefaultLimit  int
	MaxLimit      int // also the length of the cached list

	// ComputeTimeout bounds a shared recomputation, independent of any
	// single caller's context.
	ComputeTimeout time.Duration

	// Revalidator is told about the pages that embed the trending list after
	// each successful recomputation. Failures are logged, not returned.
	Revalidator Revalidator
	Logger      zerolog.Logger
	Now    func() time.Time

	group    singleflight.Group
	computed atomic.Int64
}

// NewTrendingService wires a TrendingService from configuration. A nil cache
// is replaced by a fresh one using cfg.CacheTTL, and a nil revalidator by
// NopRevalidator.
func NewTrendingService(store TrendingStore, cache *TrendingCache, cfg config.TrendingConfig, rv Revalidator) *TrendingService {
	if cache == nil {
		cache = NewTrendingCache(cfg.CacheTTL)
	}
	if rv == nil {
		rv = NopRevalidator{}
	}
	return &TrendingService{
		Store:          store,
		Cache:          cache,
		Policy:         ScoringPolicyFromConfig(cfg),
		Window:         cfg.Window,
		MaxCandidates:  cfg.MaxCandidates,
		DefaultLimit:   cfg.DefaultLimit,
		MaxLimit:       cfg.MaxLimit,
		ComputeTimeout: defaultComputeTimeout,
		Revalidator:    rv,
		Logger:         log.With().Str("component", "trending").Logger(),
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

// GetTrendingQuotes returns up to limit trending quotes, from the cache when
// it is fresh and by recomputing otherwise.
func (s *TrendingService) GetTrendingQuotes(ctx context.Context, limit int) ([]domain.TrendingQuote, error) {
	ctx, span := s.tracer().Start(ctx, "GetTrendingQuotes")
	defer span.End()

	limit = s.clamp(limit)
	span.SetAttributes(attribute.Int("limit", limit))

	if items, ok := s.Cache.Get(s.now(), limit); ok {
		trendingReads.WithLabelValues("hit").Inc()
		span.SetAttributes(attribute.String("cache", "hit"))
		return items, nil
	}

	items, err := s.compute(ctx)
	if err != nil {
		if stale, at, ok := s.Cache.Peek(limit); ok {
			trendingReads.WithLabelValues("stale").Inc()
			span.SetAttributes(attribute.String("cache", "stale"))
			s.Logger.Warn().Err(err).Time("computed_at", at).Msg("trending recompute failed; serving stale list")
			return stale, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	trendingReads.WithLabelValues("miss").Inc()
	span.SetAttributes(attribute.String("cache", "miss"))
	return head(items, limit), nil
}

// CalculateTrendingQuotes recomputes the ranking regardless of cache state,
// stores it, and returns the top limit entries. On failure the cache is left
// untouched, so readers keep getting the previous list.
func (s *TrendingService) CalculateTrendingQuotes(ctx context.Context, limit int) ([]domain.TrendingQuote, error) {
	ctx, span := s.tracer().Start(ctx, "CalculateTrendingQuotes")
	defer span.End()

	limit = s.clamp(limit)
	items, err := s.compute(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return head(items, limit), nil
}

// InvalidateCache drops the cached list without recomputing it.
func (s *TrendingService) InvalidateCache() {
	s.Cache.Invalidate()
	s.Logger.Debug().Msg("trending cache invalidated")
}

// ComputeCount returns how many recomputations have run since start.
func (s *TrendingService) ComputeCount() int64 {
	return s.computed.Load()
}

// compute runs (or joins) the shared recomputation and waits for it or for
// ctx, whichever comes first.
func (s *TrendingService) compute(ctx context.Context) ([]domain.TrendingQuote, error) {
	ch := s.group.DoChan(computeKey, func() (any, error) {
		timeout := s.ComputeTimeout
		if timeout <= 0 {
			timeout = defaultComputeTimeout
		}
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		return s.recompute(cctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.TrendingQuote), nil
	}
}

// recompute scores the candidate pool and swaps the cached list.
func (s *TrendingService) recompute(ctx context.Context) (out []domain.TrendingQuote, err error) {
	ctx, span := s.tracer().Start(ctx, "recompute")
	defer span.End()

	s.computed.Add(1)
	start := time.Now()
	defer func() {
		trendingDuration.Observe(time.Since(start).Seconds())
		result := "ok"
		if err != nil {
			result = "error"
		}
		trendingComputations.WithLabelValues(result).Inc()
	}()

	now := s.now()
	cands, err := s.Store.ListTrendingCandidates(ctx, now.Add(-s.Window), s.MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("list trending candidates: %w", err)
	}

	ranked := s.Policy.rank(cands, now)
	if n := s.maxLimit(); len(ranked) > n {
		ranked = ranked[:n]
	}

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	displays, err := s.Store.ListQuoteDisplays(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load trending quotes: %w", err)
	}

	out = make([]domain.TrendingQuote, 0, len(ranked))
	for _, r := range ranked {
		d, ok := displays[r.ID]
		if !ok {
			// deleted between the two queries
			continue
		}
		out = append(out, domain.TrendingQuote{QuoteDisplay: *d, Score: r.Score})
	}

	s.Cache.Set(out, now)
	span.SetAttributes(
		attribute.Int("candidates", len(cands)),
		attribute.Int("ranked", len(out)),
	)
	s.Logger.Debug().Int("candidates", len(cands)).Int("ranked", len(out)).Msg("trending list recomputed")

	if s.Revalidator != nil {
		if rerr := s.Revalidator.Revalidate(ctx, PathHome, PathTrending); rerr != nil {
			s.Logger.Warn().Err(rerr).Msg("revalidate after trending recomputation failed")
		}
	}
	return out, nil
}

func (s *TrendingService) clamp(limit int) int {
	def := s.DefaultLimit
	if def <= 0 {
		def = defaultTrendingLimit
	}
	return clampLimit(limit, def, s.maxLimit())
}

func (s *TrendingService) maxLimit() int {
	if s.MaxLimit <= 0 {
		return defaultTrendingMax
	}
	return s.MaxLimit
}

func (s *TrendingService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *TrendingService) tracer() trace.Tracer {
	return otel.Tracer("services/TrendingService")
}
