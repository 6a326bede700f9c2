package services

import (
	"math"
	"sort"
	"time"

	"github.com/gulfquotes/quoticon/internal/config"
	"github.com/gulfquotes/quoticon/internal/repo"
)

// ScoringPolicy holds the trending weights and the time decay parameters.
//
// score = (Σ w_k · ln(1 + count_k)) · (1 + age_h / halfLife_h)^(-gravity)
//
// The log damps very large counters so one viral signal cannot drown out the
// rest; with non-negative weights the score never drops when a counter grows.
type ScoringPolicy struct {
	View, Like, Comment, Bookmark, Share, Download float64

	HalfLife time.Duration
	Gravity  float64
}

// DefaultScoringPolicy returns the production weights.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		View:     0.25,
		Like:     1,
		Comment:  2,
		Bookmark: 3,
		Share:    4,
		Download: 4,
		HalfLife: 24 * time.Hour,
		Gravity:  1.5,
	}
}

// ScoringPolicyFromConfig maps trending configuration to a ScoringPolicy.
func ScoringPolicyFromConfig(c config.TrendingConfig) ScoringPolicy {
	return ScoringPolicy{
		View:     c.WeightView,
		Like:     c.WeightLike,
		Comment:  c.WeightComment,
		Bookmark: c.WeightBookmark,
		Share:    c.WeightShare,
		Download: c.WeightDownload,
		HalfLife: c.HalfLife,
		Gravity:  c.Gravity,
	}
}

// Engagement returns the undecayed weighted engagement of c.
func (p ScoringPolicy) Engagement(c repo.TrendingCandidate) float64 {
	return p.View*logCount(c.Views) +
		p.Like*logCount(c.Likes) +
		p.Comment*logCount(c.CommentCount) +
		p.Bookmark*logCount(c.BookmarkCount) +
		p.Share*logCount(c.ShareCount) +
		p.Download*logCount(c.DownloadCount)
}

// Decay returns the multiplier for a quote of the given age. It is 1 at age
// zero (or negative age from clock skew) and non-increasing afterwards.
func (p ScoringPolicy) Decay(age time.Duration) float64 {
	if age <= 0 || p.Gravity == 0 {
		return 1
	}
	halfLife := p.HalfLife
	if halfLife <= 0 {
		halfLife = 24 * time.Hour
	}
	return math.Pow(1+age.Hours()/halfLife.Hours(), -p.Gravity)
}

// Score returns the trending score of c at now.
func (p ScoringPolicy) Score(c repo.TrendingCandidate, now time.Time) float64 {
	return p.Engagement(c) * p.Decay(now.Sub(c.CreatedAt))
}

func logCount(n int64) float64 {
	if n <= 0 {
		return 0
	}
	return math.Log1p(float64(n))
}

type scoredCandidate struct {
	repo.TrendingCandidate
	Score float64
}

// rank scores every candidate and sorts by score desc, created_at desc, id asc.
func (p ScoringPolicy) rank(cands []repo.TrendingCandidate, now time.Time) []scoredCandidate {
	out := make([]scoredCandidate, len(cands))
	for i, c := range cands {
		out[i] = scoredCandidate{TrendingCandidate: c, Score: p.Score(c, now)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out
}
