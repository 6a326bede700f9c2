package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gulfquotes/quoticon/internal/domain"
	"github.com/gulfquotes/quoticon/internal/repo"
)

// EngagementService records user interactions against quote counters.
// Counters feed the trending score; updates also bump the quote's
// updated_at, which keeps an old but active quote in the trending pool.
type EngagementService struct {
	DB *gorm.DB
}

// NewEngagementService constructs an EngagementService.
func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{DB: db}
}

// Record applies kind to the quote's counters. Unknown kinds yield
// ErrInvalidEngagement and missing quotes ErrQuoteNotFound. Unlike on a
// quote with no likes leaves the counter at zero.
func (s *EngagementService) Record(ctx context.Context, quoteID string, kind domain.EngagementKind) error {
	ctx, span := otel.Tracer("services/EngagementService").Start(ctx, "Record")
	defer span.End()
	span.SetAttributes(attribute.String("quote.id", quoteID), attribute.String("engagement.kind", string(kind)))

	column, delta, ok := kind.Column()
	if !ok {
		return ErrInvalidEngagement
	}
	if err := repo.AdjustQuoteCounter(ctx, s.DB, quoteID, column, delta); err != nil {
		if repo.IsNotFound(err) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("record %s on quote %s: %w", kind, quoteID, err)
	}
	return nil
}
