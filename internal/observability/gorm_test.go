package observability

import (
	"context"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestInstrumentGORM_RecordsQuerySpans(t *testing.T) {
	restore := preserveOTelGlobals(t)
	defer restore()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer func() { _ = tp.Shutdown(context.Background()) }()
	otel.SetTracerProvider(tp)

	db, err := gorm.Open(sqlite.Open("file:otel_gorm?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := InstrumentGORM(db); err != nil {
		t.Fatalf("instrument: %v", err)
	}

	ctx, parent := otel.Tracer("test").Start(context.Background(), "job")
	var n int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&n).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	parent.End()

	var child bool
	for _, s := range rec.Ended() {
		if s.Parent().SpanID() == parent.SpanContext().SpanID() {
			child = true
		}
	}
	if !child {
		t.Fatalf("no query span under the parent; got %d spans", len(rec.Ended()))
	}
}
