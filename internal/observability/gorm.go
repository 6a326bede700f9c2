package observability

import (
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

// InstrumentGORM registers the OpenTelemetry plugin so every query becomes a
// child span of the request or job that issued it. Bound parameters are not
// recorded. Call it after SetupOTel so the plugin picks up the global
// provider.
func InstrumentGORM(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics(), tracing.WithoutQueryVariables()))
}
