// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, database selection, the daily quote and trending policies, the
// scheduler deadline, rate limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS and the
// bearer tokens guarding privileged endpoints.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration

	AdminToken string // ADMIN_TOKEN: forced selection, trending refresh/invalidation
	CronSecret string // CRON_SECRET: scheduler trigger endpoints
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "quoticon")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// DailyQuoteConfig defines the quote-of-the-day policy.
type DailyQuoteConfig struct {
	// UTCOffset is the fixed zone whose local midnight ends a selection cycle.
	UTCOffset time.Duration
	// RepeatWindow excludes quotes selected within this trailing period.
	RepeatWindow time.Duration
	// HistoryMax caps GetQuoteHistory's limit.
	HistoryMax int
}

// TrendingConfig defines the trending ranking policy. Weights must be
// non-negative so that more engagement never lowers a score.
type TrendingConfig struct {
	DefaultLimit  int
	MaxLimit      int
	Window        time.Duration // candidate pool: created/updated within this period
	CacheTTL      time.Duration
	MaxCandidates int

	WeightView     float64
	WeightLike     float64
	WeightComment  float64
	WeightBookmark float64
	WeightShare    float64
	WeightDownload float64

	HalfLife time.Duration // age at which the decay base doubles
	Gravity  float64       // decay exponent (>= 0)
}

// RevalidateConfig defines the page-cache revalidation webhook. An empty URL
// disables the webhook and revalidation requests are only logged.
type RevalidateConfig struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Database
	DBDriver    string // sqlite|postgres
	DBPath      string // SQLite path
	DatabaseURL string // Postgres DSN

	// Selection core
	DailyQuote DailyQuoteConfig
	Trending   TrendingConfig

	// SchedulerTimeout bounds a single scheduler job run.
	SchedulerTimeout time.Duration

	Revalidate RevalidateConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 70*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// Database
		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBPath:      getenv("DB_PATH", "quoticon.db"),
		DatabaseURL: getenv("DATABASE_URL", ""),

		DailyQuote: DailyQuoteConfig{
			UTCOffset:    getdur("DAILY_QUOTE_UTC_OFFSET", 4*time.Hour),
			RepeatWindow: getdur("DAILY_QUOTE_REPEAT_WINDOW", 30*24*time.Hour),
			HistoryMax:   getint("DAILY_QUOTE_HISTORY_MAX", 100),
		},

		Trending: TrendingConfig{
			DefaultLimit:  getint("TRENDING_DEFAULT_LIMIT", 6),
			MaxLimit:      getint("TRENDING_MAX_LIMIT", 50),
			Window:        getdur("TRENDING_WINDOW", 7*24*time.Hour),
			CacheTTL:      getdur("TRENDING_CACHE_TTL", time.Hour),
			MaxCandidates: getint("TRENDING_MAX_CANDIDATES", 500),

			WeightView:     getfloat("TRENDING_WEIGHT_VIEW", 0.25),
			WeightLike:     getfloat("TRENDING_WEIGHT_LIKE", 1),
			WeightComment:  getfloat("TRENDING_WEIGHT_COMMENT", 2),
			WeightBookmark: getfloat("TRENDING_WEIGHT_BOOKMARK", 3),
			WeightShare:    getfloat("TRENDING_WEIGHT_SHARE", 4),
			WeightDownload: getfloat("TRENDING_WEIGHT_DOWNLOAD", 4),

			HalfLife: getdur("TRENDING_HALF_LIFE", 24*time.Hour),
			Gravity:  getfloat("TRENDING_GRAVITY", 1.5),
		},

		SchedulerTimeout: getdur("SCHEDULER_TIMEOUT", 60*time.Second),

		Revalidate: RevalidateConfig{
			URL:     getenv("REVALIDATE_URL", ""),
			Secret:  getenv("REVALIDATE_SECRET", ""),
			Timeout: getdur("REVALIDATE_TIMEOUT", 5*time.Second),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
			AdminToken: getenv("ADMIN_TOKEN", ""),
			CronSecret: getenv("CRON_SECRET", ""),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "quoticon"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if cfg.DBDriver == "postgresql" || cfg.DBDriver == "pg" {
		cfg.DBDriver = "postgres"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	switch cfg.DBDriver {
	case "sqlite":
		if strings.TrimSpace(cfg.DBPath) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return cfg, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, postgres")
	}
	if err := validateDailyQuote(cfg.DailyQuote); err != nil {
		return cfg, err
	}
	if err := validateTrending(cfg.Trending); err != nil {
		return cfg, err
	}
	if cfg.SchedulerTimeout <= 0 {
		return cfg, errors.New("SCHEDULER_TIMEOUT must be > 0")
	}
	if cfg.Revalidate.URL != "" && cfg.Revalidate.Timeout <= 0 {
		return cfg, errors.New("REVALIDATE_TIMEOUT must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

func validateDailyQuote(c DailyQuoteConfig) error {
	if c.UTCOffset < -14*time.Hour || c.UTCOffset > 14*time.Hour {
		return errors.New("DAILY_QUOTE_UTC_OFFSET must be within -14h..14h")
	}
	if c.UTCOffset%time.Minute != 0 {
		return errors.New("DAILY_QUOTE_UTC_OFFSET must be a whole number of minutes")
	}
	if c.RepeatWindow < 0 {
		return errors.New("DAILY_QUOTE_REPEAT_WINDOW must be >= 0")
	}
	if c.HistoryMax < 1 {
		return errors.New("DAILY_QUOTE_HISTORY_MAX must be >= 1")
	}
	return nil
}

func validateTrending(c TrendingConfig) error {
	if c.DefaultLimit < 1 || c.MaxLimit < 1 {
		return errors.New("TRENDING_DEFAULT_LIMIT and TRENDING_MAX_LIMIT must be >= 1")
	}
	if c.DefaultLimit > c.MaxLimit {
		return errors.New("TRENDING_DEFAULT_LIMIT must not exceed TRENDING_MAX_LIMIT")
	}
	if c.Window <= 0 || c.CacheTTL <= 0 || c.HalfLife <= 0 {
		return errors.New("TRENDING_WINDOW, TRENDING_CACHE_TTL and TRENDING_HALF_LIFE must be > 0")
	}
	if c.MaxCandidates < c.MaxLimit {
		return errors.New("TRENDING_MAX_CANDIDATES must be >= TRENDING_MAX_LIMIT")
	}
	for _, w := range []float64{c.WeightView, c.WeightLike, c.WeightComment, c.WeightBookmark, c.WeightShare, c.WeightDownload} {
		if w < 0 {
			return errors.New("TRENDING_WEIGHT_* must be >= 0")
		}
	}
	if c.Gravity < 0 {
		return errors.New("TRENDING_GRAVITY must be >= 0")
	}
	return nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
