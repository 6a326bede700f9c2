package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.DSN() != "quoticon.db" {
		t.Fatalf("db defaults unexpected: driver=%q dsn=%q", cfg.DBDriver, cfg.DSN())
	}
	if cfg.DailyQuote.UTCOffset != 4*time.Hour || cfg.DailyQuote.RepeatWindow != 30*24*time.Hour || cfg.DailyQuote.HistoryMax != 100 {
		t.Fatalf("daily quote defaults unexpected: %+v", cfg.DailyQuote)
	}
	tr := cfg.Trending
	if tr.DefaultLimit != 6 || tr.MaxLimit != 50 || tr.CacheTTL != time.Hour || tr.Window != 7*24*time.Hour {
		t.Fatalf("trending defaults unexpected: %+v", tr)
	}
	if !(tr.WeightLike < tr.WeightBookmark && tr.WeightBookmark < tr.WeightShare && tr.WeightBookmark < tr.WeightDownload) {
		t.Fatalf("default weights must rank like < bookmark < share/download: %+v", tr)
	}
	if cfg.SchedulerTimeout != 60*time.Second {
		t.Fatalf("scheduler timeout default = %v", cfg.SchedulerTimeout)
	}
	if cfg.APIBasePath != "/api/v1" || cfg.OTEL.ServiceName != "quoticon" {
		t.Fatalf("misc defaults unexpected: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("GIN_MODE", "weird")    // -> release
	t.Setenv("LOG_LEVEL", "warning") // -> warn
	t.Setenv("API_BASE_PATH", "api/v2/")
	t.Setenv("DB_DRIVER", "PostgreSQL")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/quotes")
	t.Setenv("DAILY_QUOTE_UTC_OFFSET", "-5h30m")
	t.Setenv("DAILY_QUOTE_REPEAT_WINDOW", "240h")
	t.Setenv("TRENDING_DEFAULT_LIMIT", "10")
	t.Setenv("TRENDING_WEIGHT_LIKE", "1.5")
	t.Setenv("TRENDING_CACHE_TTL", "15m")
	t.Setenv("SCHEDULER_TIMEOUT", "30s")
	t.Setenv("RATE_RPS", "x") // parse fallback -> 5
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ADMIN_TOKEN", "adm")
	t.Setenv("CRON_SECRET", "cron")
	t.Setenv("REVALIDATE_URL", "https://web/api/revalidate")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8088" || cfg.GinMode != "release" || cfg.LogLevel != "warn" || cfg.APIBasePath != "/api/v2" {
		t.Fatalf("server/logging unexpected: %+v", cfg)
	}
	if cfg.DBDriver != "postgres" || cfg.DSN() != "postgres://u:p@db:5432/quotes" {
		t.Fatalf("db unexpected: %q %q", cfg.DBDriver, cfg.DSN())
	}
	if cfg.DailyQuote.UTCOffset != -(5*time.Hour+30*time.Minute) || cfg.DailyQuote.RepeatWindow != 240*time.Hour {
		t.Fatalf("daily quote unexpected: %+v", cfg.DailyQuote)
	}
	if cfg.Trending.DefaultLimit != 10 || cfg.Trending.WeightLike != 1.5 || cfg.Trending.CacheTTL != 15*time.Minute {
		t.Fatalf("trending unexpected: %+v", cfg.Trending)
	}
	if cfg.SchedulerTimeout != 30*time.Second || cfg.RateRPS != 5.0 {
		t.Fatalf("scheduler/rate unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Security.AdminToken != "adm" || cfg.Security.CronSecret != "cron" || cfg.Revalidate.URL == "" {
		t.Fatalf("security/revalidate unexpected: %+v %+v", cfg.Security, cfg.Revalidate)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"empty port", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"timeouts", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"header bytes", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"driver", map[string]string{"DB_DRIVER": "oracle"}, "DB_DRIVER"},
		{"empty db path", map[string]string{"DB_PATH": "  "}, "DB_PATH"},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}, "DATABASE_URL"},
		{"offset range", map[string]string{"DAILY_QUOTE_UTC_OFFSET": "15h"}, "DAILY_QUOTE_UTC_OFFSET"},
		{"offset seconds", map[string]string{"DAILY_QUOTE_UTC_OFFSET": "4h30s"}, "whole number of minutes"},
		{"repeat window", map[string]string{"DAILY_QUOTE_REPEAT_WINDOW": "-1h"}, "DAILY_QUOTE_REPEAT_WINDOW"},
		{"history max", map[string]string{"DAILY_QUOTE_HISTORY_MAX": "0"}, "DAILY_QUOTE_HISTORY_MAX"},
		{"trending limits", map[string]string{"TRENDING_DEFAULT_LIMIT": "60"}, "must not exceed"},
		{"trending ttl", map[string]string{"TRENDING_CACHE_TTL": "0s"}, "TRENDING_CACHE_TTL"},
		{"trending candidates", map[string]string{"TRENDING_MAX_CANDIDATES": "10"}, "TRENDING_MAX_CANDIDATES"},
		{"negative weight", map[string]string{"TRENDING_WEIGHT_SHARE": "-1"}, "TRENDING_WEIGHT_"},
		{"gravity", map[string]string{"TRENDING_GRAVITY": "-0.5"}, "TRENDING_GRAVITY"},
		{"scheduler timeout", map[string]string{"SCHEDULER_TIMEOUT": "0s"}, "SCHEDULER_TIMEOUT"},
		{"revalidate timeout", map[string]string{"REVALIDATE_URL": "http://x", "REVALIDATE_TIMEOUT": "0s"}, "REVALIDATE_TIMEOUT"},
		{"rate rps", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"rate burst", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"hsts", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"sample ratio", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestHelpers_ParseFallbacks(t *testing.T) {
	t.Setenv("F_BAD", "nope")
	t.Setenv("I_BAD", "x")
	t.Setenv("D_BAD", "zzz")
	t.Setenv("B_BAD", "maybe")
	if getfloat("F_BAD", 1.23) != 1.23 || getint("I_BAD", 7) != 7 || getdur("D_BAD", 2*time.Second) != 2*time.Second || !getbool("B_BAD", true) {
		t.Fatalf("helpers should fall back to defaults on bad input")
	}
	t.Setenv("B_ON", " On ")
	if !getbool("B_ON", false) {
		t.Fatalf("getbool should accept mixed-case on")
	}
}

func TestHelpers_splitCSV_and_normalizeBasePath(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	if got := splitCSV(" a, ,b ,  c  ,"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("splitCSV mismatch: %#v", got)
	}
	for in, want := range map[string]string{"": "/", "v1": "/v1", "/v1/": "/v1", " / ": "/"} {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestMain(m *testing.M) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "LOG_LEVEL"} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}
