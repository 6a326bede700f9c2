package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/gulfquotes/quoticon/internal/domain"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open("oracle", "x"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestOpenPostgres_EmptyDSN(t *testing.T) {
	if _, err := OpenPostgres("  "); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestOpenSQLite_ErrorOnBadPath(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "does-not-exist", "app.db")

	db, err := OpenSQLite(bad)
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}
	lower := strings.ToLower(err.Error())
	if !(os.IsNotExist(err) ||
		strings.Contains(lower, "unable to open database file") ||
		strings.Contains(lower, "no such file or directory") ||
		strings.Contains(lower, "out of memory")) {
		t.Fatalf("unexpected error opening %q: %v", bad, err)
	}
}

func TestOpen_SQLite_PragmasAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	var journalMode string
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if strings.ToLower(journalMode) != "wal" {
		t.Fatalf("expected journal_mode=wal, got %q", journalMode)
	}
	var fkOn int
	if err := db.Raw("PRAGMA foreign_keys;").Row().Scan(&fkOn); err != nil || fkOn != 1 {
		t.Fatalf("expected foreign_keys=1, got %d (err=%v)", fkOn, err)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	// Running it twice must be harmless (IF NOT EXISTS on the raw index).
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("second AutoMigrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range []any{&domain.Quote{}, &domain.DailyQuote{}, &domain.Comment{}, &domain.QuoteBookmark{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&domain.DailyQuote{}, "ux_daily_quotes_active") {
		t.Fatalf("expected partial unique index ux_daily_quotes_active")
	}
}

func TestActiveIndex_RejectsSecondActiveRow(t *testing.T) {
	db := newTestDB(t)
	seedQuotes(t, db, 2, time.Now().UTC())

	now := time.Now().UTC()
	first := domain.DailyQuote{ID: "d1", QuoteID: "q000", SelectionDate: now, ExpirationDate: now.Add(time.Hour), IsActive: true}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("insert first active: %v", err)
	}
	second := domain.DailyQuote{ID: "d2", QuoteID: "q001", SelectionDate: now, ExpirationDate: now.Add(time.Hour), IsActive: true}
	err := db.Create(&second).Error
	if err == nil {
		t.Fatalf("expected unique violation for a second active row")
	}
	if !isUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	// Inactive rows are unconstrained.
	third := domain.DailyQuote{ID: "d3", QuoteID: "q001", SelectionDate: now, ExpirationDate: now.Add(time.Hour)}
	if err := db.Create(&third).Error; err != nil {
		t.Fatalf("insert inactive: %v", err)
	}
}

// Compile-time guard to ensure signature stability.
var _ func(string, string) (*gorm.DB, error) = Open

func TestGormConfig_StampsUTC(t *testing.T) {
	cfg := gormConfig()
	if cfg.NowFunc == nil {
		t.Fatal("NowFunc not set")
	}
	if loc := cfg.NowFunc().Location(); loc != time.UTC {
		t.Fatalf("NowFunc location = %v, want UTC", loc)
	}
}
