// Package cli implements the quoticon command line: the HTTP server, the
// one-shot scheduler jobs for external cron, and a few operator commands.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/gulfquotes/quoticon/internal/config"
	"github.com/gulfquotes/quoticon/internal/observability"
	"github.com/gulfquotes/quoticon/internal/repo"
	"github.com/gulfquotes/quoticon/internal/sysutil"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo records build metadata injected through ldflags.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by subcommands once the root pre-run loaded it.
type app struct {
	envFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "quoticon",
		Short:         "Quote of the day and trending quotes service",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newVersionCmd(),
		newServeCmd(a),
		newCronCmd(a),
		newHistoryCmd(a),
		newSeedCmd(a),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quoticon %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// load reads the dotenv file (if present), the configuration and sets up
// logging. Variables already in the environment win over the file.
func (a *app) load(cmd *cobra.Command) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", a.envFile, err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	sysutil.SetupLogging(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogPretty)
	return nil
}

// openDB connects, instruments and migrates the configured database.
func (a *app) openDB() (*gorm.DB, func(), error) {
	db, err := repo.Open(a.cfg.DBDriver, a.cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s database: %w", a.cfg.DBDriver, err)
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.cfg.OTEL.Enabled {
		if err := observability.InstrumentGORM(db); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("instrumenting database: %w", err)
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("migrating: %w", err)
	}
	return db, closeFn, nil
}

// serviceName is used for tracing resources of one-shot commands.
func (a *app) serviceName(suffix string) string {
	return sysutil.FirstNonEmpty(a.cfg.OTEL.ServiceName, "quoticon") + suffix
}
