package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gulfquotes/quoticon/internal/observability"
	"github.com/gulfquotes/quoticon/internal/scheduler"
	"github.com/gulfquotes/quoticon/internal/services"
)

func newCronCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cron",
		Short: "Run a scheduler job once",
		Long: `Run a scheduler job once and print its result as JSON.

Intended for system cron or a Kubernetes CronJob. The exit status is non-zero
when the job fails, including on timeout.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "daily-quote",
			Short: "Rotate the daily quote if the current one has expired",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runJob(cmd.Context(), cmd.OutOrStdout(), func(core *services.Core) scheduler.Result {
					return scheduler.NewDailyQuoteJob(core.Daily, a.cfg.SchedulerTimeout).Run(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "trending",
			Short: "Recompute trending quotes and revalidate pages",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runJob(cmd.Context(), cmd.OutOrStdout(), func(core *services.Core) scheduler.Result {
					return scheduler.NewTrendingJob(core.Trending, a.cfg.SchedulerTimeout).Run(cmd.Context())
				})
			},
		},
	)
	return cmd
}

func (a *app) runJob(ctx context.Context, out io.Writer, run func(*services.Core) scheduler.Result) error {
	otelCfg := a.cfg.OTEL
	otelCfg.ServiceName = a.serviceName("-cron")
	shutdown, err := observability.SetupOTel(ctx, otelCfg, version)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	db, closeDB, err := a.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	res := run(services.NewCore(db, a.cfg))

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%s job failed: %w", res.Job, res.Error)
	}
	return nil
}
