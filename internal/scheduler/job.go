// Package scheduler wraps the selection core for external time triggers
// (a cron hitting an HTTP endpoint, or the CLI). A job never panics and never
// hangs past its deadline: every outcome, including recovered panics and
// timeouts, is reported as a Result.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gulfquotes/quoticon/internal/services"
)

// DefaultTimeout bounds a job when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// JobError is the structured failure of a job run.
type JobError struct {
	Kind    services.Kind `json:"kind"`
	Message string        `json:"message"`
}

func (e *JobError) Error() string { return string(e.Kind) + ": " + e.Message }

// Result reports one job run.
type Result struct {
	Job      string    `json:"job"`
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Error    *JobError `json:"error,omitempty"`
	Duration string    `json:"duration"`
}

var jobRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quoticon_scheduler_runs_total",
		Help: "Scheduler job runs by job and result.",
	},
	[]string{"job", "result"},
)

func init() {
	prometheus.MustRegister(jobRuns)
}

// printer renders human-readable job messages (grouped numbers, dates).
var printer = message.NewPrinter(language.English)

// run executes fn under a deadline, recovering panics. fn returns the success
// message. A fn that ignores its context is abandoned when the deadline hits.
func run(ctx context.Context, job string, timeout time.Duration, logger zerolog.Logger, fn func(context.Context) (string, error)) (res Result) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		res.Job = job
		res.Duration = time.Since(start).Round(time.Millisecond).String()
		outcome := "ok"
		ev := logger.Info()
		if !res.Success {
			outcome = string(res.Error.Kind)
			ev = logger.Error().Str("kind", outcome).Str("error", res.Error.Message)
		}
		jobRuns.WithLabelValues(job, outcome).Inc()
		ev.Str("job", job).Str("duration", res.Duration).Msg(res.Message)
	}()

	type outcome struct {
		msg string
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Str("job", job).Msg("job panicked")
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		msg, err := fn(ctx)
		done <- outcome{msg: msg, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return failure(job, o.err)
		}
		return Result{Success: true, Message: o.msg}
	case <-ctx.Done():
		return failure(job, fmt.Errorf("%s did not finish within %s: %w", job, timeout, ctx.Err()))
	}
}

func failure(job string, err error) Result {
	kind := services.KindOf(err)
	if errors.Is(err, context.Canceled) {
		kind = services.KindTimeout
	}
	return Result{
		Success: false,
		Message: printer.Sprintf("%s job failed", job),
		Error:   &JobError{Kind: kind, Message: err.Error()},
	}
}
