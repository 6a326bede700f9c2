// Package services – page cache revalidation hook.
//
// After a daily quote rotation or a trending recomputation, externally cached
// renderings (the homepage, the daily quote page, the trending page) must be
// marked stale. The core only signals which paths changed; how a page cache
// reacts is the collaborator's concern.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gulfquotes/quoticon/internal/config"
)

// Page paths that embed data produced by the selection core.
const (
	PathHome       = "/"
	PathDailyQuote = "/daily-quote"
	PathTrending   = "/trending"
)

// Revalidator marks cached pages stale.
type Revalidator interface {
	Revalidate(ctx context.Context, paths ...string) error
}

// RevalidatorFunc adapts a function to Revalidator.
type RevalidatorFunc func(ctx context.Context, paths ...string) error

// Revalidate calls f.
func (f RevalidatorFunc) Revalidate(ctx context.Context, paths ...string) error { return f(ctx, paths...) }

// NopRevalidator ignores revalidation requests.
type NopRevalidator struct{}

// Revalidate does nothing.
func (NopRevalidator) Revalidate(context.Context, ...string) error { return nil }

// LogRevalidator only logs the paths. It is used when no webhook is configured.
type LogRevalidator struct {
	Logger zerolog.Logger
}

// Revalidate logs the stale paths at info level.
func (r LogRevalidator) Revalidate(_ context.Context, paths ...string) error {
	r.Logger.Info().Strs("paths", paths).Msg("revalidate pages")
	return nil
}

// WebhookRevalidator POSTs {"paths": [...]} to a revalidation endpoint of the
// web frontend, authenticated with a bearer secret.
type WebhookRevalidator struct {
	URL    string
	Secret string
	Client *http.Client
}

// NewWebhookRevalidator builds a WebhookRevalidator with its own HTTP client.
func NewWebhookRevalidator(url, secret string, timeout time.Duration) *WebhookRevalidator {
	return &WebhookRevalidator{
		URL:    url,
		Secret: secret,
		Client: &http.Client{Timeout: timeout},
	}
}

type revalidateRequest struct {
	Paths []string `json:"paths"`
}

// Revalidate sends the paths to the webhook. Any non-2xx response is an error.
func (r *WebhookRevalidator) Revalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	body, err := json.Marshal(revalidateRequest{Paths: paths})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.Secret != "" {
		req.Header.Set("Authorization", "Bearer "+r.Secret)
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("revalidate %v: %w", paths, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("revalidate %v: unexpected status %d", paths, resp.StatusCode)
	}
	return nil
}

// NewRevalidator returns the webhook revalidator when a URL is configured,
// otherwise a LogRevalidator.
func NewRevalidator(cfg config.RevalidateConfig, logger zerolog.Logger) Revalidator {
	if cfg.URL == "" {
		return LogRevalidator{Logger: logger}
	}
	return NewWebhookRevalidator(cfg.URL, cfg.Secret, cfg.Timeout)
}
