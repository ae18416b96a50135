package search

import (
	"context"
	"log/slog"
	"time"
)

// Outcome is the terminal result of one fallback-controlled search.
// Success=false with empty Results is a normal outcome, not an error.
type Outcome struct {
	Results  []Result
	Provider string
	Success  bool
	Err      string
}

// MetricsRecorder receives the timing and outcome of each provider call.
type MetricsRecorder interface {
	RecordSearch(op string, duration time.Duration, results int64, success bool)
}

// Controller tries providers in priority order with per-call timeouts,
// then retries the whole chain with scaled backoff when enabled.
type Controller struct {
	providers       []Provider
	fallbackEnabled bool
	maxRetries      int
	baseDelay       time.Duration
	callTimeout     time.Duration
	logger          *slog.Logger
	metrics         MetricsRecorder

	// sleep is swapped out in tests to avoid real delays.
	sleep func(context.Context, time.Duration)
}

// ControllerConfig bundles the controller's tuning knobs.
type ControllerConfig struct {
	FallbackEnabled bool
	MaxRetries      int
	BaseDelay       time.Duration
	CallTimeout     time.Duration
	// Metrics, when set, records each provider call as operation
	// "provider_<name>".
	Metrics MetricsRecorder
}

// NewController creates a fallback controller over the given providers,
// in priority order.
func NewController(providers []Provider, cfg ControllerConfig, logger *slog.Logger) *Controller {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		providers:       providers,
		fallbackEnabled: cfg.FallbackEnabled,
		maxRetries:      cfg.MaxRetries,
		baseDelay:       cfg.BaseDelay,
		callTimeout:     cfg.CallTimeout,
		logger:          logger,
		metrics:         cfg.Metrics,
		sleep: func(ctx context.Context, d time.Duration) {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
			case <-t.C:
			}
		},
	}
}

// HasConfiguredProvider reports whether at least one provider in the
// chain carries a usable credential.
func (c *Controller) HasConfiguredProvider() bool {
	for _, p := range c.providers {
		if p.Configured() {
			return true
		}
	}
	return false
}

// Search runs the fallback chain for one query. Provider failures are
// logged and recovered; the returned Outcome is always usable.
func (c *Controller) Search(ctx context.Context, query string) Outcome {
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		c.logger.Debug("search attempt", "query", query, "attempt", attempt)

		if out, ok := c.tryProviders(ctx, query); ok {
			return out
		}

		if !c.fallbackEnabled || attempt == c.maxRetries {
			break
		}

		delay := c.baseDelay * time.Duration(attempt)
		c.logger.Info("search cycle exhausted, retrying",
			"query", query, "attempt", attempt, "delay", delay)
		c.sleep(ctx, delay)
		if ctx.Err() != nil {
			break
		}
	}

	c.logger.Warn("all search providers failed", "query", query)
	return Outcome{
		Results:  []Result{},
		Provider: "none",
		Success:  false,
		Err:      "All search providers failed",
	}
}

// tryProviders runs one pass over the provider chain.
func (c *Controller) tryProviders(ctx context.Context, query string) (Outcome, bool) {
	for _, p := range c.providers {
		if !p.Configured() {
			c.logger.Debug("provider skipped, no credential", "provider", p.Name())
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		start := time.Now()
		raws, err := p.Search(callCtx, query)
		cancel()
		if c.metrics != nil {
			c.metrics.RecordSearch("provider_"+p.Name(),
				time.Since(start), int64(len(raws)), err == nil && len(raws) > 0)
		}

		if err != nil {
			c.logger.Warn("provider failed", "provider", p.Name(), "error", err)
			continue
		}
		if len(raws) == 0 {
			c.logger.Debug("provider returned no results", "provider", p.Name())
			continue
		}

		c.logger.Info("search succeeded",
			"provider", p.Name(), "query", query, "results", len(raws))
		return Outcome{
			Results:  Normalize(raws),
			Provider: p.Name(),
			Success:  true,
		}, true
	}
	return Outcome{}, false
}
