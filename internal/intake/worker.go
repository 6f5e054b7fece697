package intake

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/bausano/link-crawler/internal/crawler"
)

// Source yields submissions to the Worker.
type Source interface {
	Receive(ctx context.Context) (Request, error)
}

// Crawler runs one bounded traversal from seed restricted to host.
type Crawler interface {
	Crawl(ctx context.Context, seed, host string) (crawler.Result, error)
}

// ParseSeed validates a submitted URL. It returns the normalized seed and its
// hostname, or ok=false if raw is not an absolute URL with a host.
func ParseSeed(raw string) (seed, host string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return "", "", false
	}
	return u.String(), u.Hostname(), true
}

// Worker is the single consumer of a Source.
type Worker struct {
	source  Source
	crawler Crawler
	logger  *slog.Logger
	onDone  func(Request, crawler.Result)
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithWorkerLogger sets the logger for intake events.
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithOnDone registers a callback invoked after each completed crawl.
func WithOnDone(fn func(Request, crawler.Result)) WorkerOption {
	return func(w *Worker) {
		w.onDone = fn
	}
}

// NewWorker creates a Worker that feeds submissions from source to c.
func NewWorker(source Source, c Crawler, opts ...WorkerOption) *Worker {
	w := &Worker{
		source:  source,
		crawler: c,
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = slog.Default()
	}

	return w
}

// Run processes submissions until ctx is cancelled or the source is closed,
// returning nil in both cases. A store fault from the crawler ends the loop
// and is returned. Other receive errors are logged and the loop keeps waiting.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		req, err := w.source.Receive(ctx)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrQueueClosed):
			w.logger.Info("submission queue closed, stopping intake")
			return nil
		default:
			w.logger.Warn("error during message receiving", "error", err)
			continue
		}

		seed, host, ok := ParseSeed(req.URL)
		if !ok {
			w.logger.Debug("discarding malformed submission", "id", req.ID, "url", req.URL)
			continue
		}

		if err := w.process(ctx, req, seed, host); err != nil {
			return err
		}
	}
}

func (w *Worker) process(ctx context.Context, req Request, seed, host string) error {
	w.logger.Info("crawl started", "id", req.ID, "url", seed, "host", host)
	start := time.Now()

	result, err := w.crawler.Crawl(ctx, seed, host)
	if err != nil {
		if ctx.Err() != nil {
			w.logger.Info("crawl interrupted", "id", req.ID, "host", host)
			return nil
		}
		w.logger.Error("crawl aborted by store fault", "id", req.ID, "host", host, "error", err)
		return err
	}

	w.logger.Info("crawl finished",
		"id", req.ID,
		"host", host,
		"visited", result.Visited,
		"failed", result.Failed,
		"discovered", result.Discovered,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if w.onDone != nil {
		w.onDone(req, result)
	}

	return nil
}
