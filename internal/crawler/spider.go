package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/bausano/link-crawler/internal/store"
)

// MaxPagesPerRequest is the most pages one Crawl call will fetch.
const MaxPagesPerRequest = 16

// Spider walks the pages of a single hostname starting from a seed URL.
//
// The frontier is a stack: links found on the most recent page are visited
// first. Every newly known URL is pushed, including a page's own URL the first
// time it is recorded, so a seed is fetched again if the budget allows.
type Spider struct {
	fetcher Fetcher
	store   store.Store
	logger  *slog.Logger
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithLogger sets the logger used for per-page diagnostics.
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a Spider that fetches with fetcher and records into st.
func NewSpider(fetcher Fetcher, st store.Store, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher: fetcher,
		store:   st,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Result summarizes one Crawl call.
type Result struct {
	// Seed is the URL the crawl started from.
	Seed string

	// Host is the hostname the crawl was restricted to.
	Host string

	// Visited is the number of frontier entries popped, including failed ones.
	Visited int

	// Failed is the number of visits that yielded nothing.
	Failed int

	// Discovered is the number of URLs that were new to the store.
	Discovered int
}

// Crawl visits pages on host reachable from seed until the frontier is empty
// or MaxPagesPerRequest pages have been visited.
//
// Page failures are skipped. The returned error is either a store fault or the
// context error if ctx was cancelled between fetches.
func (s *Spider) Crawl(ctx context.Context, seed, host string) (Result, error) {
	result := Result{Seed: seed, Host: host}
	frontier := []string{seed}

	for counter := 1; len(frontier) > 0 && counter <= MaxPagesPerRequest; counter++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		next := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		result.Visited++

		links, err := s.visit(ctx, next)
		if err != nil {
			s.logger.Debug("skipping page", "url", next, "error", err)
			result.Failed++
			continue
		}

		fresh, err := s.store.InsertUnique(host, links)
		if err != nil {
			return result, fmt.Errorf("store insert for %s: %w", host, err)
		}

		result.Discovered += len(fresh)
		frontier = append(frontier, fresh...)
	}

	return result, nil
}

// visit fetches one page and returns its same-host links.
func (s *Spider) visit(ctx context.Context, pageURL string) ([]string, error) {
	source, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return ExtractLinks(body, source)
}
