package model

import (
	"slices"
	"time"
)

// HostReport is the outcome of crawling one seed URL.
type HostReport struct {
	// Host is the hostname the crawl was restricted to.
	Host string `json:"host"`

	// Seed is the URL the crawl started from.
	Seed string `json:"seed"`

	// URLs is every URL known for Host after the crawl, sorted.
	// It includes URLs recorded by earlier crawls of the same host.
	URLs []string `json:"urls"`

	// PagesVisited counts frontier entries popped, failures included.
	PagesVisited int `json:"pages_visited"`

	// PagesFailed counts visits that could not be fetched or parsed.
	PagesFailed int `json:"pages_failed"`

	// Discovered counts URLs that were new to the store during this crawl.
	Discovered int `json:"discovered"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the wall time of the crawl.
	Elapsed time.Duration `json:"elapsed"`

	// Interrupted is set when the crawl was cancelled before it finished.
	Interrupted bool `json:"interrupted,omitempty"`

	// Error describes a fault that ended the crawl early.
	Error string `json:"error,omitempty"`
}

// NewHostReport starts a report for a crawl of seed restricted to host.
func NewHostReport(seed, host string) *HostReport {
	return &HostReport{
		Host:      host,
		Seed:      seed,
		URLs:      []string{},
		StartedAt: time.Now(),
	}
}

// Finish records the crawl counters and the host's URL set and stamps Elapsed.
func (r *HostReport) Finish(visited, failed, discovered int, urls []string) {
	r.PagesVisited = visited
	r.PagesFailed = failed
	r.Discovered = discovered
	r.URLs = slices.Clone(urls)
	if r.URLs == nil {
		r.URLs = []string{}
	}
	slices.Sort(r.URLs)
	r.Elapsed = time.Since(r.StartedAt)
}

// Status returns a short human-readable crawl status.
func (r *HostReport) Status() string {
	switch {
	case r.Error != "":
		return "error: " + r.Error
	case r.Interrupted:
		return "interrupted (partial results)"
	default:
		return "complete"
	}
}
