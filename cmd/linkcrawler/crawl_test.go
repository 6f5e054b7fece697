package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bausano/link-crawler/internal/config"
	"github.com/bausano/link-crawler/internal/model"
)

// testSite serves a three page site and records whether the configured cookie arrived.
type testSite struct {
	*httptest.Server
	sawCookie atomic.Bool
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()

	site := &testSite{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") == "session=abc" {
			site.sawCookie.Store(true)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case "/":
			io.WriteString(w, `<html><body><a href="/a">A</a> <a href="b">B</a> <a href="https://elsewhere.example/">x</a></body></html>`)
		case "/a", "/b":
			io.WriteString(w, `<html><body>leaf</body></html>`)
		default:
			http.NotFound(w, r)
		}
	})
	site.Server = httptest.NewServer(mux)
	t.Cleanup(site.Close)
	return site
}

// writeSiteConfig writes a config file that sends a cookie to 127.0.0.1.
func writeSiteConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
	content := "sites:\n  127.0.0.1:\n    cookie: \"session=abc\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCrawlCmd(t *testing.T) {
	t.Run("json report lists same-host urls", func(t *testing.T) {
		site := newTestSite(t)

		out, err := executeRoot(t, "crawl", "--json", "-c", writeSiteConfig(t), site.URL+"/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got model.HostReport
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid JSON report: %v\n%s", err, out)
		}

		want := []string{site.URL + "/", site.URL + "/a", site.URL + "/b"}
		if len(got.URLs) != len(want) {
			t.Fatalf("URLs = %v, want %v", got.URLs, want)
		}
		for i := range want {
			if got.URLs[i] != want[i] {
				t.Errorf("URLs[%d] = %q, want %q", i, got.URLs[i], want[i])
			}
		}
		if got.Host != "127.0.0.1" {
			t.Errorf("expected host 127.0.0.1, got %q", got.Host)
		}
		// seed, b, a and the re-pushed seed
		if got.PagesVisited != 4 || got.PagesFailed != 0 || got.Discovered != 3 {
			t.Errorf("unexpected counters: visited=%d failed=%d discovered=%d",
				got.PagesVisited, got.PagesFailed, got.Discovered)
		}
		if !site.sawCookie.Load() {
			t.Error("expected site cookie from config file to be sent")
		}
	})

	t.Run("markdown report to file", func(t *testing.T) {
		site := newTestSite(t)
		reportPath := filepath.Join(t.TempDir(), "reports", "site.md")

		out, err := executeRoot(t, "crawl", "--markdown", "-o", reportPath, "-c", writeSiteConfig(t), site.URL+"/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "" {
			t.Errorf("expected nothing on stdout, got %q", out)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "# Link Crawler Report") || !strings.Contains(string(content), site.URL+"/a") {
			t.Errorf("unexpected markdown report:\n%s", content)
		}
	})

	t.Run("text report with sqlite store", func(t *testing.T) {
		site := newTestSite(t)

		out, err := executeRoot(t, "crawl", "--store", "sqlite", "-c", writeSiteConfig(t), site.URL+"/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Known URLs:     3") {
			t.Errorf("unexpected text report:\n%s", out)
		}
	})

	t.Run("malformed seed is an error", func(t *testing.T) {
		for _, seed := range []string{"not a url", "/relative/path", "mailto:someone@example.com"} {
			_, err := executeRoot(t, "crawl", "-c", writeSiteConfig(t), seed)
			if !errors.Is(err, errInvalidSeed) {
				t.Errorf("seed %q: expected errInvalidSeed, got %v", seed, err)
			}
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		_, err := executeRoot(t, "crawl", "--json", "--markdown", "-c", writeSiteConfig(t), "https://example.com/")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("unknown store driver", func(t *testing.T) {
		_, err := executeRoot(t, "crawl", "--store", "redis", "-c", writeSiteConfig(t), "https://example.com/")
		if !errors.Is(err, config.ErrUnknownStoreDriver) {
			t.Errorf("expected ErrUnknownStoreDriver, got %v", err)
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		_, err := executeRoot(t, "crawl", "-c", filepath.Join(t.TempDir(), "missing.yaml"), "https://example.com/")
		if err == nil || !strings.Contains(err.Error(), "configuration file not found") {
			t.Errorf("expected missing config error, got %v", err)
		}
	})

	t.Run("requires exactly one url", func(t *testing.T) {
		if _, err := executeRoot(t, "crawl"); err == nil {
			t.Error("expected error without url argument")
		}
	})
}

func TestRunCrawlInterrupted(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.NewConfig()
	cfg.JSONReport = true

	var out bytes.Buffer
	if err := runCrawl(ctx, cfg, "https://example.com/", &out, setupLogger(cfg, io.Discard)); err != nil {
		t.Fatalf("expected interrupted crawl to succeed, got %v", err)
	}

	var got model.HostReport
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON report: %v", err)
	}
	if !got.Interrupted || got.PagesVisited != 0 {
		t.Errorf("expected interrupted report before any visit, got %+v", got)
	}
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads fetch flags", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		for name, value := range map[string]string{
			"timeout":       "5s",
			"user-agent":    "test-agent",
			"max-body-size": "1024",
			"store":         "sqlite",
			"config":        writeSiteConfig(t),
		} {
			if err := cmd.Flags().Set(name, value); err != nil {
				t.Fatalf("set %s: %v", name, err)
			}
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Timeout.String() != "5s" || cfg.UserAgent != "test-agent" || cfg.MaxBodySize != 1024 || cfg.StoreDriver != "sqlite" {
			t.Errorf("flags not applied: %+v", cfg)
		}
		if got := cfg.HeadersFor("127.0.0.1")["Cookie"]; got != "session=abc" {
			t.Errorf("expected site cookie from config, got %q", got)
		}
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("sites: [}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewCrawlCmd()
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatalf("set config: %v", err)
		}
		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for invalid config file")
		}
	})
}
