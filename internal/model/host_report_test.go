package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewHostReport(t *testing.T) {
	t.Parallel()

	before := time.Now()
	r := NewHostReport("https://example.com/", "example.com")

	if r.Seed != "https://example.com/" || r.Host != "example.com" {
		t.Errorf("unexpected seed/host: %q %q", r.Seed, r.Host)
	}
	if r.StartedAt.Before(before) {
		t.Errorf("StartedAt %v is before construction time %v", r.StartedAt, before)
	}
	if r.URLs == nil {
		t.Error("expected URLs to be an empty slice, got nil")
	}
}

func TestHostReportFinish(t *testing.T) {
	t.Parallel()

	t.Run("sorts URLs without touching the input", func(t *testing.T) {
		t.Parallel()

		r := NewHostReport("https://example.com/", "example.com")
		urls := []string{"https://example.com/b", "https://example.com/", "https://example.com/a"}
		r.Finish(3, 1, 2, urls)

		want := []string{"https://example.com/", "https://example.com/a", "https://example.com/b"}
		for i := range want {
			if r.URLs[i] != want[i] {
				t.Fatalf("URLs = %v, want %v", r.URLs, want)
			}
		}
		if urls[0] != "https://example.com/b" {
			t.Error("Finish reordered the caller's slice")
		}
		if r.PagesVisited != 3 || r.PagesFailed != 1 || r.Discovered != 2 {
			t.Errorf("unexpected counters: %+v", r)
		}
		if r.Elapsed < 0 {
			t.Errorf("negative elapsed %v", r.Elapsed)
		}
	})

	t.Run("nil URLs encode as an empty array", func(t *testing.T) {
		t.Parallel()

		r := NewHostReport("https://example.com/", "example.com")
		r.Finish(1, 1, 0, nil)

		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(data), `"urls":[]`) {
			t.Errorf("expected empty urls array, got %s", data)
		}
		if strings.Contains(string(data), `"error"`) || strings.Contains(string(data), `"interrupted"`) {
			t.Errorf("expected optional fields to be omitted, got %s", data)
		}
	})
}

func TestHostReportStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report HostReport
		want   string
	}{
		{name: "complete", report: HostReport{}, want: "complete"},
		{name: "interrupted", report: HostReport{Interrupted: true}, want: "interrupted (partial results)"},
		{name: "error wins", report: HostReport{Interrupted: true, Error: "disk on fire"}, want: "error: disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.report.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}
