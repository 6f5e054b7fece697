package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bausano/link-crawler/internal/model"
)

func sampleReport() *model.HostReport {
	return &model.HostReport{
		Host:         "example.com",
		Seed:         "https://example.com/",
		URLs:         []string{"https://example.com/", "https://example.com/about", "https://example.com/blog"},
		PagesVisited: 4,
		PagesFailed:  1,
		Discovered:   3,
		StartedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Elapsed:      1500 * time.Millisecond,
	}
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header, summary and URLs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(sampleReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, buffer has %d", n, buf.Len())
		}

		output := buf.String()
		for _, want := range []string{
			"LINK CRAWLER REPORT",
			"Host:       example.com",
			"Status:     complete",
			"Elapsed:    1.5s",
			"Pages visited:  4",
			"Pages failed:   1",
			"Known URLs:     3",
			"[+] https://example.com/about",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
	})

	t.Run("summary only omits URLs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithSummaryOnly(true)).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "[+]") {
			t.Errorf("expected no URL listing:\n%s", buf.String())
		}
	})

	t.Run("empty URL set", func(t *testing.T) {
		t.Parallel()

		r := sampleReport()
		r.URLs = nil
		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No URLs recorded") {
			t.Errorf("expected empty marker:\n%s", buf.String())
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output decodes back", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected a single line, got %q", buf.String())
		}

		var got model.HostReport
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Host != "example.com" || len(got.URLs) != 3 || got.PagesFailed != 1 {
			t.Errorf("unexpected decoded report %+v", got)
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"host\": \"example.com\"") {
			t.Errorf("expected indented output, got:\n%s", buf.String())
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("complete crawl", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Link Crawler Report",
			"## Summary",
			"## URLs",
			"`example.com`",
			"https://example.com/blog",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected markdown to contain %q:\n%s", want, output)
			}
		}
	})

	t.Run("error is surfaced", func(t *testing.T) {
		t.Parallel()

		r := sampleReport()
		r.Error = "store unavailable"
		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "store unavailable") {
			t.Errorf("expected error in output:\n%s", buf.String())
		}
	})
}

type failingWriter struct{}

func (failingWriter) Write(*model.HostReport) (int, error) {
	return 0, errors.New("boom")
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		n, err := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b)).Write(sampleReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Len() == 0 || b.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
		if n != a.Len()+b.Len() {
			t.Errorf("expected total %d, got %d", a.Len()+b.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		_, err := NewMultiWriter(failingWriter{}, NewSimpleWriter(&after)).Write(sampleReport())
		if err == nil {
			t.Fatal("expected error")
		}
		if after.Len() != 0 {
			t.Error("expected writers after the failure to be skipped")
		}
	})
}
