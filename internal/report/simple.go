package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bausano/link-crawler/internal/model"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable text reports.
type SimpleWriter struct {
	baseWriter

	// hideURLs limits output to the summary section.
	hideURLs bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSummaryOnly omits the URL listing.
func WithSummaryOnly(summaryOnly bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.hideURLs = summaryOnly
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in plain text.
func (w *SimpleWriter) Write(report *model.HostReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	if !w.hideURLs {
		w.writeURLs(&sb, report)
	}
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.HostReport) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                        LINK CRAWLER REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Host:       %s\n", report.Host)
	fmt.Fprintf(sb, "Seed:       %s\n", report.Seed)
	fmt.Fprintf(sb, "Started:    %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Elapsed:    %s\n", report.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(sb, "Status:     %s\n", report.Status())
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.HostReport) {
	writeSection(sb, "SUMMARY")

	fmt.Fprintf(sb, "  Pages visited:  %d\n", report.PagesVisited)
	fmt.Fprintf(sb, "  Pages failed:   %d\n", report.PagesFailed)
	fmt.Fprintf(sb, "  New URLs:       %d\n", report.Discovered)
	fmt.Fprintf(sb, "  Known URLs:     %d\n", len(report.URLs))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeURLs(sb *strings.Builder, report *model.HostReport) {
	writeSection(sb, "URLS")

	if len(report.URLs) == 0 {
		sb.WriteString("  No URLs recorded\n\n")
		return
	}
	for _, u := range report.URLs {
		fmt.Fprintf(sb, "  [+] %s\n", u)
	}
	sb.WriteString("\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}
