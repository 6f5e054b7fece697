package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/bausano/link-crawler/internal/model"
)

// MarkdownWriter outputs reports in GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.HostReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Link Crawler Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Host", "`" + report.Host + "`"},
			{"Seed", "`" + report.Seed + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.Round(time.Millisecond).String()},
			{"Status", report.Status()},
		},
	})
	md.PlainText("")

	w.writeSummary(md, report)
	w.writeURLs(md, report)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [link-crawler](https://github.com/bausano/link-crawler)*")

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.HostReport) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Pages visited", strconv.Itoa(report.PagesVisited)},
			{"Pages failed", strconv.Itoa(report.PagesFailed)},
			{"New URLs", strconv.Itoa(report.Discovered)},
			{"Known URLs", strconv.Itoa(len(report.URLs))},
		},
	})
	md.PlainText("")

	switch {
	case report.Error != "":
		md.Cautionf("Crawl aborted: %s", report.Error)
	case report.Interrupted:
		md.Warning("Crawl was interrupted; the URL list may be incomplete.")
	case report.PagesVisited > 0 && report.PagesFailed == report.PagesVisited:
		md.Warning("No page could be fetched.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeURLs(md *markdown.Markdown, report *model.HostReport) {
	md.H2("URLs")
	md.PlainText("")

	if len(report.URLs) == 0 {
		md.PlainText("No URLs recorded.")
		md.PlainText("")
		return
	}

	md.BulletList(report.URLs...)
	md.PlainText("")
}
