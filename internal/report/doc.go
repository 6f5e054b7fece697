// Package report renders crawl results.
//
// Writers:
//   - SimpleWriter: plain text for terminals
//   - JSONWriter: JSON for scripts, compact or pretty printed
//   - MarkdownWriter: Markdown for sharing, built with nao1215/markdown
//
// All writers implement Writer and take a *model.HostReport.
package report
