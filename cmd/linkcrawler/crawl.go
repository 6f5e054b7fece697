package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bausano/link-crawler/internal/config"
	"github.com/bausano/link-crawler/internal/intake"
	"github.com/bausano/link-crawler/internal/model"
	"github.com/bausano/link-crawler/internal/report"
	"github.com/bausano/link-crawler/internal/store"
)

// errInvalidSeed is returned when the crawl argument is not an absolute URL with a host.
var errInvalidSeed = errors.New("invalid seed url: must be absolute with a host")

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <url>",
		Short: "Crawl one seed URL and print a report",
		Long: `Crawl visits up to 16 pages on the seed's hostname, starting from the seed,
and prints every URL found.

Only links whose hostname equals the seed's are followed. Relative links replace
the path of the page they were found on; "." and ".." segments are kept as written.

Examples:
  # Plain text report
  linkcrawler crawl https://example.com/

  # JSON report to a file
  linkcrawler crawl --json -o reports/example.json https://example.com/

  # Markdown report with per-host cookies from a config file
  linkcrawler crawl --markdown -c myconfig.yaml https://example.com/`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	addFetchFlags(cmd)
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runCrawl(ctx, cfg, args[0], cmd.OutOrStdout(), logger)
}

// runCrawl crawls rawURL into a fresh store and writes the report.
// An interrupted crawl still reports what it found and is not an error.
func runCrawl(ctx context.Context, cfg *config.Config, rawURL string, stdout io.Writer, logger *slog.Logger) error {
	seed, host, ok := intake.ParseSeed(rawURL)
	if !ok {
		return fmt.Errorf("%w: %q", errInvalidSeed, rawURL)
	}

	st, err := store.Open(cfg.StoreDriver)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Warn("failed to close store", "error", closeErr)
		}
	}()

	hostReport := model.NewHostReport(seed, host)
	logger.Info("crawl started", "url", seed, "host", host)

	result, crawlErr := newSpider(cfg, st, logger).Crawl(ctx, seed, host)

	urls, err := st.URLs(host)
	if err != nil {
		return fmt.Errorf("failed to read urls for %s: %w", host, err)
	}
	hostReport.Finish(result.Visited, result.Failed, result.Discovered, urls)

	switch {
	case crawlErr == nil:
	case errors.Is(crawlErr, context.Canceled), errors.Is(crawlErr, context.DeadlineExceeded):
		hostReport.Interrupted = true
		crawlErr = nil
	default:
		hostReport.Error = crawlErr.Error()
	}

	logger.Info("crawl finished",
		"host", host,
		"visited", hostReport.PagesVisited,
		"failed", hostReport.PagesFailed,
		"known", len(hostReport.URLs),
	)

	if err := outputReport(cfg, hostReport, stdout); err != nil {
		return err
	}

	return crawlErr
}

// outputReport writes the report in the configured format to cfg.ReportFile or stdout.
func outputReport(cfg *config.Config, hostReport *model.HostReport, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(hostReport)
	return err
}
