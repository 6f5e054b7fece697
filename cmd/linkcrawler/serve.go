package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bausano/link-crawler/internal/api"
	"github.com/bausano/link-crawler/internal/config"
	"github.com/bausano/link-crawler/internal/intake"
	"github.com/bausano/link-crawler/internal/store"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background crawler",
		Long: `Serve starts the HTTP API and a single background crawler.

Routes:
  POST /                    queue {"url": "..."} for crawling, returns {"id": "..."}
  GET  /hosts               hostnames with at least one known URL
  GET  /{host}/url          every URL known for host
  GET  /{host}/url/count    {"count": n}

Submitted URLs are crawled one at a time in submission order. The URL
store lives in memory and is lost when the process exits.

Examples:
  linkcrawler serve
  linkcrawler serve --listen 127.0.0.1:9000 --store sqlite`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddress,
		"Address the HTTP API listens on")
	cmd.Flags().Duration("shutdown-timeout", config.DefaultShutdownTimeout,
		"Time allowed for in-flight API requests on shutdown")
	addFetchFlags(cmd)

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	cfg.ListenAddress, err = cmd.Flags().GetString("listen")
	if err != nil {
		return err
	}

	cfg.ShutdownTimeout, err = cmd.Flags().GetDuration("shutdown-timeout")
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err)
	}

	return serve(ctx, ln, cfg, logger)
}

// serve runs the API on ln and the intake worker until ctx is cancelled,
// the listener fails, or the store faults.
func serve(ctx context.Context, ln net.Listener, cfg *config.Config, logger *slog.Logger) error {
	st, err := store.Open(cfg.StoreDriver)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Warn("failed to close store", "error", closeErr)
		}
	}()

	queue := intake.NewQueue()
	worker := intake.NewWorker(queue, newSpider(cfg, st, logger), intake.WithWorkerLogger(logger))
	srv := api.NewServer(cfg.ListenAddress, api.NewHandler(st, queue, logger))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http api listening", "address", ln.Addr().String(), "store", cfg.StoreDriver)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return worker.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		queue.Close()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
