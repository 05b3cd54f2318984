package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	log "github.com/spf13/jwalterweatherman"

	"github.com/nlwcopa/bolao-web/api"
	"github.com/nlwcopa/bolao-web/config"
	"github.com/nlwcopa/bolao-web/controllers"
	"github.com/nlwcopa/bolao-web/handlers"
	"github.com/nlwcopa/bolao-web/live"
	"github.com/nlwcopa/bolao-web/middleware"
)

const (
	shutdownPeriod      = 15 * time.Second
	shutdownHardPeriod  = 3 * time.Second
	readinessDrainDelay = 5 * time.Second

	limiterSweepEvery = time.Minute
	limiterIdle       = 10 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page (default command)",
	RunE:  runServe,
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(c *cobra.Command) {
	c.Flags().String("addr", "", "listen address (overrides HTTP_ADDR)")
	c.Flags().String("api-url", "", "backend API base URL (overrides API_BASE_URL)")
	c.Flags().Bool("dev", false, "serve static files from ./static (overrides DEV_MODE)")
}

func applyServeFlags(c *cobra.Command, cfg *config.Config) error {
	if c.Flags().Changed("addr") {
		cfg.Server.Addr, _ = c.Flags().GetString("addr")
	}
	if c.Flags().Changed("api-url") {
		cfg.API.BaseURL, _ = c.Flags().GetString("api-url")
	}
	if c.Flags().Changed("dev") {
		cfg.Server.DevMode, _ = c.Flags().GetBool("dev")
	}
	return cfg.Validate()
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyServeFlags(c, cfg); err != nil {
		return err
	}
	return serve(c.Context(), cfg, staticFiles)
}

// serve runs the site until ctx is cancelled, then drains and shuts down.
func serve(rootCtx context.Context, cfg *config.Config, static fs.FS) error {
	client, err := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		return err
	}

	if cfg.Server.DevMode || static == nil {
		static = os.DirFS("static")
	}

	stats := controllers.NewStatsController(client)
	pools := controllers.NewPoolController(client)
	limiter := middleware.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	feed := live.NewFeed(stats, cfg.Live.Interval)

	backgroundCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go feed.Run(backgroundCtx)
	go sweepLimiter(backgroundCtx, limiter)

	var isShuttingDown atomic.Bool
	mux := handlers.SetupRoutes(handlers.Deps{
		Stats:        stats,
		Pools:        pools,
		Feed:         feed,
		Limiter:      limiter,
		TrustProxy:   cfg.RateLimit.TrustProxy,
		Static:       static,
		ShuttingDown: &isShuttingDown,
	})

	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},
	}

	serveErr := make(chan error, 1)
	go func() {
		log.INFO.Printf("Starting server at %s (api %s)", server.Addr, cfg.API.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-rootCtx.Done():
	}

	isShuttingDown.Store(true)
	log.INFO.Println("Shutting down")

	// closes the websocket subscribers along with the feed
	stopBackground()

	if !cfg.Server.DevMode {
		time.Sleep(readinessDrainDelay)
		log.INFO.Println("Waiting for ongoing requests to finish")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	stopOngoingGracefully()
	if err != nil {
		log.ERROR.Println("Failed to wait for ongoing requests to finish")
		time.Sleep(shutdownHardPeriod)
	}
	log.INFO.Println("Server shut down")
	return nil
}

func sweepLimiter(ctx context.Context, limiter *middleware.Limiter) {
	ticker := time.NewTicker(limiterSweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(limiterIdle); n > 0 {
				log.DEBUG.Printf("rate limit: forgot %d idle clients", n)
			}
		}
	}
}
