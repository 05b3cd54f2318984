package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	log "github.com/spf13/jwalterweatherman"

	"github.com/nlwcopa/bolao-web/config"
	"github.com/nlwcopa/bolao-web/controllers"
	"github.com/nlwcopa/bolao-web/database"
	"github.com/nlwcopa/bolao-web/stubapi"
)

var (
	seedUsers   int
	seedGuesses int
)

var stubCmd = &cobra.Command{
	Use:   "api-stub",
	Short: "Serve a local SQLite-backed stand-in for the backend API",
	Long: `api-stub serves pools/count, users/count, guesses/count and pools from a
local SQLite file so the landing page can be developed without the real backend.`,
	RunE: runStub,
}

func init() {
	stubCmd.Flags().String("addr", "", "listen address (overrides STUB_ADDR)")
	stubCmd.Flags().String("db", "", "SQLite file (overrides STUB_DB)")
	stubCmd.Flags().IntVar(&seedUsers, "seed-users", 0, "insert this many sample users on start")
	stubCmd.Flags().IntVar(&seedGuesses, "seed-guesses", 0, "insert this many sample guesses on start")
}

func runStub(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.Flags().Changed("addr") {
		cfg.Stub.Addr, _ = c.Flags().GetString("addr")
	}
	if c.Flags().Changed("db") {
		cfg.Stub.DB, _ = c.Flags().GetString("db")
	}
	return serveStub(c.Context(), cfg)
}

func serveStub(ctx context.Context, cfg *config.Config) error {
	initCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Init(initCtx, cfg.Stub.DB); err != nil {
		return err
	}
	defer database.Close()

	store := controllers.NewStoreController(database.DB)
	if err := store.Seed(ctx, seedUsers, seedGuesses); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Stub.Addr,
		Handler:           stubapi.SetupRoutes(store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.INFO.Printf("Starting API stub at %s (db %s)", server.Addr, cfg.Stub.DB)
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
	case <-ctx.Done():
	}

	log.INFO.Println("Shutting down API stub")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}
