package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the snapshot views as a JSON API",
	Long: `Load the snapshot once and serve its derived views over HTTP for a
dashboard front end. A failed load is reported by /health and every /api
route answers 503 until restart.

Routes:
  GET /health
  GET /api/summary
  GET /api/coverage
  GET /api/roles/distribution
  GET /api/recommendations
  GET /api/rankings/winrate
  GET /api/leaderboard/{category}
  GET /api/compositions
  GET /api/compositions/{index}
  GET /api/heroes?roles=vanguard,duelist&top=10
  GET /api/heroes/{name}
  GET /api/heroes/{name}/best
  GET /api/players/{name}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $RIVALSTATS_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A failed load is kept on the store and surfaced by the handlers.
	store, _, err := loadSnapshot(ctx)
	if err != nil {
		log.Error().Err(err).Msg("serving without a snapshot")
	}

	srv := &http.Server{
		Addr: addr,
		Handler: server.New(store, log, server.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			Timeout:        cfg.HTTPTimeout,
		}).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
