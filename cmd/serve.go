package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/baba/internal/api"
	"github.com/abhisek/baba/internal/config"
	"github.com/abhisek/baba/internal/logger"
	"github.com/abhisek/baba/internal/store"
)

const sessionCleanupInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tutoring HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		svc, err := openServices(cmd, false)
		if err != nil {
			return err
		}
		defer svc.Close()

		if port, _ := cmd.Flags().GetString("port"); port != "" {
			svc.cfg.Port = port
		}

		handler := api.NewHandler(svc.repo, svc.router, svc.log)
		srv := &http.Server{
			Addr:         ":" + svc.cfg.Port,
			Handler:      api.NewRouter(handler),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: svc.cfg.LLM.Timeout + 30*time.Second,
			IdleTimeout:  120 * time.Second,
		}

		if svc.cfg.SessionStore == config.StoreSQLite && svc.cfg.Redis.TTL > 0 {
			go cleanupSessions(ctx, svc.store.SessionRepo(), svc.cfg.Redis.TTL, svc.log)
		}

		errCh := make(chan error, 1)
		go func() {
			svc.log.Info("server listening", "addr", srv.Addr, "session_store", svc.cfg.SessionStore)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case <-ctx.Done():
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		}
		stop()

		svc.log.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		svc.log.Info("server stopped")
		return nil
	},
}

// cleanupSessions drops sqlite sessions idle for longer than ttl until ctx
// is cancelled. Redis expires keys on its own.
func cleanupSessions(ctx context.Context, repo *store.SQLiteSessionRepo, ttl time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.CleanupExpiredSessions(ctx, ttl)
			if err != nil {
				log.Warn("session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				log.Info("expired sessions removed", "count", n)
			}
		}
	}
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (overrides BABA_PORT)")
}
