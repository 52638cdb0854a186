package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// SessionSweeper drops expired sessions together with their per-session state.
type SessionSweeper interface {
	SweepExpiredSessions(ctx context.Context) (int, error)
}

// APIServer serves route on port until ctx is cancelled, then shuts down
// gracefully. Expired sessions are swept in the background meanwhile.
func APIServer(ctx context.Context, route http.Handler, port string, sessions SessionSweeper, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server running", zap.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		sweepSessions(ctx, sessions, time.Hour, logger)
		return nil
	})

	return g.Wait()
}

func sweepSessions(ctx context.Context, sessions SessionSweeper, every time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sessions.SweepExpiredSessions(ctx); err != nil {
				logger.Warn("Failed to clean expired sessions", zap.Error(err))
			}
		}
	}
}
