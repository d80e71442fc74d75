package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// sessionStore is closed on shutdown to tear down live questionnaires
type sessionStore interface {
	Count() int
	Close()
}

// App represents the application with all its components
type App struct {
	server   *http.Server
	sessions sessionStore
	logger   *zap.Logger
}

// Run starts the HTTP server and blocks until a shutdown signal or a server error
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.closeSessions()
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		a.closeSessions()
		return err
	}

	a.closeSessions()

	a.logger.Info("Application stopped gracefully")
	_ = a.logger.Sync()
	return nil
}

func (a *App) closeSessions() {
	if a.sessions == nil {
		return
	}
	a.logger.Info("Closing questionnaire sessions", zap.Int("active", a.sessions.Count()))
	a.sessions.Close()
}
