// Command yogapath-mock serves the in-memory Yoga Path backend for local use.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/naveenspark/yogapath/internal/config"
	"github.com/naveenspark/yogapath/internal/logging"
	"github.com/naveenspark/yogapath/internal/mockapi"
)

const (
	demoName     = "Demo Yogi"
	demoEmail    = "demo@yogapath.dev"
	demoPassword = "namaste1"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger, err := logging.Console(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best effort on exit

	api := mockapi.New(mockapi.Options{
		Secret: cfg.MockSecret,
		Prefix: "/api",
		Logger: logger,
	})
	if _, err := api.AddUser(demoName, demoEmail, demoPassword); err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.MockAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mock backend listening",
			zap.String("addr", cfg.MockAddr),
			zap.String("demo_email", demoEmail),
			zap.String("demo_password", demoPassword))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
