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

	"github.com/hugo-lorenzo-mato/wardenctl/internal/logging"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/mockadmin"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a local in-memory admin API",
	Long: `Serve a fake admin API with sample users and configuration. Useful for
trying wardenctl without a real server:

  wardenctl demo &
  wardenctl --server http://localhost:8000 --token demo`,
	RunE: runDemo,
}

var demoAddr string

func init() {
	demoCmd.Flags().StringVar(&demoAddr, "addr", "localhost:8000",
		"address to listen on")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(_ *cobra.Command, _ []string) error {
	logger := logging.New(logging.Config{
		Level:  logLevel,
		Format: logFormat,
		Output: os.Stderr,
	})

	mock := mockadmin.New(mockadmin.WithLogger(logger.Logger))
	srv := &http.Server{
		Addr:              demoAddr,
		Handler:           mock.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("demo admin API listening", "addr", demoAddr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("demo server: %w", err)
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
