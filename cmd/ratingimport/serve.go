package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TsepisoMotloung/360-Rating/internal/app"
	apihttp "github.com/TsepisoMotloung/360-Rating/internal/http"
	"github.com/TsepisoMotloung/360-Rating/internal/service"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve CSV to SQL/JSON conversion over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "HTTP port (default: HTTP_PORT or 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != "" {
		cfg.HTTP.Port = servePort
	}

	defaults, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	repos := app.NewRepositories(cfg.Columns())
	converter := service.NewConverterService(repos.Artifacts, cfg.Input.RaterColumn, logger)

	handler := apihttp.NewRouter(repos, converter, defaults, logger)
	application := app.NewApp(handler, repos, converter)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      application.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// ---- graceful shutdown ----
	select {
	case err := <-errCh:
		return err
	case <-commandContext(cmd).Done():
	}
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if err := srv.Close(); err != nil {
			logger.Warn("server close failed", zap.Error(err))
		}
	}

	logger.Info("server stopped")
	return nil
}
