package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ShreekarSeelavantula/career-compass/api"
	"github.com/ShreekarSeelavantula/career-compass/internal/tasks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().String("data-dir", "", "data directory (overrides storage.data-dir)")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("storage.data-dir", serveCmd.Flags().Lookup("data-dir"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := buildMatching(ctx, appConfig, log)
	if err != nil {
		return err
	}
	defer cleanup()

	manager := tasks.NewManager(appConfig.Tasks.Workers,
		tasks.WithLogger(log.Named("tasks")),
		tasks.WithRetention(appConfig.Tasks.Retention))
	manager.Start()
	defer manager.Stop()

	if !appConfig.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", appConfig.Server.Port),
		Handler: api.NewRouter(svc, manager, log.Named("http")),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.Int("port", appConfig.Server.Port),
			zap.String("storage", appConfig.Storage.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", appConfig.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
