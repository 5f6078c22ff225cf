package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"teamtasks/internal/server"
	"teamtasks/internal/service"
)

func serveCmd(v *viper.Viper, load func() (*runtime, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API and, when a built client is present, serve it.

Examples:
  teamtasks serve --addr :8080
  teamtasks serve --db data/teamtasks.db --seed
  TEAMTASKS_CORS_ORIGINS=http://localhost:4200 teamtasks serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), load)
		},
	}

	cmd.Flags().String("addr", "", "HTTP listen address (TEAMTASKS_ADDR)")
	cmd.Flags().String("static", "", "directory with the built dashboard client (TEAMTASKS_STATIC_DIR)")
	cmd.Flags().Bool("seed", false, "insert demo data when the database is empty (TEAMTASKS_SEED_ON_START)")
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("static_dir", cmd.Flags().Lookup("static"))
	_ = v.BindPFlag("seed_on_start", cmd.Flags().Lookup("seed"))
	return cmd
}

func runServe(ctx context.Context, load func() (*runtime, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := load()
	if err != nil {
		return err
	}
	defer rt.Close()

	logger := rt.logger
	logger.Info("team tasks dashboard", slog.String("version", Version))

	store, err := rt.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if rt.cfg.SeedOnStart {
		if _, err := store.Seed(ctx); err != nil {
			return err
		}
	}

	srv := server.New(server.Services{
		Tasks:     service.NewTaskService(store, store, store, logger),
		Dashboard: service.NewDashboardService(store),
		Directory: service.NewDirectoryService(store, store),
		Health:    store,
	}, logger, server.Options{
		StaticDir:   rt.cfg.StaticDir,
		CORSOrigins: rt.cfg.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:    rt.cfg.Addr,
		Handler: srv.Engine(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}
