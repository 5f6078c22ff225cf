package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"teamtasks/internal/config"
	"teamtasks/internal/logging"
	"teamtasks/internal/storage/sqlite"
)

var Version = "dev"

func main() {
	v, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(v).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "teamtasks",
		Short:         "Team tasks dashboard backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.String("db", "", "path to sqlite database file (TEAMTASKS_DB_PATH)")
	flags.String("log-level", "", "log level: debug, info, warn, error (TEAMTASKS_LOG_LEVEL)")
	_ = v.BindPFlag("db_path", flags.Lookup("db"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))

	load := func() (*runtime, error) {
		return setup(v, configPath)
	}

	rootCmd.AddCommand(serveCmd(v, load))
	rootCmd.AddCommand(migrateCmd(load))
	rootCmd.AddCommand(seedCmd(load))

	// serve is the default action.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), load)
	}
	return rootCmd
}

// runtime holds what every subcommand needs once configuration is loaded.
type runtime struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

func setup(v *viper.Viper, configPath string) (*runtime, error) {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger, logCloser: closer}, nil
}

func (r *runtime) openStore() (*sqlite.Store, error) {
	store, err := sqlite.Open(r.cfg.DBPath, r.logger)
	if err != nil {
		r.logger.Error("unable to open database", slog.String("path", r.cfg.DBPath), slog.String("error", err.Error()))
		return nil, err
	}
	return store, nil
}

func (r *runtime) Close() {
	_ = r.logCloser.Close()
}
