// Package cli implements the prodtracker command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mmynk/producttracker/internal/config"
	"github.com/mmynk/producttracker/internal/metrics"
	"github.com/mmynk/producttracker/internal/search"
	"github.com/mmynk/producttracker/internal/service"
	"github.com/mmynk/producttracker/internal/storage"
	"github.com/mmynk/producttracker/internal/storage/sqlite"
	"github.com/mmynk/producttracker/pkg/logging"
)

const defaultConfigPath = "producttracker.yml"

// NewRootCmd builds the prodtracker command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "prodtracker",
		Short:         "Track products, production records and monthly salary",
		Long:          "prodtracker manages the product tracker database: reports, backups and integrity checks.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to config file")

	open := func(cmd *cobra.Command) (*app, error) {
		return openApp(cmd.Context(), cmd, configPath)
	}

	rootCmd.AddCommand(
		newExportCmd(open),
		newImportCmd(open),
		newStatsCmd(open),
		newSalaryCmd(open),
		newCheckCmd(open),
		newProductsCmd(open),
		newAddProductCmd(open),
		newAddRecordCmd(open),
		newSeedCmd(open),
	)
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

type opener func(cmd *cobra.Command) (*app, error)

// app holds everything a command needs, opened from the config file.
type app struct {
	cfg      *config.Config
	store    *storage.Repository
	registry *prometheus.Registry

	products *service.ProductService
	records  *service.RecordService
	settings *service.SettingsService
	stats    *service.StatsService
	index    *search.Index
}

func openApp(ctx context.Context, cmd *cobra.Command, configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	lang, err := cfg.Language()
	if err != nil {
		return nil, err
	}

	backend, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	slog.Debug("Storage initialized", "database", cfg.DBPath)

	registry := prometheus.NewRegistry()
	store, err := storage.New(ctx, backend,
		storage.WithLocation(loc),
		storage.WithDefaultPresets(cfg.DefaultPresets),
		storage.WithMetrics(metrics.New(registry)),
	)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		store:    store,
		registry: registry,
		products: service.NewProductService(store),
		records:  service.NewRecordService(store),
		settings: service.NewSettingsService(store),
		stats:    service.NewStatsService(store),
		index:    search.NewIndex(store, lang),
	}, nil
}

// Close closes the store and, if configured, writes the collected metrics
// to the textfile.
func (a *app) Close() error {
	err := a.store.Close()
	if a.cfg.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); werr != nil {
			err = errors.Join(err, fmt.Errorf("failed to write metrics: %w", werr))
		}
	}
	return err
}

// styles returns output styles for the stored theme.
func (a *app) styles(ctx context.Context, cmd *cobra.Command) styles {
	theme, _, err := a.settings.Theme(ctx)
	if err != nil {
		slog.Warn("Failed to read theme", "error", err)
	}
	return newStyles(cmd.OutOrStdout(), theme)
}

// withApp opens the app, runs fn and closes the app, keeping the first error.
func withApp(open opener, fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := open(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args, a)
	}
}
