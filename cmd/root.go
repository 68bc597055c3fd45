// Package cmd implements the marc command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"marc/config"
	"marc/database"
	"marc/logging"
	"marc/services"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "marc",
	Short: "Render DMARC report charts",
	Long: `marc turns pre-computed DMARC report counts into Chart.js doughnut
configurations, either one chart at a time or as a whole dashboard served
over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if override, _ := cmd.Flags().GetString("log-level"); override != "" {
			level = override
		}
		logger, err := logging.New(os.Stderr, level, cfg.Logging.Color)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/marc.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(serveCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildDashboard connects to the database when one is configured. The
// returned cleanup must be called once the dashboard is no longer used.
func buildDashboard(ctx context.Context) (*services.Dashboard, func(), error) {
	source := services.RoutedSource{Static: services.StaticSource{}}
	cleanup := func() {}

	if cfg.Database.Configured() {
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		source.Query = database.NewSQLSource(pool)
		cleanup = pool.Close
	}

	dash := services.NewDashboard(cfg.Dashboard.Title, cfg.Dashboard.Charts, source, cfg.Dashboard.Concurrency)
	return dash, cleanup, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "marc %s (commit %s)\n", version, commit)
	},
}
