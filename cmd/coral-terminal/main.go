package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ngmaloney/coral-terminal/internal/config"
	"github.com/ngmaloney/coral-terminal/internal/coralapi"
	"github.com/ngmaloney/coral-terminal/internal/database"
	"github.com/ngmaloney/coral-terminal/internal/journal"
	"github.com/ngmaloney/coral-terminal/internal/logging"
	"github.com/ngmaloney/coral-terminal/internal/ui"
)

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command line. runFn receives the resolved configuration.
func newRootCmd(runFn func(*config.Config) error) *cobra.Command {
	v := config.NewViper()
	var configFile string

	cmd := &cobra.Command{
		Use:   "coral-terminal",
		Short: "Terminal client for CoralWatch Bonaire coral health observations",
		Long: `coral-terminal uploads coral photos tagged to a dive site and browses
per-site coral galleries and per-coral observation timelines.

Settings come from flags, CORALWATCH_* environment variables
(e.g. CORALWATCH_API_BASE_URL) and an optional config file.`,
		Example: `  coral-terminal --api-url https://coralwatch.example.org/api
  coral-terminal --route /coral/C123`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return runFn(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default ./coral-terminal.yaml if present)")
	flags.String("api-url", "", "CoralWatch API base URL (default http://localhost:5000/api)")
	flags.String("route", "", "route to open at startup, e.g. /dashboard or /coral/C123")
	flags.String("log-file", "", "log file path (default data/coral-terminal.log)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("db", "", "upload journal database path (default data/coral-terminal.db)")

	bindings := map[string]string{
		"api.base_url":   "api-url",
		"ui.start_route": "route",
		"log.file":       "log-file",
		"log.level":      "log-level",
		"journal.path":   "db",
	}
	for key, flag := range bindings {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

func run(cfg *config.Config) error {
	logger, closeLog, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog()

	logger.Info("starting coral-terminal",
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.String("start_route", cfg.UI.StartRoute))

	client := coralapi.NewHTTPClient(cfg.API.BaseURL, logger,
		coralapi.WithTimeout(cfg.API.Timeout),
		coralapi.WithUploadTimeout(cfg.API.UploadTimeout))

	opts := ui.Options{
		Client:        client,
		Logger:        logger,
		RecentUploads: cfg.Journal.Recent,
		StartPath:     cfg.UI.StartRoute,
	}
	if cfg.Journal.Path != "" {
		if err := database.EnsureSchema(cfg.Journal.Path); err != nil {
			logger.Warn("upload journal disabled", zap.String("path", cfg.Journal.Path), zap.Error(err))
		} else {
			opts.Journal = journal.NewRepository(cfg.Journal.Path)
		}
	}

	p := tea.NewProgram(ui.NewApp(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("application error", zap.Error(err))
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
