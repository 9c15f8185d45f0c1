// Command clientdesk serves the clientdesk API and carries its admin tools.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Strob0t/clientdesk/internal/config"
	"github.com/Strob0t/clientdesk/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "clientdesk",
	Short:         "Client project, journal and affiliate API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "path to the YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd, setPasswordCmd, createUserCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and installs the configured default logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.Logging)
	slog.SetDefault(log)
	return cfg, log, nil
}
