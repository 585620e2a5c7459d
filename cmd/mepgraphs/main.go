// Package main implements the mepgraphs CLI.
//
// mepgraphs walks the distribution networks of a building model and exports
// one tree document per network plus a discipline summary of JSON graphs.
package main

import (
	"fmt"
	"os"

	"mepgraphs/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg     *config.Config
	cfgFrom string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mepgraphs",
	Short: "Export MEP system connectivity graphs",
	Long: `mepgraphs exports the connectivity of mechanical, electrical and piping
systems in a building model.

Each qualifying network is walked from its base equipment. Shared components
and physical loops are recorded once and referenced afterwards, so every
network yields a finite tree. Trees are written as per-network documents and
collected into one JSON summary grouped by discipline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, cfgFrom, err = loadConfig(configPath)
		if err != nil {
			return err
		}

		logger, err = newLogger(cfg.Log.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: search "+config.EnvConfigPath+", ./"+config.ConfigFileName+", XDG, /etc)")

	rootCmd.AddCommand(exportCmd, validateCmd, storedCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads an explicit config file, or searches the default locations
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// newLogger builds a production logger at the configured level
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = lvl
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}
