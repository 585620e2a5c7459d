package main

import (
	"fmt"
	"os"
	"strings"

	"mepgraphs/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var forceInit bool

// configCmd is the parent command for configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfgFrom == "" {
			fmt.Fprintln(out, "# no config file found, using defaults")
		} else {
			fmt.Fprintf(out, "# %s\n", cfgFrom)
		}
		fmt.Fprintln(out, "# "+strings.ReplaceAll(cfg.Summary(), "\n", "\n# "))

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = out.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPath()
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("config %s already exists (use --force to overwrite)", path)
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", path))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
}
