// Package cli holds the filevis subcommands that run without a display.
package cli

import (
	"fmt"

	"github.com/merridan/filevis/internal/config"
	"github.com/merridan/filevis/internal/logging"

	"github.com/spf13/cobra"
)

// Root returns the filevis root command with the headless subcommands attached.
func Root() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:           "filevis",
		Short:         "Byte-pair heatmaps of binary files",
		Long:          "filevis renders a 256x256 map of adjacent byte pairs, brighter where a pair is more frequent",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "config.json", "path to config file")
	config.DefineFlags(root)
	root.AddCommand(
		Render(&configFile),
		Stats(&configFile),
		Chart(&configFile),
		Version(),
	)
	return root
}

// Prepare loads and validates configuration and sets up logging. The returned
// func must be called when the command finishes.
func Prepare(cmd *cobra.Command, configFile string) (config.Config, func(), error) {
	cfg, meta, err := config.Load(cmd, configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid config: %w", err)
	}
	closeLog, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return config.Config{}, nil, err
	}
	if meta.FileNotFound {
		logging.Debug("config file %s not found, using defaults", meta.File)
	}
	return cfg, closeLog, nil
}
