// Package config loads filevis configuration from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/merridan/filevis/internal/digraph"
	"github.com/merridan/filevis/internal/tone"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. FILEVIS_RENDER_SCALE.
const EnvPrefix = "FILEVIS"

// Config represents the configuration file structure
type Config struct {
	Log    Log    `mapstructure:"log" json:"log"`
	Render Render `mapstructure:"render" json:"render"`
	View   View   `mapstructure:"view" json:"view"`
	Stats  Stats  `mapstructure:"stats" json:"stats"`
}

type Log struct {
	// Level is one of trace, debug, info, warn, error or none.
	Level string `mapstructure:"level" json:"level"`
	// File is an optional log file; logs go to stderr when empty.
	File string `mapstructure:"file" json:"file"`
}

type Render struct {
	// Pairing is the digraph window: half, sliding or disjoint.
	Pairing    string   `mapstructure:"pairing" json:"pairing"`
	Scale      int      `mapstructure:"scale" json:"scale"`
	Caption    bool     `mapstructure:"caption" json:"caption"`
	Brightness float64  `mapstructure:"brightness" json:"brightness"`
	Contrast   float64  `mapstructure:"contrast" json:"contrast"`
	OutDir     string   `mapstructure:"out_dir" json:"out_dir"`
	Workers    int      `mapstructure:"workers" json:"workers"`
	Include    []string `mapstructure:"include" json:"include"`
	// Decompress transparently unpacks zstd and gzip inputs.
	Decompress bool `mapstructure:"decompress" json:"decompress"`
}

type View struct {
	Scale int `mapstructure:"scale" json:"scale"`
}

type Stats struct {
	Top int `mapstructure:"top" json:"top"`
}

// Meta describes how the configuration was assembled.
type Meta struct {
	FileNotFound bool
	File         string
}

var defaults = map[string]any{
	"log.level":         "info",
	"log.file":          "",
	"render.pairing":    "half",
	"render.scale":      1,
	"render.caption":    false,
	"render.brightness": 0.0,
	"render.contrast":   1.0,
	"render.out_dir":    "",
	"render.workers":    4,
	"render.include":    []string{},
	"render.decompress": false,
	"view.scale":        3,
	"stats.top":         16,
}

// DefineFlags registers the persistent flags that override configuration keys.
func DefineFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("log.level", "", "info", "set the log level: trace, debug, info, warn, error or none")
	rootCmd.PersistentFlags().StringP("log.file", "", "", "optional log file - if not specified logs go to STDOUT")
	rootCmd.PersistentFlags().StringP("render.pairing", "", "half", "digraph window: half, sliding or disjoint")
	rootCmd.PersistentFlags().BoolP("render.decompress", "z", false, "decompress zstd and gzip inputs before analysis")
}

// Load loads configuration from configFile (json, yaml or toml), FILEVIS_* env
// vars and any flags of cmd. A missing file is reported in Meta, not as an error.
func Load(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name := range defaults {
			if f := cmd.Flags().Lookup(name); f != nil {
				_ = v.BindPFlag(name, f)
			}
		}
	}

	meta := Meta{File: configFile}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if errors.As(err, &pathErr) {
				meta.FileNotFound = true
			} else {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, meta, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := digraph.ParsePairing(c.Render.Pairing); err != nil {
		return err
	}
	if c.Render.Brightness < 0 {
		return fmt.Errorf("render.brightness must be >= 0, got %v", c.Render.Brightness)
	}
	if c.Render.Contrast < 0 {
		return fmt.Errorf("render.contrast must be >= 0, got %v", c.Render.Contrast)
	}
	if c.Render.Scale < 1 {
		return fmt.Errorf("render.scale must be >= 1, got %d", c.Render.Scale)
	}
	if c.Render.Workers < 1 {
		return fmt.Errorf("render.workers must be >= 1, got %d", c.Render.Workers)
	}
	if c.View.Scale < 1 {
		return fmt.Errorf("view.scale must be >= 1, got %d", c.View.Scale)
	}
	if c.Stats.Top < 1 {
		return fmt.Errorf("stats.top must be >= 1, got %d", c.Stats.Top)
	}
	return nil
}

// Pairing returns the configured digraph pairing. Call Validate first.
func (c Config) Pairing() digraph.Pairing {
	p, _ := digraph.ParsePairing(c.Render.Pairing)
	return p
}

// ToneParams returns the configured batch render parameters.
func (c Config) ToneParams() tone.Params {
	return tone.Params{Brightness: c.Render.Brightness, Contrast: c.Render.Contrast}
}
