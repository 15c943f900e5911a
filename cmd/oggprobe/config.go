package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/avbits/ogg"
)

// remuxConfig is the resolved settings for the remux subcommand.
type remuxConfig struct {
	Output      string
	MaxPageBody int
	MaxResync   int
}

// fileConfig is the TOML schema of a remux config file.
type fileConfig struct {
	Output      string `toml:"output"`
	MaxPageBody int    `toml:"max_page_body"`
	MaxResync   int    `toml:"max_resync"`
}

func defaultRemuxConfig() remuxConfig {
	return remuxConfig{
		Output:      "-",
		MaxPageBody: ogg.DefaultMaxPageBody,
		MaxResync:   ogg.DefaultMaxResyncDistance,
	}
}

// loadRemuxFile overlays settings from a TOML file onto cfg. Only keys
// present in the file override; absent keys keep their current values.
func loadRemuxFile(path string, cfg remuxConfig) (remuxConfig, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return remuxConfig{}, fmt.Errorf("load remux config: %w", err)
	}
	for _, key := range meta.Undecoded() {
		return remuxConfig{}, fmt.Errorf("load remux config: unknown key %q", key)
	}

	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("max_page_body") {
		cfg.MaxPageBody = raw.MaxPageBody
	}
	if meta.IsDefined("max_resync") {
		cfg.MaxResync = raw.MaxResync
	}

	if err := cfg.validate(); err != nil {
		return remuxConfig{}, fmt.Errorf("load remux config: %w", err)
	}
	return cfg, nil
}

func (c remuxConfig) validate() error {
	if c.MaxPageBody < 1 {
		return fmt.Errorf("max_page_body must be positive, got %d", c.MaxPageBody)
	}
	if c.MaxResync < 1 {
		return fmt.Errorf("max_resync must be positive, got %d", c.MaxResync)
	}
	return nil
}

// loadRemuxConfig resolves the remux settings: defaults, then the config
// file if given, then explicitly set flags on top.
func loadRemuxConfig(cmd *cobra.Command) (remuxConfig, error) {
	cfg := defaultRemuxConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		cfg, err = loadRemuxFile(path, cfg)
		if err != nil {
			return remuxConfig{}, err
		}
	}

	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("max-page-body") {
		cfg.MaxPageBody, _ = cmd.Flags().GetInt("max-page-body")
	}
	if cmd.Flags().Changed("max-resync") {
		cfg.MaxResync, _ = cmd.Flags().GetInt("max-resync")
	}

	if err := cfg.validate(); err != nil {
		return remuxConfig{}, err
	}
	return cfg, nil
}
