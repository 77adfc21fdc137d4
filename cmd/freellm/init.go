package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/apifreellm/freellm-go/chat"
)

// initConfigDoc is the starter config written by `freellm init`. Timeout is
// seconds, matching the FREELLM_TIMEOUT env var.
type initConfigDoc struct {
	BaseURL      string  `yaml:"base_url"`
	Timeout      float64 `yaml:"timeout"`
	MaxRetries   int     `yaml:"max_retries"`
	DefaultModel string  `yaml:"default_model"`
	MaxHistory   int     `yaml:"max_history"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter config.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				dir = args[0]
			}
			dir = filepath.Clean(dir)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			cfgPath := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists: %s", cfgPath)
			}

			cfg := chat.DefaultConfig()
			doc := initConfigDoc{
				BaseURL:    cfg.BaseURL,
				Timeout:    cfg.Timeout.Seconds(),
				MaxRetries: cfg.MaxRetries,
				MaxHistory: cfg.MaxHistory,
			}
			body, err := yaml.Marshal(doc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, body, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", cfgPath)
			return nil
		},
	}
}
