package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soocke/roimask/config"
)

const defaultConfigPath = "roimask.json"

// commandContext carries the loaded config and logger to subcommands.
type commandContext struct {
	configPath string
	debug      bool
	logLevel   string

	config *config.Config
	logger *slog.Logger
}

func (c *commandContext) load(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = c.debug
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	_ = cfg.Validate()
	level, _ := config.ParseLevel(cfg.LogLevel)
	if cfg.Debug && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	c.config = cfg
	c.logger = NewLogger(os.Stderr, level)
	c.logger.Debug("config loaded", "path", c.configPath)
	return nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "roimask",
		Short:         "Draw ROI masks on brightfield/movie pairs and apply them to cleaned movies",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipConfigLoad"] == "true" {
				return nil
			}
			return ctx.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	defaultPath := strings.TrimSpace(os.Getenv(config.EnvPath))
	if defaultPath == "" {
		defaultPath = defaultConfigPath
	}
	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", defaultPath, "Configuration file (.json, .toml, .yaml); $"+config.EnvPath)
	rootCmd.PersistentFlags().BoolVar(&ctx.debug, "debug", false, "Log memory statistics and debug output")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAnnotateCommand(ctx))
	rootCmd.AddCommand(newPairsCommand(ctx))
	rootCmd.AddCommand(newApplyCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
