package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/sukalov/romagic/internal/app"
	"github.com/sukalov/romagic/internal/config"
	"github.com/sukalov/romagic/internal/logger"
)

type buildFunc func(ctx context.Context, cfg config.Config) (*app.App, error)

type commandContext struct {
	build    buildFunc
	app      *app.App
	json     bool
	plain    bool
	logLevel string
}

func (c *commandContext) ensureApp(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg := config.Load()
	level := cfg.LogLevel
	if c.logLevel != "" {
		level = c.logLevel
	}
	logger.SetLevel(level)

	built, err := c.build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.app = built
	return built, nil
}

func (c *commandContext) close() {
	if c.app != nil {
		c.app.Close()
		c.app = nil
	}
}

func newRootCommand(build buildFunc) *cobra.Command {
	if build == nil {
		build = app.Build
	}
	ctx := &commandContext{build: build}

	rootCmd := &cobra.Command{
		Use:           "romagic",
		Short:         "Find song lyrics and romanize them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&ctx.json, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&ctx.plain, "plain", false, "Print plain text even on a terminal")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newISRCCommand(ctx))
	rootCmd.AddCommand(newStatsCommand(ctx))

	return rootCmd
}
