package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/bundlekit/internal/bundle"
	"github.com/backmassage/bundlekit/internal/check"
	"github.com/backmassage/bundlekit/internal/config"
	"github.com/backmassage/bundlekit/internal/display"
	"github.com/backmassage/bundlekit/internal/logging"
	"github.com/backmassage/bundlekit/internal/pipeline"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [entrypoints...]",
		Short: "Bundle entrypoints and post-process the output directory",
		Args:  cobra.ArbitraryArgs,
	}
	cmd.RunE = buildRunE(config.BindFlags(cmd.Flags()))
	return cmd
}

func buildRunE(flags *config.Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flags, args, false)
		if err != nil {
			return err
		}
		return runBuild(cmd.Context(), cfg)
	}
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [entrypoints...]",
		Short: "Report problems in a build configuration without building",
		Args:  cobra.ArbitraryArgs,
	}
	flags := config.BindFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flags, args, true)
		if err != nil {
			return err
		}
		log, err := logging.NewLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Close()

		display.PrintBanner(os.Stdout)
		if !check.RunCheck(cfg, log) {
			return fmt.Errorf("check failed")
		}
		return nil
	}
	return cmd
}

// loadConfig layers defaults, the optional YAML file and the flags, then
// validates the result.
func loadConfig(flags *config.Flags, args []string, checkOnly bool) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := flags.ConfigFile(); path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := flags.Apply(&cfg, args); err != nil {
		return nil, err
	}
	cfg.CheckOnly = checkOnly
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runBuild(parent context.Context, cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)
	log.Info("=== bundlekit v%s (%s) ===", version, commit)
	log.Info("Entrypoints: %d", len(cfg.Entrypoints))
	log.Info("Out: %s", cfg.OutDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}

	if err := check.Preflight(cfg); err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bundle.NewEsbuild()
	if cfg.Watch {
		return pipeline.Watch(ctx, cfg, log, b)
	}
	_, err = pipeline.Run(ctx, cfg, log, b)
	return err
}
