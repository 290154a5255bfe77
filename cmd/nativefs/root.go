package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zb140/nativefs/cmd/nativefs/opts"
	"github.com/zb140/nativefs/pkg/config"
	"github.com/zb140/nativefs/pkg/log"
	"github.com/zb140/nativefs/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile  string
	logLevel    string
	bufferSize  int
	concurrency int
	quiet       bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: discover .nativefs.* in the working directory)")
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().IntVarP(&bufferSize, "buffer-size", "b", 0, "copy buffer size in bytes")
	cmd.PersistentFlags().IntVarP(&concurrency, "concurrency", "j", 0, "max transfers in flight")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable progress reporting")
}

// loadConfig resolves the effective configuration: file, then environment,
// then flags, each layer overriding the previous one.
func loadConfig(ctx context.Context) (*config.Config, error) {
	path := configFile
	if path == "" {
		path, _ = config.Discover(ctx, ".")
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(ctx, cfg); err != nil {
		return nil, errors.Errorf("applying environment: %w", err)
	}

	if bufferSize != 0 {
		cfg.BufferSize = bufferSize
	}
	if concurrency != 0 {
		cfg.Concurrency = concurrency
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if quiet {
		off := false
		cfg.Progress = &off
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Errorf("parsing log level: %w", err)
	}
	setupLogging(level)

	operator, err := operation.New(operation.Options{BufferSize: cfg.BufferSize})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}

	return &opts.RootOpts{
		Config:   cfg,
		Operator: operator,
		Console:  log.New(os.Stdout, level),
	}, nil
}

// setupLogging configures zerolog for the whole process
func setupLogging(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}
