package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c360studio/schemaspell/checker"
	"github.com/c360studio/schemaspell/config"
	"github.com/c360studio/schemaspell/metric"
	"github.com/c360studio/schemaspell/watch"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// errNoInput is returned when no input pattern was given.
var errNoInput = errors.New("no input files: set --input")

type options struct {
	input          string
	output         string
	allowlist      string
	configPath     string
	textOnly       bool
	allowWords     string
	checkProps     string
	countersOutput string
	logLevel       string
}

func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig layers the command line flags over the loaded configuration.
// Only flags set explicitly override config values.
func loadConfig(cmd *cobra.Command, opts *options, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("allowlist") {
		cfg.Allowlist = opts.allowlist
	}
	if flags.Changed("text-only") {
		cfg.TextOnly = opts.textOnly
	}
	if flags.Changed("allow-words") {
		cfg.AllowWords = append(cfg.AllowWords, config.ParseWordList(opts.allowWords)...)
	}
	if flags.Changed("check-props") {
		cfg.CheckProps = config.ParseWordList(opts.checkProps)
	}
	if flags.Changed("counters-output") {
		cfg.CountersOutput = opts.countersOutput
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup resolves the logger and configuration shared by check and watch.
func setup(cmd *cobra.Command, opts *options) (*config.Config, *slog.Logger, error) {
	logger := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	slog.SetDefault(logger)

	if strings.TrimSpace(opts.input) == "" {
		return nil, nil, errNoInput
	}
	cfg, err := loadConfig(cmd, opts, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runCheck(cmd *cobra.Command, opts *options) error {
	cfg, logger, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	counters := metric.NewCounters()
	return checkOnce(cfg, opts.input, counters, logger)
}

// checkOnce runs one corpus check with a fresh vocabulary and reports the
// counters.
func checkOnce(cfg *config.Config, input string, counters *metric.Counters, logger *slog.Logger) error {
	runLogger := logger.With("run_id", uuid.New().String())

	c := checker.New(cfg, checker.WithCounters(counters), checker.WithLogger(runLogger))
	records, err := c.CheckCorpus(input)
	runLogger.Info("Spell check finished", "records", len(records))

	counters.Log(runLogger)
	if cfg.CountersOutput != "" {
		if werr := counters.WriteTextfile(cfg.CountersOutput); werr != nil {
			runLogger.Warn("Failed to write counters", "path", cfg.CountersOutput, "error", werr)
		}
	}
	return err
}

func runWatch(cmd *cobra.Command, opts *options) error {
	cfg, logger, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	counters := metric.NewCounters()
	if err := checkOnce(cfg, opts.input, counters, logger); err != nil {
		logger.Error("Spell check failed", "error", err)
	}

	patterns := []string{opts.input}
	for _, extra := range []string{cfg.Allowlist, cfg.BaseLexicon} {
		if extra != "" {
			patterns = append(patterns, extra)
		}
	}

	w, err := watch.New(patterns, cfg.GetWatchDebounce(), func(ctx context.Context, changed []string) {
		if err := checkOnce(cfg, opts.input, counters, logger); err != nil {
			logger.Error("Spell check failed", "error", err)
		}
	}, logger)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func runConfigInit(cmd *cobra.Command, opts *options, path string, force bool) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	cfg, err := loadConfig(cmd, opts, logger)
	if err != nil {
		return err
	}
	return config.NewLoader(logger).Init(path, cfg, force)
}
