package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bimmerbailey/onediff/internal/config"
	"github.com/bimmerbailey/onediff/internal/normalize"
	"github.com/bimmerbailey/onediff/internal/output"
	"github.com/bimmerbailey/onediff/internal/pattern"
	"github.com/bimmerbailey/onediff/internal/source"
	"github.com/spf13/viper"
)

// loadConfig decodes and validates the merged viper configuration.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a stderr logger that only reports errors unless
// verbose output was requested.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// groupInput reads every line named by arg and returns the finalized
// groups.
func groupInput(arg string, cfg *config.Config, logger *slog.Logger) ([]pattern.Group, error) {
	files, err := config.ResolveInput(arg)
	if err != nil {
		return nil, err
	}

	n, err := normalize.New(cfg.TimestampPrefixes...)
	if err != nil {
		return nil, err
	}

	engine := pattern.New(
		pattern.WithNormalizer(n),
		pattern.WithLogger(logger),
	)
	if err := engine.ProcessAll(source.Lines(files...)); err != nil {
		return nil, err
	}

	stats := engine.Stats()
	logger.Info("grouped input",
		"files", len(files),
		"lines", stats.Lines,
		"ignored", stats.Ignored,
		"groups", stats.Groups,
		"patterns", stats.Patterns)

	return engine.Finalize(), nil
}

func reportOptions(cfg *config.Config) output.ReportOptions {
	mode := output.ColorAuto
	if cfg.NoColor {
		mode = output.ColorNever
	}
	return output.ReportOptions{
		MinSentences: cfg.Report.MinSentences,
		Color:        mode,
	}
}
