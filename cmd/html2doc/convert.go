package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/highlight"
	"github.com/alnah/go-html2doc/internal/hints"
	"github.com/alnah/go-html2doc/internal/logger"
	"github.com/alnah/go-html2doc/internal/render"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadHTML         = errors.New("failed to read HTML file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrConversionFailed = errors.New("conversion failed")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	format string
	log    *slog.Logger
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Environ(), env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// flags > env > file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w%s", err, validationHint(cfg))
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)

	log, err := newLogger(cfg.Log.Level, flags.common, env)
	if err != nil {
		return err
	}

	inputs, err := resolveInputPaths(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)
	ext := render.Extension(cfg.Output.Format)

	var files []FileToConvert
	for _, in := range inputs {
		found, err := discoverFiles(in, outputDir, ext)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no HTML files found in %s%s", ErrNoInput, strings.Join(inputs, ", "), hints.ForNoInput())
	}

	m, err := newManager(cfg, log)
	if err != nil {
		return err
	}

	workers := resolveWorkers(cfg.Workers)
	log.Debug("starting conversion", "files", len(files), "workers", workers)

	params := &conversionParams{format: cfg.Output.Format, log: log}
	results := convertBatch(ctx, m, files, params, workers)

	failedCount := printResultsWithWriter(results, cfg.Output.Format, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%w: %d of %d file(s): %w", ErrConversionFailed, failedCount, len(results), firstError(results))
	}

	return nil
}

// loadConfig loads the file named by the flag, else by HTML2DOC_CONFIG,
// else returns the defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	setString(&cfg.Output.Format, flags.format)
	setString(&cfg.Log.Level, flags.logLevel)
	setString(&cfg.Parse.UnknownTags, flags.parse.unknownTags)
	setString(&cfg.Parse.BaseURL, flags.parse.baseURL)
	setString(&cfg.Parse.AssetRoot, flags.parse.assetRoot)
	setString(&cfg.Highlight.Style, flags.highlight.style)

	if flags.parse.noMarkdownEscape {
		off := false
		cfg.Parse.MarkdownEscape = &off
	}
	if flags.highlight.disabled {
		cfg.Highlight.Disabled = true
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
}

// validationHint suggests valid values for the enumerated fields that fail.
func validationHint(cfg *config.Config) string {
	if cfg.Highlight.Style != "" && !highlight.HasStyle(cfg.Highlight.Style) {
		return hints.ForStyleNotFound(highlight.Styles())
	}
	if cfg.Parse.UnknownTags != "" {
		if _, err := html2doc.ParseUnknownTagPolicy(cfg.Parse.UnknownTags); err != nil {
			return hints.ForUnknownPolicy(html2doc.PolicyNames)
		}
	}
	return ""
}

// newLogger builds the run logger. --verbose forces debug, --quiet errors only.
func newLogger(level string, common commonFlags, env *Environment) (*slog.Logger, error) {
	switch {
	case common.verbose:
		level = "debug"
	case common.quiet:
		level = "error"
	}
	return logger.New(level, env.Stderr)
}

// newManager builds the converter shared by all workers.
func newManager(cfg *config.Config, log *slog.Logger) (*html2doc.Manager, error) {
	opts := []html2doc.Option{
		html2doc.WithLogger(log),
		html2doc.WithMarkdownEscape(cfg.Parse.MarkdownEscapeEnabled()),
	}
	if cfg.Parse.UnknownTags != "" {
		policy, err := html2doc.ParseUnknownTagPolicy(cfg.Parse.UnknownTags)
		if err != nil {
			return nil, err
		}
		opts = append(opts, html2doc.WithUnknownTagPolicy(policy))
	}
	if cfg.Parse.BaseURL != "" {
		opts = append(opts, html2doc.WithBaseURL(cfg.Parse.BaseURL))
	}
	if cfg.Parse.AssetRoot != "" {
		opts = append(opts, html2doc.WithAssetRoot(cfg.Parse.AssetRoot))
	}
	switch {
	case cfg.Highlight.Disabled:
		opts = append(opts, html2doc.WithHighlightStyle(""))
	case cfg.Highlight.Style != "":
		opts = append(opts, html2doc.WithHighlightStyle(cfg.Highlight.Style))
	}
	return html2doc.NewManager(opts...)
}

// resolveInputPaths returns the positional inputs, or the configured default directory.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInput())
}

// resolveOutputDir returns the output location; empty means stdout.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
