package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-html2doc/internal/config"
)

const envPrefix = "HTML2DOC_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // HTML2DOC_CONFIG: config file name or path
	InputDir       string // HTML2DOC_INPUT_DIR: default input directory
	OutputDir      string // HTML2DOC_OUTPUT_DIR: default output directory
	Format         string // HTML2DOC_FORMAT: text, yaml
	UnknownTags    string // HTML2DOC_UNKNOWN_TAGS: pass-through, drop, bypass
	BaseURL        string // HTML2DOC_BASE_URL: base for relative links
	AssetRoot      string // HTML2DOC_ASSET_ROOT: directory for relative images
	HighlightStyle string // HTML2DOC_HIGHLIGHT_STYLE: chroma style name
	LogLevel       string // HTML2DOC_LOG_LEVEL: debug, info, warn, error
	Workers        int    // HTML2DOC_WORKERS: parallel workers
}

// knownEnvVars lists valid HTML2DOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2DOC_CONFIG":          true,
	"HTML2DOC_INPUT_DIR":       true,
	"HTML2DOC_OUTPUT_DIR":      true,
	"HTML2DOC_FORMAT":          true,
	"HTML2DOC_UNKNOWN_TAGS":    true,
	"HTML2DOC_BASE_URL":        true,
	"HTML2DOC_ASSET_ROOT":      true,
	"HTML2DOC_HIGHLIGHT_STYLE": true,
	"HTML2DOC_LOG_LEVEL":       true,
	"HTML2DOC_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized HTML2DOC_* values.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("HTML2DOC_CONFIG"),
		InputDir:       getenv("HTML2DOC_INPUT_DIR"),
		OutputDir:      getenv("HTML2DOC_OUTPUT_DIR"),
		Format:         getenv("HTML2DOC_FORMAT"),
		UnknownTags:    getenv("HTML2DOC_UNKNOWN_TAGS"),
		BaseURL:        getenv("HTML2DOC_BASE_URL"),
		AssetRoot:      getenv("HTML2DOC_ASSET_ROOT"),
		HighlightStyle: getenv("HTML2DOC_HIGHLIGHT_STYLE"),
		LogLevel:       getenv("HTML2DOC_LOG_LEVEL"),
	}

	if workers := getenv("HTML2DOC_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2DOC_* variables.
// Helps catch typos like HTML2DOC_FORMATS instead of HTML2DOC_FORMAT.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A set variable overrides the config file; flags are merged afterwards,
// giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString(&cfg.Input.DefaultDir, env.InputDir)
	setString(&cfg.Output.DefaultDir, env.OutputDir)
	setString(&cfg.Output.Format, env.Format)
	setString(&cfg.Parse.UnknownTags, env.UnknownTags)
	setString(&cfg.Parse.BaseURL, env.BaseURL)
	setString(&cfg.Parse.AssetRoot, env.AssetRoot)
	setString(&cfg.Highlight.Style, env.HighlightStyle)
	setString(&cfg.Log.Level, env.LogLevel)
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}

// setString overwrites dst when value is non-empty.
func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
