package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/internal/fileutil"
	"github.com/alnah/go-html2doc/internal/highlight"
	"github.com/alnah/go-html2doc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength   = 4096 // Filesystem paths
	MaxURLLength    = 2048 // Browser limit
	MaxNameLength   = 50   // Policy, format, style and level names
	MaxWorkers      = 32   // Parallel conversions
	userConfigDir   = "go-html2doc"
	DefaultFormat   = "text"
	DefaultLogLevel = "warn"
)

// Output formats.
var Formats = []string{"text", "yaml"}

// Log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all configuration for HTML conversion runs.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Parse     ParseConfig     `yaml:"parse"`
	Highlight HighlightConfig `yaml:"highlight"`
	Log       LogConfig       `yaml:"log"`
	Workers   int             `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = stdout
	Format     string `yaml:"format"`     // "text" or "yaml" (default: "text")
}

// ParseConfig defines how HTML is converted.
type ParseConfig struct {
	UnknownTags    string `yaml:"unknownTags"`    // "pass-through", "drop", "bypass"
	MarkdownEscape *bool  `yaml:"markdownEscape"` // nil = enabled
	BaseURL        string `yaml:"baseURL"`        // Absolute URL for relative links
	AssetRoot      string `yaml:"assetRoot"`      // Directory for relative image paths
}

// HighlightConfig defines code highlighting options.
type HighlightConfig struct {
	Style    string `yaml:"style"` // chroma style name (default: "github")
	Disabled bool   `yaml:"disabled"`
}

// LogConfig defines diagnostic logging options.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// MarkdownEscapeEnabled reports whether the Markdown escape is on.
func (p ParseConfig) MarkdownEscapeEnabled() bool {
	return p.MarkdownEscape == nil || *p.MarkdownEscape
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateChoice("output.format", c.Output.Format, Formats); err != nil {
		return err
	}

	if err := validateFieldLength("parse.unknownTags", c.Parse.UnknownTags, MaxNameLength); err != nil {
		return err
	}
	if c.Parse.UnknownTags != "" {
		if _, err := html2doc.ParseUnknownTagPolicy(c.Parse.UnknownTags); err != nil {
			return fmt.Errorf("%w: parse.unknownTags: %v", ErrInvalidValue, err)
		}
	}
	if err := validateFieldLength("parse.baseURL", c.Parse.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if c.Parse.BaseURL != "" {
		u, err := url.Parse(c.Parse.BaseURL)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("%w: parse.baseURL: %q is not an absolute URL", ErrInvalidValue, c.Parse.BaseURL)
		}
	}
	if err := validateFieldLength("parse.assetRoot", c.Parse.AssetRoot, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxNameLength); err != nil {
		return err
	}
	if c.Highlight.Style != "" && !highlight.HasStyle(c.Highlight.Style) {
		return fmt.Errorf("%w: highlight.style: unknown style %q", ErrInvalidValue, c.Highlight.Style)
	}

	if err := validateChoice("log.level", c.Log.Level, LogLevels); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateChoice accepts an empty value or one of choices, case-insensitively.
func validateChoice(fieldName, value string, choices []string) error {
	if value == "" {
		return nil
	}
	for _, c := range choices {
		if strings.EqualFold(value, c) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(choices, ", "))
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: DefaultFormat},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, userConfigDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// the current directory, then ~/.config/go-html2doc/, .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
