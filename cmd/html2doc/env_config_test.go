package main

// Notes:
// - Environment access goes through injected getenv/environ functions, so
//   these tests run in parallel without t.Setenv.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-html2doc/internal/config"
)

func getenvFrom(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	env := loadEnvConfig(getenvFrom(map[string]string{
		"HTML2DOC_CONFIG":          "strict",
		"HTML2DOC_INPUT_DIR":       "./pages",
		"HTML2DOC_OUTPUT_DIR":      "./out",
		"HTML2DOC_FORMAT":          "yaml",
		"HTML2DOC_UNKNOWN_TAGS":    "drop",
		"HTML2DOC_BASE_URL":        "https://example.com/",
		"HTML2DOC_ASSET_ROOT":      "./static",
		"HTML2DOC_HIGHLIGHT_STYLE": "monokai",
		"HTML2DOC_LOG_LEVEL":       "debug",
		"HTML2DOC_WORKERS":         "4",
	}))

	checks := []struct {
		name, got, want string
	}{
		{"ConfigPath", env.ConfigPath, "strict"},
		{"InputDir", env.InputDir, "./pages"},
		{"OutputDir", env.OutputDir, "./out"},
		{"Format", env.Format, "yaml"},
		{"UnknownTags", env.UnknownTags, "drop"},
		{"BaseURL", env.BaseURL, "https://example.com/"},
		{"AssetRoot", env.AssetRoot, "./static"},
		{"HighlightStyle", env.HighlightStyle, "monokai"},
		{"LogLevel", env.LogLevel, "debug"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if env.Workers != 4 {
		t.Errorf("Workers = %d, want 4", env.Workers)
	}
}

func TestLoadEnvConfig_InvalidWorkersIgnored(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"abc", "0", "-2"} {
		env := loadEnvConfig(getenvFrom(map[string]string{"HTML2DOC_WORKERS": v}))
		if env.Workers != 0 {
			t.Errorf("HTML2DOC_WORKERS=%q: Workers = %d, want 0", v, env.Workers)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars([]string{
		"HTML2DOC_FORMAT=yaml",
		"HTML2DOC_FORMATS=yaml",
		"PATH=/usr/bin",
		"HTML2DOC_THEME=",
	}, &buf)

	out := buf.String()
	if !strings.Contains(out, "HTML2DOC_FORMATS") || !strings.Contains(out, "HTML2DOC_THEME") {
		t.Errorf("expected warnings for unknown vars, got %q", out)
	}
	if strings.Contains(out, "HTML2DOC_FORMAT ") || strings.Contains(out, "PATH") {
		t.Errorf("unexpected warning, got %q", out)
	}
	if n := strings.Count(out, "warning:"); n != 2 {
		t.Errorf("warnings = %d, want 2", n)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - env overrides file, flags override env
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Parse.UnknownTags = "bypass"
	cfg.Output.DefaultDir = "from-file"

	applyEnvConfig(&envConfig{UnknownTags: "drop", Workers: 3, LogLevel: "info"}, cfg)

	if cfg.Parse.UnknownTags != "drop" {
		t.Errorf("UnknownTags = %q, want env value drop", cfg.Parse.UnknownTags)
	}
	if cfg.Output.DefaultDir != "from-file" {
		t.Errorf("OutputDir = %q, unset env must keep file value", cfg.Output.DefaultDir)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}

	mergeFlags(&convertFlags{parse: parseFlags{unknownTags: "pass-through"}}, cfg)
	if cfg.Parse.UnknownTags != "pass-through" {
		t.Errorf("UnknownTags = %q, flag must win", cfg.Parse.UnknownTags)
	}
}
