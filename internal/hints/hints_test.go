package hints

// Notes:
// - Tests touching IsInContainer swap the package-level variable and do not
//   call t.Parallel().

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		contains string
		excludes string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
			excludes: "or create",
		},
		{
			name:     "with user config path",
			paths:    []string{"strict.yaml", "/home/u/.config/go-html2doc/strict.yaml"},
			contains: "or create /home/u/.config/go-html2doc/strict.yaml",
		},
		{
			name:     "local paths only",
			paths:    []string{"strict.yaml", "strict.yml"},
			contains: "--config",
			excludes: "or create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
			if tt.excludes != "" && strings.Contains(hint, tt.excludes) {
				t.Errorf("hint should not contain %q, got %q", tt.excludes, hint)
			}
		})
	}
}

func TestForOutputDirectory(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()

	IsInContainer = func() bool { return false }
	hint := ForOutputDirectory()
	if !strings.Contains(hint, "parent directory") {
		t.Errorf("expected parent directory mention, got %q", hint)
	}
	if strings.Contains(hint, "volume") {
		t.Errorf("unexpected volume hint outside container: %q", hint)
	}

	IsInContainer = func() bool { return true }
	hint = ForOutputDirectory()
	if !strings.Contains(hint, "volume") {
		t.Errorf("expected volume hint in container, got %q", hint)
	}
}

func TestForNoInput(t *testing.T) {
	hint := ForNoInput()

	if !strings.Contains(hint, "input.defaultDir") {
		t.Errorf("expected config key mention, got %q", hint)
	}
	if !strings.Contains(hint, ".html") {
		t.Errorf("expected extension list, got %q", hint)
	}
}

func TestForStyleNotFound(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		wantEmpty bool
		contains  string
	}{
		{name: "empty available", available: []string{}, wantEmpty: true},
		{name: "with styles", available: []string{"github", "monokai"}, contains: "github, monokai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForStyleNotFound(tt.available)

			if tt.wantEmpty && hint != "" {
				t.Errorf("expected empty hint, got %q", hint)
			}
			if !tt.wantEmpty && !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForUnknownPolicy(t *testing.T) {
	if got := ForUnknownPolicy(nil); got != "" {
		t.Errorf("expected empty hint, got %q", got)
	}
	hint := ForUnknownPolicy([]string{"pass-through", "drop", "bypass"})
	if !strings.Contains(hint, "pass-through, drop, bypass") {
		t.Errorf("expected policy names, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	hints := []string{
		ForConfigNotFound(nil),
		ForOutputDirectory(),
		ForNoInput(),
		ForStyleNotFound([]string{"github"}),
		ForUnknownPolicy([]string{"drop"}),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}

func TestFormatHints_Empty(t *testing.T) {
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
