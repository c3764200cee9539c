package highlight

// Notes:
// - Token types and colors come from chroma; tests assert structure
//   (text round-trip, known types present) rather than exact palettes

import (
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestTokens
// ---------------------------------------------------------------------------

func TestTokens_RoundTrip(t *testing.T) {
	t.Parallel()

	h := New("github")
	code := "package main\n\nfunc main() {}\n"
	toks := h.Tokens("go", code)
	if len(toks) == 0 {
		t.Fatal("expected tokens for go code")
	}

	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Text)
	}
	if b.String() != code {
		t.Errorf("concatenated tokens = %q, want %q", b.String(), code)
	}
}

func TestTokens_KeywordIsStyled(t *testing.T) {
	t.Parallel()

	toks := New("github").Tokens("go", "package main")
	if len(toks) == 0 {
		t.Fatal("expected tokens")
	}
	first := toks[0]
	if first.Text != "package" {
		t.Fatalf("first token = %q, want %q", first.Text, "package")
	}
	if !strings.HasPrefix(first.Type, "Keyword") {
		t.Errorf("first token type = %q, want a Keyword type", first.Type)
	}
	if first.Color == "" && !first.Bold {
		t.Error("keyword should carry a color or bold weight")
	}
}

func TestTokens_NoLexer(t *testing.T) {
	t.Parallel()

	h := New("github")
	tests := []struct {
		name     string
		language string
		code     string
	}{
		{name: "empty language", language: "", code: "x := 1"},
		{name: "unknown language", language: "no-such-language-xyz", code: "x"},
		{name: "empty code", language: "go", code: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if toks := h.Tokens(tt.language, tt.code); toks != nil {
				t.Errorf("Tokens() = %v, want nil", toks)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStyles
// ---------------------------------------------------------------------------

func TestStyles(t *testing.T) {
	t.Parallel()

	names := Styles()
	if !slices.Contains(names, "github") {
		t.Errorf("Styles() missing %q", "github")
	}
	if !HasStyle("monokai") {
		t.Error("HasStyle(monokai) = false")
	}
	if HasStyle("not-a-style") {
		t.Error("HasStyle(not-a-style) = true")
	}
}

func TestNew_UnknownStyleFallsBack(t *testing.T) {
	t.Parallel()

	h := New("not-a-style")
	if h.style == nil || h.style.Name == "" {
		t.Error("fallback style should be set")
	}
}

func TestTokens_NoAddedNewline(t *testing.T) {
	t.Parallel()

	code := "x := 1"
	var b strings.Builder
	for _, tok := range New("github").Tokens("go", code) {
		b.WriteString(tok.Text)
	}
	if b.String() != code {
		t.Errorf("concatenated tokens = %q, want %q", b.String(), code)
	}
}
