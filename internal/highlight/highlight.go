// Package highlight splits source code into styled tokens with chroma.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Token is one highlighted fragment of source code.
type Token struct {
	Text   string
	Type   string
	Color  string
	Bold   bool
	Italic bool
}

// Highlighter tokenizes code and applies a chroma style.
// It is safe for concurrent use.
type Highlighter struct {
	style *chroma.Style
}

// New creates a Highlighter for the named chroma style.
// Unknown names fall back to chroma's default style.
func New(style string) *Highlighter {
	return &Highlighter{style: styles.Get(style)}
}

// Tokens splits code into tokens using the lexer registered for language.
// It returns nil when the language is empty or unknown, or when the lexer fails.
func (h *Highlighter) Tokens(language, code string) []Token {
	language = strings.TrimSpace(language)
	if language == "" || code == "" {
		return nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil
	}

	var out []Token
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		entry := h.style.Get(tok.Type)
		t := Token{
			Text:   tok.Value,
			Type:   tok.Type.String(),
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			t.Color = entry.Colour.String()
		}
		out = append(out, t)
	}
	return trimAddedNewline(out, code)
}

// trimAddedNewline removes the newline some lexers append to code that does
// not end with one, so the tokens always join back to code.
func trimAddedNewline(toks []Token, code string) []Token {
	if strings.HasSuffix(code, "\n") || len(toks) == 0 {
		return toks
	}
	last := &toks[len(toks)-1]
	last.Text = strings.TrimSuffix(last.Text, "\n")
	if last.Text == "" {
		return toks[:len(toks)-1]
	}
	return toks
}

// Styles returns the names of the available chroma styles.
func Styles() []string {
	return styles.Names()
}

// HasStyle reports whether name is a registered chroma style.
func HasStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}
