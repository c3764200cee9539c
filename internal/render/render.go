// Package render writes converted documents as plain text or as a YAML tree.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/internal/yamlutil"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned by Write for a format other than text or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Extension returns the output file extension for format, without dot.
func Extension(format string) string {
	if strings.EqualFold(format, FormatYAML) {
		return "yaml"
	}
	return "txt"
}

// Write renders doc to w in the given format.
func Write(w io.Writer, format string, doc *html2doc.Document) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return WriteText(w, doc)
	case FormatYAML:
		return WriteYAML(w, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteYAML writes the tree dump of doc.
func WriteYAML(w io.Writer, doc *html2doc.Document) error {
	return yamlutil.Encode(w, NewTree(doc))
}

// WriteText writes doc as plain text, one blank line between blocks.
func WriteText(w io.Writer, doc *html2doc.Document) error {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("=", len([]rune(doc.Title))))
		b.WriteString("\n")
		if len(doc.Blocks) > 0 {
			b.WriteString("\n")
		}
	}
	if body := Text(doc.Blocks); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
