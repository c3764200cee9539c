package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through goldmark unchanged and are turned into highlight spans
// once the AST has been converted.
const (
	MarkStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	MarkEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==([^=\n]+?)==`)
)

// PreprocessMarkdown prepares Markdown source for the engine.
func PreprocessMarkdown(content string) string {
	content = NormalizeLineEndings(content)
	content = convertHighlights(content)
	return content
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	if !strings.Contains(content, "\r") {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// convertHighlights transforms ==text== to placeholder markers.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// RestoreHighlights puts the original == back where placeholders ended up
// in literal content such as code.
func RestoreHighlights(content string) string {
	if !HasPlaceholder(content) {
		return content
	}
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "=="),
		MarkEndPlaceholder, "==",
	)
}

// HasPlaceholder reports whether content contains a highlight marker.
func HasPlaceholder(content string) bool {
	return strings.Contains(content, MarkStartPlaceholder) ||
		strings.Contains(content, MarkEndPlaceholder)
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
// Used when Markdown has been rendered to HTML and is read back as HTML.
func ConvertMarkPlaceholders(content string) string {
	if !HasPlaceholder(content) {
		return content
	}
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
