package html2doc

import "log/slog"

// Option configures a Manager.
type Option func(*Manager)

// WithUnknownTagPolicy sets the fallback applied to elements no converter
// claims. The default is PassThrough.
func WithUnknownTagPolicy(p UnknownTagPolicy) Option {
	return func(m *Manager) {
		m.policy = p
	}
}

// WithEngine sets the Markdown engine used by the raw-markup escape.
// Passing nil disables the escape.
func WithEngine(e Engine) Option {
	return func(m *Manager) {
		m.engine = e
		m.engineSet = true
	}
}

// WithoutEngine disables the Markdown engine and with it the raw-markup escape.
func WithoutEngine() Option {
	return WithEngine(nil)
}

// WithMarkdownEscape toggles the double-newline escape to the Markdown
// engine. It is enabled by default and has no effect without an engine.
func WithMarkdownEscape(enabled bool) Option {
	return func(m *Manager) {
		m.escape = enabled
	}
}

// WithDefaultPriority sets the priority given to converters that do not
// implement Prioritized, including the built-in ones.
func WithDefaultPriority(p int) Option {
	return func(m *Manager) {
		m.defaultPriority = p
	}
}

// WithBaseURL sets the URL relative links and image sources resolve against.
func WithBaseURL(rawURL string) Option {
	return func(m *Manager) {
		m.rawBaseURL = rawURL
	}
}

// WithAssetRoot sets the directory relative image and link paths resolve
// under when no base URL is configured. They become file:// URLs.
func WithAssetRoot(dir string) Option {
	return func(m *Manager) {
		m.assetRoot = dir
	}
}

// WithLinkHandler sets the handler attached to every converted hyperlink.
func WithLinkHandler(h LinkHandler) Option {
	return func(m *Manager) {
		m.linkHandler = h
	}
}

// WithLogger sets the logger used for debug traces of fallbacks and escapes.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithoutBuiltinConverters starts the Manager with an empty registry.
func WithoutBuiltinConverters() Option {
	return func(m *Manager) {
		m.builtins = false
	}
}

// WithConverters registers converters after the built-in ones, in order.
func WithConverters(cs ...Converter) Option {
	return func(m *Manager) {
		m.extra = append(m.extra, cs...)
	}
}

// WithHighlightStyle selects the chroma style used to color code blocks.
// An empty name disables highlighting.
func WithHighlightStyle(name string) Option {
	return func(m *Manager) {
		m.highlightStyle = name
	}
}
