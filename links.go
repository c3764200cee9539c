package html2doc

import "github.com/alnah/go-html2doc/internal/pipeline"

// ResolveURL resolves a link or image reference the way converters do.
//
// Empty references, anchors and absolute or protocol-relative URLs are
// returned unchanged. Relative references resolve against the base URL,
// or become file:// URLs under the asset root when no base URL is set.
// A path that would leave the asset root is returned unchanged.
func (m *Manager) ResolveURL(ref string) string {
	return pipeline.ResolveReference(ref, m.baseURL, m.assetRoot)
}
