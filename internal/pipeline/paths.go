package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ResolveReference resolves a link or image reference.
//
// References that are empty, anchors, absolute URLs (any scheme, data: URIs
// included) or protocol-relative are returned unchanged. Otherwise the
// reference is resolved against base when it is set, or turned into a
// file:// URL under assetRoot. Paths escaping assetRoot are left as they are.
func ResolveReference(ref string, base *url.URL, assetRoot string) string {
	if !isRelativeRef(ref) {
		return ref
	}

	if base != nil {
		u, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return base.ResolveReference(u).String()
	}

	if assetRoot == "" || filepath.IsAbs(ref) {
		return ref
	}

	// Drop query and fragment before touching the filesystem path.
	path := ref
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}

	absPath := filepath.Join(assetRoot, filepath.FromSlash(path))
	if !isPathUnderDir(absPath, assetRoot) {
		return ref
	}
	return pathToFileURL(absPath)
}

// isRelativeRef returns true if the reference should be resolved.
func isRelativeRef(ref string) bool {
	if ref == "" {
		return false
	}

	// Skip anchors and protocol-relative URLs
	if strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}

	// Skip URLs with a scheme (http, https, file, data, mailto, ...)
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		// A Windows drive letter parses as a one-letter scheme.
		return len(u.Scheme) == 1
	}

	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	// Path is under dir if it starts with dir/ or equals dir
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
// Handles both Unix and Windows paths correctly.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
