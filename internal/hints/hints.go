// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-html2doc/internal/fileutil"
)

// userConfigMarker identifies the per-user config location among search paths.
const userConfigMarker = "go-html2doc"

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigMarker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
// Inside a container the output usually needs a mounted volume.
func ForOutputDirectory() string {
	hints := []string{"check parent directory exists and is writable"}
	if IsInContainer() {
		hints = append(hints, "mount the output directory as a volume")
	}
	return formatHints(hints)
}

// ForNoInput returns hints for a run without any HTML files to convert.
func ForNoInput() string {
	return format("pass files or directories, or set input.defaultDir; accepted extensions: " +
		strings.Join(fileutil.HTMLExtensions, ", "))
}

// ForStyleNotFound returns hints for unknown highlight styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownPolicy returns hints for an invalid unknown-tag policy name.
func ForUnknownPolicy(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return format("use one of " + strings.Join(names, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
