package fileutil_test

// Notes:
// - FileExists/DirExists use t.TempDir() so the tests run in parallel
//   without touching shared state.
// - Windows-style paths are exercised through IsFilePath only; filepath
//   semantics are left to the standard library.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-html2doc/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "valid extension txt", extension: "txt", wantErr: nil},
		{name: "valid extension yaml", extension: "yaml", wantErr: nil},
		{name: "empty extension", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash path traversal", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash path traversal", extension: "..\\windows\\system32", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte injection", extension: "txt\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReplaceExtension
// ---------------------------------------------------------------------------

func TestReplaceExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		extension string
		want      string
		wantErr   error
	}{
		{name: "html to txt", path: "docs/page.html", extension: "txt", want: "docs/page.txt"},
		{name: "htm to yaml", path: "page.htm", extension: "yaml", want: "page.yaml"},
		{name: "no extension", path: "README", extension: "txt", want: "README.txt"},
		{name: "invalid extension", path: "page.html", extension: "../x", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fileutil.ReplaceExtension(tt.path, tt.extension)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReplaceExtension() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReplaceExtension() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsHTML
// ---------------------------------------------------------------------------

func TestIsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: "index.html", want: true},
		{path: "INDEX.HTML", want: true},
		{path: "old.htm", want: true},
		{path: "page.xhtml", want: true},
		{path: "notes.md", want: false},
		{path: "html", want: false},
		{path: "archive.html.gz", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsHTML(tt.path); got != tt.want {
				t.Errorf("IsHTML(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "page.html")
	if err := os.WriteFile(file, []byte("<p>x</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing.html")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "page.html")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "strict", want: false},
		{input: "my-config", want: false},
		{input: "./html2doc.yaml", want: true},
		{input: "../shared/html2doc.yaml", want: true},
		{input: "/etc/html2doc.yaml", want: true},
		{input: `C:\config\html2doc.yaml`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
