package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles
// ---------------------------------------------------------------------------

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"index.html":        "<p>a</p>",
		"guide/intro.htm":   "<p>b</p>",
		"guide/notes.md":    "# skip",
		"assets/logo.png":   "png",
		"guide/deep/x.html": "<p>c</p>",
	})
	out := filepath.Join(t.TempDir(), "out")

	files, err := discoverFiles(dir, out, "txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := map[string]string{}
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f.InputPath)
		got[filepath.ToSlash(rel)] = f.OutputPath
	}
	want := map[string]string{
		"index.html":        filepath.Join(out, "index.txt"),
		"guide/intro.htm":   filepath.Join(out, "guide", "intro.txt"),
		"guide/deep/x.html": filepath.Join(out, "guide", "deep", "x.txt"),
	}
	if len(got) != len(want) {
		keys := make([]string, 0, len(got))
		for k := range got {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t.Fatalf("discovered %v, want %d files", keys, len(want))
	}
	for in, outPath := range want {
		if got[in] != outPath {
			t.Errorf("output for %s = %q, want %q", in, got[in], outPath)
		}
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"page.html": "<p>x</p>", "notes.md": "x"})

	files, err := discoverFiles(filepath.Join(dir, "page.html"), "", "txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].OutputPath != "" {
		t.Errorf("files = %+v, want one stdout entry", files)
	}

	if _, err := discoverFiles(filepath.Join(dir, "notes.md"), "", "txt"); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("error = %v, want ErrInvalidExtension", err)
	}
	if _, err := discoverFiles(filepath.Join(dir, "missing.html"), "", "txt"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		ext       string
		want      string
	}{
		{name: "stdout", input: "page.html", outputDir: "", ext: "txt", want: ""},
		{name: "explicit file", input: "page.html", outputDir: "result.yaml", ext: "yaml", want: "result.yaml"},
		{name: "directory", input: "page.html", outputDir: "out", ext: "txt", want: filepath.Join("out", "page.txt")},
		{name: "keeps layout", input: filepath.Join("site", "a", "b.htm"), outputDir: "out", baseDir: "site", ext: "yaml", want: filepath.Join("out", "a", "b.yaml")},
		{name: "file-like dir in batch", input: filepath.Join("site", "b.html"), outputDir: "x.txt", baseDir: "site", ext: "txt", want: filepath.Join("x.txt", "b.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir, tt.ext)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers / TestResolveWorkers
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 32} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{-1, 33} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	if got := resolveWorkers(5); got != 5 {
		t.Errorf("resolveWorkers(5) = %d, want 5", got)
	}

	auto := resolveWorkers(0)
	if auto < 1 || auto > maxAutoWorkers {
		t.Errorf("resolveWorkers(0) = %d, want 1..%d", auto, maxAutoWorkers)
	}
	if procs := runtime.GOMAXPROCS(0); procs <= maxAutoWorkers && auto != procs {
		t.Errorf("resolveWorkers(0) = %d, want GOMAXPROCS %d", auto, procs)
	}
}
