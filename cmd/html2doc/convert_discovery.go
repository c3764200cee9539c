package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have an HTML extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxAutoWorkers caps the worker count picked from GOMAXPROCS.
const maxAutoWorkers = 8

// FileToConvert represents a single file to process.
// An empty OutputPath writes the result to stdout.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all HTML files to convert under inputPath.
func discoverFiles(inputPath, outputDir, ext string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsHTML(inputPath) {
			return nil, fmt.Errorf("%w (%s): got %q", ErrInvalidExtension, strings.Join(fileutil.HTMLExtensions, ", "), filepath.Ext(inputPath))
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "", ext)
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsHTML(path) {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, inputPath, ext)
		if err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines where the converted form of inputPath goes.
// Without an output directory the result goes to stdout. A single file may
// name its output file directly; directory inputs keep their layout.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) (string, error) {
	if outputDir == "" {
		return "", nil
	}

	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputDir), "."+ext) {
		return outputDir, nil
	}

	name, err := fileutil.ReplaceExtension(filepath.Base(inputPath), ext)
	if err != nil {
		return "", err
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name), nil
		}
	}

	return filepath.Join(outputDir, name), nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveWorkers determines the number of conversion goroutines.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	available := runtime.GOMAXPROCS(0)
	if available < 1 {
		return 1
	}
	if available > maxAutoWorkers {
		return maxAutoWorkers
	}
	return available
}
