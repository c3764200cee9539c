package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/internal/hints"
	"github.com/alnah/go-html2doc/internal/render"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// DocumentParser converts one HTML source into a document.
// A Manager is safe for concurrent use, so every worker shares one.
type DocumentParser interface {
	ParseDocumentContext(ctx context.Context, src string) (*html2doc.Document, error)
}

// Compile-time interface implementation check.
var _ DocumentParser = (*html2doc.Manager)(nil)

// ConversionResult holds the outcome of a single conversion.
// Output is set when the result is meant for stdout.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Output     []byte
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently and returns results in input order.
func convertBatch(ctx context.Context, parser DocumentParser, files []FileToConvert, params *conversionParams, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, parser, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, parser DocumentParser, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		if err != nil {
			params.log.Debug("conversion failed", "input", f.InputPath, "error", err)
		} else {
			params.log.Info("converted", "input", f.InputPath, "duration", result.Duration)
		}
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %w", ErrReadHTML, err))
	}

	doc, err := parser.ParseDocumentContext(ctx, string(content))
	if err != nil {
		return finish(err)
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, params.format, doc); err != nil {
		return finish(err)
	}

	if f.OutputPath == "" {
		result.Output = buf.Bytes()
		return finish(nil)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: creating output directory: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
	}
	// #nosec G306 -- converted documents are meant to be readable
	if err := os.WriteFile(f.OutputPath, buf.Bytes(), filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}

	return finish(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter writes documents meant for stdout and reports the
// outcome of each conversion. Status lines move to stderr when stdout
// carries documents. Returns the number of failures.
func printResultsWithWriter(results []ConversionResult, format string, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	status := env.Stdout
	var documents int
	for _, r := range results {
		if r.Err == nil && r.OutputPath == "" {
			documents++
		}
	}
	if documents > 0 {
		status = env.Stderr
	}

	written := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if r.OutputPath == "" {
			writeDocument(env.Stdout, r, format, documents > 1, written > 0)
			written++
			if verbose {
				fmt.Fprintf(status, "%s -> stdout (%v)\n", r.InputPath, r.Duration.Round(time.Millisecond))
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(status, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(status, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(status, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// writeDocument copies one converted document to w. When several documents
// share stdout each gets a header naming its source: a YAML comment in a new
// YAML document, or a "==> path <==" line for text.
func writeDocument(w io.Writer, r ConversionResult, format string, labeled, separate bool) {
	if labeled {
		if format == render.FormatYAML {
			fmt.Fprintf(w, "---\n# %s\n", r.InputPath)
		} else {
			if separate {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", r.InputPath)
		}
	}
	_, _ = w.Write(r.Output)
}
