package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/logger"
	"github.com/alnah/go-html2doc/internal/render"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "not exist", err: fmt.Errorf("discovering files: %w", os.ErrNotExist), want: ExitIO},
		{name: "permission", err: os.ErrPermission, want: ExitIO},
		{name: "read html", err: fmt.Errorf("%w: boom", ErrReadHTML), want: ExitIO},
		{name: "write output", err: ErrWriteOutput, want: ExitIO},
		{name: "no input", err: ErrNoInput, want: ExitIO},
		{name: "usage", err: fmt.Errorf("%w: unknown flag", errUsage), want: ExitUsage},
		{name: "config not found", err: fmt.Errorf("loading config: %w", config.ErrConfigNotFound), want: ExitUsage},
		{name: "config parse", err: config.ErrConfigParse, want: ExitUsage},
		{name: "field too long", err: config.ErrFieldTooLong, want: ExitUsage},
		{name: "invalid value", err: config.ErrInvalidValue, want: ExitUsage},
		{name: "invalid policy", err: html2doc.ErrInvalidPolicy, want: ExitUsage},
		{name: "invalid base url", err: html2doc.ErrInvalidBaseURL, want: ExitUsage},
		{name: "invalid asset root", err: html2doc.ErrInvalidAsset, want: ExitUsage},
		{name: "unknown format", err: render.ErrUnknownFormat, want: ExitUsage},
		{name: "invalid log level", err: logger.ErrInvalidLevel, want: ExitUsage},
		{name: "invalid extension", err: ErrInvalidExtension, want: ExitUsage},
		{name: "invalid workers", err: ErrInvalidWorkerCount, want: ExitUsage},
		{name: "unrecognized tag", err: &html2doc.UnrecognizedTagError{Policy: html2doc.UnknownTagPolicy(9)}, want: ExitGeneral},
		{name: "canceled", err: context.Canceled, want: ExitGeneral},
		{name: "batch failure keeps first cause", err: fmt.Errorf("%w: 1 of 2 file(s): %w", ErrConversionFailed, ErrReadHTML), want: ExitIO},
		{name: "unknown", err: errors.New("boom"), want: ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
