package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the library, config and
//   CLI, plus wrapped errors to verify the errors.Is() chain.
// - A failed batch is classified by the first failure it wraps.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	tex2html "github.com/alnah/go-tex2html"
	"github.com/alnah/go-tex2html/internal/config"
	"github.com/alnah/go-tex2html/internal/dateutil"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Document errors (exit 4)
		{"decode", tex2html.ErrDecode, ExitDocument},
		{"empty input", tex2html.ErrEmptyInput, ExitDocument},
		{"timeout", tex2html.ErrTimeout, ExitDocument},
		{"unknown macro", tex2html.ErrUnknownMacro, ExitDocument},
		{"unknown environment", tex2html.ErrUnknownEnvironment, ExitDocument},
		{"mismatched end", tex2html.ErrMismatchedEnvironmentEnd, ExitDocument},
		{"unbalanced groups", tex2html.ErrUnbalancedGroups, ExitDocument},
		{"preamble only", tex2html.ErrPreambleOnly, ExitDocument},
		{"invalid argument", tex2html.ErrInvalidArgument, ExitDocument},
		{"located", &tex2html.LocatedError{Err: tex2html.ErrUnknownMacro}, ExitDocument},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read events", ErrReadEvents, ExitIO},
		{"read css", ErrReadCSS, ExitIO},
		{"write html", ErrWriteHTML, ExitIO},
		{"create output dir", ErrCreateOutputDir, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"config precision", config.ErrInvalidPrecision, ExitUsage},
		{"config language", config.ErrInvalidLanguage, ExitUsage},
		{"date format", dateutil.ErrInvalidDateFormat, ExitUsage},
		{"date", dateutil.ErrInvalidDate, ExitUsage},
		{"precision", tex2html.ErrInvalidPrecision, ExitUsage},
		{"language", tex2html.ErrInvalidLanguage, ExitUsage},
		{"style not found", tex2html.ErrStyleNotFound, ExitUsage},
		{"invalid asset path", tex2html.ErrInvalidAssetPath, ExitUsage},
		{"unknown class", tex2html.ErrUnknownClass, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// Batches
		{"batch of decode failures", fmt.Errorf("%w: 1 of 2: %w", ErrConversionFailed, tex2html.ErrDecode), ExitDocument},
		{"batch of write failures", fmt.Errorf("%w: 1 of 2: %w", ErrConversionFailed, ErrWriteHTML), ExitIO},
		{"batch of unknown failures", fmt.Errorf("%w: 1 of 2: %w", ErrConversionFailed, errors.New("boom")), ExitGeneral},

		{"canceled", context.Canceled, ExitCanceled},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
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

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitDocument} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
