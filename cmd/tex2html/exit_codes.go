package main

import (
	"context"
	"errors"
	"os"

	tex2html "github.com/alnah/go-tex2html"
	"github.com/alnah/go-tex2html/internal/config"
	"github.com/alnah/go-tex2html/internal/dateutil"
)

// Exit codes for the tex2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitDocument = 4 // The document itself cannot be converted
	ExitCanceled = 130
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}

	// Document errors (exit 4). A failed batch is classified by the
	// first failure it wraps.
	if errors.Is(err, tex2html.ErrDecode) ||
		errors.Is(err, tex2html.ErrEmptyInput) ||
		errors.Is(err, tex2html.ErrTimeout) ||
		errors.Is(err, tex2html.ErrUnknownMacro) ||
		errors.Is(err, tex2html.ErrUnknownEnvironment) ||
		errors.Is(err, tex2html.ErrMismatchedEnvironmentEnd) ||
		errors.Is(err, tex2html.ErrUnbalancedGroups) ||
		errors.Is(err, tex2html.ErrPreambleOnly) ||
		errors.Is(err, tex2html.ErrInvalidArgument) {
		return ExitDocument
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadEvents) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidPrecision) ||
		errors.Is(err, config.ErrInvalidLanguage) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, dateutil.ErrInvalidDate) ||
		errors.Is(err, tex2html.ErrInvalidPrecision) ||
		errors.Is(err, tex2html.ErrInvalidLanguage) ||
		errors.Is(err, tex2html.ErrInvalidDateFormat) ||
		errors.Is(err, tex2html.ErrStyleNotFound) ||
		errors.Is(err, tex2html.ErrInvalidAssetPath) ||
		errors.Is(err, tex2html.ErrUnknownClass) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
