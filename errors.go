package tex2html

import (
	"errors"

	"github.com/alnah/go-tex2html/internal/assets"
	"github.com/alnah/go-tex2html/internal/docclass"
	"github.com/alnah/go-tex2html/internal/event"
	"github.com/alnah/go-tex2html/internal/interp"
	"github.com/alnah/go-tex2html/internal/macro"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput        = errors.New("event stream cannot be empty")
	ErrRender            = errors.New("HTML rendering failed")
	ErrTimeout           = errors.New("conversion timed out")
	ErrInvalidPrecision  = errors.New("invalid precision")
	ErrInvalidLanguage   = errors.New("invalid language")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrPoolClosed        = errors.New("converter pool is closed")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Input errors re-exported for classification with errors.Is.
	ErrDecode       = event.ErrDecode
	ErrUnknownClass = docclass.ErrUnknownClass
)

// Errors of the interpreter, re-exported for classification with errors.Is.
var (
	ErrUnknownMacro             = macro.ErrUnknownMacro
	ErrUnknownEnvironment       = interp.ErrUnknownEnvironment
	ErrMismatchedEnvironmentEnd = interp.ErrMismatchedEnvironmentEnd
	ErrUnbalancedGroups         = interp.ErrUnbalancedGroups
	ErrPreambleOnly             = interp.ErrPreambleOnly
	ErrInvalidArgument          = interp.ErrInvalidArgument
)
