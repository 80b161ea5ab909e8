package interp

import (
	"errors"
	"fmt"

	"github.com/alnah/go-tex2html/internal/event"
)

// Sentinel errors for structural problems in the event stream.
var (
	ErrUnknownEnvironment       = errors.New("unknown environment")
	ErrMismatchedEnvironmentEnd = errors.New("environment is missing its end")
	ErrUnbalancedGroups         = errors.New("groups need to be balanced in environments")
	ErrTooDeeplyNested          = errors.New("too deeply nested")
	ErrUnexpectedEvent          = errors.New("unexpected event")
	ErrUnexpectedEOF            = errors.New("unexpected end of input")
	ErrPreambleOnly             = errors.New("command allowed only in the preamble")
	ErrDuplicateDocumentClass   = errors.New("the document may only declare one class")
	ErrMissingItem              = errors.New(`missing \item`)
	ErrInvalidArgument          = errors.New("invalid argument")
)

// LocatedError is a fatal error with the source position it occurred at.
type LocatedError struct {
	Span *event.Span
	Err  error
}

func (e *LocatedError) Error() string {
	if e.Span == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Span, e.Err)
}

func (e *LocatedError) Unwrap() error { return e.Err }

// Diagnostic is a problem that does not stop the interpretation, such as
// an undefined reference.
type Diagnostic struct {
	Span    *event.Span
	Message string
}

func (d Diagnostic) String() string {
	if d.Span == nil {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// invalid wraps ErrInvalidArgument for a macro.
func invalid(name, format string, a ...any) error {
	return fmt.Errorf("%w: \\%s: %s", ErrInvalidArgument, name, fmt.Sprintf(format, a...))
}
