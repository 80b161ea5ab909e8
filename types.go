package tex2html

import (
	"github.com/alnah/go-tex2html/internal/event"
	"github.com/alnah/go-tex2html/internal/interp"
)

// Event is one item of the tokenizer's output.
type Event = event.Event

// Span locates an event in the LaTeX source.
type Span = event.Span

// Warning is a problem that did not stop the conversion, such as an
// undefined reference.
type Warning = interp.Diagnostic

// LocatedError is a fatal conversion error with the source position it
// occurred at.
type LocatedError = interp.LocatedError

// DecodeEvents reads an event stream in its YAML form. Returns an error
// wrapping ErrDecode for malformed input.
func DecodeEvents(data []byte) ([]Event, error) {
	return event.Decode(data)
}

// Input holds the per-conversion data.
type Input struct {
	Events []Event
	// Title is used when the document does not set one with \title and
	// \maketitle.
	Title string
	// SourceDir resolves relative image and link paths to file:// URLs.
	// Empty leaves them untouched.
	SourceDir string
	// CSS is applied after every other stylesheet.
	CSS string
}

// Validate checks that required fields are present.
func (in Input) Validate() error {
	if len(in.Events) == 0 {
		return ErrEmptyInput
	}
	return nil
}

// Result is the output of a conversion.
type Result struct {
	HTML []byte
	// Title is the title of the page: the document's \title, else
	// Input.Title.
	Title    string
	Warnings []Warning
}
