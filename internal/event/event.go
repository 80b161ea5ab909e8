// Package event defines the stream of parse events the interpreter
// consumes. An external tokenizer produces it; this package also decodes
// the YAML form of the stream used by the command line tool.
package event

import (
	"fmt"
	"io"

	"github.com/alnah/go-tex2html/internal/args"
)

// Kind identifies an event.
type Kind int

// Event kinds.
const (
	KindText Kind = iota + 1
	KindBeginMacro
	KindBeginArg
	KindEndArg
	KindBeginGroup
	KindEndGroup
	KindBeginEnv
	KindEndEnv
	KindLocation
	KindContinue
	KindBreak
	KindPar
)

var kindNames = map[Kind]string{
	KindText:       "text",
	KindBeginMacro: "macro",
	KindBeginArg:   "begin-arg",
	KindEndArg:     "end-arg",
	KindBeginGroup: "begin-group",
	KindEndGroup:   "end-group",
	KindBeginEnv:   "begin-env",
	KindEndEnv:     "end-env",
	KindLocation:   "location",
	KindContinue:   "continue",
	KindBreak:      "break",
	KindPar:        "par",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Span is a source range.
type Span struct {
	File      string `yaml:"file"`
	Line      int    `yaml:"line"`
	Column    int    `yaml:"col"`
	EndLine   int    `yaml:"endLine"`
	EndColumn int    `yaml:"endCol"`
	Offset    int    `yaml:"offset"`
	EndOffset int    `yaml:"endOffset"`
}

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Event is one parse event.
type Event struct {
	Kind  Kind
	Name  string    // macro or environment name
	Text  string    // KindText payload
	Arg   args.Kind // KindBeginArg slot kind
	Delim byte      // KindBeginArg opening delimiter; 0 means the kind's default
	Value any       // KindBeginArg pre-parsed value; nil means parse the enclosed text
	Span  *Span     // KindLocation
}

func (e Event) String() string {
	switch e.Kind {
	case KindText:
		return fmt.Sprintf("text(%q)", e.Text)
	case KindBeginMacro, KindBeginEnv, KindEndEnv:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Name)
	case KindBeginArg:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Arg)
	}
	return e.Kind.String()
}

// Source yields events until io.EOF.
type Source interface {
	Next() (Event, error)
}

// SliceSource serves events from memory.
type SliceSource struct {
	events []Event
	pos    int
}

// NewSliceSource creates a source over evs.
func NewSliceSource(evs []Event) *SliceSource {
	return &SliceSource{events: evs}
}

// Next returns the next event or io.EOF.
func (s *SliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	e := s.events[s.pos]
	s.pos++
	return e, nil
}

var _ Source = (*SliceSource)(nil)
