// Package scope tracks the group stack: inherited text attributes,
// alignment, the current label target and user lengths.
package scope

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/length"
)

// Sentinel errors for scope operations.
var (
	ErrNoOpenGroup     = errors.New("there is no group to end here")
	ErrDuplicateLength = errors.New("length already defined")
	ErrNoSuchLength    = errors.New("no such length")
)

// Attr names an inheritable text attribute.
type Attr int

// Text attributes in the order they appear in class lists.
const (
	FontFamily Attr = iota
	FontWeight
	FontShape
	FontSize
	TextDecoration
	// TextColor is rendered as an inline style, not a class.
	TextColor
)

var attrOrder = []Attr{FontFamily, FontWeight, FontShape, FontSize, TextDecoration}

// Label is the target the next \label binds to.
type Label struct {
	ID   string
	Text *html.Node
}

type frame struct {
	attrs   map[Attr]string
	align   string
	label   Label
	lengths map[string]length.Length
}

// Stack is the group stack. It always holds at least the document frame.
// Balance levels let environments check that every group opened inside
// them was closed.
type Stack struct {
	frames []*frame
	groups []int
}

// NewStack creates a stack holding the document frame.
func NewStack() *Stack {
	return &Stack{
		frames: []*frame{{attrs: map[Attr]string{}, lengths: map[string]length.Length{}}},
		groups: []int{0},
	}
}

func (s *Stack) top() *frame { return s.frames[len(s.frames)-1] }

// Depth returns the number of open groups above the document frame.
func (s *Stack) Depth() int { return len(s.frames) - 1 }

// EnterGroup pushes a frame. Attributes are inherited only when copyAttrs
// is set; alignment starts unset; the current label and lengths are
// inherited.
func (s *Stack) EnterGroup(copyAttrs bool) {
	cur := s.top()
	f := &frame{
		attrs:   map[Attr]string{},
		label:   cur.label,
		lengths: maps.Clone(cur.lengths),
	}
	if copyAttrs {
		f.attrs = maps.Clone(cur.attrs)
	}
	s.frames = append(s.frames, f)
	s.groups[len(s.groups)-1]++
}

// ExitGroup pops the innermost frame.
func (s *Stack) ExitGroup() error {
	if s.groups[len(s.groups)-1] <= 0 || len(s.frames) == 1 {
		return ErrNoOpenGroup
	}
	s.groups[len(s.groups)-1]--
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// StartBalanced opens a new balance level.
func (s *Stack) StartBalanced() { s.groups = append(s.groups, 0) }

// EndBalanced closes the innermost balance level and returns the number of
// groups still open in it.
func (s *Stack) EndBalanced() int {
	n := s.groups[len(s.groups)-1]
	if len(s.groups) > 1 {
		s.groups = s.groups[:len(s.groups)-1]
	}
	return n
}

// IsBalanced reports whether the innermost balance level has no open groups.
func (s *Stack) IsBalanced() bool { return s.groups[len(s.groups)-1] == 0 }

// Set assigns an attribute in the current frame.
func (s *Stack) Set(a Attr, v string) { s.top().attrs[a] = v }

// Local returns an attribute set in the current frame only.
func (s *Stack) Local(a Attr) string { return s.top().attrs[a] }

// SetFontShape sets the font shape. "em" toggles between italic and
// upright depending on the inherited shape.
func (s *Stack) SetFontShape(shape string) {
	if shape == "em" {
		if s.Active(FontShape) == "it" {
			shape = "up"
		} else {
			shape = "it"
		}
	}
	s.Set(FontShape, shape)
}

// Active returns the innermost value of a, looking through enclosing
// frames. Popped frames are never consulted.
func (s *Stack) Active(a Attr) string {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v := s.frames[i].attrs[a]; v != "" {
			return v
		}
	}
	return ""
}

// InlineClasses returns the CSS classes of the current frame's attributes,
// space separated and in a stable order.
func (s *Stack) InlineClasses() string {
	var cls []string
	for _, a := range attrOrder {
		if v := s.top().attrs[a]; v != "" {
			cls = append(cls, v)
		}
	}
	return strings.Join(cls, " ")
}

// InlineStyle returns the CSS declarations of the current frame's
// attributes that have no class form.
func (s *Stack) InlineStyle() string {
	if c := s.top().attrs[TextColor]; c != "" {
		return "color:" + c
	}
	return ""
}

// SetAlignment sets the paragraph alignment of the current frame.
func (s *Stack) SetAlignment(align string) { s.top().align = align }

// Alignment returns the paragraph alignment of the current frame.
func (s *Stack) Alignment() string { return s.top().align }

// SetCurrentLabel sets the label target of the current frame.
func (s *Stack) SetCurrentLabel(l Label) { s.top().label = l }

// CurrentLabel returns the label target of the current frame.
func (s *Stack) CurrentLabel() Label { return s.top().label }

// NewLength declares a length in the current frame.
func (s *Stack) NewLength(name string) error {
	if _, ok := s.top().lengths[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateLength, name)
	}
	s.top().lengths[name] = length.Zero
	return nil
}

// HasLength reports whether name is declared.
func (s *Stack) HasLength(name string) bool {
	_, ok := s.top().lengths[name]
	return ok
}

// SetLength assigns a declared length in the current frame.
func (s *Stack) SetLength(name string, l length.Length) error {
	if !s.HasLength(name) {
		return fmt.Errorf("%w: %s", ErrNoSuchLength, name)
	}
	s.top().lengths[name] = l
	return nil
}

// SetLengthGlobal assigns a length in every frame.
func (s *Stack) SetLengthGlobal(name string, l length.Length) error {
	if !s.HasLength(name) {
		return fmt.Errorf("%w: %s", ErrNoSuchLength, name)
	}
	for _, f := range s.frames {
		f.lengths[name] = l
	}
	return nil
}

// Length returns a declared length.
func (s *Stack) Length(name string) (length.Length, error) {
	l, ok := s.top().lengths[name]
	if !ok {
		return length.Length{}, fmt.Errorf("%w: %s", ErrNoSuchLength, name)
	}
	return l, nil
}
