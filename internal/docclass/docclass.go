// Package docclass provides the document classes: their counters, section
// levels, numbering formats, page geometry and localized names.
//
// Classes do not know the interpreter. They act on it through Host, and
// the interpreter turns what they describe into macros.
package docclass

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/counter"
	"github.com/alnah/go-tex2html/internal/length"
)

// ErrUnknownClass is returned for a class name that is not built in.
var ErrUnknownClass = errors.New("unknown document class")

// Default is the class used when a document does not declare one.
const Default = "article"

// Host is the part of the interpreter a class configures.
type Host interface {
	NewCounter(name, parent string) error
	SetCounter(name string, v int) error
	Counter(name string) (int, error)
	AddToReset(c, parent string) error
	SetLength(name string, l length.Length) error
	Length(name string) (length.Length, error)
}

// Numbering renders the value of a counter, the body of a \the<counter>
// macro.
type Numbering func(h Host) (string, error)

// Section is a sectioning command and its nesting level.
type Section struct {
	Name  string
	Level int
}

// DocumentClass is a loaded document class.
type DocumentClass interface {
	Name() string
	// CSS names the embedded stylesheet of the class.
	CSS() string
	Sections() []Section
	// CounterSetup declares the counters and lengths of the class.
	CounterSetup(h Host) error
	// NumberingRules returns the \the<counter> formats, keyed by counter.
	NumberingRules() map[string]Numbering
	Options() Options
	// Term returns a localized name such as "chaptername".
	Term(key string) (string, bool)
	// Appendix switches numbering to appendix style.
	Appendix(h Host) error
}

// Matter selects the part of a book.
type Matter int

// Book parts.
const (
	MainMatter Matter = iota
	FrontMatter
	BackMatter
)

// Matters is implemented by classes that distinguish front, main and back
// matter.
type Matters interface {
	SetMatter(m Matter)
	// Numbered reports whether sections of the given kind are numbered in
	// the current matter.
	Numbered(section string) bool
}

type constructor func(opts Options, terms map[string]string) DocumentClass

var classes = map[string]constructor{
	"article": newArticle,
	"report":  newReport,
	"book":    newBook,
}

// Names returns the built-in class names, sorted.
func Names() []string {
	names := make([]string, 0, len(classes))
	for n := range classes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// New instantiates class name with the given options. Names are looked up
// in lang's term table.
func New(name string, opts args.KeyVals, lang language.Tag) (DocumentClass, error) {
	c, ok := classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	o, err := ParseOptions(opts)
	if err != nil {
		return nil, err
	}
	return c(o, Terms(lang)), nil
}

// base holds what every class shares.
type base struct {
	name     string
	css      string
	opts     Options
	terms    map[string]string
	appendix bool
}

func (b *base) Name() string     { return b.name }
func (b *base) CSS() string      { return b.css }
func (b *base) Options() Options { return b.opts }

func (b *base) Term(key string) (string, bool) {
	t, ok := b.terms[key]
	return t, ok
}

// setupBase declares the counters and page lengths of every class.
func setupBase(h Host, o Options) error {
	for _, c := range []struct{ name, parent string }{
		{"part", ""},
		{"section", ""},
		{"subsection", "section"},
		{"subsubsection", "subsection"},
		{"paragraph", "subsubsection"},
		{"subparagraph", "paragraph"},
		{"figure", ""},
		{"table", ""},
	} {
		if err := h.NewCounter(c.name, c.parent); err != nil {
			return err
		}
	}
	return ApplyGeometry(h, o)
}

// format renders counter c in style.
func format(h Host, c string, style counter.Style) (string, error) {
	n, err := h.Counter(c)
	if err != nil {
		return "", err
	}
	return counter.Format(style, n)
}

// subnumber appends ".<arabic c>" to the parent numbering.
func subnumber(parent Numbering, c string) Numbering {
	return func(h Host) (string, error) {
		p, err := parent(h)
		if err != nil {
			return "", err
		}
		n, err := format(h, c, counter.Arabic)
		if err != nil {
			return "", err
		}
		return p + "." + n, nil
	}
}

// sectionRules builds the numbering of subsection and below on top of
// thesection.
func sectionRules(thesection Numbering) map[string]Numbering {
	r := map[string]Numbering{"section": thesection}
	prev := thesection
	for _, c := range []string{"subsection", "subsubsection", "paragraph", "subparagraph"} {
		prev = subnumber(prev, c)
		r[c] = prev
	}
	r["part"] = func(h Host) (string, error) { return format(h, "part", counter.RomanUpper) }
	return r
}
