// Package interp executes parse events: it resolves macro arguments,
// maintains the group, counter and label state, and assembles the HTML
// node tree of a document.
//
// An Interpreter is single use. Create one with New, feed it a complete
// event stream with Run and discard it.
package interp

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/counter"
	"github.com/alnah/go-tex2html/internal/dateutil"
	"github.com/alnah/go-tex2html/internal/docclass"
	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/event"
	"github.com/alnah/go-tex2html/internal/length"
	"github.com/alnah/go-tex2html/internal/macro"
	"github.com/alnah/go-tex2html/internal/refs"
	"github.com/alnah/go-tex2html/internal/scope"
)

// ProvidedPackages load as no-ops: their functionality is built in.
var ProvidedPackages = []string{"calc", "pspicture", "picture", "pict2e", "keyval", "comment"}

// Registry is the macro registry type handlers are stored in.
type Registry = macro.Registry[*Interpreter]

// Handler is a macro implementation bound to the interpreter.
type Handler = macro.Handler[*Interpreter]

// Extension is a package contribution bound to the interpreter.
type Extension = macro.Extension[*Interpreter]

// Factory instantiates an extension.
type Factory = macro.Factory[*Interpreter]

// Interpreter holds the complete state of one document run.
type Interpreter struct {
	b        *dom.Builder
	scope    *scope.Stack
	counters *counter.Registry
	args     args.Stack
	macros   *Registry
	loader   *macro.Loader[*Interpreter]
	refs     *refs.Table

	class      docclass.DocumentClass
	className  string
	classOpts  args.KeyVals
	lang       language.Tag
	clock      func() time.Time
	dateLayout string
	preload    []string
	extensions map[string]Factory
	resolver   macro.Resolver[*Interpreter]

	uid        int
	marginpars []*html.Node
	styles     []string
	toc        []tocEntry
	tocNodes   []*html.Node

	title, author, date *html.Node
	docTitle            string

	cont        bool
	noindent    bool
	itemCounter string

	frames     []*frame
	loc        *event.Span
	ctx        context.Context
	inDocument bool
	ran        bool
	diags      []Diagnostic
}

// Option configures an Interpreter.
type Option func(*Interpreter) error

// WithBuilder sets the node builder, which carries precision and
// hyphenation settings.
func WithBuilder(b *dom.Builder) Option {
	return func(i *Interpreter) error {
		i.b = b
		return nil
	}
}

// WithDocumentClass sets the class used when the document does not
// declare one.
func WithDocumentClass(name string, opts args.KeyVals) Option {
	return func(i *Interpreter) error {
		if name != "" {
			i.className = name
		}
		i.classOpts = opts
		return nil
	}
}

// WithLanguage selects the language of generated names such as
// "Contents".
func WithLanguage(tag language.Tag) Option {
	return func(i *Interpreter) error {
		i.lang = tag
		return nil
	}
}

// WithClock sets the time source of \today.
func WithClock(clock func() time.Time) Option {
	return func(i *Interpreter) error {
		i.clock = clock
		return nil
	}
}

// WithDateFormat sets the format of \today, a dateutil preset or pattern.
func WithDateFormat(format string) Option {
	return func(i *Interpreter) error {
		layout, err := dateutil.Layout(format)
		if err != nil {
			return err
		}
		i.dateLayout = layout
		return nil
	}
}

// WithExtensions registers the factories \usepackage can load.
func WithExtensions(exts map[string]Factory) Option {
	return func(i *Interpreter) error {
		i.extensions = exts
		return nil
	}
}

// WithResolver installs a lookup for packages that are not registered.
func WithResolver(r macro.Resolver[*Interpreter]) Option {
	return func(i *Interpreter) error {
		i.resolver = r
		return nil
	}
}

// WithPackages loads packages right after the document class, as if the
// document started with \usepackage for each of them.
func WithPackages(names ...string) Option {
	return func(i *Interpreter) error {
		i.preload = append(i.preload, names...)
		return nil
	}
}

// New creates an interpreter with the built-in macros registered.
func New(opts ...Option) (*Interpreter, error) {
	i := &Interpreter{
		scope:      scope.NewStack(),
		counters:   counter.NewRegistry(),
		macros:     macro.NewRegistry[*Interpreter](),
		className:  docclass.Default,
		lang:       language.English,
		clock:      time.Now,
		dateLayout: "Monday, January 2, 2006",
		uid:        1,
		frames:     []*frame{{kind: frameDocument}},
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if i.b == nil {
		i.b = dom.New()
	}
	i.refs = refs.NewTable(i.b)
	i.loader = macro.NewLoader(i.extensions, ProvidedPackages)
	if i.resolver != nil {
		i.loader.SetResolver(i.resolver)
	}

	if err := i.registerBuiltins(); err != nil {
		return nil, err
	}
	if err := i.initState(); err != nil {
		return nil, err
	}
	return i, nil
}

// initState declares the counters and lengths every document has.
func (i *Interpreter) initState() error {
	for _, c := range []string{
		"secnumdepth", "tocdepth", "footnote", "mpfootnote",
		"@listdepth", "@itemdepth", "@enumdepth",
		"enumi", "enumii", "enumiii", "enumiv",
	} {
		if err := i.NewCounter(c, ""); err != nil {
			return err
		}
	}
	for _, l := range baseLengths {
		if err := i.scope.NewLength(l); err != nil {
			return err
		}
	}
	if err := i.scope.SetLength("unitlength", length.Pt(1)); err != nil {
		return err
	}
	if err := i.scope.SetLength("@wholewidth", length.Pt(0.4)); err != nil {
		return err
	}
	return i.scope.SetLength("@arrowlength", length.Pt(0.4))
}

var baseLengths = []string{
	"@@size", "unitlength", "@wholewidth", "@arrowlength",
	"paperheight", "paperwidth", "oddsidemargin", "evensidemargin",
	"textheight", "textwidth", "marginparwidth", "marginparsep", "marginparpush",
	"columnwidth", "columnsep", "columnseprule", "linewidth",
	"leftmargin", "rightmargin", "listparindent", "itemindent", "labelwidth", "labelsep",
	"leftmargini", "leftmarginii", "leftmarginiii", "leftmarginiv", "leftmarginv", "leftmarginvi",
	"fboxrule", "fboxsep", "tabbingsep", "arraycolsep", "tabcolsep", "arrayrulewidth",
	"doublerulesep", "footnotesep", "topmargin", "headheight", "headsep", "footskip",
	"topsep", "partopsep", "itemsep", "parsep", "floatsep", "textfloatsep",
	"intextsep", "dblfloatsep", "dbltextfloatsep",
}

// NextID returns a fresh number for generated element ids.
func (i *Interpreter) NextID() int {
	id := i.uid
	i.uid++
	return id
}

// AddStylesheet attaches CSS the document needs, such as the rules of
// generated markup. Identical stylesheets are kept once.
func (i *Interpreter) AddStylesheet(css string) {
	if !slices.Contains(i.styles, css) {
		i.styles = append(i.styles, css)
	}
}

// Builder returns the node builder.
func (i *Interpreter) Builder() *dom.Builder { return i.b }

// Scope returns the group stack.
func (i *Interpreter) Scope() *scope.Stack { return i.scope }

// Counters returns the counter registry.
func (i *Interpreter) Counters() *counter.Registry { return i.counters }

// Macros returns the macro registry.
func (i *Interpreter) Macros() *Registry { return i.macros }

// Class returns the loaded document class, or nil before it is loaded.
func (i *Interpreter) Class() docclass.DocumentClass { return i.class }

// Context returns the context of the running document, for extensions
// that do blocking work.
func (i *Interpreter) Context() context.Context {
	if i.ctx == nil {
		return context.Background()
	}
	return i.ctx
}

// ParseLength parses a length, which may also be a multiple of a named
// length such as "0.5\textwidth".
func (i *Interpreter) ParseLength(s string) (length.Length, error) { return i.parseLength(s) }

// Lang returns the document language.
func (i *Interpreter) Lang() language.Tag { return i.lang }

// Warn records a diagnostic at the current location.
func (i *Interpreter) Warn(format string, a ...any) {
	i.diags = append(i.diags, Diagnostic{Span: i.loc, Message: fmt.Sprintf(format, a...)})
}

// text creates a text node carrying the current font attributes.
func (i *Interpreter) text(s string) *html.Node {
	return i.wrap(i.b.Text(s))
}

// AddAttributes wraps nodes in elements carrying the current font
// attributes: block-level nodes in a div, everything else in a span.
func (i *Interpreter) AddAttributes(nodes []*html.Node) []*html.Node {
	cls, style := i.scope.InlineClasses(), i.scope.InlineStyle()
	if cls == "" && style == "" {
		return slices.DeleteFunc(nodes, func(n *html.Node) bool { return n == nil })
	}
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, i.wrapIn(cls, style, n))
	}
	return out
}

func (i *Interpreter) wrap(n *html.Node) *html.Node {
	cls, style := i.scope.InlineClasses(), i.scope.InlineStyle()
	if (cls == "" && style == "") || n == nil {
		return n
	}
	return i.wrapIn(cls, style, n)
}

func (i *Interpreter) wrapIn(cls, style string, n *html.Node) *html.Node {
	if dom.IsBlank(n) {
		return n
	}
	tag := "span"
	if isBlock(n) {
		tag = "div"
	}
	e := i.b.Element(tag, cls, n)
	if style != "" {
		dom.SetAttr(e, "style", style)
	}
	return e
}

// Macro expands a macro or symbol directly, outside of the event stream.
// The handler's pre-phase runs first, then its main phase.
func (i *Interpreter) Macro(name string, a ...any) ([]*html.Node, error) {
	if !i.macros.Has(name) {
		if s, ok := i.macros.Symbol(name); ok {
			return []*html.Node{i.text(s)}, nil
		}
	}
	def, err := i.macros.Lookup(name)
	if err != nil {
		return nil, err
	}
	if def.Handler.Pre != nil {
		if err := def.Handler.Pre(i, a); err != nil {
			return nil, err
		}
	}
	if def.Handler.Run == nil {
		return nil, nil
	}
	nodes, err := def.Handler.Run(i, a)
	if err != nil {
		return nil, err
	}
	return i.AddAttributes(nodes), nil
}

// MacroText expands a macro and returns its text content.
func (i *Interpreter) MacroText(name string, a ...any) (string, error) {
	nodes, err := i.Macro(name, a...)
	if err != nil {
		return "", err
	}
	var s string
	for _, n := range nodes {
		s += dom.TextContent(n)
	}
	return s, nil
}

// LoadPackage loads an extension into the macro registry.
func (i *Interpreter) LoadPackage(name string, opts args.KeyVals) error {
	return i.loader.Load(i, i.macros, name, opts)
}

// NewCounter implements docclass.Host. A \the<counter> macro printing the
// value in arabic numerals is defined unless one exists.
func (i *Interpreter) NewCounter(name, parent string) error {
	if err := i.counters.New(name, parent); err != nil {
		return err
	}
	if i.macros.Has("the" + name) {
		return nil
	}
	return i.defineText("the"+name, func() (string, error) {
		n, err := i.counters.Get(name)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	})
}

// SetCounter implements docclass.Host.
func (i *Interpreter) SetCounter(name string, v int) error { return i.counters.Set(name, v) }

// Counter implements docclass.Host.
func (i *Interpreter) Counter(name string) (int, error) { return i.counters.Get(name) }

// AddToReset implements docclass.Host.
func (i *Interpreter) AddToReset(c, parent string) error { return i.counters.AddToReset(c, parent) }

// SetLength implements docclass.Host. The assignment is global.
func (i *Interpreter) SetLength(name string, l length.Length) error {
	return i.scope.SetLengthGlobal(name, l)
}

// Length implements docclass.Host.
func (i *Interpreter) Length(name string) (length.Length, error) { return i.scope.Length(name) }

var _ docclass.Host = (*Interpreter)(nil)

// defineText registers a zero-argument macro producing text.
func (i *Interpreter) defineText(name string, f func() (string, error)) error {
	return i.macros.Register(name, hmode, Handler{
		Run: func(i *Interpreter, _ []any) ([]*html.Node, error) {
			s, err := f()
			if err != nil {
				return nil, err
			}
			return []*html.Node{i.b.Text(s)}, nil
		},
	})
}

// nextLabel returns "<prefix>-<n>" with a fresh n.
func (i *Interpreter) nextLabel(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, i.NextID())
}
