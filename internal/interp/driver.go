package interp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/event"
	"github.com/alnah/go-tex2html/internal/macro"
)

type frameKind int

const (
	frameDocument frameKind = iota
	frameGroup
	frameArg
	frameEnv
)

// call is a macro invocation whose arguments are still arriving.
type call struct {
	name string
	def  macro.Definition[*Interpreter]
	env  bool
}

// frame collects the output of one nesting level of the event stream.
type frame struct {
	kind frameKind
	out  []item
	call *call

	// argument frames
	argKind  args.Kind
	raw      strings.Builder
	value    any
	implicit bool // filled by an environment body
	scoped   bool // entered a scope group
	items    []ListItem
	counter  string

	// environment frames
	env  string
	mode args.Mode
	lead []*html.Node

	skipSpace bool
}

// ListItem is one \item of a list environment.
type ListItem struct {
	Label *html.Node // nil when the item has no explicit label
	ID    string     // anchor id of a numbered item
	Body  []*html.Node
}

func (i *Interpreter) top() *frame { return i.frames[len(i.frames)-1] }

func (i *Interpreter) push(f *frame) { i.frames = append(i.frames, f) }

func (i *Interpreter) pop() *frame {
	f := i.top()
	i.frames = i.frames[:len(i.frames)-1]
	return f
}

// Run interprets the events of src and returns the finished document.
// Errors carry the last source location seen.
func (i *Interpreter) Run(ctx context.Context, src event.Source) (*Document, error) {
	if i.ran {
		return nil, errors.New("interpreter already used")
	}
	i.ran = true
	i.ctx = ctx

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, i.locate(err)
		}
		if err := i.handle(ev); err != nil {
			return nil, i.locate(err)
		}
	}

	doc, err := i.finish()
	if err != nil {
		return nil, i.locate(err)
	}
	return doc, nil
}

func (i *Interpreter) locate(err error) error {
	var le *LocatedError
	if errors.As(err, &le) {
		return err
	}
	return &LocatedError{Span: i.loc, Err: err}
}

func (i *Interpreter) handle(ev event.Event) error {
	switch ev.Kind {
	case event.KindLocation:
		i.loc = ev.Span
		return nil
	case event.KindBeginArg:
		return i.beginArg(ev)
	}

	if f := i.top(); f.kind == frameArg && !f.argKind.IsGroup() {
		return i.scalar(f, ev)
	}
	if ev.Kind == event.KindEndEnv {
		return i.endEnv(ev.Name)
	}
	if err := i.settle(); err != nil {
		return err
	}
	// settling may have opened a verbatim body
	if f := i.top(); f.kind == frameArg && !f.argKind.IsGroup() {
		return i.scalar(f, ev)
	}

	switch ev.Kind {
	case event.KindText:
		return i.textEvent(ev.Text)
	case event.KindBeginMacro:
		return i.beginMacro(ev.Name)
	case event.KindEndArg:
		return i.endArg()
	case event.KindBeginGroup:
		if err := i.ensureClass(); err != nil {
			return err
		}
		i.scope.EnterGroup(false)
		i.push(&frame{kind: frameGroup})
		return nil
	case event.KindEndGroup:
		return i.endGroup()
	case event.KindBeginEnv:
		return i.beginEnv(ev.Name)
	case event.KindContinue:
		i.cont = true
		return nil
	case event.KindBreak:
		i.cont = false
		return nil
	case event.KindPar:
		i.cont = false
		return i.add(item{par: true, align: i.scope.Alignment()})
	}
	return fmt.Errorf("%w: %s", ErrUnexpectedEvent, ev)
}

// scalar feeds an argument that is parsed from its raw text.
func (i *Interpreter) scalar(f *frame, ev event.Event) error {
	switch ev.Kind {
	case event.KindText:
		f.raw.WriteString(ev.Text)
		return nil
	case event.KindPar:
		if f.argKind == args.Verbatim {
			f.raw.WriteString("\n\n")
			return nil
		}
	case event.KindEndArg:
		return i.endArg()
	case event.KindEndEnv:
		if f.implicit {
			return i.endEnv(ev.Name)
		}
	}
	return fmt.Errorf("%w: %s in %s argument", ErrUnexpectedEvent, ev, f.argKind)
}

// settle completes the pending macro call of the innermost frame. An
// environment whose signature ends in a body argument instead opens a
// frame collecting that body.
func (i *Interpreter) settle() error {
	f := i.top()
	c := f.call
	if c == nil {
		return nil
	}
	if c.env {
		inv, err := i.args.Top()
		if err != nil {
			return err
		}
		if k, ok := inv.Body(); ok {
			return i.openArg(k, 0, nil, true)
		}
	}
	f.call = nil
	parsed, err := i.args.Finish(i.pre(c))
	if err != nil {
		return err
	}
	return i.complete(c, parsed)
}

// pre returns the callback running the pre-phase of c with the arguments
// collected so far.
func (i *Interpreter) pre(c *call) func() error {
	if c.def.Handler.Pre == nil {
		return nil
	}
	return func() error {
		inv, err := i.args.Top()
		if err != nil {
			return err
		}
		return c.def.Handler.Pre(i, inv.Parsed())
	}
}

// complete runs the main phase of c and places its output.
func (i *Interpreter) complete(c *call, parsed []any) error {
	var nodes []*html.Node
	if c.def.Handler.Run != nil {
		var err error
		if nodes, err = c.def.Handler.Run(i, parsed); err != nil {
			return err
		}
	}
	f := i.top()
	if c.env {
		// the enclosing scope styles the environment when it ends
		f.lead = nodes
		return nil
	}
	nodes = i.AddAttributes(nodes)
	if n := len(c.def.Spec.Args); n > 0 && c.def.Spec.Args[n-1].Kind == args.IgnoreSpace {
		f.skipSpace = true
	}
	return i.emit(c.def.Spec.Mode, nodes)
}

func (i *Interpreter) beginMacro(name string) error {
	if name != "documentclass" {
		if err := i.ensureClass(); err != nil {
			return err
		}
	}
	f := i.top()
	f.skipSpace = false

	if !i.macros.Has(name) {
		if s, ok := i.macros.Symbol(name); ok {
			return i.add(item{node: i.text(s)})
		}
		return fmt.Errorf("%w: \\%s", macro.ErrUnknownMacro, name)
	}
	def, err := i.macros.Lookup(name)
	if err != nil {
		return err
	}
	if i.inDocument && i.macros.IsPreamble(name) {
		return fmt.Errorf("%w: \\%s", ErrPreambleOnly, name)
	}
	i.args.Begin(name, def.Spec)
	f.call = &call{name: name, def: def}
	return nil
}

func (i *Interpreter) beginArg(ev event.Event) error {
	f := i.top()
	if f.kind == frameArg && !f.argKind.IsGroup() {
		return fmt.Errorf("%w: %s in %s argument", ErrUnexpectedEvent, ev, f.argKind)
	}
	if f.call == nil {
		return fmt.Errorf("%w: argument without a macro", ErrUnexpectedEvent)
	}
	return i.openArg(ev.Arg, ev.Delim, ev.Value, false)
}

// openArg advances the pending call of the innermost frame to a slot of
// kind k and pushes the frame collecting it.
func (i *Interpreter) openArg(k args.Kind, delim byte, value any, implicit bool) error {
	c := i.top().call
	if err := i.args.Accept(k, delim, i.pre(c)); err != nil {
		return err
	}
	f := &frame{kind: frameArg, argKind: k, value: value, implicit: implicit}
	if k.IsGroup() {
		i.scope.EnterGroup(false)
		f.scoped = true
	}
	if k == args.Items {
		f.counter = i.itemCounter
	}
	i.push(f)
	return nil
}

func (i *Interpreter) endArg() error {
	f := i.top()
	if f.kind != frameArg {
		return fmt.Errorf("%w: end of argument outside an argument", ErrUnexpectedEvent)
	}

	var v any
	switch {
	case f.argKind == args.Items:
		i.finishItem(f)
		v = f.items
	case f.argKind.IsGroup():
		v = i.b.Fragment(i.collect(f.out)...)
	case f.value != nil:
		s, ok := f.value.(string)
		if !ok {
			v = f.value
			break
		}
		f.raw.WriteString(s)
		fallthrough
	default:
		var err error
		if v, err = i.parseValue(f.argKind, f.raw.String()); err != nil {
			return err
		}
	}

	if f.scoped {
		if err := i.scope.ExitGroup(); err != nil {
			return err
		}
	}
	i.pop()
	return i.args.AddParsed(v)
}

func (i *Interpreter) endGroup() error {
	f := i.top()
	if f.kind != frameGroup {
		return fmt.Errorf("%w: there is no group to end here", ErrUnbalancedGroups)
	}
	if err := i.scope.ExitGroup(); err != nil {
		return err
	}
	i.pop()
	for _, it := range f.out {
		if it.node != nil && !it.block {
			it.node = i.wrap(it.node)
		}
		if err := i.add(it); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) beginEnv(name string) error {
	if err := i.ensureClass(); err != nil {
		return err
	}
	if !i.macros.Has(name) {
		return fmt.Errorf("%w: %s", ErrUnknownEnvironment, name)
	}
	def, err := i.macros.Lookup(name)
	if err != nil {
		return err
	}
	i.top().skipSpace = false
	i.scope.StartBalanced()
	i.scope.EnterGroup(false)
	i.args.Begin(name, def.Spec)
	i.push(&frame{
		kind: frameEnv,
		env:  name,
		mode: def.Spec.Mode,
		call: &call{name: name, def: def, env: true},
	})
	return nil
}

func (i *Interpreter) endEnv(name string) error {
	if err := i.settle(); err != nil {
		return err
	}
	if f := i.top(); f.kind == frameArg && f.implicit {
		if err := i.endArg(); err != nil {
			return err
		}
		if err := i.settle(); err != nil {
			return err
		}
	}

	f := i.top()
	switch f.kind {
	case frameEnv:
	case frameGroup:
		return fmt.Errorf("%w: %s", ErrUnbalancedGroups, i.openEnv())
	default:
		return fmt.Errorf("%w: \\end{%s}", ErrUnexpectedEvent, name)
	}
	if f.env != name {
		return fmt.Errorf("%w: environment '%s' is missing its end, found '%s' instead",
			ErrMismatchedEnvironmentEnd, f.env, name)
	}

	container := lastElement(f.lead)
	var body []*html.Node
	if container != nil {
		body = i.collect(f.out)
	}
	var tail []*html.Node
	if i.macros.Has("end" + name) {
		nodes, err := i.Macro("end" + name)
		if err != nil {
			return err
		}
		tail = nodes
	}

	if err := i.scope.ExitGroup(); err != nil {
		return fmt.Errorf("%w: %s", ErrUnbalancedGroups, name)
	}
	if !i.scope.IsBalanced() {
		return fmt.Errorf("%w: %s", ErrUnbalancedGroups, name)
	}
	i.scope.EndBalanced()
	i.pop()

	if container != nil {
		dom.Append(container, body...)
	}
	vertical := f.mode == args.ModeV
	var out []item
	for _, n := range i.AddAttributes(f.lead) {
		out = append(out, item{node: n, block: vertical || isBlock(n)})
	}
	if container == nil {
		for _, it := range f.out {
			if it.node != nil && !it.block {
				it.node = i.wrap(it.node)
			}
			out = append(out, it)
		}
	}
	for _, n := range i.AddAttributes(tail) {
		out = append(out, item{node: n, block: vertical || isBlock(n)})
	}

	if vertical {
		if err := i.add(item{par: true, align: i.scope.Alignment()}); err != nil {
			return err
		}
	}
	for _, it := range out {
		if err := i.add(it); err != nil {
			return err
		}
	}
	if vertical {
		return i.add(item{par: true, align: i.scope.Alignment()})
	}
	return nil
}

// openEnv names the innermost open environment.
func (i *Interpreter) openEnv() string {
	for j := len(i.frames) - 1; j >= 0; j-- {
		if i.frames[j].kind == frameEnv {
			return i.frames[j].env
		}
	}
	return "document"
}

// lastElement returns the element the environment body is appended to.
func lastElement(nodes []*html.Node) *html.Node {
	for j := len(nodes) - 1; j >= 0; j-- {
		if n := nodes[j]; n != nil && n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

func (i *Interpreter) textEvent(s string) error {
	f := i.top()
	if f.skipSpace {
		s = strings.TrimLeft(s, " \t\n")
		if s == "" {
			return nil
		}
		f.skipSpace = false
	}
	if strings.TrimSpace(s) != "" {
		if err := i.ensureClass(); err != nil {
			return err
		}
	}
	return i.add(item{node: i.text(s)})
}

// finish closes the document once the stream is exhausted.
func (i *Interpreter) finish() (*Document, error) {
	if err := i.settle(); err != nil {
		return nil, err
	}
	if len(i.frames) > 1 {
		for _, f := range i.frames {
			if f.kind == frameEnv {
				return nil, fmt.Errorf("%w: \\begin{%s} is not closed", ErrUnexpectedEOF, i.openEnv())
			}
		}
		return nil, fmt.Errorf("%w: open group or argument", ErrUnexpectedEOF)
	}
	if i.args.Len() > 0 {
		return nil, fmt.Errorf("%w: macro arguments are incomplete", ErrUnexpectedEOF)
	}
	if err := i.ensureClass(); err != nil {
		return nil, err
	}
	return i.document()
}
