// Package macro holds the macro registry and the extension loader.
//
// The registry is generic over the host type H that handlers receive, so
// that this package stays independent of the interpreter.
package macro

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
)

// Sentinel errors for registry operations.
var (
	ErrUnknownMacro   = errors.New("unknown macro")
	ErrExtensionLoad  = errors.New("extension could not be loaded")
	ErrReservedName   = errors.New("reserved macro name")
	ErrMissingHandler = errors.New("macro has no handler")
)

// reserved names can never be registered or looked up as macros.
var reserved = map[string]bool{"constructor": true}

// Handler implements a macro. Pre runs when the signature reaches its Exec
// slot, with the arguments collected so far; Run runs once all arguments
// are in and returns the nodes to insert. Either may be nil.
type Handler[H any] struct {
	Pre func(h H, a []any) error
	Run func(h H, a []any) ([]*html.Node, error)
}

// Definition is a handler with its signature.
type Definition[H any] struct {
	Spec    args.Spec
	Handler Handler[H]
}

// Registry maps macro names to definitions and symbol names to text.
type Registry[H any] struct {
	defs    map[string]Definition[H]
	symbols map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry[H any]() *Registry[H] {
	return &Registry[H]{
		defs:    make(map[string]Definition[H]),
		symbols: make(map[string]string),
	}
}

// Register adds or replaces a macro. The last registration wins.
func (r *Registry[H]) Register(name string, spec args.Spec, h Handler[H]) error {
	if reserved[name] {
		return fmt.Errorf("%w: %s", ErrReservedName, name)
	}
	if h.Pre == nil && h.Run == nil {
		return fmt.Errorf("%w: %s", ErrMissingHandler, name)
	}
	r.defs[name] = Definition[H]{Spec: spec, Handler: h}
	return nil
}

// RegisterSpec replaces the signature of an existing macro.
func (r *Registry[H]) RegisterSpec(name string, spec args.Spec) error {
	d, ok := r.defs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMacro, name)
	}
	d.Spec = spec
	r.defs[name] = d
	return nil
}

// Has reports whether name is a registered macro.
func (r *Registry[H]) Has(name string) bool {
	if reserved[name] {
		return false
	}
	_, ok := r.defs[name]
	return ok
}

// Lookup returns the definition of name.
func (r *Registry[H]) Lookup(name string) (Definition[H], error) {
	d, ok := r.defs[name]
	if !ok || reserved[name] {
		return Definition[H]{}, fmt.Errorf("%w: %s", ErrUnknownMacro, name)
	}
	return d, nil
}

// Spec returns the signature of name. Unknown macros have an empty one.
func (r *Registry[H]) Spec(name string) args.Spec {
	return r.defs[name].Spec
}

// Names returns all macro names, sorted.
func (r *Registry[H]) Names() []string {
	return slices.Sorted(maps.Keys(r.defs))
}

// AddSymbol maps a symbol macro to its text.
func (r *Registry[H]) AddSymbol(name, text string) { r.symbols[name] = text }

// Symbol returns the text of a symbol macro.
func (r *Registry[H]) Symbol(name string) (string, bool) {
	s, ok := r.symbols[name]
	return s, ok
}

// Merge copies every definition and symbol of ext into r, replacing
// existing entries. Nothing is copied if any definition is invalid.
func (r *Registry[H]) Merge(ext *Extension[H]) error {
	for name, d := range ext.Macros {
		if reserved[name] {
			return fmt.Errorf("%w: %s", ErrReservedName, name)
		}
		if d.Handler.Pre == nil && d.Handler.Run == nil {
			return fmt.Errorf("%w: %s", ErrMissingHandler, name)
		}
	}
	maps.Copy(r.defs, ext.Macros)
	maps.Copy(r.symbols, ext.Symbols)
	return nil
}

// IsHmode reports whether the macro may appear in horizontal mode.
func (r *Registry[H]) IsHmode(name string) bool {
	m := r.Spec(name).Mode
	return m == args.ModeH || m == args.ModeHV || m == ""
}

// IsVmode reports whether the macro must appear in vertical mode.
func (r *Registry[H]) IsVmode(name string) bool {
	return r.Spec(name).Mode == args.ModeV
}

// IsHVmode reports whether the macro works in both modes.
func (r *Registry[H]) IsHVmode(name string) bool {
	return r.Spec(name).Mode == args.ModeHV
}

// IsPreamble reports whether the macro is limited to the preamble.
func (r *Registry[H]) IsPreamble(name string) bool {
	return r.Spec(name).Mode == args.ModeP
}
