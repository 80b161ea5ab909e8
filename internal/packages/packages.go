// Package packages implements the extensions documents load with
// \usepackage: colors, graphics, hyperlinks, multiple columns, symbol
// tables, and Markdown and source code bodies.
package packages

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/interp"
	"github.com/alnah/go-tex2html/internal/macro"
)

// Builtin returns the factories of all packages, keyed by package name.
func Builtin() map[string]interp.Factory {
	return map[string]interp.Factory{
		"xcolor":   XColor,
		"color":    XColor,
		"graphicx": Graphicx,
		"hyperref": Hyperref,
		"multicol": Multicol,
		"echo":     Echo,
		"latexsym": symbols("latexsym", latexsym),
		"gensymb":  symbols("gensymb", gensymb),
		"stix":     symbols("stix", stix),
		"markdown": Markdown,
		"minted":   Minted,
	}
}

// handlerFunc is the main phase of a package macro.
type handlerFunc func(i *interp.Interpreter, a []any) ([]*html.Node, error)

// defs builds extension macros from textual signatures.
type defs map[string]struct {
	spec string
	run  handlerFunc
}

// extension parses the signatures of ds into an Extension.
func extension(name string, ds defs) (*interp.Extension, error) {
	ext := &interp.Extension{Name: name, Macros: make(map[string]macro.Definition[*interp.Interpreter], len(ds))}
	for m, d := range ds {
		spec, err := args.ParseSpec(d.spec)
		if err != nil {
			return nil, fmt.Errorf("\\%s: %w", m, err)
		}
		ext.Macros[m] = macro.Definition[*interp.Interpreter]{
			Spec:    spec,
			Handler: interp.Handler{Run: d.run},
		}
	}
	return ext, nil
}

// symbols makes a package that only defines symbols.
func symbols(name string, table map[string]string) interp.Factory {
	return func(*interp.Interpreter, args.KeyVals) (*interp.Extension, error) {
		return &interp.Extension{Name: name, Symbols: maps.Clone(table)}, nil
	}
}

// nodes collects handler output, skipping omitted optional arguments.
func nodes(ns ...*html.Node) []*html.Node {
	return slices.DeleteFunc(ns, func(n *html.Node) bool { return n == nil })
}

// invalidArg reports a bad argument of macro name.
func invalidArg(name, format string, a ...any) error {
	return fmt.Errorf("%w: \\%s: %s", interp.ErrInvalidArgument, name, fmt.Sprintf(format, a...))
}
