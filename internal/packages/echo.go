package packages

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/interp"
)

// Echo instantiates the echo package, whose macros print their arguments
// between markers: "-" around optional and "+" around mandatory ones.
// Documents use it to check argument parsing.
func Echo(*interp.Interpreter, args.KeyVals) (*interp.Extension, error) {
	mark := func(i *interp.Interpreter, m string, n *html.Node) []*html.Node {
		b := i.Builder()
		return []*html.Node{b.RawText(m), n, b.RawText(m)}
	}
	opt := func(i *interp.Interpreter, a []any, j int) []*html.Node {
		if n := interp.ArgNode(a, j); n != nil {
			return mark(i, "-", n)
		}
		return nil
	}

	return extension("echo", defs{
		"gobbleO": {"H o?", func(*interp.Interpreter, []any) ([]*html.Node, error) {
			return nil, nil
		}},
		"echoO": {"H o?", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			return mark(i, "-", interp.ArgNode(a, 0)), nil
		}},
		"echoOGO": {"H o? g o?", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			out := opt(i, a, 0)
			out = append(out, mark(i, "+", interp.ArgNode(a, 1))...)
			return append(out, opt(i, a, 2)...), nil
		}},
		"echoGOG": {"H g o? g", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			out := mark(i, "+", interp.ArgNode(a, 0))
			out = append(out, opt(i, a, 1)...)
			return append(out, mark(i, "+", interp.ArgNode(a, 2))...), nil
		}},
	})
}
