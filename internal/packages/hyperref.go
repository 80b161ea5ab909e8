package packages

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/interp"
)

// Hyperref instantiates the hyperref package.
func Hyperref(*interp.Interpreter, args.KeyVals) (*interp.Extension, error) {
	return extension("hyperref", defs{
		"href": {"H o? u g", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			return nodes(i.Builder().Link(interp.ArgString(a, 1), interp.ArgNode(a, 2))), nil
		}},
		"url": {"H u", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			u := interp.ArgString(a, 0)
			return nodes(i.Builder().Link(u, i.Builder().RawText(u))), nil
		}},
		// \nolinkurl typesets like \url without linking.
		"nolinkurl": {"H u", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			return nodes(i.Builder().Element("a", "", i.Builder().RawText(interp.ArgString(a, 0)))), nil
		}},
	})
}
