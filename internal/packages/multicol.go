package packages

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/interp"
)

// Multicol instantiates the multicol package. The multicols environment
// sets its optional preface above the columns; the body fills the
// columns.
func Multicol(*interp.Interpreter, args.KeyVals) (*interp.Extension, error) {
	return extension("multicol", defs{
		"multicols": {"V n o? o?", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			n, _ := interp.ArgNumber(a, 0)
			if n < 1 {
				return nil, invalidArg("multicols", "column count %v is not positive", n)
			}
			cols := i.Builder().Element("div", "multicols")
			dom.SetAttr(cols, "style", "column-count:"+strconv.Itoa(int(n)))
			return nodes(interp.ArgNode(a, 1), cols), nil
		}},
	})
}
