package packages

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/interp"
	"github.com/alnah/go-tex2html/internal/pipeline"
)

// markdownRenderer is shared: goldmark converters are safe for concurrent
// use.
var markdownRenderer = sync.OnceValue(pipeline.NewMarkdownRenderer)

// Markdown instantiates the markdown package. Its markdown environment
// takes a Markdown body and sets it as HTML.
func Markdown(*interp.Interpreter, args.KeyVals) (*interp.Extension, error) {
	return extension("markdown", defs{
		"markdown": {"V verb", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			content, err := markdownRenderer().Render(i.Context(), interp.ArgString(a, 0))
			if err != nil {
				return nil, err
			}
			return nodes(i.Builder().Element("div", "markdown", content...)), nil
		}},
	})
}
