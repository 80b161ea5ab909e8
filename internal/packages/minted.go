package packages

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/interp"
	"github.com/alnah/go-tex2html/internal/pipeline"
)

// Minted instantiates the minted package: highlighted source code as an
// environment, a display macro and an inline macro. The "style" option
// picks the Chroma style, as \usemintedstyle does.
func Minted(_ *interp.Interpreter, opts args.KeyVals) (*interp.Extension, error) {
	style := pipeline.DefaultHighlightStyle
	if s, ok := opts.Get("style"); ok && s != "" {
		style = s
	}
	h := pipeline.NewCodeHighlighter(style)

	highlight := func(i *interp.Interpreter, lang, code string, inline bool) ([]*html.Node, error) {
		n, err := h.Highlight(lang, code, inline)
		if err != nil {
			return nil, err
		}
		css, err := h.CSS()
		if err != nil {
			return nil, err
		}
		i.AddStylesheet(css)
		return nodes(n), nil
	}

	// Options such as linenos are accepted and ignored.
	return extension("minted", defs{
		"minted": {"V kv? k verb", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			return highlight(i, interp.ArgString(a, 1), trimBody(interp.ArgString(a, 2)), false)
		}},
		"mint": {"V kv? k verb", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			return highlight(i, interp.ArgString(a, 1), interp.ArgString(a, 2), false)
		}},
		"mintinline": {"H kv? k verb", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			return highlight(i, interp.ArgString(a, 1), interp.ArgString(a, 2), true)
		}},
		"usemintedstyle": {"P k", func(_ *interp.Interpreter, a []any) ([]*html.Node, error) {
			h = pipeline.NewCodeHighlighter(interp.ArgString(a, 0))
			return nil, nil
		}},
	})
}

// trimBody drops the line break after \begin{minted}{lang} and the one
// before \end{minted}.
func trimBody(s string) string {
	if len(s) > 0 && s[0] == '\n' {
		s = s[1:]
	}
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	return s
}
