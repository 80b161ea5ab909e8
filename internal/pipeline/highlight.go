package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/dom"
)

// ErrHighlight indicates source code could not be highlighted.
var ErrHighlight = errors.New("code highlighting failed")

// DefaultHighlightStyle is the Chroma style used for the stylesheet.
const DefaultHighlightStyle = "github"

// CodeHighlighter turns source code into class-annotated HTML nodes.
type CodeHighlighter struct {
	style *chroma.Style
}

// NewCodeHighlighter creates a highlighter. Unknown style names fall back
// to Chroma's default style.
func NewCodeHighlighter(style string) *CodeHighlighter {
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	return &CodeHighlighter{style: s}
}

// Highlight tokenizes code with the lexer for lang and renders it. Block
// output is a pre element; inline output is a code element without the
// surrounding pre. Unknown languages are rendered as plain text.
func (h *CodeHighlighter) Highlight(lang, code string, inline bool) (*html.Node, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrHighlight, lang, err)
	}

	f := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(inline),
	)
	var buf bytes.Buffer
	if err := f.Format(&buf, h.style, it); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrHighlight, lang, err)
	}

	nodes, err := dom.ParseFragment(strings.TrimSuffix(buf.String(), "\n"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	if inline {
		code := &html.Node{Type: html.ElementNode, Data: "code"}
		dom.SetAttr(code, "class", "chroma")
		dom.Append(code, nodes...)
		return code, nil
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	frag := &html.Node{Type: html.DocumentNode}
	dom.Append(frag, nodes...)
	return frag, nil
}

// CSS returns the stylesheet for the highlighter's classes.
func (h *CodeHighlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return buf.String(), nil
}
