package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	nethtml "golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/dom"
)

// ErrMarkdownConversion indicates a Markdown body could not be rendered.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownRenderer renders Markdown to HTML nodes using goldmark.
type MarkdownRenderer struct {
	md  goldmark.Markdown
	pre *CommonMarkPreprocessor
}

// NewMarkdownRenderer creates a renderer with GFM extensions, footnotes and
// class-based syntax highlighting of fenced code.
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Raw HTML stays disabled: ==highlight== goes through placeholders.
			html.WithXHTML(),
		),
	)
	return &MarkdownRenderer{md: md, pre: &CommonMarkPreprocessor{}}
}

// Render converts Markdown source to a list of nodes. The source may be
// indented as a whole, as it usually is inside an environment.
// Goldmark has no context support, so conversion runs in a goroutine and
// Render returns as soon as ctx is done.
func (r *MarkdownRenderer) Render(ctx context.Context, src string) ([]*nethtml.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		nodes []*nethtml.Node
		err   error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		content := r.pre.PreprocessMarkdown(ctx, src)
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		nodes, err := dom.ParseFragment(ConvertMarkPlaceholders(buf.String()))
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		done <- result{nodes: nodes}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.nodes, res.err
	}
}
