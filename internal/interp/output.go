package interp

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/dom"
)

// item is one piece of frame output: a node, or a paragraph break.
type item struct {
	node     *html.Node
	block    bool // ends the current paragraph and stands alone
	par      bool
	align    string
	cont     bool // first text after a list: the paragraph continues
	noindent bool
}

// blockTags are the elements that cannot live inside a paragraph.
var blockTags = map[string]bool{
	"address": true, "blockquote": true, "body": true, "center": true, "dir": true,
	"div": true, "dl": true, "fieldset": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "isindex": true, "menu": true, "noframes": true, "noscript": true,
	"ol": true, "p": true, "pre": true, "table": true, "ul": true, "dd": true, "dt": true,
	"frameset": true, "li": true, "tbody": true, "td": true, "tfoot": true, "th": true,
	"thead": true, "tr": true, "html": true,
}

func isBlock(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && blockTags[n.Data]
}

// add appends it to the innermost frame.
func (i *Interpreter) add(it item) error {
	f := i.top()
	if it.node != nil && !it.block && !dom.IsBlank(it.node) {
		if i.cont {
			it.cont = true
			i.cont = false
		}
		if i.noindent {
			it.noindent = true
			i.noindent = false
		}
	}
	if f.kind == frameArg && f.argKind == args.Items && len(f.items) == 0 {
		if it.par || it.node == nil || dom.IsBlank(it.node) {
			return nil
		}
		return fmt.Errorf("%w: text before the first item", ErrMissingItem)
	}
	f.out = append(f.out, it)
	return nil
}

// emit places the output of a macro. Vertical-mode macros end the current
// paragraph and their nodes stand as blocks.
func (i *Interpreter) emit(mode args.Mode, nodes []*html.Node) error {
	vertical := mode == args.ModeV
	if vertical {
		if err := i.add(item{par: true, align: i.scope.Alignment()}); err != nil {
			return err
		}
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := i.add(item{node: n, block: vertical || isBlock(n)}); err != nil {
			return err
		}
	}
	return nil
}

// collect turns frame output into nodes. Without any block or paragraph
// break the inline nodes are returned as they are; otherwise runs of
// inline nodes become paragraphs. Paragraphs holding only whitespace are
// dropped.
func (i *Interpreter) collect(items []item) []*html.Node {
	structured := false
	for _, it := range items {
		if it.block || it.par {
			structured = true
			break
		}
	}
	if !structured {
		out := make([]*html.Node, 0, len(items))
		for _, it := range items {
			out = append(out, it.node)
		}
		return out
	}

	var out, run []*html.Node
	var cont, noindent bool
	flush := func(align string) {
		blank := true
		for _, n := range run {
			if !dom.IsBlank(n) {
				blank = false
				break
			}
		}
		if !blank {
			cls := align
			if noindent {
				cls += " " + dom.ClassNoIndent
			}
			if cont {
				cls += " " + dom.ClassContinue
			}
			out = append(out, i.b.Element("p", cls, run...))
		}
		run, cont, noindent = nil, false, false
	}
	for _, it := range items {
		switch {
		case it.par:
			flush(it.align)
		case it.block:
			flush(i.scope.Alignment())
			out = append(out, it.node)
		default:
			run = append(run, it.node)
			cont = cont || it.cont
			noindent = noindent || it.noindent
		}
	}
	flush(i.scope.Alignment())
	return out
}

// newItem starts the next item of the innermost list. Items of numbered
// lists without an explicit label step the list counter and become the
// target of \label.
func (i *Interpreter) newItem(label *html.Node) error {
	f := i.top()
	if f.kind != frameArg || f.argKind != args.Items {
		return fmt.Errorf("%w: \\item outside of a list", ErrUnexpectedEvent)
	}
	i.finishItem(f)

	it := ListItem{Label: label}
	if label == nil && f.counter != "" {
		if err := i.counters.Step(f.counter); err != nil {
			return err
		}
		it.ID = i.nextLabel("item")
		if _, err := i.RefCounter(f.counter, it.ID); err != nil {
			return err
		}
		nodes, err := i.Macro("label" + f.counter)
		if err != nil {
			return err
		}
		it.Label = i.b.Fragment(nodes...)
	}
	f.items = append(f.items, it)
	return nil
}

// finishItem stores the output collected since the last \item as its
// body.
func (i *Interpreter) finishItem(f *frame) {
	if n := len(f.items); n > 0 {
		f.items[n-1].Body = i.collect(f.out)
	}
	f.out = nil
}
