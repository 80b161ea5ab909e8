package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InlineStyles appends a <style> block per stylesheet to the head of doc.
// Without a head the blocks go first in body, and without either they are
// prepended to doc. Empty stylesheets are skipped.
func InlineStyles(doc *html.Node, stylesheets ...string) {
	parent, before := styleTarget(doc)
	for _, css := range stylesheets {
		if strings.TrimSpace(css) == "" {
			continue
		}
		style := &html.Node{Type: html.ElementNode, Data: "style", DataAtom: atom.Style}
		style.AppendChild(&html.Node{Type: html.TextNode, Data: sanitizeCSS(css)})
		parent.InsertBefore(style, before)
	}
}

// styleTarget returns where style blocks go: the end of head, or else the
// start of body or of doc itself.
func styleTarget(doc *html.Node) (parent, before *html.Node) {
	if head := find(doc, atom.Head); head != nil {
		return head, nil
	}
	if body := find(doc, atom.Body); body != nil {
		return body, body.FirstChild
	}
	return doc, doc.FirstChild
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && (n.DataAtom == a || n.Data == a.String()) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := find(c, a); f != nil {
			return f
		}
	}
	return nil
}

// sanitizeCSS escapes sequences that could close the <style> block early.
// Style content is raw text, so the renderer does not escape it.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
