// Package dom builds the HTML output tree on golang.org/x/net/html nodes.
//
// Fragments are represented by html.DocumentNode values; Append splices
// their children into the parent the way DOM document fragments behave.
package dom

import (
	"bytes"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-tex2html/internal/geometry"
	"github.com/alnah/go-tex2html/internal/length"
)

// Class names shared with the stylesheets.
const (
	ClassList          = "list"
	ClassQuote         = "quote"
	ClassQuotation     = "quotation"
	ClassVerse         = "verse"
	ClassItemLabel     = "itemlabel"
	ClassHBox          = "hbox"
	ClassVSpace        = "vspace"
	ClassHSpace        = "hspace"
	ClassContinue      = "continue"
	ClassNoIndent      = "noindent"
	ClassPicture       = "picture"
	ClassPictureCanvas = "picture-canvas"
	ClassPictureObject = "picture-object"
	ClassMarginpar     = "marginpar"
)

// Hyphenator inserts soft hyphens into running text.
type Hyphenator func(text string) string

// Builder creates nodes. The zero value is not usable; call New.
type Builder struct {
	format    length.Formatter
	hyphenate Hyphenator
}

// Option configures a Builder.
type Option func(*Builder)

// WithPrecision sets the number of decimals for pixel values.
func WithPrecision(p int) Option {
	return func(b *Builder) { b.format.Precision = p }
}

// WithHyphenator installs a hyphenation hook for text nodes.
func WithHyphenator(h Hyphenator) Option {
	return func(b *Builder) { b.hyphenate = h }
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{format: length.Formatter{Precision: length.DefaultPrecision}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Format returns the length formatter in use.
func (b *Builder) Format() length.Formatter { return b.format }

// Element creates an element with optional classes and children.
func (b *Builder) Element(tag, classes string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if classes = strings.TrimSpace(classes); classes != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: classes})
	}
	Append(n, children...)
	return n
}

// Text creates a text node, hyphenated if a hyphenator is installed.
func (b *Builder) Text(s string) *html.Node {
	if b.hyphenate != nil {
		s = b.hyphenate(s)
	}
	return &html.Node{Type: html.TextNode, Data: s}
}

// RawText creates a text node without hyphenation.
func (b *Builder) RawText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Fragment groups nodes without a wrapping element.
func (b *Builder) Fragment(children ...*html.Node) *html.Node {
	f := &html.Node{Type: html.DocumentNode}
	Append(f, children...)
	return f
}

// Anchor creates an empty link target.
func (b *Builder) Anchor(id string) *html.Node {
	a := b.Element("a", "")
	SetAttr(a, "id", id)
	return a
}

// Link creates a hyperlink around children.
func (b *Builder) Link(href string, children ...*html.Node) *html.Node {
	a := b.Element("a", "", children...)
	SetAttr(a, "href", href)
	return a
}

// Image creates an image sized by CSS lengths. Empty sizes are omitted.
func (b *Builder) Image(width, height, url string) *html.Node {
	img := b.Element("img", "")
	SetAttr(img, "src", url)
	var style []string
	if width != "" {
		style = append(style, "width:"+width)
	}
	if height != "" {
		style = append(style, "height:"+height)
	}
	if len(style) > 0 {
		SetAttr(img, "style", strings.Join(style, ";"))
	}
	return img
}

// VSpace creates a vertical space of length l.
func (b *Builder) VSpace(l length.Length) *html.Node {
	s := b.Element("span", ClassVSpace)
	SetAttr(s, "style", "margin-bottom:"+b.format.Format(l))
	return s
}

// VSkip creates a named vertical skip (smallskip, medskip, bigskip).
func (b *Builder) VSkip(name string) *html.Node {
	return b.Element("span", ClassVSpace+" "+name)
}

// HSpace creates a horizontal space of length l.
func (b *Builder) HSpace(l length.Length) *html.Node {
	s := b.Element("span", ClassHSpace)
	SetAttr(s, "style", "margin-right:"+b.format.Format(l))
	return s
}

// Picture creates the container of a picture environment. offset shifts
// the canvas; content holds the positioned objects.
func (b *Builder) Picture(width, height length.Length, offset *geometry.Vector, content ...*html.Node) *html.Node {
	canvas := b.Element("span", ClassPictureCanvas, content...)
	if offset != nil {
		SetAttr(canvas, "style", "left:"+b.format.Format(offset.X.Neg())+";bottom:"+b.format.Format(offset.Y.Neg()))
	}
	pic := b.Element("span", ClassPicture, canvas)
	SetAttr(pic, "style", "width:"+b.format.Format(width)+";height:"+b.format.Format(height))
	return pic
}

// SVG converts a drawing element tree into SVG nodes.
func (b *Builder) SVG(e geometry.Element) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: e.Name, Namespace: "svg"}
	for _, a := range e.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range e.Children {
		n.AppendChild(b.SVG(c))
	}
	return n
}

// Drawing wraps a drawing into a positioned picture object.
func (b *Builder) Drawing(d geometry.Drawing, pen geometry.Pen) *html.Node {
	obj := b.Element("span", ClassPictureObject, b.SVG(d.SVG(pen)))
	SetAttr(obj, "style", d.Offset(pen))
	return obj
}

// Clone returns a deep copy of n.
func (b *Builder) Clone(n *html.Node) *html.Node { return Clone(n) }

// Clone returns a deep copy of n.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(Clone(ch))
	}
	return c
}

// Append adds children to parent, splicing fragments and skipping nil.
// Nodes still attached elsewhere are detached first.
func Append(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Type == html.DocumentNode {
			for ch := c.FirstChild; ch != nil; ch = c.FirstChild {
				c.RemoveChild(ch)
				parent.AppendChild(ch)
			}
			continue
		}
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		parent.AppendChild(c)
	}
}

// Children returns the direct children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Flatten returns the nodes of a fragment, or n itself otherwise.
func Flatten(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.DocumentNode {
		return Children(n)
	}
	return []*html.Node{n}
}

// Clear removes all children of n.
func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// Attr returns the value of attribute key.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets or replaces attribute key.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	return n != nil && n.Type == html.ElementNode && slices.Contains(strings.Fields(Attr(n, "class")), c)
}

// AddClass adds class c to n if missing.
func AddClass(n *html.Node, c string) {
	if HasClass(n, c) {
		return
	}
	cls := strings.TrimSpace(Attr(n, "class") + " " + c)
	SetAttr(n, "class", cls)
}

// AddStyle appends a CSS declaration to the style attribute.
func AddStyle(n *html.Node, decl string) {
	if s := Attr(n, "style"); s != "" {
		decl = strings.TrimSuffix(s, ";") + ";" + decl
	}
	SetAttr(n, "style", decl)
}

// TextContent returns the concatenated text below n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return sb.String()
}

// IsBlank reports whether n is a text node holding only whitespace.
func IsBlank(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// Render writes n as HTML.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// RenderString renders nodes to a string.
func RenderString(nodes ...*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// ParseFragment parses HTML markup in a <body> context.
func ParseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}
