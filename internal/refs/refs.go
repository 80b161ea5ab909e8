// Package refs binds \label names to anchors and resolves \ref, including
// references that appear before their label.
package refs

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/net/html"
)

// ErrDuplicateLabel reports a label defined twice.
var ErrDuplicateLabel = errors.New("label already defined")

// Placeholder is the text of a reference whose label is still unknown.
const Placeholder = "??"

// Backend creates the nodes references are made of.
type Backend interface {
	Link(href string, children ...*html.Node) *html.Node
	Text(s string) *html.Node
	Clone(n *html.Node) *html.Node
}

// Target is what a label points at: an anchor id and the text shown by
// references to it.
type Target struct {
	ID   string
	Text *html.Node
}

// Table holds bound labels and unresolved references.
type Table struct {
	b       Backend
	labels  map[string]Target
	pending map[string][]*html.Node
}

// NewTable creates an empty table.
func NewTable(b Backend) *Table {
	return &Table{
		b:       b,
		labels:  make(map[string]Target),
		pending: make(map[string][]*html.Node),
	}
}

// SetLabel binds name to t and patches every reference made to it so far.
func (t *Table) SetLabel(name string, target Target) error {
	if _, ok := t.labels[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateLabel, name)
	}
	t.labels[name] = target

	for _, link := range t.pending[name] {
		for c := link.FirstChild; c != nil; c = link.FirstChild {
			link.RemoveChild(c)
		}
		appendFlat(link, t.content(target))
		setAttr(link, "href", "#"+target.ID)
	}
	delete(t.pending, name)
	return nil
}

// Lookup returns the target bound to name.
func (t *Table) Lookup(name string) (Target, bool) {
	target, ok := t.labels[name]
	return target, ok
}

// Ref returns a link to name. An unknown label yields a placeholder link
// that is patched when the label is set.
func (t *Table) Ref(name string) *html.Node {
	if target, ok := t.labels[name]; ok {
		return t.b.Link("#"+target.ID, t.content(target))
	}
	link := t.b.Link("#", t.b.Text(Placeholder))
	t.pending[name] = append(t.pending[name], link)
	return link
}

// Undefined returns the names referenced but never labeled, sorted.
func (t *Table) Undefined() []string {
	return slices.Sorted(maps.Keys(t.pending))
}

func (t *Table) content(target Target) *html.Node {
	if target.Text == nil {
		return t.b.Text("")
	}
	return t.b.Clone(target.Text)
}

// appendFlat appends child, or its children if it is a fragment.
func appendFlat(parent, child *html.Node) {
	if child.Type != html.DocumentNode {
		parent.AppendChild(child)
		return
	}
	for c := child.FirstChild; c != nil; c = child.FirstChild {
		child.RemoveChild(c)
		parent.AppendChild(c)
	}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
