package interp

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/docclass"
	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/refs"
	"github.com/alnah/go-tex2html/internal/scope"
)

// headings maps sectioning commands to their elements.
var headings = map[string]string{
	"part":          "div",
	"chapter":       "h1",
	"section":       "h2",
	"subsection":    "h3",
	"subsubsection": "h4",
	"paragraph":     "h5",
	"subparagraph":  "h6",
}

// tocEntry is a numbered heading listed in the table of contents.
type tocEntry struct {
	kind   string
	level  int
	id     string
	number string
	title  *html.Node
}

// StartSection implements a sectioning command of the given level.
//
// Without toc and title it only steps the counter of a numbered section
// and makes it the current label target. Otherwise it returns the
// heading: numbered when not starred, within secnumdepth and, for books,
// within the main matter.
func (i *Interpreter) StartSection(kind string, level int, star bool, toc, title *html.Node) (*html.Node, error) {
	depth, err := i.counters.Get("secnumdepth")
	if err != nil {
		return nil, err
	}
	numbered := !star && level <= depth
	if m, ok := i.class.(docclass.Matters); ok && !m.Numbered(kind) {
		numbered = false
	}

	if toc == nil && title == nil {
		if !numbered {
			return nil, nil
		}
		if err := i.counters.Step(kind); err != nil {
			return nil, err
		}
		_, err := i.RefCounter(kind, i.nextLabel("sec"))
		return nil, err
	}

	tag, ok := headings[kind]
	if !ok {
		tag = "div"
	}
	cls := ""
	if tag == "div" {
		cls = kind
	}
	if !numbered {
		return i.b.Element(tag, cls, title), nil
	}

	num, err := i.Macro("the" + kind)
	if err != nil {
		return nil, err
	}
	number := ""
	for _, n := range num {
		number += dom.TextContent(n)
	}

	tocTitle := toc
	if tocTitle == nil {
		tocTitle = title
	}
	tocTitle = dom.Clone(tocTitle)

	var el *html.Node
	if kind == "chapter" {
		name, err := i.Macro("chaptername")
		if err != nil {
			return nil, err
		}
		head := i.b.Element("div", "", name...)
		dom.Append(head, i.b.Text(" "))
		dom.Append(head, num...)
		el = i.b.Element(tag, cls, head, title)
	} else {
		el = i.b.Element(tag, cls, num...)
		dom.Append(el, i.b.RawText("\u2003"), title)
	}

	id := i.scope.CurrentLabel().ID
	if id != "" {
		dom.SetAttr(el, "id", id)
	}
	if tocdepth, err := i.counters.Get("tocdepth"); err == nil && level <= tocdepth && id != "" {
		i.toc = append(i.toc, tocEntry{kind: kind, level: level, id: id, number: number, title: tocTitle})
	}
	return el, nil
}

// RefCounter makes counter c the target of the next \label. With an empty
// id a fresh one is generated and an anchor carrying it is returned.
func (i *Interpreter) RefCounter(c, id string) (*html.Node, error) {
	var anchor *html.Node
	if id == "" {
		id = i.nextLabel(c)
		anchor = i.b.Anchor(id)
	}
	var text []*html.Node
	if i.macros.Has("p@" + c) {
		prefix, err := i.Macro("p@" + c)
		if err != nil {
			return nil, err
		}
		text = append(text, prefix...)
	}
	the, err := i.Macro("the" + c)
	if err != nil {
		return nil, err
	}
	text = append(text, the...)
	i.scope.SetCurrentLabel(scope.Label{ID: id, Text: i.b.Fragment(text...)})
	return anchor, nil
}

// SetLabel binds name to the current label target.
func (i *Interpreter) SetLabel(name string) error {
	cur := i.scope.CurrentLabel()
	if cur.ID == "" {
		i.Warn(`no \@currentlabel available for label %s`, name)
	}
	return i.refs.SetLabel(name, refs.Target{ID: cur.ID, Text: cur.Text})
}

// Ref returns a link to label name. Labels set later are patched in.
func (i *Interpreter) Ref(name string) *html.Node {
	return i.refs.Ref(name)
}

// Marginpar moves content to the margin column and returns the reference
// point left in the text.
func (i *Interpreter) Marginpar(content *html.Node) *html.Node {
	id := i.NextID()
	note := i.b.Element("div", "", i.b.Element("span", "mpbaseline"), content)
	dom.SetAttr(note, "id", fmt.Sprint(id))
	i.marginpars = append(i.marginpars, note)

	ref := i.b.Element("span", "mpbaseline")
	dom.SetAttr(ref, "id", fmt.Sprintf("marginref-%d", id))
	return ref
}

// tableOfContents returns a placeholder filled when the document ends.
func (i *Interpreter) tableOfContents() *html.Node {
	n := i.b.Element("div", "toc")
	i.tocNodes = append(i.tocNodes, n)
	return n
}

// fillTOC writes the collected entries into every placeholder.
func (i *Interpreter) fillTOC() {
	for _, n := range i.tocNodes {
		for _, e := range i.toc {
			link := i.b.Link("#"+e.id,
				i.b.Element("span", "toc-number", i.b.RawText(e.number)),
				i.b.RawText("\u2003"),
				dom.Clone(e.title),
			)
			n.AppendChild(i.b.Element("div", "toc-"+e.kind, link))
		}
	}
}
