package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Var is a CSS custom property set on the root element.
type Var struct {
	Name  string
	Value string
}

// Page describes a complete output document.
type Page struct {
	Title       string
	Lang        string
	Stylesheets []string // hrefs
	Scripts     []string // srcs
	Vars        []Var
	Body        []*html.Node
	Marginpars  []*html.Node
}

// Document assembles a full HTML document: head with stylesheets and
// scripts, a div.body with the content and, when there are marginal notes,
// a div.margin-right holding them.
func (b *Builder) Document(p Page) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := b.Element("html", "")
	if p.Lang != "" {
		SetAttr(root, "lang", p.Lang)
	}
	if len(p.Vars) > 0 {
		decls := make([]string, len(p.Vars))
		for i, v := range p.Vars {
			decls[i] = v.Name + ":" + v.Value
		}
		SetAttr(root, "style", strings.Join(decls, ";"))
	}
	doc.AppendChild(root)

	head := b.Element("head", "")
	meta := b.Element("meta", "")
	SetAttr(meta, "charset", "UTF-8")
	head.AppendChild(meta)
	head.AppendChild(b.Element("title", "", b.RawText(p.Title)))
	for _, href := range p.Stylesheets {
		link := b.Element("link", "")
		SetAttr(link, "rel", "stylesheet")
		SetAttr(link, "href", href)
		head.AppendChild(link)
	}
	for _, src := range p.Scripts {
		s := b.Element("script", "")
		SetAttr(s, "src", src)
		head.AppendChild(s)
	}
	root.AppendChild(head)

	body := b.Element("body", "")
	body.AppendChild(b.Element("div", "body", p.Body...))
	if len(p.Marginpars) > 0 {
		notes := b.Element("div", "marginpar", p.Marginpars...)
		body.AppendChild(b.Element("div", "margin-right", notes))
	}
	root.AppendChild(body)
	return doc
}
