package interp

import (
	"math"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/length"
)

// Document is the result of a run.
type Document struct {
	Body       []*html.Node
	Marginpars []*html.Node
	// Title is the text of \title once \maketitle ran.
	Title string
	Lang  string
	// Class names the stylesheet of the document class.
	Class string
	Vars  []dom.Var
	// Styles holds CSS added by packages.
	Styles   []string
	Warnings []Diagnostic
}

// Page returns the document as a complete page description.
func (d *Document) Page(title string, stylesheets, scripts []string) dom.Page {
	if d.Title != "" {
		title = d.Title
	}
	return dom.Page{
		Title:       title,
		Lang:        d.Lang,
		Stylesheets: stylesheets,
		Scripts:     scripts,
		Vars:        d.Vars,
		Body:        d.Body,
		Marginpars:  d.Marginpars,
	}
}

func (i *Interpreter) document() (*Document, error) {
	body := i.collect(i.frames[0].out)
	i.fillTOC()
	for _, name := range i.refs.Undefined() {
		i.Warn("reference '%s' undefined", name)
	}
	vars, err := i.geometryVars()
	if err != nil {
		return nil, err
	}
	return &Document{
		Body:       body,
		Marginpars: i.marginpars,
		Title:      i.docTitle,
		Lang:       i.lang.String(),
		Class:      i.class.CSS(),
		Vars:       vars,
		Styles:     i.styles,
		Warnings:   i.diags,
	}, nil
}

// geometryVars expresses the page geometry as CSS custom properties:
// widths relative to the paper, the font size and margin note spacing.
func (i *Interpreter) geometryVars() ([]dom.Var, error) {
	get := func(names ...string) ([]length.Length, error) {
		out := make([]length.Length, len(names))
		for j, n := range names {
			l, err := i.scope.Length(n)
			if err != nil {
				return nil, err
			}
			out[j] = l
		}
		return out, nil
	}
	ls, err := get("@@size", "textwidth", "paperwidth", "oddsidemargin", "marginparwidth", "marginparsep", "marginparpush")
	if err != nil {
		return nil, err
	}
	size, textwidth, paper, odd, mpwidth, mpsep, mppush := ls[0], ls[1], ls[2], ls[3], ls[4], ls[5], ls[6]
	f := i.b.Format()

	tw, err := textwidth.Ratio(paper)
	if err != nil {
		return nil, err
	}
	left, err := odd.Add(length.MustNew(1, "in"))
	if err != nil {
		return nil, err
	}
	lw, err := left.Ratio(paper)
	if err != nil {
		return nil, err
	}
	twp, mlwp := 100*tw, 100*lw
	mrwp := math.Max(100-twp-mlwp, 0)

	mpwp := "0px"
	if mrwp > 0 {
		r, err := mpwidth.Ratio(paper)
		if err != nil {
			return nil, err
		}
		mpwp = f.Number(100*100*r/mrwp) + "%"
	}

	return []dom.Var{
		{Name: "--size", Value: f.Format(size)},
		{Name: "--textwidth", Value: f.Number(twp) + "%"},
		{Name: "--marginleftwidth", Value: f.Number(mlwp) + "%"},
		{Name: "--marginrightwidth", Value: f.Number(mrwp) + "%"},
		{Name: "--marginparwidth", Value: mpwp},
		{Name: "--marginparsep", Value: f.Format(mpsep)},
		{Name: "--marginparpush", Value: f.Format(mppush)},
	}, nil
}

// titleText flattens a title fragment for the document head.
func titleText(n *html.Node) string {
	return strings.Join(strings.Fields(dom.TextContent(n)), " ")
}
