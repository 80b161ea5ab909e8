package geometry

import (
	"fmt"
	"strings"

	"github.com/alnah/go-tex2html/internal/length"
)

// Attr is an SVG attribute.
type Attr struct {
	Key, Val string
}

// Element is a backend-neutral SVG element.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Element
}

// Get returns the value of attribute key, or "".
func (e Element) Get(key string) string {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Drawing is a self-contained picture object. Coordinates are relative to
// the point it is put at, with y pointing up.
type Drawing struct {
	Box    BBox
	Defs   []Element
	Shapes []Element
}

// Pen carries the stroke settings shared by all shapes.
type Pen struct {
	Thickness float64 // stroke width in px
	Format    length.Formatter
}

func (p Pen) num(v float64) string { return p.Format.Number(v) }

func (p Pen) px(v float64) string { return p.Format.Number(v) + "px" }

func (p Pen) stroke() []Attr {
	return []Attr{
		{Key: "stroke", Val: "#000"},
		{Key: "stroke-width", Val: p.num(p.Thickness)},
	}
}

// Offset returns the CSS placement of the drawing's box relative to its
// reference point.
func (d Drawing) Offset(p Pen) string {
	return fmt.Sprintf("left:%s;bottom:%s", p.px(d.Box.X), p.px(d.Box.Y))
}

// SVG renders the drawing as an <svg> element sized to its box. The
// content is flipped vertically so that y points up.
func (d Drawing) SVG(p Pen) Element {
	b := d.Box
	svg := Element{
		Name: "svg",
		Attrs: []Attr{
			{Key: "xmlns", Val: "http://www.w3.org/2000/svg"},
			{Key: "version", Val: "1.1"},
			{Key: "width", Val: p.num(b.Width)},
			{Key: "height", Val: p.num(b.Height)},
			{Key: "viewBox", Val: strings.Join([]string{p.num(b.X), p.num(b.Y), p.num(b.Width), p.num(b.Height)}, " ")},
			{Key: "transform", Val: "matrix(1,0,0,-1,0,0)"},
		},
	}
	if len(d.Defs) > 0 {
		svg.Children = append(svg.Children, Element{Name: "defs", Children: d.Defs})
	}
	svg.Children = append(svg.Children, d.Shapes...)
	return svg
}
