package geometry

import (
	"fmt"
	"math"

	"github.com/alnah/go-tex2html/internal/length"
)

// Arrowhead proportions in units of the stroke width.
const (
	arrowHeadLength = 6.5
	arrowHeadWidth  = 3.9
)

// arrowRefThickness is the stroke width below which the arrowhead stops
// shrinking.
var arrowRefThickness = length.Pt(0.6)

// DefaultMaxOvalRadius caps the corner radius of \oval.
var DefaultMaxOvalRadius = length.Pt(20 * 72.27 / 96)

// Line builds a straight segment from a to b.
func Line(a, b Point, p Pen) Drawing {
	return Drawing{
		Box: NewBBoxFromPoints(a, b).Expand(p.Thickness / 2),
		Shapes: []Element{{
			Name: "line",
			Attrs: append([]Attr{
				{Key: "x1", Val: p.num(a.X)}, {Key: "y1", Val: p.num(a.Y)},
				{Key: "x2", Val: p.num(b.X)}, {Key: "y2", Val: p.num(b.Y)},
			}, p.stroke()...),
		}},
	}
}

// Arrow builds a segment from a to b with an arrowhead at b. The shaft is
// shortened by half the head length so the tip lands on b; a shaft shorter
// than that is moved backwards instead. id names the marker definition and
// must be unique within the document.
func Arrow(a, b Point, p Pen, id string) (Drawing, error) {
	hl, hw := arrowHeadLength, arrowHeadWidth
	refPx, _ := arrowRefThickness.Px()
	if p.Thickness > 0 && p.Thickness < refPx {
		scale := refPx / p.Thickness
		hl = p.Format.Round(hl * scale)
		hw = p.Format.Round(hw * scale)
	}
	hhl := p.Thickness * hl / 2

	d := b.Sub(a)
	if d.X == 0 && d.Y == 0 {
		return Drawing{}, fmt.Errorf("%w: zero-length arrow", ErrIllegalGeometry)
	}
	seg := NewVector(length.FromPx(d.X), length.FromPx(d.Y))
	start := a
	if a.Distance(b) < hhl {
		s, err := seg.ShiftStart(length.FromPx(hhl))
		if err != nil {
			return Drawing{}, err
		}
		sp, _ := s.Point()
		start = Point{X: a.X + sp.X, Y: a.Y + sp.Y}
	}
	e, err := seg.ShiftEnd(length.FromPx(-hhl))
	if err != nil {
		return Drawing{}, err
	}
	ep, _ := e.Point()
	end := Point{X: a.X + ep.X, Y: a.Y + ep.Y}

	marker := Element{
		Name: "marker",
		Attrs: []Attr{
			{Key: "id", Val: id},
			{Key: "markerWidth", Val: p.num(hl)},
			{Key: "markerHeight", Val: p.num(hw)},
			{Key: "viewBox", Val: fmt.Sprintf("0 0 %s %s", p.num(hl), p.num(hw))},
			{Key: "refX", Val: p.num(hl / 2)},
			{Key: "refY", Val: p.num(hw / 2)},
			{Key: "orient", Val: "auto"},
		},
		Children: []Element{{
			Name: "path",
			Attrs: []Attr{{Key: "d", Val: fmt.Sprintf("M0,0 Q%s,%s %s,%s Q%s,%s 0,%s z",
				p.num(2*hl/3), p.num(hw/2), p.num(hl), p.num(hw/2),
				p.num(2*hl/3), p.num(hw/2), p.num(hw))}},
		}},
	}

	shaft := Line(start, end, p)
	shaft.Shapes[0].Attrs = append(shaft.Shapes[0].Attrs, Attr{Key: "marker-end", Val: "url(#" + id + ")"})
	return Drawing{
		Box:    NewBBoxFromPoints(start, b).Expand(p.Thickness/2 + hhl),
		Defs:   []Element{marker},
		Shapes: shaft.Shapes,
	}, nil
}

// Circle builds a circle of diameter d centered on the origin.
func Circle(d float64, filled bool, p Pen) Drawing {
	r := d / 2
	attrs := []Attr{{Key: "cx", Val: "0"}, {Key: "cy", Val: "0"}, {Key: "r", Val: p.num(r)}}
	box := BBox{X: -r, Y: -r, Width: d, Height: d}
	if filled {
		attrs = append(attrs, Attr{Key: "fill", Val: "#000"})
	} else {
		attrs = append(attrs, Attr{Key: "fill", Val: "none"})
		attrs = append(attrs, p.stroke()...)
		box = box.Expand(p.Thickness / 2)
	}
	return Drawing{Box: box, Shapes: []Element{{Name: "circle", Attrs: attrs}}}
}

// Oval builds a rounded rectangle of size w×h centered on the origin.
// part selects quadrants or halves with any of "l", "r", "t", "b"; an
// empty part draws the whole oval. id names the clip path.
func Oval(w, h, maxRadius float64, part string, p Pen, id string) Drawing {
	r := math.Min(math.Min(w, h)/2, maxRadius)
	full := BBox{X: -w / 2, Y: -h / 2, Width: w, Height: h}
	box := full.Expand(p.Thickness / 2)

	rect := Element{
		Name: "rect",
		Attrs: append([]Attr{
			{Key: "x", Val: p.num(full.X)}, {Key: "y", Val: p.num(full.Y)},
			{Key: "width", Val: p.num(w)}, {Key: "height", Val: p.num(h)},
			{Key: "rx", Val: p.num(r)}, {Key: "ry", Val: p.num(r)},
			{Key: "fill", Val: "none"},
		}, p.stroke()...),
	}

	clip, ok := ovalClip(box, part)
	if !ok {
		return Drawing{Box: box, Shapes: []Element{rect}}
	}
	rect.Attrs = append(rect.Attrs, Attr{Key: "clip-path", Val: "url(#" + id + ")"})
	cp := Element{
		Name:  "clipPath",
		Attrs: []Attr{{Key: "id", Val: id}},
		Children: []Element{{
			Name: "rect",
			Attrs: []Attr{
				{Key: "x", Val: p.num(clip.X)}, {Key: "y", Val: p.num(clip.Y)},
				{Key: "width", Val: p.num(clip.Width)}, {Key: "height", Val: p.num(clip.Height)},
			},
		}},
	}
	return Drawing{Box: clip, Defs: []Element{cp}, Shapes: []Element{rect}}
}

// ovalClip intersects box with the half-planes selected by part.
func ovalClip(box BBox, part string) (BBox, bool) {
	clip, used := box, false
	for _, c := range part {
		var half BBox
		switch c {
		case 'l':
			half = BBox{X: box.X, Y: box.Y, Width: -box.X, Height: box.Height}
		case 'r':
			half = BBox{X: 0, Y: box.Y, Width: box.Right(), Height: box.Height}
		case 't':
			half = BBox{X: box.X, Y: 0, Width: box.Width, Height: box.Top()}
		case 'b':
			half = BBox{X: box.X, Y: box.Y, Width: box.Width, Height: -box.Y}
		default:
			continue
		}
		clip, used = clip.Intersect(half), true
	}
	return clip, used
}
