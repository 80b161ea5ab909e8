package geometry

import (
	"fmt"
	"math"
)

// MaxBezierDashes mirrors \qbeziermax: the upper bound on dashes per curve.
const MaxBezierDashes = 500

// flatness is the subdivision tolerance in px for curve length estimation.
const flatness = 1e-3

// QBezier builds a quadratic Bézier curve from a through control point c to b.
// With n > 0 the curve is dashed into n+1 dots of pen width.
func QBezier(a, c, b Point, n int, p Pen) Drawing {
	c1 := Point{X: a.X + 2*(c.X-a.X)/3, Y: a.Y + 2*(c.Y-a.Y)/3}
	c2 := Point{X: b.X + 2*(c.X-b.X)/3, Y: b.Y + 2*(c.Y-b.Y)/3}
	d := fmt.Sprintf("M%s,%s Q%s,%s %s,%s",
		p.num(a.X), p.num(a.Y), p.num(c.X), p.num(c.Y), p.num(b.X), p.num(b.Y))
	return bezierPath(d, [4]Point{a, c1, c2, b}, n, p)
}

// CBezier builds a cubic Bézier curve from a to b with control points c1, c2.
func CBezier(a, c1, c2, b Point, n int, p Pen) Drawing {
	d := fmt.Sprintf("M%s,%s C%s,%s %s,%s %s,%s",
		p.num(a.X), p.num(a.Y), p.num(c1.X), p.num(c1.Y),
		p.num(c2.X), p.num(c2.Y), p.num(b.X), p.num(b.Y))
	return bezierPath(d, [4]Point{a, c1, c2, b}, n, p)
}

func bezierPath(d string, pts [4]Point, n int, p Pen) Drawing {
	attrs := append([]Attr{{Key: "d", Val: d}, {Key: "fill", Val: "none"}}, p.stroke()...)
	if n > 0 {
		n = min(n, MaxBezierDashes-1)
		gap := (curveLength(pts) - float64(n+1)*p.Thickness) / float64(n)
		if gap > 0 {
			attrs = append(attrs,
				Attr{Key: "stroke-dasharray", Val: p.num(p.Thickness) + " " + p.num(gap)},
				Attr{Key: "stroke-linecap", Val: "round"})
		}
	}
	return Drawing{
		Box:    cubicBounds(pts).Expand(p.Thickness / 2),
		Shapes: []Element{{Name: "path", Attrs: attrs}},
	}
}

// curveLength estimates the arc length of a cubic by adaptive subdivision.
func curveLength(pts [4]Point) float64 {
	chord := pts[0].Distance(pts[3])
	poly := pts[0].Distance(pts[1]) + pts[1].Distance(pts[2]) + pts[2].Distance(pts[3])
	if poly-chord < flatness {
		return (chord + poly) / 2
	}
	l, r := split(pts)
	return curveLength(l) + curveLength(r)
}

// split divides a cubic at t = 0.5 (de Casteljau).
func split(p [4]Point) ([4]Point, [4]Point) {
	mid := func(a, b Point) Point { return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2} }
	p01, p12, p23 := mid(p[0], p[1]), mid(p[1], p[2]), mid(p[2], p[3])
	p012, p123 := mid(p01, p12), mid(p12, p23)
	m := mid(p012, p123)
	return [4]Point{p[0], p01, p012, m}, [4]Point{m, p123, p23, p[3]}
}

// cubicBounds returns the tight bounding box of a cubic curve.
func cubicBounds(p [4]Point) BBox {
	ps := []Point{p[0], p[3]}
	xs := extrema(p[0].X, p[1].X, p[2].X, p[3].X)
	ys := extrema(p[0].Y, p[1].Y, p[2].Y, p[3].Y)
	for _, t := range append(xs, ys...) {
		ps = append(ps, at(p, t))
	}
	return NewBBoxFromPoints(ps...)
}

func at(p [4]Point, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p[0].X + b*p[1].X + c*p[2].X + d*p[3].X,
		Y: a*p[0].Y + b*p[1].Y + c*p[2].Y + d*p[3].Y,
	}
}

// extrema returns the parameters in (0,1) where one coordinate of a cubic
// has zero derivative.
func extrema(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0
	var ts []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	if math.Abs(a) < 1e-12 {
		if b != 0 {
			add(-c / b)
		}
		return ts
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return ts
	}
	sq := math.Sqrt(disc)
	add((-b + sq) / (2 * a))
	add((-b - sq) / (2 * a))
	return ts
}
