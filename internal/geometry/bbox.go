package geometry

import "math"

// Point is a position in CSS pixels with y pointing up.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// BBox is an axis-aligned box in CSS pixels.
type BBox struct {
	X      float64 // Left
	Y      float64 // Bottom
	Width  float64
	Height float64
}

// NewBBoxFromPoints creates the smallest box containing all points.
func NewBBoxFromPoints(ps ...Point) BBox {
	if len(ps) == 0 {
		return BBox{}
	}
	minX, minY := ps[0].X, ps[0].Y
	maxX, maxY := minX, minY
	for _, p := range ps[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Right returns the right edge.
func (b BBox) Right() float64 { return b.X + b.Width }

// Top returns the top edge.
func (b BBox) Top() float64 { return b.Y + b.Height }

// Expand grows the box by m on every side.
func (b BBox) Expand(m float64) BBox {
	return BBox{X: b.X - m, Y: b.Y - m, Width: b.Width + 2*m, Height: b.Height + 2*m}
}

// Intersect returns the overlap of two boxes. Disjoint boxes give an empty
// box positioned at the overlap's corner.
func (b BBox) Intersect(o BBox) BBox {
	x := math.Max(b.X, o.X)
	y := math.Max(b.Y, o.Y)
	w := math.Max(0, math.Min(b.Right(), o.Right())-x)
	h := math.Max(0, math.Min(b.Top(), o.Top())-y)
	return BBox{X: x, Y: y, Width: w, Height: h}
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(o BBox) BBox {
	return NewBBoxFromPoints(
		Point{X: b.X, Y: b.Y}, Point{X: b.Right(), Y: b.Top()},
		Point{X: o.X, Y: o.Y}, Point{X: o.Right(), Y: o.Top()},
	)
}
