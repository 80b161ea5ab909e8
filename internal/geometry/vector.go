// Package geometry provides the vector math and SVG shape building used by
// the picture environment.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/alnah/go-tex2html/internal/length"
)

// ErrIllegalGeometry reports a degenerate input such as a zero slope.
var ErrIllegalGeometry = errors.New("illegal geometry")

// Vector is a pair of lengths.
type Vector struct {
	X, Y length.Length
}

// NewVector creates a vector from two lengths.
func NewVector(x, y length.Length) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + o.
func (v Vector) Add(o Vector) (Vector, error) {
	x, err := v.X.Add(o.X)
	if err != nil {
		return Vector{}, err
	}
	y, err := v.Y.Add(o.Y)
	if err != nil {
		return Vector{}, err
	}
	return Vector{X: x, Y: y}, nil
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) (Vector, error) {
	x, err := v.X.Sub(o.X)
	if err != nil {
		return Vector{}, err
	}
	y, err := v.Y.Sub(o.Y)
	if err != nil {
		return Vector{}, err
	}
	return Vector{X: x, Y: y}, nil
}

// Mul scales both components.
func (v Vector) Mul(s float64) Vector {
	return Vector{X: v.X.Mul(s), Y: v.Y.Mul(s)}
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() (length.Length, error) {
	return v.X.Norm(v.Y)
}

// Point converts an absolute vector to pixel coordinates.
func (v Vector) Point() (Point, error) {
	x, err := v.X.Px()
	if err != nil {
		return Point{}, err
	}
	y, err := v.Y.Px()
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// direction returns the unit direction of v as plain numbers.
func (v Vector) direction() (float64, float64, error) {
	if v.X.Unit() != v.Y.Unit() {
		return 0, 0, fmt.Errorf("%w: %s and %s", length.ErrUnitMismatch, v.X.Unit(), v.Y.Unit())
	}
	x, y := v.X.Value(), v.Y.Value()
	switch {
	case x == 0 && y == 0:
		return 0, 0, fmt.Errorf("%w: zero vector has no direction", ErrIllegalGeometry)
	case x == 0:
		return 0, math.Copysign(1, y), nil
	case y == 0:
		return math.Copysign(1, x), 0, nil
	}
	n := math.Hypot(x, y)
	return x / n, y / n, nil
}

// ShiftStart treats v as a segment from the origin to v and returns the
// start point moved by l against the segment's direction. A negative l
// moves it forward.
func (v Vector) ShiftStart(l length.Length) (Vector, error) {
	dx, dy, err := v.direction()
	if err != nil {
		return Vector{}, err
	}
	return Vector{X: l.Mul(-dx), Y: l.Mul(-dy)}, nil
}

// ShiftEnd treats v as a segment from the origin to v and returns the end
// point extended by l along the segment's direction. A negative l shortens
// the segment.
func (v Vector) ShiftEnd(l length.Length) (Vector, error) {
	dx, dy, err := v.direction()
	if err != nil {
		return Vector{}, err
	}
	return v.Add(Vector{X: l.Mul(dx), Y: l.Mul(dy)})
}

// SlopeToSegment converts a picture-mode slope (sx, sy) and a length into
// the segment's end vector. For vertical slopes l is the y extent,
// otherwise it is the x extent.
func SlopeToSegment(sx, sy float64, l length.Length) (Vector, error) {
	if sx == 0 && sy == 0 {
		return Vector{}, fmt.Errorf("%w: slope (0,0)", ErrIllegalGeometry)
	}
	if l.IsRelative() {
		return Vector{}, fmt.Errorf("%w: relative length %s", length.ErrRelativeLength, l.Unit())
	}
	if sx == 0 {
		return Vector{X: length.Zero, Y: l.Mul(math.Copysign(1, sy))}, nil
	}
	x := l.Mul(math.Copysign(1, sx))
	y := l.Mul(math.Abs(sy/sx) * sign(sy))
	return Vector{X: x, Y: y}, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
