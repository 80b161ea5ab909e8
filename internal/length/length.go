// Package length implements TeX-style lengths.
//
// Absolute lengths are stored in scaled points (sp), rounded to whole
// scaled points after every operation so that sums and differences are
// exact. Any other unit (em, ex, %, vw, ...) is kept symbolically and
// only combines with lengths of the same unit.
package length

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Canonical is the base unit absolute lengths are normalized to.
const Canonical = "sp"

// Sentinel errors for length arithmetic.
var (
	ErrUnitMismatch   = errors.New("incompatible length units")
	ErrUnknownUnit    = errors.New("unknown length unit")
	ErrRelativeLength = errors.New("relative length has no absolute size")
	ErrEmptyList      = errors.New("no lengths given")
	ErrSyntax         = errors.New("invalid length")
)

// Scaled points per unit.
var units = map[string]float64{
	"sp": 1,
	"pt": 65536,
	"bp": 65536 * 72.27 / 72,
	"pc": 65536 * 12,
	"dd": 65536.0 * 1238 / 1157,
	"cc": 65536.0 * 1238 / 1157 * 12,
	"in": 65536 * 72.27,
	"px": 65536 * 72.27 / 96,
	"mm": 65536.0 * 7227 / 2540,
	"cm": 65536.0 * 7227 / 254,
}

// spPerPx converts scaled points to CSS pixels.
var spPerPx = units["px"]

// Length is an immutable magnitude with a unit.
type Length struct {
	value float64
	unit  string
}

// Zero is the canonical zero length.
var Zero = Length{unit: Canonical}

// New creates a length. Absolute units are converted to scaled points;
// any other unit is stored as given. An empty or malformed unit yields
// ErrUnknownUnit.
func New(value float64, unit string) (Length, error) {
	if f, ok := units[unit]; ok {
		return Length{value: math.Round(value * f), unit: Canonical}, nil
	}
	if !validUnit(unit) {
		return Length{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return Length{value: value, unit: unit}, nil
}

// validUnit accepts "%" and names made of ASCII letters.
func validUnit(unit string) bool {
	if unit == "%" {
		return true
	}
	if unit == "" {
		return false
	}
	for i := 0; i < len(unit); i++ {
		c := unit[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// MustNew is like New but panics on a malformed unit. Intended for
// package-level tables with literal units.
func MustNew(value float64, unit string) Length {
	l, err := New(value, unit)
	if err != nil {
		panic(err)
	}
	return l
}

// Pt is shorthand for an absolute length in TeX points.
func Pt(v float64) Length { return MustNew(v, "pt") }

// Parse reads a length such as "12pt", "-1.5 em" or "3cm". A bare number
// or a malformed unit yields ErrUnknownUnit.
func Parse(s string) (Length, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && strings.IndexByte("+-.0123456789", s[i]) >= 0 {
		i++
	}
	num, unit := s[:i], strings.TrimSpace(s[i:])
	if num == "" {
		return Length{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return New(v, unit)
}

// Value returns the raw magnitude in Unit().
func (l Length) Value() float64 { return l.value }

// Unit returns the unit, which is Canonical for all absolute lengths.
func (l Length) Unit() string {
	if l.unit == "" {
		return Canonical
	}
	return l.unit
}

// IsRelative reports whether the length depends on rendering context.
func (l Length) IsRelative() bool { return l.Unit() != Canonical }

// IsZero reports whether the magnitude is zero.
func (l Length) IsZero() bool { return l.value == 0 }

func (l Length) compatible(o Length) error {
	if l.Unit() != o.Unit() {
		return fmt.Errorf("%w: %s and %s", ErrUnitMismatch, l.Unit(), o.Unit())
	}
	return nil
}

func (l Length) with(v float64) Length {
	if !l.IsRelative() {
		v = math.Round(v)
	}
	return Length{value: v, unit: l.Unit()}
}

// Add returns l + o.
func (l Length) Add(o Length) (Length, error) {
	if err := l.compatible(o); err != nil {
		return Length{}, err
	}
	return l.with(l.value + o.value), nil
}

// Sub returns l - o.
func (l Length) Sub(o Length) (Length, error) {
	if err := l.compatible(o); err != nil {
		return Length{}, err
	}
	return l.with(l.value - o.value), nil
}

// Mul scales the length.
func (l Length) Mul(s float64) Length { return l.with(l.value * s) }

// Div scales the length by 1/s.
func (l Length) Div(s float64) Length { return l.with(l.value / s) }

// Abs returns |l|.
func (l Length) Abs() Length { return l.with(math.Abs(l.value)) }

// Neg returns -l.
func (l Length) Neg() Length { return l.with(-l.value) }

// Cmp compares two lengths of the same unit and returns -1, 0 or 1.
func (l Length) Cmp(o Length) (int, error) {
	if err := l.compatible(o); err != nil {
		return 0, err
	}
	switch {
	case l.value < o.value:
		return -1, nil
	case l.value > o.value:
		return 1, nil
	}
	return 0, nil
}

// Ratio returns l / o as a plain number.
func (l Length) Ratio(o Length) (float64, error) {
	if err := l.compatible(o); err != nil {
		return 0, err
	}
	return l.value / o.value, nil
}

// Norm returns the Euclidean norm sqrt(l² + o²).
func (l Length) Norm(o Length) (Length, error) {
	if err := l.compatible(o); err != nil {
		return Length{}, err
	}
	return l.with(math.Hypot(l.value, o.value)), nil
}

// Px returns the size in CSS pixels, unrounded.
func (l Length) Px() (float64, error) {
	if l.IsRelative() {
		return 0, fmt.Errorf("%w: %s", ErrRelativeLength, l.Unit())
	}
	return l.value / spPerPx, nil
}

// FromPx builds an absolute length from CSS pixels.
func FromPx(px float64) Length {
	return Length{value: math.Round(px * spPerPx), unit: Canonical}
}

// String formats the length with the default precision.
func (l Length) String() string { return Formatter{Precision: DefaultPrecision}.Format(l) }

// Min returns the smallest of the given lengths.
func Min(ls ...Length) (Length, error) {
	return pick(ls, -1)
}

// Max returns the largest of the given lengths.
func Max(ls ...Length) (Length, error) {
	return pick(ls, 1)
}

func pick(ls []Length, want int) (Length, error) {
	if len(ls) == 0 {
		return Length{}, ErrEmptyList
	}
	best := ls[0]
	for _, l := range ls[1:] {
		c, err := l.Cmp(best)
		if err != nil {
			return Length{}, err
		}
		if c == want {
			best = l
		}
	}
	return best, nil
}
