package length

import (
	"math"
	"strconv"
)

// DefaultPrecision is the number of decimals used for pixel output.
const DefaultPrecision = 3

// MaxPrecision bounds Formatter.Precision.
const MaxPrecision = 10

// Formatter renders lengths for CSS output.
type Formatter struct {
	Precision int
}

// Round rounds v to the configured number of decimals.
func (f Formatter) Round(v float64) float64 {
	p := math.Pow(10, float64(f.Precision))
	return math.Round(v*p) / p
}

// Number formats a plain number with the configured precision, dropping
// trailing zeros.
func (f Formatter) Number(v float64) string {
	v = f.Round(v)
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Format renders absolute lengths in px and relative lengths with their
// own unit, e.g. "13.333px" or "1.5em".
func (f Formatter) Format(l Length) string {
	if l.IsRelative() {
		return f.Number(l.value) + l.Unit()
	}
	return f.Number(l.value/spPerPx) + "px"
}

// Px returns the pixel size rounded to the configured precision.
func (f Formatter) Px(l Length) (float64, error) {
	px, err := l.Px()
	if err != nil {
		return 0, err
	}
	return f.Round(px), nil
}
