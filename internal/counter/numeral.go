package counter

import (
	"fmt"
	"strconv"
	"strings"
)

// Style names a counter representation.
type Style string

// Counter representations.
const (
	Arabic     Style = "arabic"
	Roman      Style = "roman"
	RomanUpper Style = "Roman"
	Alph       Style = "alph"
	AlphUpper  Style = "Alph"
	FnSymbol   Style = "fnsymbol"
)

var romanTable = []struct {
	v int
	s string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// fnSymbols are the footnote marks; 7 to 9 double the first three.
var fnSymbols = []string{
	"*", "†", "‡", "§", "¶", "‖",
	"**", "††", "‡‡",
}

// Format renders n in the given style.
func Format(style Style, n int) (string, error) {
	switch style {
	case Arabic:
		return strconv.Itoa(n), nil
	case Roman:
		return formatRoman(n), nil
	case RomanUpper:
		return strings.ToUpper(formatRoman(n)), nil
	case Alph, AlphUpper:
		if n < 1 || n > 26 {
			return "", fmt.Errorf("%w: %s(%d)", ErrOutOfRange, style, n)
		}
		base := 'a'
		if style == AlphUpper {
			base = 'A'
		}
		return string(base + rune(n-1)), nil
	case FnSymbol:
		if n < 1 || n > len(fnSymbols) {
			return "", fmt.Errorf("%w: %s(%d)", ErrOutOfRange, style, n)
		}
		return fnSymbols[n-1], nil
	}
	return "", fmt.Errorf("unknown counter style %q", style)
}

// formatRoman renders n in lower case roman numerals. Zero and negative
// values render as the empty string, like LaTeX.
func formatRoman(n int) string {
	var b strings.Builder
	for _, e := range romanTable {
		for n >= e.v {
			b.WriteString(e.s)
			n -= e.v
		}
	}
	return b.String()
}
