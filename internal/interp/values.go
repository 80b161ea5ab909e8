package interp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/geometry"
	"github.com/alnah/go-tex2html/internal/length"
)

// lengthRef matches a length given as a multiple of a named length, as in
// "0.5\textwidth" or "-\parindent".
var lengthRef = regexp.MustCompile(`^([+-]?[0-9]*\.?[0-9]*)\s*\\([@A-Za-z]+)$`)

// parseValue converts the raw text of a scalar argument.
func (i *Interpreter) parseValue(k args.Kind, raw string) (any, error) {
	s := strings.TrimSpace(raw)
	switch k {
	case args.Star:
		return true, nil
	case args.Ident, args.OptIdent, args.Key, args.OptKey, args.URL, args.Color:
		return s, nil
	case args.MacroName:
		return strings.TrimPrefix(s, `\`), nil
	case args.Number, args.OptNumber:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, s)
		}
		return n, nil
	case args.Len, args.OptLen:
		return i.parseLength(s)
	case args.CoordLen, args.OptCoordLen:
		return i.parseCoord(s)
	case args.Vec, args.OptVec:
		return i.parseVector(s)
	case args.KeyValList:
		return args.ParseKeyVals(s), nil
	case args.CSV:
		var out []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	case args.ColorModels, args.OptColorModels, args.ColorSpecs:
		parts := strings.Split(s, "/")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		return parts, nil
	case args.Verbatim:
		return raw, nil
	}
	return nil, fmt.Errorf("%w: cannot read a %s argument from text", ErrInvalidArgument, k)
}

// parseLength reads an explicit length or a multiple of a named one.
func (i *Interpreter) parseLength(s string) (length.Length, error) {
	if l, err := length.Parse(s); err == nil {
		return l, nil
	}
	m := lengthRef.FindStringSubmatch(s)
	if m == nil {
		return length.Length{}, fmt.Errorf("%w: %q is not a length", ErrInvalidArgument, s)
	}
	base, err := i.scope.Length(m[2])
	if err != nil {
		return length.Length{}, err
	}
	switch m[1] {
	case "", "+":
		return base, nil
	case "-":
		return base.Neg(), nil
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return length.Length{}, fmt.Errorf("%w: %q is not a length", ErrInvalidArgument, s)
	}
	return base.Mul(f), nil
}

// parseCoord reads a picture coordinate: a bare number counts in
// \unitlength.
func (i *Interpreter) parseCoord(s string) (length.Length, error) {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		unit, err := i.scope.Length("unitlength")
		if err != nil {
			return length.Length{}, err
		}
		return unit.Mul(n), nil
	}
	return i.parseLength(s)
}

// parseVector reads "(x,y)" or "x,y".
func (i *Interpreter) parseVector(s string) (geometry.Vector, error) {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geometry.Vector{}, fmt.Errorf("%w: %q is not a coordinate pair", ErrInvalidArgument, s)
	}
	x, err := i.parseCoord(strings.TrimSpace(xs))
	if err != nil {
		return geometry.Vector{}, err
	}
	y, err := i.parseCoord(strings.TrimSpace(ys))
	if err != nil {
		return geometry.Vector{}, err
	}
	return geometry.NewVector(x, y), nil
}

// Argument accessors for handlers. Omitted optional arguments and short
// argument lists yield the zero value.

// ArgNode returns argument n as a content fragment.
func ArgNode(a []any, n int) *html.Node {
	if n < len(a) {
		if v, ok := a[n].(*html.Node); ok {
			return v
		}
	}
	return nil
}

// ArgString returns argument n as a string.
func ArgString(a []any, n int) string {
	if n < len(a) {
		if v, ok := a[n].(string); ok {
			return v
		}
	}
	return ""
}

// ArgBool returns argument n as a flag, such as a star.
func ArgBool(a []any, n int) bool {
	if n < len(a) {
		if v, ok := a[n].(bool); ok {
			return v
		}
	}
	return false
}

// ArgNumber returns argument n as a number and whether it was given.
func ArgNumber(a []any, n int) (float64, bool) {
	if n < len(a) {
		switch v := a[n].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		}
	}
	return 0, false
}

// ArgLength returns argument n as a length and whether it was given.
func ArgLength(a []any, n int) (length.Length, bool) {
	if n < len(a) {
		if v, ok := a[n].(length.Length); ok {
			return v, true
		}
	}
	return length.Length{}, false
}

// ArgVector returns argument n as a vector and whether it was given.
func ArgVector(a []any, n int) (geometry.Vector, bool) {
	if n < len(a) {
		if v, ok := a[n].(geometry.Vector); ok {
			return v, true
		}
	}
	return geometry.Vector{}, false
}

// ArgKeyVals returns argument n as a key=value list.
func ArgKeyVals(a []any, n int) args.KeyVals {
	if n < len(a) {
		if v, ok := a[n].(args.KeyVals); ok {
			return v
		}
	}
	return nil
}

// ArgStrings returns argument n as a list of strings.
func ArgStrings(a []any, n int) []string {
	if n < len(a) {
		if v, ok := a[n].([]string); ok {
			return v
		}
	}
	return nil
}

// ArgItems returns argument n as list items.
func ArgItems(a []any, n int) []ListItem {
	if n < len(a) {
		if v, ok := a[n].([]ListItem); ok {
			return v
		}
	}
	return nil
}
