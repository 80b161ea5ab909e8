package packages

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/interp"
	"github.com/alnah/go-tex2html/internal/scope"
)

// Sentinel errors for color handling.
var (
	ErrUnknownColor      = errors.New("unknown color")
	ErrUnknownColorModel = errors.New("unknown color model")
	ErrInvalidColorSpec  = errors.New("invalid color specification")
)

// rgb is a color with components in [0,1].
type rgb struct{ r, g, b float64 }

func (c rgb) String() string {
	ch := func(v float64) int { return int(math.Round(clamp(v) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", ch(c.r), ch(c.g), ch(c.b))
}

func (c rgb) mix(o rgb, p float64) rgb {
	return rgb{p*c.r + (1-p)*o.r, p*c.g + (1-p)*o.g, p*c.b + (1-p)*o.b}
}

func (c rgb) complement() rgb { return rgb{1 - c.r, 1 - c.g, 1 - c.b} }

func clamp(v float64) float64 { return math.Min(math.Max(v, 0), 1) }

var white = rgb{1, 1, 1}

// namedColors are the colors every document knows.
var namedColors = map[string]rgb{
	"red":       {1, 0, 0},
	"green":     {0, 1, 0},
	"blue":      {0, 0, 1},
	"cyan":      {0, 1, 1},
	"magenta":   {1, 0, 1},
	"yellow":    {1, 1, 0},
	"black":     {0, 0, 0},
	"gray":      {.5, .5, .5},
	"white":     {1, 1, 1},
	"darkgray":  {.25, .25, .25},
	"lightgray": {.75, .75, .75},
	"brown":     {.75, .5, .25},
	"lime":      {.75, 1, 0},
	"olive":     {.5, .5, 0},
	"orange":    {1, .5, 0},
	"pink":      {1, .75, .75},
	"purple":    {.75, 0, .25},
	"teal":      {0, .5, .5},
	"violet":    {.5, 0, .5},
}

// palette holds the colors of one document.
type palette map[string]rgb

// parseModel reads a color given as components of a color model.
func parseModel(model, spec string) (rgb, error) {
	bad := func() (rgb, error) {
		return rgb{}, fmt.Errorf("%w: %s {%s}", ErrInvalidColorSpec, model, spec)
	}
	if model == "HTML" {
		v, err := strconv.ParseUint(strings.TrimPrefix(spec, "#"), 16, 32)
		if err != nil || len(strings.TrimPrefix(spec, "#")) != 6 {
			return bad()
		}
		return rgb{float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255}, nil
	}

	fields := strings.FieldsFunc(spec, func(r rune) bool { return r == ',' || r == ' ' })
	vs := make([]float64, len(fields))
	for j, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return bad()
		}
		vs[j] = v
	}
	want := map[string]int{"rgb": 3, "RGB": 3, "gray": 1, "cmyk": 4, "cmy": 3}
	n, ok := want[model]
	if !ok {
		return rgb{}, fmt.Errorf("%w: %s", ErrUnknownColorModel, model)
	}
	if len(vs) != n {
		return bad()
	}

	switch model {
	case "rgb":
		return rgb{vs[0], vs[1], vs[2]}, nil
	case "RGB":
		return rgb{vs[0] / 255, vs[1] / 255, vs[2] / 255}, nil
	case "gray":
		return rgb{vs[0], vs[0], vs[0]}, nil
	case "cmyk":
		k := 1 - vs[3]
		return rgb{(1 - vs[0]) * k, (1 - vs[1]) * k, (1 - vs[2]) * k}, nil
	default: // cmy
		return rgb{1 - vs[0], 1 - vs[1], 1 - vs[2]}, nil
	}
}

// parseModels picks the first supported model of a model list and reads
// the matching spec.
func parseModels(models, specs []string) (rgb, error) {
	if len(models) == 0 || len(models) != len(specs) {
		return rgb{}, fmt.Errorf("%w: %d models for %d specifications", ErrInvalidColorSpec, len(models), len(specs))
	}
	var err error
	for j, m := range models {
		var c rgb
		if c, err = parseModel(m, specs[j]); err == nil {
			return c, nil
		}
	}
	return rgb{}, err
}

// expr evaluates a color expression such as "red", "-red" or
// "red!30!blue!50". Each "!p!c" step mixes p percent of the color so far
// with c; a trailing percentage mixes with white.
func (p palette) expr(s string) (rgb, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimLeft(s, "-"), "!")

	c, err := p.lookup(parts[0])
	if err != nil {
		return rgb{}, err
	}
	for j := 1; j < len(parts); j += 2 {
		pct, err := strconv.ParseFloat(strings.TrimSpace(parts[j]), 64)
		if err != nil || pct < 0 || pct > 100 {
			return rgb{}, fmt.Errorf("%w: %q", ErrInvalidColorSpec, s)
		}
		other := white
		if j+1 < len(parts) {
			if other, err = p.lookup(parts[j+1]); err != nil {
				return rgb{}, err
			}
		}
		c = c.mix(other, pct/100)
	}
	if neg {
		c = c.complement()
	}
	return c, nil
}

func (p palette) lookup(name string) (rgb, error) {
	name = strings.TrimSpace(name)
	if c, ok := p[name]; ok {
		return c, nil
	}
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	return rgb{}, fmt.Errorf("%w: %s", ErrUnknownColor, name)
}

// colorArg reads the color of the "[c-ml? c-spl|c]" choice at the start of
// a. It returns the number of argument slots used.
func (p palette) colorArg(a []any) (rgb, int, error) {
	if len(a) == 0 {
		return rgb{}, 0, fmt.Errorf("%w: no color given", ErrInvalidColorSpec)
	}
	if name, ok := a[0].(string); ok {
		c, err := p.expr(name)
		return c, 1, err
	}
	c, err := parseModels(interp.ArgStrings(a, 0), interp.ArgStrings(a, 1))
	return c, 2, err
}

// boxColor reads the color of an "i? c" pair: a model and spec, or an
// expression when the model is omitted.
func (p palette) boxColor(model, spec string) (rgb, error) {
	if model == "" {
		return p.expr(spec)
	}
	return parseModel(model, spec)
}

// colored wraps child in a span with an inline style.
func colored(i *interp.Interpreter, classes, style string, child *html.Node) *html.Node {
	e := i.Builder().Element("span", classes, child)
	dom.SetAttr(e, "style", style)
	return e
}

// XColor instantiates the xcolor package. Colors defined by the document
// are private to its interpreter.
func XColor(*interp.Interpreter, args.KeyVals) (*interp.Extension, error) {
	p := palette{}

	return extension("xcolor", defs{
		"definecolor": {"HV i? i c-ml c-spl", func(_ *interp.Interpreter, a []any) ([]*html.Node, error) {
			c, err := parseModels(interp.ArgStrings(a, 2), interp.ArgStrings(a, 3))
			if err != nil {
				return nil, err
			}
			p[interp.ArgString(a, 1)] = c
			return nil, nil
		}},
		"definecolorset": {"HV i? c-ml i i k", func(_ *interp.Interpreter, a []any) ([]*html.Node, error) {
			models := interp.ArgStrings(a, 1)
			head, tail := interp.ArgString(a, 2), interp.ArgString(a, 3)
			for _, entry := range strings.Split(interp.ArgString(a, 4), ";") {
				name, spec, ok := strings.Cut(strings.TrimSpace(entry), ",")
				if !ok {
					continue
				}
				c, err := parseModels(models, strings.Split(spec, "/"))
				if err != nil {
					return nil, err
				}
				p[head+strings.TrimSpace(name)+tail] = c
			}
			return nil, nil
		}},
		"color": {"HV [c-ml? c-spl|c]", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			c, _, err := p.colorArg(a)
			if err != nil {
				return nil, err
			}
			i.Scope().Set(scope.TextColor, c.String())
			return nil, nil
		}},
		"textcolor": {"H [c-ml? c-spl|c] g", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			c, n, err := p.colorArg(a)
			if err != nil {
				return nil, err
			}
			return nodes(colored(i, "", "color:"+c.String(), interp.ArgNode(a, n))), nil
		}},
		"colorbox": {"H i? c g", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			bg, err := p.boxColor(interp.ArgString(a, 0), interp.ArgString(a, 1))
			if err != nil {
				return nil, err
			}
			return nodes(colored(i, dom.ClassHBox+" colorbox", "background-color:"+bg.String(), interp.ArgNode(a, 2))), nil
		}},
		"fcolorbox": {"H i? c c g", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			model := interp.ArgString(a, 0)
			frame, err := p.boxColor(model, interp.ArgString(a, 1))
			if err != nil {
				return nil, err
			}
			bg, err := p.boxColor(model, interp.ArgString(a, 2))
			if err != nil {
				return nil, err
			}
			style := "border-color:" + frame.String() + ";background-color:" + bg.String()
			return nodes(colored(i, dom.ClassHBox+" colorbox frame", style, interp.ArgNode(a, 3))), nil
		}},
	})
}
