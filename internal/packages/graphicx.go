package packages

import (
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/interp"
)

// origins maps rotation origin letters to CSS positions.
var origins = map[rune]string{
	'l': "left", 'r': "right", 'c': "center",
	't': "top", 'b': "bottom", 'B': "bottom",
}

// transformOrigin converts a graphicx origin such as "lb" or "c".
func transformOrigin(o string) string {
	if o == "" {
		return "left bottom"
	}
	var x, y string
	for _, r := range o {
		switch r {
		case 'l', 'r':
			x = origins[r]
		case 't', 'b', 'B':
			y = origins[r]
		case 'c':
			if x == "" {
				x = "center"
			}
			if y == "" {
				y = "center"
			}
		}
	}
	if x == "" {
		x = "center"
	}
	if y == "" {
		y = "center"
	}
	return x + " " + y
}

func transformed(i *interp.Interpreter, style string, child *html.Node) *html.Node {
	e := i.Builder().Element("span", dom.ClassHBox+" transform", child)
	dom.SetAttr(e, "style", style)
	return e
}

// cssLength formats a length argument, falling back to the raw text when
// it is not a length the interpreter understands.
func cssLength(i *interp.Interpreter, s string) string {
	l, err := i.ParseLength(s)
	if err != nil {
		i.Warn("graphicx: %q is not a length", s)
		return s
	}
	return i.Builder().Format().Format(l)
}

// parsePaths splits a \graphicspath list such as "{figs/}{img/}".
func parsePaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "}") {
		p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "{"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isLocalFile(f string) bool {
	return !strings.Contains(f, "://") && !strings.HasPrefix(f, "/") && !strings.HasPrefix(f, "data:")
}

// Graphicx instantiates the graphicx package.
func Graphicx(*interp.Interpreter, args.KeyVals) (*interp.Extension, error) {
	var paths []string

	return extension("graphicx", defs{
		"rotatebox": {"H kv? n hg", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			origin, _ := interp.ArgKeyVals(a, 0).Get("origin")
			angle, _ := interp.ArgNumber(a, 1)
			f := i.Builder().Format()
			style := "transform:rotate(" + f.Number(-angle) + "deg);transform-origin:" + transformOrigin(origin)
			return nodes(transformed(i, style, interp.ArgNode(a, 2))), nil
		}},
		"scalebox": {"H n n? g", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			h, _ := interp.ArgNumber(a, 0)
			v, ok := interp.ArgNumber(a, 1)
			if !ok {
				v = h
			}
			f := i.Builder().Format()
			return nodes(transformed(i, "transform:scale("+f.Number(h)+","+f.Number(v)+")", interp.ArgNode(a, 2))), nil
		}},
		"reflectbox": {"H g", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			return nodes(transformed(i, "transform:scale(-1,1)", interp.ArgNode(a, 0))), nil
		}},
		"resizebox": {"H s k k g", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			var style []string
			for j, prop := range []string{"width", "height"} {
				if v := interp.ArgString(a, 1+j); v != "!" && v != "" {
					style = append(style, prop+":"+cssLength(i, v))
				}
			}
			e := i.Builder().Element("span", dom.ClassHBox+" resizebox", interp.ArgNode(a, 3))
			if len(style) > 0 {
				dom.SetAttr(e, "style", strings.Join(style, ";"))
			}
			return nodes(e), nil
		}},
		"graphicspath": {"HV k", func(_ *interp.Interpreter, a []any) ([]*html.Node, error) {
			paths = parsePaths(interp.ArgString(a, 0))
			return nil, nil
		}},
		"includegraphics": {"H s kv? kv? k", func(i *interp.Interpreter, a []any) ([]*html.Node, error) {
			opts := slices.Concat(interp.ArgKeyVals(a, 1), interp.ArgKeyVals(a, 2))
			var width, height string
			if w, ok := opts.Get("width"); ok {
				width = cssLength(i, w)
			}
			if h, ok := opts.Get("height"); ok {
				height = cssLength(i, h)
			}

			file := interp.ArgString(a, 3)
			if len(paths) > 0 && isLocalFile(file) {
				file = path.Join(paths[0], file)
			}
			img := i.Builder().Image(width, height, file)
			if angle, ok := opts.Get("angle"); ok {
				if deg, err := strconv.ParseFloat(angle, 64); err == nil {
					dom.AddStyle(img, "transform:rotate("+i.Builder().Format().Number(-deg)+"deg)")
				}
			}
			return nodes(img), nil
		}},
	})
}
