package interp

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/length"
)

// lap is a box of zero width or height around its content.
func lap(classes string) builtin {
	return builtin{"H hg", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
		return nodes(i.b.Element("span", classes, ArgNode(a, 0))), nil
	})}
}

func boxMacros() builtinSet {
	return builtinSet{
		"llap":      lap("hbox llap"),
		"rlap":      lap("hbox rlap"),
		"clap":      lap("hbox clap"),
		"smash":     lap("hbox smash"),
		"hphantom":  lap("phantom hbox smash"),
		"vphantom":  lap("phantom hbox rlap"),
		"phantom":   lap("phantom hbox"),
		"underline": lap("hbox underline"),

		"mbox": {"H hg", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			return i.box("mbox", nil, "", ArgNode(a, 0), "hbox")
		})},
		"makebox": {"H v? l? i? hg", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			width, pos, txt := optLength(a, 1), ArgString(a, 2), ArgNode(a, 3)
			if _, ok := ArgVector(a, 0); ok {
				if width != nil && pos != "" {
					return nil, invalid("makebox", "expected \\makebox(width,height)[position]{text} but got two optional arguments")
				}
				return nodes(txt), nil
			}
			return i.box("makebox", width, pos, txt, "hbox")
		})},
		"fbox": {"H hg", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			return i.framebox(nil, "", ArgNode(a, 0))
		})},
		"framebox": {"H v? l? i? hg", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			width, pos, txt := optLength(a, 1), ArgString(a, 2), ArgNode(a, 3)
			if _, ok := ArgVector(a, 0); ok {
				if width != nil && pos != "" {
					return nil, invalid("framebox", "expected \\framebox(width,height)[position]{text} but got two optional arguments")
				}
				return i.box("framebox", nil, "", txt, "hbox frame")
			}
			return i.framebox(width, pos, txt)
		})},
		"parbox": {"H i? l? i? l g", run(parbox)},
	}
}

func optLength(a []any, n int) *length.Length {
	if l, ok := ArgLength(a, n); ok {
		return &l
	}
	return nil
}

// framebox frames txt. A single element that is not framed yet gets the
// frame class instead of a new box.
func (i *Interpreter) framebox(width *length.Length, pos string, txt *html.Node) ([]*html.Node, error) {
	if width == nil && pos == "" {
		if el := soleElement(txt); el != nil && !dom.HasClass(el, "frame") {
			dom.AddClass(el, "frame")
			return nodes(el), nil
		}
	}
	return i.box("framebox", width, pos, txt, "hbox frame")
}

// soleElement returns the only child of a fragment if it is an element.
func soleElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode {
		return n
	}
	c := n.FirstChild
	if c == nil || c.NextSibling != nil || c.Type != html.ElementNode {
		return nil
	}
	return c
}

// box sets txt in a box. With a width the position selects how the
// content is placed: s stretches, c centers, l and r align.
func (i *Interpreter) box(name string, width *length.Length, pos string, txt *html.Node, classes string) ([]*html.Node, error) {
	if width != nil {
		switch pos {
		case "", "c":
			classes += " clap"
		case "s":
			classes += " stretch"
		case "l":
			classes += " rlap"
		case "r":
			classes += " llap"
		default:
			return nil, invalid(name, "unknown position: %s", pos)
		}
	}
	b := i.b.Element("span", classes, i.b.Element("span", "", txt))
	if width != nil {
		dom.SetAttr(b, "style", "width:"+i.b.Format().Format(*width))
	}
	return nodes(b), nil
}

// parbox sets a paragraph box of a given width, aligned to the baseline
// at its top, center or bottom.
func parbox(i *Interpreter, a []any) ([]*html.Node, error) {
	pos, inner := ArgString(a, 0), ArgString(a, 2)
	height, hasHeight := ArgLength(a, 1)
	width, _ := ArgLength(a, 3)
	if pos == "" {
		pos = "c"
	}
	if inner == "" {
		inner = pos
	}

	f := i.b.Format()
	classes := "parbox"
	style := "width:" + f.Format(width) + ";"
	if hasHeight {
		classes += " pbh"
		style += "height:" + f.Format(height) + ";"
	}
	switch pos {
	case "c", "t", "b":
		classes += " p-" + pos
	default:
		return nil, invalid("parbox", "unknown position: %s", pos)
	}
	switch inner {
	case "s":
		classes += " stretch"
	case "c", "t", "b":
		classes += " p-c" + inner
	default:
		return nil, invalid("parbox", "unknown inner-pos: %s", inner)
	}

	b := i.b.Element("span", classes, i.b.Element("span", "", ArgNode(a, 4)))
	dom.SetAttr(b, "style", style)
	return nodes(b), nil
}
