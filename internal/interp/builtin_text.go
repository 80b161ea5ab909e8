package interp

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// accents maps accent macros to combining marks.
var accents = map[string]rune{
	"`":  '\u0300',
	"'":  '\u0301',
	"^":  '\u0302',
	"~":  '\u0303',
	"=":  '\u0304',
	"u":  '\u0306',
	".":  '\u0307',
	"\"": '\u0308',
	"r":  '\u030a',
	"H":  '\u030b',
	"v":  '\u030c',
	"d":  '\u0323',
	"c":  '\u0327',
	"k":  '\u0328',
	"b":  '\u0331',
	"t":  '\u0361',
}

// accent puts a combining mark on the first letter of its argument and
// composes the result.
func accent(mark rune) builtin {
	return builtin{"H g", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
		arg := ArgNode(a, 0)
		t := firstText(arg)
		if t == nil {
			return nodes(i.b.RawText("\u00a0" + string(mark))), nil
		}
		r, size := utf8.DecodeRuneInString(t.Data)
		t.Data = norm.NFC.String(string(r) + string(mark) + t.Data[size:])
		return nodes(arg), nil
	})}
}

// firstText returns the first non-empty text node below n.
func firstText(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.TextNode && n.Data != "" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := firstText(c); t != nil {
			return t
		}
	}
	return nil
}

// mapText applies f to every text node below n.
func mapText(n *html.Node, f func(string) string) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		n.Data = f(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		mapText(c, f)
	}
}

// caseMacro changes the case of its argument by the rules of the document
// language.
func caseMacro(caser func(i *Interpreter) cases.Caser) builtin {
	return builtin{"H g", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
		arg := ArgNode(a, 0)
		c := caser(i)
		mapText(arg, c.String)
		return nodes(arg), nil
	})}
}

func textMacros() builtinSet {
	set := builtinSet{
		"MakeUppercase": caseMacro(func(i *Interpreter) cases.Caser { return cases.Upper(i.lang) }),
		"MakeLowercase": caseMacro(func(i *Interpreter) cases.Caser { return cases.Lower(i.lang) }),

		"verb": {"H verb", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			return nodes(i.b.Element("code", "tt", i.b.RawText(ArgString(a, 0)))), nil
		})},
		"verbatim": {"V verb", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			body := strings.TrimPrefix(ArgString(a, 0), "\n")
			return nodes(i.b.Element("pre", "", i.b.RawText(body))), nil
		})},

		"today": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.b.Text(i.clock().Format(i.dateLayout))), nil
		})},
		"TeX": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.b.Element("span", "tex",
				i.b.RawText("T"),
				i.b.Element("span", "e", i.b.RawText("e")),
				i.b.RawText("X"),
			)), nil
		})},
		"LaTeX": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.b.Element("span", "latex",
				i.b.RawText("L"),
				i.b.Element("span", "a", i.b.RawText("a")),
				i.b.RawText("T"),
				i.b.Element("span", "e", i.b.RawText("e")),
				i.b.RawText("X"),
			)), nil
		})},
	}
	for name, mark := range accents {
		set[name] = accent(mark)
	}
	return set
}
