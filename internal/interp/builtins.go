package interp

import (
	"fmt"
	"slices"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
)

// Signatures of argument-less macros.
var (
	hmode  = args.MustParseSpec("H")
	vmode  = args.MustParseSpec("V")
	hvmode = args.MustParseSpec("HV")
)

// builtin is a macro definition in textual signature form.
type builtin struct {
	spec string
	h    Handler
}

type builtinSet map[string]builtin

// runFunc is the main phase of a handler.
type runFunc func(i *Interpreter, a []any) ([]*html.Node, error)

func run(f runFunc) Handler { return Handler{Run: f} }

// do wraps a side effect that produces no output.
func do(f func(i *Interpreter, a []any) error) Handler {
	return Handler{Run: func(i *Interpreter, a []any) ([]*html.Node, error) {
		return nil, f(i, a)
	}}
}

// ignored accepts the arguments of a macro that has no effect in HTML.
var ignored = do(func(*Interpreter, []any) error { return nil })

// nodes collects handler output, skipping omitted optional arguments.
func nodes(ns ...*html.Node) []*html.Node {
	return slices.DeleteFunc(ns, func(n *html.Node) bool { return n == nil })
}

// registerBuiltins defines the macros and symbols every document has.
func (i *Interpreter) registerBuiltins() error {
	for _, set := range []builtinSet{
		fontMacros(),
		layoutMacros(),
		listMacros(),
		boxMacros(),
		pictureMacros(),
		counterMacros(),
		documentMacros(),
		textMacros(),
	} {
		for name, b := range set {
			spec, err := args.ParseSpec(b.spec)
			if err != nil {
				return fmt.Errorf("\\%s: %w", name, err)
			}
			if err := i.macros.Register(name, spec, b.h); err != nil {
				return err
			}
		}
	}
	for name, s := range symbols {
		i.macros.AddSymbol(name, s)
	}
	return nil
}

// symbolText returns an unstyled text node for a symbol.
func (i *Interpreter) symbolText(name string) *html.Node {
	s, _ := i.macros.Symbol(name)
	return i.b.Text(s)
}

// symbols are the macros that stand for a single piece of text.
var symbols = map[string]string{
	// spaces
	" ":                " ",
	"space":            " ",
	"nobreakspace":     "\u00a0",
	"thinspace":        "\u2009",
	",":                "\u2009",
	"enspace":          "\u2002",
	"enskip":           "\u2002",
	"quad":             "\u2003",
	"qquad":            "\u2003\u2003",
	"textvisiblespace": "\u2423",
	"/":                "\u200c",
	"-":                "\u00ad",
	"slash":            "/",

	// escapes
	"%":               "%",
	"&":               "&",
	"#":               "#",
	"$":               "$",
	"_":               "_",
	"{":               "{",
	"}":               "}",
	"textbackslash":   "\\",
	"textasciitilde":  "~",
	"textasciicircum": "^",
	"textbar":         "|",
	"textless":        "<",
	"textgreater":     ">",
	"textunderscore":  "_",
	"textdollar":      "$",
	"textbraceleft":   "{",
	"textbraceright":  "}",

	// punctuation
	"textendash":           "–",
	"textemdash":           "\u2014",
	"textquoteleft":        "‘",
	"textquoteright":       "’",
	"textquotedblleft":     "“",
	"textquotedblright":    "”",
	"quotesinglbase":       "‚",
	"quotedblbase":         "„",
	"guillemotleft":        "«",
	"guillemotright":       "»",
	"guilsinglleft":        "‹",
	"guilsinglright":       "›",
	"textexclamdown":       "¡",
	"textquestiondown":     "¿",
	"textellipsis":         "…",
	"ldots":                "…",
	"dots":                 "…",
	"textbullet":           "•",
	"textperiodcentered":   "·",
	"textasteriskcentered": "∗",
	"textdagger":           "†",
	"dag":                  "†",
	"textdaggerdbl":        "‡",
	"ddag":                 "‡",
	"textsection":          "§",
	"S":                    "§",
	"textparagraph":        "¶",
	"P":                    "¶",

	// signs
	"textcopyright":     "©",
	"copyright":         "©",
	"textregistered":    "®",
	"texttrademark":     "™",
	"textdegree":        "°",
	"pounds":            "£",
	"textsterling":      "£",
	"texteuro":          "€",
	"textyen":           "¥",
	"textcent":          "¢",
	"textonehalf":       "½",
	"textonequarter":    "¼",
	"textthreequarters": "¾",
	"textpm":            "±",
	"texttimes":         "×",
	"textdiv":           "÷",
	"textmu":            "µ",
	"textordfeminine":   "ª",
	"textordmasculine":  "º",

	// letters
	"i":  "ı",
	"j":  "ȷ",
	"ss": "ß",
	"SS": "SS",
	"ae": "æ",
	"AE": "Æ",
	"oe": "œ",
	"OE": "Œ",
	"aa": "å",
	"AA": "Å",
	"o":  "ø",
	"O":  "Ø",
	"l":  "ł",
	"L":  "Ł",
	"dh": "ð",
	"DH": "Ð",
	"th": "þ",
	"TH": "Þ",
}
