package interp

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/scope"
)

// fontSizes are the size switches, smallest first.
var fontSizes = []string{
	"tiny", "scriptsize", "footnotesize", "small", "normalsize",
	"large", "Large", "LARGE", "huge", "Huge",
}

// fontCommand is a \text.. command. The pre-phase opens a group with the
// attribute set, the main phase styles the argument and closes the group.
func fontCommand(set func(s *scope.Stack)) builtin {
	return builtin{"H X g", Handler{
		Pre: func(i *Interpreter, _ []any) error {
			i.scope.EnterGroup(false)
			set(i.scope)
			return nil
		},
		Run: func(i *Interpreter, a []any) ([]*html.Node, error) {
			out := i.AddAttributes(nodes(ArgNode(a, 0)))
			return out, i.scope.ExitGroup()
		},
	}}
}

// fontSwitch is a declaration that changes the current group.
func fontSwitch(set func(s *scope.Stack)) builtin {
	return builtin{"HV", do(func(i *Interpreter, _ []any) error {
		set(i.scope)
		return nil
	})}
}

func setAttr(a scope.Attr, v string) func(*scope.Stack) {
	return func(s *scope.Stack) { s.Set(a, v) }
}

func normalFont(s *scope.Stack) {
	s.Set(scope.FontFamily, "rm")
	s.Set(scope.FontWeight, "md")
	s.Set(scope.FontShape, "up")
}

func fontMacros() builtinSet {
	set := builtinSet{
		"emph":       fontCommand(func(s *scope.Stack) { s.SetFontShape("em") }),
		"em":         fontSwitch(func(s *scope.Stack) { s.SetFontShape("em") }),
		"textnormal": fontCommand(normalFont),
		"normalfont": fontSwitch(normalFont),
	}
	for _, f := range []string{"rm", "sf", "tt"} {
		set["text"+f] = fontCommand(setAttr(scope.FontFamily, f))
		set[f+"family"] = fontSwitch(setAttr(scope.FontFamily, f))
	}
	for _, w := range []string{"md", "bf"} {
		set["text"+w] = fontCommand(setAttr(scope.FontWeight, w))
		set[w+"series"] = fontSwitch(setAttr(scope.FontWeight, w))
	}
	for _, sh := range []string{"up", "it", "sl", "sc"} {
		set["text"+sh] = fontCommand(func(s *scope.Stack) { s.SetFontShape(sh) })
		set[sh+"shape"] = fontSwitch(func(s *scope.Stack) { s.SetFontShape(sh) })
	}
	for _, size := range fontSizes {
		set[size] = fontSwitch(setAttr(scope.FontSize, size))
	}
	set["underbar"] = fontCommand(setAttr(scope.TextDecoration, "underline"))
	return set
}
