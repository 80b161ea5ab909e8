package interp

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/counter"
	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/scope"
)

// maxItemDepth bounds the nesting of itemize and of enumerate.
const maxItemDepth = 4

// depthName returns the roman numeral of a nesting depth, as used in
// counter names like enumii.
func depthName(d int) string {
	s, _ := counter.Format(counter.Roman, d)
	return s
}

// enterList starts a list whose nesting is tracked in depthCounter.
func (i *Interpreter) enterList(depthCounter string) (int, error) {
	if err := i.StartList(); err != nil {
		return 0, err
	}
	if err := i.counters.Step(depthCounter); err != nil {
		return 0, err
	}
	d, err := i.counters.Get(depthCounter)
	if err != nil {
		return 0, err
	}
	if d > maxItemDepth {
		return 0, fmt.Errorf("%w: more than %d levels of %s", ErrTooDeeplyNested, maxItemDepth, depthCounter)
	}
	return d, nil
}

// leaveList ends a list entered with enterList.
func (i *Interpreter) leaveList(depthCounter string) error {
	if err := i.EndList(); err != nil {
		return err
	}
	return i.counters.Add(depthCounter, -1)
}

// itemLabel places a label into the left margin of an item.
func (i *Interpreter) itemLabel(label *html.Node) *html.Node {
	return i.b.Element("span", dom.ClassItemLabel,
		i.b.Element("span", dom.ClassHBox+" llap", label))
}

func itemize(i *Interpreter, a []any) ([]*html.Node, error) {
	d, err := i.counters.Get("@itemdepth")
	if err != nil {
		return nil, err
	}
	name := "labelitem" + depthName(d)

	ul := i.b.Element("ul", dom.ClassList)
	for _, it := range ArgItems(a, 0) {
		label := it.Label
		if label == nil {
			i.scope.EnterGroup(false)
			ns, err := i.Macro(name)
			if err != nil {
				return nil, err
			}
			label = i.b.Fragment(ns...)
			if err := i.scope.ExitGroup(); err != nil {
				return nil, err
			}
		}
		li := i.b.Element("li", "", i.itemLabel(label))
		dom.Append(li, it.Body...)
		ul.AppendChild(li)
	}
	return nodes(ul), nil
}

func enumerate(i *Interpreter, a []any) ([]*html.Node, error) {
	ol := i.b.Element("ol", dom.ClassList)
	for _, it := range ArgItems(a, 0) {
		label := i.b.Element("span", "", it.Label)
		if it.ID != "" {
			dom.SetAttr(label, "id", it.ID)
		}
		li := i.b.Element("li", "", i.itemLabel(label))
		dom.Append(li, it.Body...)
		ol.AppendChild(li)
	}
	return nodes(ol), nil
}

func description(i *Interpreter, a []any) ([]*html.Node, error) {
	dl := i.b.Element("dl", dom.ClassList)
	for _, it := range ArgItems(a, 0) {
		dl.AppendChild(i.b.Element("dt", "", it.Label))
		dl.AppendChild(i.b.Element("dd", "", it.Body...))
	}
	return nodes(dl), nil
}

// enumText renders an enumeration counter in the given style.
func (i *Interpreter) enumText(c string, style counter.Style) (string, error) {
	n, err := i.counters.Get(c)
	if err != nil {
		return "", err
	}
	return counter.Format(style, n)
}

func listMacros() builtinSet {
	set := builtinSet{
		"itemize": {"V X items", Handler{
			Pre: func(i *Interpreter, _ []any) error {
				_, err := i.enterList("@itemdepth")
				i.itemCounter = ""
				return err
			},
			Run: itemize,
		}},
		"enditemize": {"V", do(func(i *Interpreter, _ []any) error { return i.leaveList("@itemdepth") })},

		"enumerate": {"V X items", Handler{
			Pre: func(i *Interpreter, _ []any) error {
				d, err := i.enterList("@enumdepth")
				if err != nil {
					return err
				}
				i.itemCounter = "enum" + depthName(d)
				return i.counters.Set(i.itemCounter, 0)
			},
			Run: enumerate,
		}},
		"endenumerate": {"V", do(func(i *Interpreter, _ []any) error { return i.leaveList("@enumdepth") })},

		"description": {"V X items", Handler{
			Pre: func(i *Interpreter, _ []any) error {
				i.itemCounter = ""
				return i.StartList()
			},
			Run: description,
		}},
		"enddescription": {"V", do(func(i *Interpreter, _ []any) error { return i.EndList() })},

		"item": {"V o?", do(func(i *Interpreter, a []any) error { return i.newItem(ArgNode(a, 0)) })},

		"labelitemi": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.symbolText("textbullet")), nil
		})},
		"labelitemii": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			normalFont(i.scope)
			i.scope.Set(scope.FontWeight, "bf")
			return nodes(i.symbolText("textendash")), nil
		})},
		"labelitemiii": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.symbolText("textasteriskcentered")), nil
		})},
		"labelitemiv": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.symbolText("textperiodcentered")), nil
		})},
	}

	styles := []counter.Style{counter.Arabic, counter.Alph, counter.Roman, counter.AlphUpper}
	for d, style := range styles {
		c := "enum" + depthName(d+1)
		set["the"+c] = textMacro(func(i *Interpreter) (string, error) { return i.enumText(c, style) })
		set["label"+c] = textMacro(func(i *Interpreter) (string, error) {
			s, err := i.enumText(c, style)
			if c == "enumii" {
				return "(" + s + ")", err
			}
			return s + ".", err
		})
	}
	set["p@enumii"] = textMacro(func(i *Interpreter) (string, error) {
		return i.enumText("enumi", counter.Arabic)
	})
	set["p@enumiii"] = textMacro(enumPrefix)
	set["p@enumiv"] = textMacro(func(i *Interpreter) (string, error) {
		p, err := enumPrefix(i)
		if err != nil {
			return "", err
		}
		s, err := i.enumText("enumiii", counter.Roman)
		return p + s, err
	})
	return set
}

// enumPrefix renders the reference prefix of a third level item, such as
// "1(a)".
func enumPrefix(i *Interpreter) (string, error) {
	first, err := i.enumText("enumi", counter.Arabic)
	if err != nil {
		return "", err
	}
	second, err := i.enumText("enumii", counter.Alph)
	return first + "(" + second + ")", err
}

// textMacro is an argument-less macro producing text.
func textMacro(f func(i *Interpreter) (string, error)) builtin {
	return builtin{"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
		s, err := f(i)
		if err != nil {
			return nil, err
		}
		return nodes(i.b.Text(s)), nil
	})}
}
