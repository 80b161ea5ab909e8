package interp

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/scope"
)

// maxListDepth bounds the nesting of list-like environments.
const maxListDepth = 6

// StartList enters a list-like environment.
func (i *Interpreter) StartList() error {
	if err := i.counters.Step("@listdepth"); err != nil {
		return err
	}
	if d, _ := i.counters.Get("@listdepth"); d > maxListDepth {
		return fmt.Errorf("%w: more than %d levels of lists", ErrTooDeeplyNested, maxListDepth)
	}
	return nil
}

// EndList leaves a list-like environment. Text that follows continues the
// paragraph the list interrupted.
func (i *Interpreter) EndList() error {
	d, err := i.counters.Get("@listdepth")
	if err != nil {
		return err
	}
	if err := i.counters.Set("@listdepth", d-1); err != nil {
		return err
	}
	i.cont = true
	return nil
}

// listEnv is an environment set as a list: its body goes into a div with
// the given classes.
func listEnv(set builtinSet, name, classes string) {
	set[name] = builtin{"V", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
		if err := i.StartList(); err != nil {
			return nil, err
		}
		return nodes(i.b.Element("div", classes)), nil
	})}
	set["end"+name] = builtin{"V", do(func(i *Interpreter, _ []any) error { return i.EndList() })}
}

func alignment(align string) builtin {
	return builtin{"HV", do(func(i *Interpreter, _ []any) error {
		i.scope.SetAlignment(align)
		return nil
	})}
}

func vskip(name string) builtin {
	return builtin{"V", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
		return nodes(i.b.VSkip(name)), nil
	})}
}

func layoutMacros() builtinSet {
	set := builtinSet{
		"centering":   alignment("centering"),
		"raggedright": alignment("raggedright"),
		"raggedleft":  alignment("raggedleft"),

		"titlepage": {"V", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.b.Element("div", "titlepage")), nil
		})},
		"abstract": {"V", run(abstract)},
		"endabstract": {"V", do(func(i *Interpreter, _ []any) error {
			if err := i.EndList(); err != nil {
				return err
			}
			return i.EndList()
		})},

		"hspace": {"H s l", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			l, _ := ArgLength(a, 1)
			return nodes(i.b.HSpace(l)), nil
		})},
		"vspace": {"HV s l", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			l, _ := ArgLength(a, 1)
			return nodes(i.b.VSpace(l)), nil
		})},
		"addvspace": {"V l", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			l, _ := ArgLength(a, 0)
			return nodes(i.b.VSpace(l)), nil
		})},
		"smallbreak": vskip("smallskip"),
		"medbreak":   vskip("medskip"),
		"bigbreak":   vskip("bigskip"),
		"smallskip":  vskip("smallskip"),
		"medskip":    vskip("medskip"),
		"bigskip":    vskip("bigskip"),
		"newline": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.b.Element("br", "")), nil
		})},
		"negthinspace": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.b.Element("span", "negthinspace")), nil
		})},
		"noindent": {"HV", do(func(i *Interpreter, _ []any) error {
			i.noindent = true
			return nil
		})},
		"par":   {"V", ignored},
		"empty": {"HV", ignored},

		"onecolumn":       {"V", ignored},
		"twocolumn":       {"V o?", ignored},
		"pagestyle":       {"HV i", ignored},
		"thispagestyle":   {"HV i", ignored},
		"linebreak":       {"HV n?", ignored},
		"nolinebreak":     {"HV n?", ignored},
		"fussy":           {"HV", ignored},
		"sloppy":          {"HV", ignored},
		"pagebreak":       {"HV n?", ignored},
		"nopagebreak":     {"HV n?", ignored},
		"samepage":        {"HV", ignored},
		"enlargethispage": {"HV s l", ignored},
		"newpage":         {"HV", ignored},
		"clearpage":       {"HV", ignored},
		"cleardoublepage": {"HV", ignored},
		"vfill":           {"HV", ignored},
	}
	listEnv(set, "center", dom.ClassList+" center")
	listEnv(set, "flushleft", dom.ClassList+" flushleft")
	listEnv(set, "flushright", dom.ClassList+" flushright")
	listEnv(set, "quote", dom.ClassList+" "+dom.ClassQuote)
	listEnv(set, "quotation", dom.ClassList+" "+dom.ClassQuotation)
	listEnv(set, "verse", dom.ClassList+" "+dom.ClassVerse)
	return set
}

// abstract sets a centered bold heading followed by a quotation holding
// the body, all in a small font.
func abstract(i *Interpreter, _ []any) ([]*html.Node, error) {
	if err := i.StartList(); err != nil {
		return nil, err
	}
	i.scope.Set(scope.FontSize, "small")

	i.scope.EnterGroup(false)
	i.scope.Set(scope.FontSize, "small")
	i.scope.Set(scope.FontWeight, "bf")
	name, err := i.Macro("abstractname")
	if err != nil {
		return nil, err
	}
	head := i.b.Element("div", dom.ClassList+" center", name...)
	if err := i.scope.ExitGroup(); err != nil {
		return nil, err
	}

	if err := i.StartList(); err != nil {
		return nil, err
	}
	return nodes(head, i.b.Element("div", dom.ClassList+" "+dom.ClassQuotation)), nil
}
