package interp

import (
	"slices"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/length"
)

// store keeps the argument of a title page macro for \maketitle.
func store(field func(i *Interpreter) **html.Node) builtin {
	return builtin{"HV g", do(func(i *Interpreter, a []any) error {
		*field(i) = ArgNode(a, 0)
		return nil
	})}
}

func documentMacros() builtinSet {
	return builtinSet{
		"documentclass": {"P kv? k k?", do(func(i *Interpreter, a []any) error {
			if i.class != nil {
				return ErrDuplicateDocumentClass
			}
			return i.loadClass(ArgString(a, 1), ArgKeyVals(a, 0))
		})},
		"usepackage":   {"P kv? csv k?", do(usepackage)},
		"includeonly":  {"P csv", ignored},
		"makeatletter": {"P", ignored},
		"makeatother":  {"P", ignored},
		"input":        {"V g", do(ignoreFile("input"))},
		"include":      {"V g", do(ignoreFile("include"))},

		"document": {"V", do(func(i *Interpreter, _ []any) error {
			i.inDocument = true
			return nil
		})},

		"title":  store(func(i *Interpreter) **html.Node { return &i.title }),
		"author": store(func(i *Interpreter) **html.Node { return &i.author }),
		"date":   store(func(i *Interpreter) **html.Node { return &i.date }),
		"thanks": {"HV g", ignored},
		"and": {"H", run(func(i *Interpreter, _ []any) ([]*html.Node, error) {
			return nodes(i.symbolText("quad")), nil
		})},
		"maketitle": {"V", run(maketitle)},

		"label": {"HV g", do(func(i *Interpreter, a []any) error {
			return i.SetLabel(dom.TextContent(ArgNode(a, 0)))
		})},
		"ref": {"H g", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			return nodes(i.Ref(dom.TextContent(ArgNode(a, 0)))), nil
		})},
		"marginpar": {"H g", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			return nodes(i.Marginpar(ArgNode(a, 0))), nil
		})},

		"tableofcontents": {"V", run(tableofcontents)},
		"appendix": {"V", do(func(i *Interpreter, _ []any) error {
			return i.class.Appendix(i)
		})},
	}
}

// usepackage loads each package with the class options followed by its
// own. A package that cannot be loaded is reported and skipped.
func usepackage(i *Interpreter, a []any) error {
	opts := slices.Concat(i.class.Options().Raw, ArgKeyVals(a, 0))
	for _, name := range ArgStrings(a, 1) {
		if err := i.LoadPackage(name, opts); err != nil {
			i.Warn("%v", err)
		}
	}
	return nil
}

func ignoreFile(macro string) func(i *Interpreter, a []any) error {
	return func(i *Interpreter, a []any) error {
		i.Warn("\\%s{%s} ignored: files are not read", macro, dom.TextContent(ArgNode(a, 0)))
		return nil
	}
}

// maketitle sets the title block from \title, \author and \date, which
// are cleared afterwards. Without \date the current date is used.
func maketitle(i *Interpreter, _ []any) ([]*html.Node, error) {
	date := i.date
	if date == nil {
		today, err := i.Macro("today")
		if err != nil {
			return nil, err
		}
		date = i.b.Fragment(today...)
	}
	// The block takes over the children of the fragments.
	if i.title != nil {
		i.docTitle = titleText(i.title)
	}
	em := func(v float64) *html.Node { return i.b.VSpace(length.MustNew(v, "em")) }

	block := i.b.Element("div", dom.ClassList+" center",
		em(2),
		i.b.Element("div", "title", i.title),
		em(1.5),
		i.b.Element("div", "author", i.author),
		em(1),
		i.b.Element("div", "date", date),
		em(1.5),
	)
	if err := i.counters.Set("footnote", 0); err != nil {
		return nil, err
	}
	i.title, i.author, i.date = nil, nil, nil
	return nodes(block), nil
}

// tableofcontents sets an unnumbered heading and the table, which is
// filled in once all headings are known.
func tableofcontents(i *Interpreter, _ []any) ([]*html.Node, error) {
	kind, level := "section", 1
	for _, s := range i.class.Sections() {
		if s.Name == "chapter" {
			kind, level = s.Name, s.Level
		}
	}
	name, err := i.Macro("contentsname")
	if err != nil {
		return nil, err
	}
	heading, err := i.StartSection(kind, level, true, nil, i.b.Fragment(name...))
	if err != nil {
		return nil, err
	}
	return nodes(heading, i.tableOfContents()), nil
}
