package interp

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/docclass"
)

var sectionSpec = args.MustParseSpec("V s X o? g")

// ensureClass loads the default class unless one is loaded already.
func (i *Interpreter) ensureClass() error {
	if i.class != nil {
		return nil
	}
	return i.loadClass(i.className, i.classOpts)
}

// loadClass instantiates a document class and defines its macros: the
// sectioning commands, the \the<counter> formats, the localized names
// and, for books, the matter switches. Preloaded packages follow.
func (i *Interpreter) loadClass(name string, opts args.KeyVals) error {
	c, err := docclass.New(name, opts, i.lang)
	if errors.Is(err, docclass.ErrUnknownClass) {
		i.Warn("unknown document class %q, using %s", name, docclass.Default)
		c, err = docclass.New(docclass.Default, opts, i.lang)
	}
	if err != nil {
		return err
	}
	i.class = c
	if err := c.CounterSetup(i); err != nil {
		return err
	}
	for _, o := range c.Options().Unused {
		i.Warn("unused class option %q", o)
	}

	for _, s := range c.Sections() {
		if err := i.registerSection(s); err != nil {
			return err
		}
	}
	for ctr, rule := range c.NumberingRules() {
		if err := i.defineText("the"+ctr, func() (string, error) { return rule(i) }); err != nil {
			return err
		}
	}
	for _, key := range docclass.TermKeys() {
		if err := i.defineText(key, func() (string, error) {
			t, _ := i.class.Term(key)
			return t, nil
		}); err != nil {
			return err
		}
	}
	if m, ok := c.(docclass.Matters); ok {
		for name, matter := range map[string]docclass.Matter{
			"frontmatter": docclass.FrontMatter,
			"mainmatter":  docclass.MainMatter,
			"backmatter":  docclass.BackMatter,
		} {
			if err := i.macros.Register(name, vmode, Handler{
				Run: func(*Interpreter, []any) ([]*html.Node, error) {
					m.SetMatter(matter)
					return nil, nil
				},
			}); err != nil {
				return err
			}
		}
	}

	for _, p := range i.preload {
		if err := i.LoadPackage(p, c.Options().Raw); err != nil {
			i.Warn("%v", err)
		}
	}
	return nil
}

// registerSection defines a sectioning command. The pre-phase steps the
// counter so that a \label in the title already refers to the section.
func (i *Interpreter) registerSection(s docclass.Section) error {
	return i.macros.Register(s.Name, sectionSpec, Handler{
		Pre: func(i *Interpreter, a []any) error {
			_, err := i.StartSection(s.Name, s.Level, ArgBool(a, 0), nil, nil)
			return err
		},
		Run: func(i *Interpreter, a []any) ([]*html.Node, error) {
			el, err := i.StartSection(s.Name, s.Level, ArgBool(a, 0), ArgNode(a, 1), ArgNode(a, 2))
			if err != nil || el == nil {
				return nil, err
			}
			return []*html.Node{el}, nil
		},
	})
}
