package docclass

import "github.com/alnah/go-tex2html/internal/counter"

// Article is the article class: sections at level 1, no chapters.
type Article struct {
	base
}

func newArticle(opts Options, terms map[string]string) DocumentClass {
	return &Article{base{name: "article", css: "article", opts: opts, terms: terms}}
}

// Sections implements DocumentClass.
func (a *Article) Sections() []Section {
	return []Section{
		{"part", 0},
		{"section", 1},
		{"subsection", 2},
		{"subsubsection", 3},
		{"paragraph", 4},
		{"subparagraph", 5},
	}
}

// CounterSetup implements DocumentClass.
func (a *Article) CounterSetup(h Host) error {
	if err := setupBase(h, a.opts); err != nil {
		return err
	}
	if err := h.SetCounter("secnumdepth", 3); err != nil {
		return err
	}
	return h.SetCounter("tocdepth", 3)
}

// NumberingRules implements DocumentClass. After \appendix sections are
// lettered.
func (a *Article) NumberingRules() map[string]Numbering {
	return sectionRules(func(h Host) (string, error) {
		if a.appendix {
			return format(h, "section", counter.AlphUpper)
		}
		return format(h, "section", counter.Arabic)
	})
}

// Appendix implements DocumentClass.
func (a *Article) Appendix(h Host) error {
	if err := h.SetCounter("section", 0); err != nil {
		return err
	}
	if err := h.SetCounter("subsection", 0); err != nil {
		return err
	}
	a.appendix = true
	return nil
}
