package docclass

import "github.com/alnah/go-tex2html/internal/counter"

// Report is the report class: chapters at level 0, parts above them, and
// figures, tables and footnotes numbered per chapter.
type Report struct {
	base
}

func newReport(opts Options, terms map[string]string) DocumentClass {
	return &Report{base{name: "report", css: "book", opts: opts, terms: terms}}
}

// Sections implements DocumentClass.
func (r *Report) Sections() []Section {
	return []Section{
		{"part", -1},
		{"chapter", 0},
		{"section", 1},
		{"subsection", 2},
		{"subsubsection", 3},
		{"paragraph", 4},
		{"subparagraph", 5},
	}
}

// CounterSetup implements DocumentClass.
func (r *Report) CounterSetup(h Host) error {
	if err := setupBase(h, r.opts); err != nil {
		return err
	}
	if err := h.NewCounter("chapter", ""); err != nil {
		return err
	}
	for _, c := range []string{"section", "figure", "table", "footnote"} {
		if err := h.AddToReset(c, "chapter"); err != nil {
			return err
		}
	}
	if err := h.SetCounter("secnumdepth", 2); err != nil {
		return err
	}
	return h.SetCounter("tocdepth", 2)
}

// NumberingRules implements DocumentClass.
func (r *Report) NumberingRules() map[string]Numbering {
	thechapter := func(h Host) (string, error) {
		if r.appendix {
			return format(h, "chapter", counter.AlphUpper)
		}
		return format(h, "chapter", counter.Arabic)
	}
	rules := sectionRules(subnumber(thechapter, "section"))
	rules["chapter"] = thechapter
	rules["figure"] = perChapter(thechapter, "figure")
	rules["table"] = perChapter(thechapter, "table")
	return rules
}

// perChapter prefixes the chapter number once a chapter has started.
func perChapter(thechapter Numbering, c string) Numbering {
	return func(h Host) (string, error) {
		ch, err := h.Counter("chapter")
		if err != nil {
			return "", err
		}
		if ch > 0 {
			return subnumber(thechapter, c)(h)
		}
		return format(h, c, counter.Arabic)
	}
}

// Term implements DocumentClass. In the appendix chapters are headed by
// the appendix name.
func (r *Report) Term(key string) (string, bool) {
	if key == "chaptername" && r.appendix {
		key = "appendixname"
	}
	return r.base.Term(key)
}

// Appendix implements DocumentClass.
func (r *Report) Appendix(h Host) error {
	if err := h.SetCounter("chapter", 0); err != nil {
		return err
	}
	if err := h.SetCounter("section", 0); err != nil {
		return err
	}
	r.appendix = true
	return nil
}
