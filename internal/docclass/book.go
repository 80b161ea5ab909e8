package docclass

// Book is the report class with front, main and back matter. Chapters are
// numbered only in the main matter.
type Book struct {
	Report
	matter Matter
}

func newBook(opts Options, terms map[string]string) DocumentClass {
	return &Book{Report: Report{base{name: "book", css: "book", opts: opts, terms: terms}}}
}

// SetMatter implements Matters.
func (b *Book) SetMatter(m Matter) { b.matter = m }

// Numbered implements Matters.
func (b *Book) Numbered(section string) bool {
	return section != "chapter" || b.matter == MainMatter
}

var _ Matters = (*Book)(nil)
