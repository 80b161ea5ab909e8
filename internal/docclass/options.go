package docclass

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/length"
)

// ErrInvalidOption reports a malformed class option.
var ErrInvalidOption = errors.New("invalid class option")

// Paper is a paper size.
type Paper struct {
	Width, Height length.Length
}

var papers = map[string]Paper{
	"a4paper":        {length.MustNew(210, "mm"), length.MustNew(297, "mm")},
	"a5paper":        {length.MustNew(148, "mm"), length.MustNew(210, "mm")},
	"b5paper":        {length.MustNew(176, "mm"), length.MustNew(250, "mm")},
	"letterpaper":    {length.MustNew(8.5, "in"), length.MustNew(11, "in")},
	"legalpaper":     {length.MustNew(8.5, "in"), length.MustNew(14, "in")},
	"executivepaper": {length.MustNew(7.25, "in"), length.MustNew(10.5, "in")},
}

// accepted options that have no effect on the output.
var ignored = map[string]bool{
	"oneside": true, "twoside": true, "onecolumn": true, "twocolumn": true,
	"titlepage": true, "notitlepage": true, "fleqn": true, "leqno": true,
	"draft": true, "final": true, "openright": true, "openany": true,
}

var sizeOption = regexp.MustCompile(`^\d+(\.\d+)?pt$`)

// Options are the parsed class options.
type Options struct {
	Paper     Paper
	Landscape bool
	// Size is the base font size.
	Size length.Length
	// Unused lists options the class does not know.
	Unused []string
	// Raw keeps the options as given; packages inherit them.
	Raw args.KeyVals
}

// DefaultOptions returns letter paper at 10pt.
func DefaultOptions() Options {
	return Options{Paper: papers["letterpaper"], Size: length.Pt(10)}
}

// ParseOptions reads class options such as a4paper, landscape or 12pt.
func ParseOptions(kv args.KeyVals) (Options, error) {
	o := DefaultOptions()
	o.Raw = kv
	for _, opt := range kv {
		if opt.Value != "" {
			o.Unused = append(o.Unused, opt.Key+"="+opt.Value)
			continue
		}
		switch {
		case opt.Key == "landscape":
			o.Landscape = true
		case ignored[opt.Key]:
		case sizeOption.MatchString(opt.Key):
			l, err := length.Parse(opt.Key)
			if err != nil {
				return Options{}, fmt.Errorf("%w: %s: %v", ErrInvalidOption, opt.Key, err)
			}
			o.Size = l
		default:
			p, ok := papers[opt.Key]
			if !ok {
				o.Unused = append(o.Unused, opt.Key)
				continue
			}
			o.Paper = p
		}
	}
	return o, nil
}

// PaperSize returns the paper width and height, swapped in landscape.
func (o Options) PaperSize() (w, h length.Length) {
	if o.Landscape {
		return o.Paper.Height, o.Paper.Width
	}
	return o.Paper.Width, o.Paper.Height
}

// Geometry is the page layout derived from the paper size.
type Geometry struct {
	TextWidth      length.Length
	OddSideMargin  length.Length
	MarginparWidth length.Length
	MarginparSep   length.Length
	MarginparPush  length.Length
}

// PageGeometry computes the text block and margins for a paper width: the
// text is at most 345pt wide and at least one inch from each edge, and the
// margin note column is capped at two inches.
func PageGeometry(paperWidth length.Length) (Geometry, error) {
	inch := length.MustNew(1, "in")
	g := Geometry{
		MarginparSep:  length.Pt(11),
		MarginparPush: length.Pt(5),
	}

	tw, err := paperWidth.Sub(inch.Mul(2))
	if err != nil {
		return Geometry{}, err
	}
	if tw, err = length.Min(tw, length.Pt(345)); err != nil {
		return Geometry{}, err
	}
	g.TextWidth = tw

	margins, err := paperWidth.Sub(tw)
	if err != nil {
		return Geometry{}, err
	}
	half := margins.Mul(0.5)
	if g.OddSideMargin, err = half.Sub(inch); err != nil {
		return Geometry{}, err
	}
	mpw, err := half.Sub(g.MarginparSep)
	if err != nil {
		return Geometry{}, err
	}
	if mpw, err = mpw.Sub(inch.Mul(0.8)); err != nil {
		return Geometry{}, err
	}
	if g.MarginparWidth, err = length.Min(mpw, inch.Mul(2)); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// ApplyGeometry sets the paper, font size and page layout lengths.
func ApplyGeometry(h Host, o Options) error {
	w, ht := o.PaperSize()
	g, err := PageGeometry(w)
	if err != nil {
		return err
	}
	for _, l := range []struct {
		name string
		val  length.Length
	}{
		{"paperwidth", w},
		{"paperheight", ht},
		{"@@size", o.Size},
		{"textwidth", g.TextWidth},
		{"oddsidemargin", g.OddSideMargin},
		{"marginparwidth", g.MarginparWidth},
		{"marginparsep", g.MarginparSep},
		{"marginparpush", g.MarginparPush},
	} {
		if err := h.SetLength(l.name, l.val); err != nil {
			return err
		}
	}
	return nil
}
