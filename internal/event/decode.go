package event

import (
	"errors"
	"fmt"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/yamlutil"
)

// ErrDecode reports a malformed event file.
var ErrDecode = errors.New("invalid event stream")

// record is one entry of the YAML event file. Exactly one of the keys
// selects the event:
//
//	- text: "Hello "
//	- macro: section
//	- arg: s
//	- arg: g
//	  body:
//	    - text: Intro
//	- arg: l
//	  value: 2cm
//	- begin: itemize
//	- end: itemize
//	- group: [{text: x}]
//	- par: true
//	- at: {file: doc.tex, line: 3, col: 1}
type record struct {
	Text     *string   `yaml:"text"`
	Macro    string    `yaml:"macro"`
	Arg      string    `yaml:"arg"`
	Delim    string    `yaml:"delim"`
	Value    *string   `yaml:"value"`
	Body     []record  `yaml:"body"`
	Begin    string    `yaml:"begin"`
	End      string    `yaml:"end"`
	Group    *[]record `yaml:"group"`
	Par      bool      `yaml:"par"`
	Continue bool      `yaml:"continue"`
	Break    bool      `yaml:"break"`
	At       *Span     `yaml:"at"`
}

// Decode parses a YAML event file.
func Decode(data []byte) ([]Event, error) {
	var recs []record
	if err := yamlutil.UnmarshalStrictLimit(data, &recs, yamlutil.MaxStreamSize); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return convert(recs, "")
}

func convert(recs []record, path string) ([]Event, error) {
	var out []Event
	for i, r := range recs {
		where := fmt.Sprintf("%s[%d]", path, i)
		evs, err := r.events(where)
		if err != nil {
			return nil, err
		}
		out = append(out, evs...)
	}
	return out, nil
}

func (r record) events(where string) ([]Event, error) {
	var set int
	for _, on := range []bool{
		r.Text != nil, r.Macro != "", r.Arg != "", r.Begin != "", r.End != "",
		r.Group != nil, r.Par, r.Continue, r.Break, r.At != nil,
	} {
		if on {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: entry %s must have exactly one event key", ErrDecode, where)
	}

	switch {
	case r.Text != nil:
		return Text(*r.Text), nil
	case r.Macro != "":
		return Macro(r.Macro), nil
	case r.Begin != "":
		return Begin(r.Begin), nil
	case r.End != "":
		return End(r.End), nil
	case r.Group != nil:
		body, err := convert(*r.Group, where+".group")
		if err != nil {
			return nil, err
		}
		return Braces(body), nil
	case r.Par:
		return Par(), nil
	case r.Continue:
		return []Event{{Kind: KindContinue}}, nil
	case r.Break:
		return []Event{{Kind: KindBreak}}, nil
	case r.At != nil:
		return At(*r.At), nil
	}
	return r.arg(where)
}

func (r record) arg(where string) ([]Event, error) {
	kind := args.Kind(r.Arg)
	begin := Event{Kind: KindBeginArg, Arg: kind}
	if len(r.Delim) > 1 {
		return nil, fmt.Errorf("%w: entry %s: delimiter %q is not a single character", ErrDecode, where, r.Delim)
	}
	if r.Delim != "" {
		begin.Delim = r.Delim[0]
	}

	switch {
	case kind == args.Star:
		begin.Value = true
		return []Event{begin, {Kind: KindEndArg}}, nil
	case kind.IsGroup():
		if r.Value != nil {
			return nil, fmt.Errorf("%w: entry %s: %s argument takes a body, not a value", ErrDecode, where, kind)
		}
		body, err := convert(r.Body, where+".body")
		if err != nil {
			return nil, err
		}
		return Seq([]Event{begin}, body, []Event{{Kind: KindEndArg}}), nil
	}

	if len(r.Body) > 0 {
		return nil, fmt.Errorf("%w: entry %s: %s argument takes a value, not a body", ErrDecode, where, kind)
	}
	raw := ""
	if r.Value != nil {
		raw = *r.Value
	}
	return Seq([]Event{begin}, Text(raw), []Event{{Kind: KindEndArg}}), nil
}
