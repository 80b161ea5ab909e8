// Package args describes macro signatures and tracks argument consumption
// while a macro invocation is being parsed.
package args

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for argument handling.
var (
	ErrNoMatchingBranch    = errors.New("no matching argument branch")
	ErrUnconsumedArguments = errors.New("arguments left unconsumed")
	ErrArgumentMismatch    = errors.New("argument does not match signature")
	ErrNoInvocation        = errors.New("no macro invocation in progress")
	ErrSpecSyntax          = errors.New("invalid argument spec")
)

// Mode is the typesetting mode a macro runs in.
type Mode string

// Macro modes.
const (
	ModeH  Mode = "H"  // horizontal (inline)
	ModeV  Mode = "V"  // vertical (block)
	ModeHV Mode = "HV" // either
	ModeP  Mode = "P"  // preamble only
)

// Kind identifies one argument slot.
type Kind string

// Argument kinds. A trailing "?" marks an optional argument.
const (
	Group          Kind = "g"     // {content}
	HGroup         Kind = "hg"    // {content} in horizontal mode
	OptGroup       Kind = "o?"    // [content]
	Star           Kind = "s"     // *
	Exec           Kind = "X"     // run the macro's pre-phase here
	Ident          Kind = "i"     // {identifier}
	OptIdent       Kind = "i?"    // [identifier]
	Key            Kind = "k"     // {key}
	OptKey         Kind = "k?"    // [key]
	KeyValList     Kind = "kv?"   // [key=value,...]
	CSV            Kind = "csv"   // {a,b,c}
	Number         Kind = "n"     // {number}
	OptNumber      Kind = "n?"    // [number]
	Len            Kind = "l"     // {length}
	OptLen         Kind = "l?"    // [length]
	CoordLen       Kind = "cl"    // {length in \unitlength}
	OptCoordLen    Kind = "cl?"   // [length in \unitlength]
	Vec            Kind = "v"     // (x,y)
	OptVec         Kind = "v?"    // [(x,y)]
	Color          Kind = "c"     // {color expression}
	ColorModels    Kind = "c-ml"  // {model/model}
	OptColorModels Kind = "c-ml?" // [model/model]
	ColorSpecs     Kind = "c-spl" // {spec/spec}
	URL            Kind = "u"     // {url}
	MacroName      Kind = "m"     // {\name}
	IgnoreSpace    Kind = "is"    // skip whitespace
	Horizontal     Kind = "h"     // horizontal material
	Items          Kind = "items" // list body
	Verbatim       Kind = "verb"  // raw text, not interpreted
)

// Optional reports whether the argument may be omitted. The star is
// implicitly optional.
func (k Kind) Optional() bool {
	return strings.HasSuffix(string(k), "?") || k == Star || k == IgnoreSpace
}

// Zero is the value an omitted argument is filled with.
func (k Kind) Zero() any {
	if k == Star {
		return false
	}
	return nil
}

// IsGroup reports whether the argument carries parsed document content.
func (k Kind) IsGroup() bool {
	switch k {
	case Group, HGroup, OptGroup, Horizontal, Items:
		return true
	}
	return false
}

// IsBody reports whether an environment's body can fill the argument.
func (k Kind) IsBody() bool {
	return k == Items || k == Horizontal || k == Verbatim
}

// Delim returns the opening delimiter an argument of this kind uses.
func (k Kind) Delim() byte {
	switch {
	case k == Star:
		return '*'
	case k == Vec:
		return '('
	case k.Optional():
		return '['
	}
	return '{'
}

// Descriptor is one slot of a signature: either a single kind or a choice
// between alternative sequences.
type Descriptor struct {
	Kind     Kind
	Branches [][]Descriptor
}

// IsBranch reports whether the descriptor is a choice.
func (d Descriptor) IsBranch() bool { return d.Branches != nil }

func (d Descriptor) String() string {
	if !d.IsBranch() {
		return string(d.Kind)
	}
	alts := make([]string, len(d.Branches))
	for i, b := range d.Branches {
		parts := make([]string, len(b))
		for j, x := range b {
			parts[j] = x.String()
		}
		alts[i] = strings.Join(parts, " ")
	}
	return "[" + strings.Join(alts, "|") + "]"
}

// Spec is a macro signature: its mode and argument slots.
type Spec struct {
	Mode Mode
	Args []Descriptor
}

// String renders the spec in the textual form ParseSpec accepts.
func (s Spec) String() string {
	parts := []string{string(s.Mode)}
	for _, d := range s.Args {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, " ")
}

var modes = map[string]Mode{"H": ModeH, "V": ModeV, "HV": ModeHV, "P": ModeP}

// ParseSpec parses a signature such as "HV [c-ml? c-spl|c] g". The first
// word may name a mode; branches are bracketed with "|" between
// alternatives.
func ParseSpec(s string) (Spec, error) {
	toks := tokenize(s)
	var spec Spec
	if len(toks) > 0 {
		if m, ok := modes[toks[0]]; ok {
			spec.Mode = m
			toks = toks[1:]
		}
	}
	ds, rest, err := parseSeq(toks, false)
	if err != nil {
		return Spec{}, err
	}
	if len(rest) > 0 {
		return Spec{}, fmt.Errorf("%w: unexpected %q in %q", ErrSpecSyntax, rest[0], s)
	}
	spec.Args = ds
	return spec, nil
}

// MustParseSpec is like ParseSpec but panics on error. It is meant for
// macro tables built at init time.
func MustParseSpec(s string) Spec {
	spec, err := ParseSpec(s)
	if err != nil {
		panic(err)
	}
	return spec
}

func tokenize(s string) []string {
	for _, c := range []string{"[", "]", "|"} {
		s = strings.ReplaceAll(s, c, " "+c+" ")
	}
	return strings.Fields(s)
}

// parseSeq reads descriptors until "|" or "]" (when nested) or the end.
func parseSeq(toks []string, nested bool) ([]Descriptor, []string, error) {
	var out []Descriptor
	for len(toks) > 0 {
		switch t := toks[0]; t {
		case "|", "]":
			if !nested {
				return nil, nil, fmt.Errorf("%w: stray %q", ErrSpecSyntax, t)
			}
			return out, toks, nil
		case "[":
			d, rest, err := parseBranch(toks[1:])
			if err != nil {
				return nil, nil, err
			}
			out, toks = append(out, d), rest
		default:
			out, toks = append(out, Descriptor{Kind: Kind(t)}), toks[1:]
		}
	}
	if nested {
		return nil, nil, fmt.Errorf("%w: unclosed branch", ErrSpecSyntax)
	}
	return out, nil, nil
}

func parseBranch(toks []string) (Descriptor, []string, error) {
	d := Descriptor{Branches: [][]Descriptor{}}
	for {
		seq, rest, err := parseSeq(toks, true)
		if err != nil {
			return Descriptor{}, nil, err
		}
		if len(seq) == 0 {
			return Descriptor{}, nil, fmt.Errorf("%w: empty branch", ErrSpecSyntax)
		}
		d.Branches = append(d.Branches, seq)
		if rest[0] == "]" {
			return d, rest[1:], nil
		}
		toks = rest[1:]
	}
}
