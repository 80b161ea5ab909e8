package event

import "github.com/alnah/go-tex2html/internal/args"

// Seq concatenates event sequences.
func Seq(parts ...[]Event) []Event {
	var out []Event
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Text is running text.
func Text(s string) []Event { return []Event{{Kind: KindText, Text: s}} }

// Macro starts a macro invocation; its arguments follow.
func Macro(name string) []Event { return []Event{{Kind: KindBeginMacro, Name: name}} }

// Arg is a scalar argument given as raw text, e.g. Arg(args.Len, "2cm").
func Arg(kind args.Kind, raw string) []Event {
	return Seq(
		[]Event{{Kind: KindBeginArg, Arg: kind}},
		Text(raw),
		[]Event{{Kind: KindEndArg}},
	)
}

// Value is a scalar argument with an already parsed value.
func Value(kind args.Kind, v any) []Event {
	return []Event{{Kind: KindBeginArg, Arg: kind, Value: v}, {Kind: KindEndArg}}
}

// Star marks a starred macro.
func Star() []Event { return Value(args.Star, true) }

// GroupArg is a content argument of the given kind.
func GroupArg(kind args.Kind, body ...[]Event) []Event {
	return Seq(
		[]Event{{Kind: KindBeginArg, Arg: kind}},
		Seq(body...),
		[]Event{{Kind: KindEndArg}},
	)
}

// Group is a mandatory {content} argument.
func Group(body ...[]Event) []Event { return GroupArg(args.Group, body...) }

// Opt is an optional [content] argument.
func Opt(body ...[]Event) []Event { return GroupArg(args.OptGroup, body...) }

// Braces is a bare group in running text.
func Braces(body ...[]Event) []Event {
	return Seq([]Event{{Kind: KindBeginGroup}}, Seq(body...), []Event{{Kind: KindEndGroup}})
}

// Begin opens an environment; its arguments and body follow.
func Begin(name string) []Event { return []Event{{Kind: KindBeginEnv, Name: name}} }

// End closes an environment.
func End(name string) []Event { return []Event{{Kind: KindEndEnv, Name: name}} }

// Env wraps parts in \begin{name} ... \end{name}.
func Env(name string, parts ...[]Event) []Event {
	return Seq(Begin(name), Seq(parts...), End(name))
}

// Par is a paragraph break.
func Par() []Event { return []Event{{Kind: KindPar}} }

// At sets the current source location.
func At(s Span) []Event { return []Event{{Kind: KindLocation, Span: &s}} }
