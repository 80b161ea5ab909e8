package packages

import (
	"testing"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/event"
)

func TestTransformOrigin(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":   "left bottom",
		"c":  "center center",
		"lt": "left top",
		"rB": "right bottom",
		"t":  "center top",
		"cr": "right center",
	}
	for in, want := range tests {
		if got := transformOrigin(in); got != want {
			t.Errorf("transformOrigin(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsePaths(t *testing.T) {
	t.Parallel()

	got := parsePaths("{figs/} {img/}")
	if len(got) != 2 || got[0] != "figs/" || got[1] != "img/" {
		t.Errorf("parsePaths() = %q, want [figs/ img/]", got)
	}
}

func TestGraphicx(t *testing.T) {
	t.Parallel()

	hg := func(s string) []event.Event { return event.GroupArg(args.HGroup, event.Text(s)) }
	runCases(t, "graphicx", []renderCase{
		{
			name: "includegraphics with width",
			evs: event.Seq(event.Macro("includegraphics"),
				event.Arg(args.KeyValList, "width=1in"), event.Arg(args.Key, "plot.png"),
			),
			want: []string{`<img src="plot.png" style="width:96px"/>`},
		},
		{
			name: "includegraphics relative to the text width",
			evs: event.Seq(event.Macro("includegraphics"),
				event.Arg(args.KeyValList, `width=0.5\textwidth`), event.Arg(args.Key, "plot.png"),
			),
			want: []string{`style="width:`},
		},
		{
			name: "graphicspath prefixes relative files",
			evs: event.Seq(
				event.Macro("graphicspath"), event.Arg(args.Key, "{figs/}"),
				event.Macro("includegraphics"), event.Arg(args.Key, "plot.png"),
				event.Macro("includegraphics"), event.Arg(args.Key, "https://example.com/a.png"),
			),
			want: []string{`src="figs/plot.png"`, `src="https://example.com/a.png"`},
		},
		{
			name: "rotatebox",
			evs:  event.Seq(event.Macro("rotatebox"), event.Arg(args.Number, "90"), hg("x")),
			want: []string{`style="transform:rotate(-90deg);transform-origin:left bottom"`, ">x</span>"},
		},
		{
			name: "rotatebox around the center",
			evs: event.Seq(event.Macro("rotatebox"),
				event.Arg(args.KeyValList, "origin=c"), event.Arg(args.Number, "45"), hg("x"),
			),
			want: []string{`transform-origin:center center`},
		},
		{
			name: "scalebox",
			evs:  event.Seq(event.Macro("scalebox"), event.Arg(args.Number, "2"), event.Group(event.Text("x"))),
			want: []string{`transform:scale(2,2)`},
		},
		{
			name: "reflectbox",
			evs:  event.Seq(event.Macro("reflectbox"), event.Group(event.Text("x"))),
			want: []string{`transform:scale(-1,1)`},
		},
		{
			name: "resizebox keeps the aspect ratio",
			evs: event.Seq(event.Macro("resizebox"),
				event.Arg(args.Key, "1in"), event.Arg(args.Key, "!"), event.Group(event.Text("x")),
			),
			want: []string{`<span class="hbox resizebox" style="width:96px">x</span>`},
		},
	})
}
