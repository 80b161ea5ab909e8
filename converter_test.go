package tex2html

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/event"
	"github.com/alnah/go-tex2html/internal/interp"
)

// convert runs evs through a converter built with opts.
func convert(t *testing.T, opts []Option, evs ...[]event.Event) (*Result, error) {
	t.Helper()
	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return conv.Convert(context.Background(), Input{Events: event.Seq(evs...), Title: "Doc"})
}

// page runs evs and returns the HTML page.
func page(t *testing.T, opts []Option, evs ...[]event.Event) string {
	t.Helper()
	res, err := convert(t, opts, evs...)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return string(res.HTML)
}

func TestNewConverter_InvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "negative precision", opts: []Option{WithPrecision(-1)}, wantErr: ErrInvalidPrecision},
		{name: "precision too high", opts: []Option{WithPrecision(MaxPrecision + 1)}, wantErr: ErrInvalidPrecision},
		{name: "bad language", opts: []Option{WithLanguage("not a tag!")}, wantErr: ErrInvalidLanguage},
		{name: "bad date format", opts: []Option{WithDateFormat("[unclosed")}, wantErr: ErrInvalidDateFormat},
		{name: "unknown style", opts: []Option{WithStyles("nope")}, wantErr: ErrStyleNotFound},
		{name: "missing asset path", opts: []Option{WithAssetPath("/does/not/exist")}, wantErr: ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	got := page(t, nil, event.Text("Hello"), event.Par(), event.Text("World"))
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Doc</title>",
		"<style>",
		"--textwidth",
		`<div class="body"><p>Hello</p><p>World</p></div>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page = %q, want it to contain %q", got, want)
		}
	}
}

func TestConvert_EmptyInput(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conv.Convert(context.Background(), Input{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Convert() error = %v, want ErrEmptyInput", err)
	}
}

func TestConvert_Title(t *testing.T) {
	t.Parallel()

	t.Run("from input", func(t *testing.T) {
		t.Parallel()
		res, err := convert(t, nil, event.Text("x"))
		if err != nil {
			t.Fatal(err)
		}
		if res.Title != "Doc" {
			t.Errorf("Title = %q, want %q", res.Title, "Doc")
		}
	})

	t.Run("from maketitle", func(t *testing.T) {
		t.Parallel()
		res, err := convert(t, []Option{WithClock(func() time.Time { return time.Unix(0, 0).UTC() })},
			event.Macro("title"), event.Group(event.Text("Notes")),
			event.Macro("maketitle"),
		)
		if err != nil {
			t.Fatal(err)
		}
		if res.Title != "Notes" {
			t.Errorf("Title = %q, want %q", res.Title, "Notes")
		}
		if !strings.Contains(string(res.HTML), "<title>Notes</title>") {
			t.Errorf("page title not set: %s", res.HTML)
		}
	})
}

func TestConvert_DocumentClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		class string
		want  string
	}{
		{name: "article", class: "article", want: "--textwidth"},
		{name: "book", class: "book", want: "break-before"},
		{name: "report uses the book styles", class: "report", want: "break-before"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := page(t, []Option{WithDocumentClass(tt.class)}, event.Text("x"))
			if !strings.Contains(got, tt.want) {
				t.Errorf("page does not contain %q", tt.want)
			}
		})
	}
}

func TestConvert_Styles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.css")
	if err := os.WriteFile(path, []byte(".from-file { color: blue; }"), 0o600); err != nil {
		t.Fatal(err)
	}

	conv, err := NewConverter(WithStyles(".inline { color: red; }", path))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	res, err := conv.Convert(context.Background(), Input{
		Events: event.Text("x"),
		CSS:    ".last { margin: 0; }",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	got := string(res.HTML)
	inline := strings.Index(got, ".inline")
	file := strings.Index(got, ".from-file")
	last := strings.Index(got, ".last")
	if inline < 0 || file < 0 || last < 0 {
		t.Fatalf("missing stylesheet in %s", got)
	}
	if !(inline < file && file < last) {
		t.Errorf("stylesheets out of order: inline=%d file=%d last=%d", inline, file, last)
	}
}

func TestConvert_Hyphenation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enabled bool
	}{
		{name: "enabled", enabled: true},
		{name: "disabled", enabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := page(t, []Option{WithHyphenation(tt.enabled)}, event.Text("x"))
			if has := strings.Contains(got, "hyphens: auto"); has != tt.enabled {
				t.Errorf("hyphenation CSS present = %v, want %v", has, tt.enabled)
			}
		})
	}
}

func TestConvert_Hyphenator(t *testing.T) {
	t.Parallel()

	soft := func(s string) string { return strings.ReplaceAll(s, "ab", "a\u00adb") }
	got := page(t, []Option{WithHyphenator(soft)}, event.Text("abc"))
	if !strings.Contains(got, "a\u00adbc") {
		t.Errorf("page = %q, want a soft hyphen", got)
	}
}

func TestConvert_Language(t *testing.T) {
	t.Parallel()

	got := page(t, []Option{WithLanguage("de")},
		event.Macro("MakeUppercase"), event.Group(event.Text("straße")),
	)
	if !strings.Contains(got, `lang="de"`) {
		t.Errorf("page has no lang attribute: %s", got)
	}
	if !strings.Contains(got, "STRASSE") {
		t.Errorf("page = %q, want STRASSE", got)
	}
}

func TestConvert_Today(t *testing.T) {
	t.Parallel()

	clock := func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	got := page(t, []Option{WithClock(clock), WithDateFormat("iso")}, event.Macro("today"))
	if !strings.Contains(got, "2024-03-01") {
		t.Errorf("page = %q, want the ISO date", got)
	}
}

func TestConvert_Warnings(t *testing.T) {
	t.Parallel()

	res, err := convert(t, nil, event.Macro("ref"), event.Group(event.Text("nowhere")))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(res.Warnings))
	}
	if !strings.Contains(res.Warnings[0].Message, "nowhere") {
		t.Errorf("warning = %q", res.Warnings[0].Message)
	}
}

func TestConvert_Packages(t *testing.T) {
	t.Parallel()

	got := page(t, []Option{WithPackages("xcolor")},
		event.Macro("textcolor"), event.Arg(args.Color, "red"), event.Group(event.Text("x")),
	)
	if !strings.Contains(got, `<span style="color:#ff0000">x</span>`) {
		t.Errorf("page = %q, want a red span", got)
	}
}

func TestConvert_Extensions(t *testing.T) {
	t.Parallel()

	smiley := func(*interp.Interpreter, args.KeyVals) (*Extension, error) {
		return &Extension{Name: "smiley", Symbols: map[string]string{"smiley": "\u263a"}}, nil
	}

	t.Run("with extensions", func(t *testing.T) {
		t.Parallel()
		got := page(t, []Option{
			WithExtensions(map[string]ExtensionFactory{"smiley": smiley}),
			WithPackages("smiley"),
		}, event.Macro("smiley"))
		if !strings.Contains(got, "\u263a") {
			t.Errorf("page = %q, want the symbol", got)
		}
	})

	t.Run("with resolver", func(t *testing.T) {
		t.Parallel()
		resolve := func(name string) (ExtensionFactory, error) {
			if name == "smiley" {
				return smiley, nil
			}
			return nil, nil
		}
		got := page(t, []Option{WithExtensionResolver(resolve), WithPackages("smiley")}, event.Macro("smiley"))
		if !strings.Contains(got, "\u263a") {
			t.Errorf("page = %q, want the symbol", got)
		}
	})

	t.Run("unresolved package warns", func(t *testing.T) {
		t.Parallel()
		res, err := convert(t, []Option{WithPackages("nosuchpackage")}, event.Text("x"))
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if len(res.Warnings) == 0 {
			t.Error("no warning for a package that cannot be loaded")
		}
	})
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		evs     []event.Event
		wantErr error
	}{
		{
			name:    "unknown macro",
			evs:     event.Seq(event.At(Span{File: "doc.tex", Line: 3, Column: 1}), event.Macro("nosuchmacro")),
			wantErr: ErrUnknownMacro,
		},
		{
			name:    "unknown environment",
			evs:     event.Env("nosuchenv", event.Text("x")),
			wantErr: ErrUnknownEnvironment,
		},
		{
			name:    "mismatched end",
			evs:     event.Seq(event.Begin("center"), event.End("flushleft")),
			wantErr: ErrMismatchedEnvironmentEnd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := convert(t, nil, tt.evs)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
			var located *LocatedError
			if !errors.As(err, &located) {
				t.Errorf("Convert() error = %v, want a *LocatedError", err)
			}
		})
	}
}

func TestConvert_ContextCanceled(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = conv.Convert(ctx, Input{Events: event.Text("x")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConvert_SourceDir(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithPackages("graphicx"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := conv.Convert(context.Background(), Input{
		Events:    event.Seq(event.Macro("includegraphics"), event.Arg(args.Key, "fig.png")),
		SourceDir: "/docs",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), "file:///docs/fig.png") {
		t.Errorf("relative image path not rewritten: %s", res.HTML)
	}
}
