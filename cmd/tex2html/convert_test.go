package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tex2html "github.com/alnah/go-tex2html"
	"github.com/alnah/go-tex2html/internal/config"
	"github.com/alnah/go-tex2html/internal/dateutil"
)

// testEnv returns an environment writing to buffers, with no TEX2HTML_*
// variables and a fixed clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:     func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
		Stdout:  &stdout,
		Stderr:  &stderr,
		Getenv:  func(string) string { return "" },
		Environ: func() []string { return nil },
	}, &stdout, &stderr
}

// writeEvents writes an event file and returns its path.
func writeEvents(t *testing.T, dir, name, yaml string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const helloEvents = "- text: Hello\n- par: true\n- macro: today\n"

// mockConverter records calls and returns a fixed page.
type mockConverter struct {
	calls atomic.Int32
	err   error
}

func (m *mockConverter) Convert(_ context.Context, in tex2html.Input) (*tex2html.Result, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return &tex2html.Result{HTML: []byte("<p>" + in.Title + "</p>"), Title: in.Title}, nil
}

// mockPool hands out a single shared converter.
type mockPool struct {
	conv       *mockConverter
	size       int
	acquireErr error
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}
func (p *mockPool) Release(CLIConverter) {}
func (p *mockPool) Size() int            { return p.size }

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.DocumentClass = "article"
		cfg.Packages = []string{"xcolor"}

		flags := &convertFlags{
			document: documentFlags{
				class:        "book",
				classOptions: []string{"12pt"},
				packages:     []string{"hyperref"},
				language:     "de",
				dateFormat:   "iso",
				date:         "2024-01-02",
				precision:    5,
				noHyphenate:  true,
			},
			assets: assetFlags{styles: []string{"book"}, assetPath: "/assets"},
		}
		mergeFlags(flags, cfg)

		if cfg.DocumentClass != "book" || !slices.Equal(cfg.ClassOptions, []string{"12pt"}) {
			t.Errorf("class = %q %v", cfg.DocumentClass, cfg.ClassOptions)
		}
		if !slices.Equal(cfg.Packages, []string{"xcolor", "hyperref"}) {
			t.Errorf("Packages = %v, want config then flag packages", cfg.Packages)
		}
		if cfg.Language != "de" || cfg.DateFormat != "iso" || cfg.Date != "2024-01-02" {
			t.Errorf("language/date = %q %q %q", cfg.Language, cfg.DateFormat, cfg.Date)
		}
		if cfg.Precision != 5 || cfg.Hyphenate {
			t.Errorf("precision = %d, hyphenate = %v", cfg.Precision, cfg.Hyphenate)
		}
		if !slices.Equal(cfg.Styles, []string{"book"}) || cfg.Assets.BasePath != "/assets" {
			t.Errorf("styles = %v, asset path = %q", cfg.Styles, cfg.Assets.BasePath)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Precision = 2
		mergeFlags(&convertFlags{document: documentFlags{precision: -1}}, cfg)
		if cfg.Precision != 2 || !cfg.Hyphenate {
			t.Errorf("config changed: %+v", cfg)
		}
	})
}

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Date = "2021-06-15"
	cfg.DateFormat = "iso"
	opts, err := buildOptions(cfg, time.Minute, time.Now())
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}

	conv, err := tex2html.NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	evs, err := tex2html.DecodeEvents([]byte("- macro: today\n"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := conv.Convert(context.Background(), tex2html.Input{Events: evs})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), "2021-06-15") {
		t.Errorf("pinned date missing from %s", res.HTML)
	}

	cfg.Date = "yesterday"
	if _, err := buildOptions(cfg, 0, time.Now()); !errors.Is(err, dateutil.ErrInvalidDate) {
		t.Errorf("buildOptions() error = %v, want ErrInvalidDate", err)
	}
}

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{name: "flag", flag: "45s", env: time.Minute, want: 45 * time.Second},
		{name: "env fallback", env: time.Minute, want: time.Minute},
		{name: "library default", want: 0},
		{name: "unparseable", flag: "soon", wantErr: true},
		{name: "zero", flag: "0s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveTimeout(tt.flag, tt.env)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Errorf("error = %v, want ErrInvalidTimeout", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("resolveTimeout() = %v, %v, want %v", got, err, tt.want)
			}
		})
	}
}

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if _, err := resolveInputPath(nil, cfg); !errors.Is(err, ErrNoInput) {
		t.Errorf("error = %v, want ErrNoInput", err)
	}
	cfg.Input.DefaultDir = "docs"
	if got, _ := resolveInputPath(nil, cfg); got != "docs" {
		t.Errorf("resolveInputPath() = %q, want docs", got)
	}
	if got, _ := resolveInputPath([]string{"a.events.yaml"}, cfg); got != "a.events.yaml" {
		t.Errorf("resolveInputPath() = %q, want the argument", got)
	}
}

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	t.Run("converts every file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		var files []FileToConvert
		for _, name := range []string{"a.events.yaml", "b.events.yaml", "c.events.yaml"} {
			in := writeEvents(t, dir, name, helloEvents)
			files = append(files, FileToConvert{InputPath: in, OutputPath: resolveOutputPath(in, filepath.Join(dir, "out"), dir)})
		}

		pool := &mockPool{conv: &mockConverter{}, size: 2}
		results := convertBatch(context.Background(), pool, files, &conversionParams{})

		if got := pool.conv.calls.Load(); got != 3 {
			t.Errorf("Convert called %d times, want 3", got)
		}
		for _, r := range results {
			if r.Err != nil {
				t.Errorf("%s: %v", r.InputPath, r.Err)
				continue
			}
			data, err := os.ReadFile(r.OutputPath)
			if err != nil {
				t.Errorf("reading output: %v", err)
				continue
			}
			if !strings.HasPrefix(string(data), "<p>") {
				t.Errorf("output = %q", data)
			}
		}
	})

	t.Run("converter creation fails", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		pool := &mockPool{size: 1, acquireErr: boom}
		results := convertBatch(context.Background(), pool, []FileToConvert{{InputPath: "a"}, {InputPath: "b"}}, &conversionParams{})
		for _, r := range results {
			if !errors.Is(r.Err, boom) {
				t.Errorf("%s: error = %v, want boom", r.InputPath, r.Err)
			}
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		pool := &mockPool{conv: &mockConverter{}, size: 1}
		results := convertBatch(ctx, pool, []FileToConvert{{InputPath: "a"}}, &conversionParams{})
		if !errors.Is(results[0].Err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", results[0].Err)
		}
		if pool.conv.calls.Load() != 0 {
			t.Error("converted after cancellation")
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		if got := convertBatch(context.Background(), &mockPool{size: 1}, nil, &conversionParams{}); got != nil {
			t.Errorf("convertBatch(nil) = %v", got)
		}
	})
}

func TestConvertFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeEvents(t, dir, "bad.events.yaml", "- {macro: a, text: b}\n")

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "missing file", input: filepath.Join(dir, "missing.events.yaml"), wantErr: ErrReadEvents},
		{name: "malformed events", input: bad, wantErr: tex2html.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := convertFile(context.Background(), &mockConverter{}, FileToConvert{InputPath: tt.input, OutputPath: filepath.Join(dir, "out.html")}, &conversionParams{})
			if !errors.Is(r.Err, tt.wantErr) {
				t.Errorf("error = %v, want %v", r.Err, tt.wantErr)
			}
		})
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv()
	results := []ConversionResult{
		{InputPath: "a.events.yaml", OutputPath: "a.html", Warnings: []tex2html.Warning{
			{Message: "reference 'x' undefined", Span: &tex2html.Span{File: "a.tex", Line: 3, Column: 5}},
			{Message: "unused class option \"foo\""},
		}},
		{InputPath: "b.events.yaml", Err: errors.New("boom")},
	}

	if failed := printResultsWithWriter(results, false, false, env); failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	out, errOut := stdout.String(), stderr.String()
	for _, want := range []string{"Created a.html", "1 succeeded, 1 failed, 2 warning(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout = %q, want %q", out, want)
		}
	}
	for _, want := range []string{
		"warning: a.tex:3:5: reference 'x' undefined",
		"warning: a.events.yaml: unused class option",
		"FAILED b.events.yaml: boom",
	} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr = %q, want %q", errOut, want)
		}
	}

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()
		env, stdout, stderr := testEnv()
		printResultsWithWriter(results, true, false, env)
		if stdout.Len() != 0 {
			t.Errorf("stdout = %q, want nothing", stdout)
		}
		if strings.Contains(stderr.String(), "warning") {
			t.Errorf("quiet printed warnings: %q", stderr)
		}
		if !strings.Contains(stderr.String(), "FAILED") {
			t.Error("quiet hid a failure")
		}
	})
}

func TestRunConvert(t *testing.T) {
	t.Parallel()

	t.Run("single file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := writeEvents(t, dir, "hello.events.yaml", helloEvents)
		env, stdout, _ := testEnv()

		flags := &convertFlags{document: documentFlags{precision: -1, dateFormat: "iso"}}
		if err := runConvert(context.Background(), []string{in}, flags, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "hello.html"))
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		page := string(data)
		for _, want := range []string{"<title>hello</title>", "<p>Hello</p>", "2024-03-01"} {
			if !strings.Contains(page, want) {
				t.Errorf("page lacks %q", want)
			}
		}
		if !strings.Contains(stdout.String(), "Created") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("per-document css", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := writeEvents(t, dir, "hello.events.yaml", helloEvents)
		css := filepath.Join(dir, "extra.css")
		if err := os.WriteFile(css, []byte(".extra { color: red; }"), 0o600); err != nil {
			t.Fatal(err)
		}
		env, _, _ := testEnv()

		flags := &convertFlags{document: documentFlags{precision: -1}, assets: assetFlags{css: css}}
		if err := runConvert(context.Background(), []string{in}, flags, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		data, _ := os.ReadFile(filepath.Join(dir, "hello.html"))
		if !strings.Contains(string(data), ".extra") {
			t.Error("page lacks the --css stylesheet")
		}
	})

	t.Run("document error", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := writeEvents(t, dir, "bad.events.yaml", "- macro: nosuchmacro\n")
		env, _, stderr := testEnv()

		err := runConvert(context.Background(), []string{in}, &convertFlags{document: documentFlags{precision: -1}}, env)
		if !errors.Is(err, ErrConversionFailed) || !errors.Is(err, tex2html.ErrUnknownMacro) {
			t.Errorf("error = %v, want ErrConversionFailed wrapping ErrUnknownMacro", err)
		}
		if exitCodeFor(err) != ExitDocument {
			t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitDocument)
		}
		if !strings.Contains(stderr.String(), "FAILED") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("invalid option", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := writeEvents(t, dir, "hello.events.yaml", helloEvents)
		env, _, _ := testEnv()

		flags := &convertFlags{document: documentFlags{precision: -1}, assets: assetFlags{styles: []string{"nope"}}}
		err := runConvert(context.Background(), []string{in}, flags, env)
		if !errors.Is(err, tex2html.ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("unknown class", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv()
		flags := &convertFlags{document: documentFlags{precision: -1, class: "letter"}}
		err := runConvert(context.Background(), []string{"x.events.yaml"}, flags, env)
		if !errors.Is(err, tex2html.ErrUnknownClass) {
			t.Errorf("error = %v, want ErrUnknownClass", err)
		}
	})

	t.Run("no input", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv()
		err := runConvert(context.Background(), nil, &convertFlags{document: documentFlags{precision: -1}}, env)
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})

	t.Run("config from the environment", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := writeEvents(t, dir, "hello.events.yaml", helloEvents)
		cfgPath := filepath.Join(dir, "site.toml")
		toml := "documentClass = \"book\"\ndateFormat = \"iso\"\n\n[output]\ndefaultDir = \"" + filepath.ToSlash(filepath.Join(dir, "out")) + "\"\n"
		if err := os.WriteFile(cfgPath, []byte(toml), 0o600); err != nil {
			t.Fatal(err)
		}
		env, _, _ := testEnv()
		env.Getenv = fakeGetenv(map[string]string{"TEX2HTML_CONFIG": cfgPath})

		if err := runConvert(context.Background(), []string{in}, &convertFlags{document: documentFlags{precision: -1}}, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "out", "hello.html"))
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !strings.Contains(string(data), "break-before") {
			t.Error("page does not use the book styles")
		}
	})

	t.Run("missing config", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv()
		flags := &convertFlags{common: commonFlags{config: "./nope.yaml"}, document: documentFlags{precision: -1}}
		err := runConvert(context.Background(), []string{"x.events.yaml"}, flags, env)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}
