package pipeline

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/dom"
)

// rewrite parses markup, rewrites it against dir and renders it back.
func rewrite(t *testing.T, markup, dir string) string {
	t.Helper()

	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	root := &html.Node{Type: html.DocumentNode}
	dom.Append(root, nodes...)
	if err := RewriteRelativePaths(root, dir); err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	got, err := dom.RenderString(dom.Children(root)...)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	return got
}

func testSourceDir() string {
	if runtime.GOOS == "windows" {
		return `C:\docs`
	}
	return "/docs"
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths - Main Function Tests
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	sourceDir := testSourceDir()
	tests := []struct {
		name         string
		html         string
		sourceDir    string
		wantContains []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<img src="./figures/plot.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="file://`},
		},
		{
			name:         "relative image without dot slash",
			html:         `<img src="figures/plot.png" style="width:20px">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="file://`, `style="width:20px"`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/plot.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="/abs/plot.png"`},
		},
		{
			name:         "http URL unchanged",
			html:         `<img src="https://example.com/plot.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="https://example.com/plot.png"`},
		},
		{
			name:         "data URI unchanged",
			html:         `<img src="data:image/png;base64,ABC123">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="data:image/png;base64,ABC123"`},
		},
		{
			name:         "empty sourceDir leaves the tree alone",
			html:         `<img src="./plot.png">`,
			sourceDir:    "",
			wantContains: []string{`src="./plot.png"`},
		},
		{
			name:         "reference anchor unchanged",
			html:         `<a href="#sec-1">1</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="#sec-1"`},
		},
		{
			name:         "relative link rewritten",
			html:         `<a href="./chapter2.html">next</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="file://`},
		},
		{
			name:         "mail link unchanged",
			html:         `<a href="mailto:a@example.com">a</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="mailto:a@example.com"`},
		},
		{
			name:         "protocol-relative URL unchanged",
			html:         `<img src="//cdn.example.com/plot.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="//cdn.example.com/plot.png"`},
		},
		{
			name:         "script src not rewritten",
			html:         `<script src="./script.js"></script>`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="./script.js"`},
		},
		{
			name:         "nested elements rewritten",
			html:         `<div class="body"><p><span class="hbox"><img src="./nested.png"></span></p></div>`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="file://`},
		},
		{
			name:         "empty src attribute unchanged",
			html:         `<img src="">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src=""`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := rewrite(t, tt.html, tt.sourceDir)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_NilRoot(t *testing.T) {
	t.Parallel()

	if err := RewriteRelativePaths(nil, "/docs"); err != nil {
		t.Errorf("RewriteRelativePaths(nil) error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths_PathTraversal - Security Tests
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths_PathTraversal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantContains string
	}{
		{
			name:         "parent directory traversal blocked",
			html:         `<img src="../../../etc/passwd">`,
			wantContains: `src="../../../etc/passwd"`,
		},
		{
			name:         "double dot in middle blocked",
			html:         `<img src="figures/../../../etc/passwd">`,
			wantContains: `src="figures/../../../etc/passwd"`,
		},
		{
			name:         "nested valid path allowed",
			html:         `<img src="figures/sub/deep/file.png">`,
			wantContains: `src="file://`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := rewrite(t, tt.html, testSourceDir()); !strings.Contains(got, tt.wantContains) {
				t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, tt.wantContains)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths_URLEncoding - Special Characters
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths_URLEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantContains string
	}{
		{
			name:         "path with spaces encoded",
			html:         `<img src="./my figures/plot.png">`,
			wantContains: `my%20figures`,
		},
		{
			name:         "path with special chars encoded",
			html:         `<img src="./figures/file#1.png">`,
			wantContains: `file%231.png`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := rewrite(t, tt.html, testSourceDir()); !strings.Contains(got, tt.wantContains) {
				t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, tt.wantContains)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"./image.png", true},
		{"figures/plot.png", true},
		{"../parent.png", true},
		{"file.png", true},

		{"", false},
		{"http://example.com/img.png", false},
		{"https://example.com/img.png", false},
		{"file:///abs/path.png", false},
		{"data:image/png;base64,ABC", false},
		{"mailto:a@example.com", false},
		{"//cdn.example.com/img.png", false},
		{"#anchor", false},
		{"/absolute/path.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		absPath string
		dir     string
		want    bool
	}{
		{name: "direct child", absPath: "/docs/image.png", dir: "/docs", want: true},
		{name: "nested child", absPath: "/docs/figures/plot.png", dir: "/docs", want: true},
		{name: "parent directory", absPath: "/etc/passwd", dir: "/docs", want: false},
		{name: "dir with trailing slash", absPath: "/docs/image.png", dir: "/docs/", want: true},
		{name: "similar prefix but different dir", absPath: "/docs-other/image.png", dir: "/docs", want: false},
		{name: "exact match", absPath: "/docs", dir: "/docs", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			absPath := filepath.FromSlash(tt.absPath)
			dir := filepath.FromSlash(tt.dir)
			if got := isPathUnderDir(absPath, dir); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", absPath, dir, got, tt.want)
			}
		})
	}
}

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("Unix paths")
	}
	tests := []struct {
		name    string
		absPath string
		want    string
	}{
		{name: "unix path", absPath: "/docs/figures/plot.png", want: "file:///docs/figures/plot.png"},
		{name: "path with spaces", absPath: "/docs/my figures/plot.png", want: "file:///docs/my%20figures/plot.png"},
		{name: "path with unicode", absPath: "/docs/日本語/plot.png", want: "file:///docs/%E6%97%A5%E6%9C%AC%E8%AA%9E/plot.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := pathToFileURL(tt.absPath); got != tt.want {
				t.Errorf("pathToFileURL(%q) = %q, want %q", tt.absPath, got, tt.want)
			}
		})
	}
}
