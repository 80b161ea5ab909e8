package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeStyle creates {dir}/styles/{name}.css.
func writeStyle(t *testing.T, dir, name, css string) {
	t.Helper()
	stylesDir := filepath.Join(dir, "styles")
	if err := os.MkdirAll(stylesDir, 0o755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(stylesDir, name+".css"), []byte(css), 0o644); err != nil {
		t.Fatalf("failed to write %s.css: %v", name, err)
	}
}

func TestBuiltin_LoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		style       string
		wantErr     error
		wantContain string
	}{
		{name: "base", style: "base", wantContain: "--textwidth"},
		{name: "article", style: "article", wantContain: "h1"},
		{name: "book", style: "book", wantContain: "break-before"},
		{name: "unknown", style: "report", wantErr: ErrStyleNotFound},
		{name: "traversal", style: "../base", wantErr: ErrInvalidStyleName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Builtin().LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) does not contain %q", tt.style, tt.wantContain)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty dir is builtin", func(t *testing.T) {
		t.Parallel()

		s, err := New("")
		if err != nil {
			t.Fatalf("New(\"\") error = %v", err)
		}
		if s.Dir() != "" {
			t.Errorf("Dir() = %q, want empty", s.Dir())
		}
	})

	t.Run("dir is made absolute", func(t *testing.T) {
		t.Parallel()

		s, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if !filepath.IsAbs(s.Dir()) {
			t.Errorf("Dir() = %q, want an absolute path", s.Dir())
		}
	})

	t.Run("missing dir", func(t *testing.T) {
		t.Parallel()

		_, err := New(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidDir) {
			t.Errorf("New() error = %v, want ErrInvalidDir", err)
		}
	})

	t.Run("file instead of dir", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "article.css")
		if err := os.WriteFile(file, []byte("h1{}"), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
		_, err := New(file)
		if !errors.Is(err, ErrInvalidDir) {
			t.Errorf("New() error = %v, want ErrInvalidDir", err)
		}
	})
}

func TestStack_LoadStyle(t *testing.T) {
	t.Parallel()

	t.Run("dir overrides embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeStyle(t, dir, "article", "h1{color:red}")
		s, err := New(dir)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		got, err := s.LoadStyle("article")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "h1{color:red}" {
			t.Errorf("LoadStyle() = %q, want the override", got)
		}
	})

	t.Run("missing file falls back", func(t *testing.T) {
		t.Parallel()

		s, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		got, err := s.LoadStyle("base")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(got, "--textwidth") {
			t.Error("LoadStyle() did not fall back to the embedded base")
		}
	})

	t.Run("style only in dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeStyle(t, dir, "report", ".report{}")
		s, err := New(dir)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		got, err := s.LoadStyle("report")
		if err != nil || got != ".report{}" {
			t.Errorf("LoadStyle() = %q, %v, want the custom style", got, err)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		s, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if _, err := s.LoadStyle("report"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("symlink out of dir is refused", func(t *testing.T) {
		t.Parallel()

		outside := t.TempDir()
		writeStyle(t, outside, "secret", "body{}")
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
			t.Fatalf("failed to create styles dir: %v", err)
		}
		link := filepath.Join(dir, "styles", "article.css")
		if err := os.Symlink(filepath.Join(outside, "styles", "secret.css"), link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
		s, err := New(dir)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if _, err := s.LoadStyle("article"); !errors.Is(err, ErrStyleRead) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleRead", err)
		}
	})

	t.Run("invalid name is not looked up", func(t *testing.T) {
		t.Parallel()

		s, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if _, err := s.LoadStyle("../base"); !errors.Is(err, ErrInvalidStyleName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidStyleName", err)
		}
	})
}
