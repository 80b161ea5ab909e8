package tex2html

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-tex2html/internal/event"
)

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()
		l, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		css, err := l.LoadStyle(BaseStyle)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(css, "--textwidth") {
			t.Error("base style lacks the layout variables")
		}
	})

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "styles", "article.css"), []byte(".mine {}"), 0o600); err != nil {
			t.Fatal(err)
		}
		l, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		if css, _ := l.LoadStyle("article"); css != ".mine {}" {
			t.Errorf("LoadStyle(article) = %q, want the custom style", css)
		}
		if _, err := l.LoadStyle("book"); err != nil {
			t.Errorf("LoadStyle(book) error = %v, want embedded fallback", err)
		}
		if _, err := l.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(nope) error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		if _, err := NewAssetLoader(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
		}
	})
}

func TestWithAssetLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles", "base.css"), []byte(".custom-base {}"), 0o600); err != nil {
		t.Fatal(err)
	}
	l, err := NewAssetLoader(dir)
	if err != nil {
		t.Fatal(err)
	}

	got := page(t, []Option{WithAssetLoader(l)}, event.Text("x"))
	if !strings.Contains(got, ".custom-base") {
		t.Errorf("page does not use the custom base style")
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	for _, want := range []string{BaseStyle, "article", "book"} {
		if !slices.Contains(names, want) {
			t.Errorf("StyleNames() = %v, missing %q", names, want)
		}
	}
}
