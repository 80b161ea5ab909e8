package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Stack looks a style up in an optional directory, then in the embedded
// styles. Only a missing file falls through to the next layer.
type Stack struct {
	dir string // absolute; empty when only embedded styles are used
}

// Builtin returns a Stack serving the embedded styles only.
func Builtin() *Stack {
	return &Stack{}
}

// New returns a Stack whose styles in dir override the embedded ones.
// An empty dir is the same as Builtin.
func New(dir string) (*Stack, error) {
	if dir == "" {
		return Builtin(), nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidDir, abs)
	}
	return &Stack{dir: abs}, nil
}

// Dir returns the override directory, or "" for a Builtin stack.
func (s *Stack) Dir() string {
	return s.dir
}

// LoadStyle returns the CSS of name, which carries no extension.
func (s *Stack) LoadStyle(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	file := "styles/" + name + ".css"

	if s.dir != "" {
		css, err := readInDir(s.dir, file)
		if !errors.Is(err, fs.ErrNotExist) {
			return css, err
		}
	}

	css, err := fs.ReadFile(styles, file)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(css), nil
}

// readInDir reads file relative to dir without leaving it.
func readInDir(dir, file string) (string, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleRead, err)
	}
	defer root.Close()

	b, err := root.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", err
	case err != nil:
		return "", fmt.Errorf("%w: %s: %v", ErrStyleRead, file, err)
	}
	return string(b), nil
}

var _ Source = (*Stack)(nil)
