package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// BaseStyleName is the stylesheet every document links, before the one of
// its class.
const BaseStyleName = "base"

var (
	// ErrStyleNotFound reports a style that no layer provides.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidStyleName reports a name that is not a bare identifier.
	ErrInvalidStyleName = errors.New("invalid style name")

	// ErrInvalidDir reports a style directory that cannot be used.
	ErrInvalidDir = errors.New("invalid style directory")

	// ErrStyleRead reports a style file that exists but cannot be read.
	ErrStyleRead = errors.New("failed to read style")
)

// Source yields the CSS of a named stylesheet.
type Source interface {
	LoadStyle(name string) (string, error)
}

// ClassStyles loads the base stylesheet followed by the stylesheet of a
// document class.
func ClassStyles(src Source, class string) ([]string, error) {
	names := []string{BaseStyleName}
	if class != "" && class != BaseStyleName {
		names = append(names, class)
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		css, err := src.LoadStyle(name)
		if err != nil {
			return nil, fmt.Errorf("loading %s stylesheet: %w", name, err)
		}
		out = append(out, css)
	}
	return out, nil
}

// StyleNames lists the embedded styles, sorted.
func StyleNames() []string {
	files, err := fs.Glob(styles, "styles/*.css")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(f, "styles/"), ".css"))
	}
	return names
}

// checkName accepts letters, digits, '-' and '_'.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStyleName)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidStyleName, name)
		}
	}
	return nil
}
