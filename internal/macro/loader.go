package macro

import (
	"fmt"

	"github.com/alnah/go-tex2html/internal/args"
)

// Extension is what a package or document class contributes once loaded.
type Extension[H any] struct {
	Name    string
	Macros  map[string]Definition[H]
	Symbols map[string]string
}

// Factory instantiates an extension for a host with the options given at
// load time.
type Factory[H any] func(h H, opts args.KeyVals) (*Extension[H], error)

// Resolver finds extensions that are not built in. It returns nil and no
// error when it does not know the name.
type Resolver[H any] func(name string) (Factory[H], error)

// Loader loads extensions by name into a registry. Built-in factories are
// tried first, then the resolver. Names listed as provided load as no-ops.
type Loader[H any] struct {
	builtin  map[string]Factory[H]
	provided map[string]bool
	resolve  Resolver[H]
	loaded   map[string]bool
}

// NewLoader creates a loader with the given built-in factories.
func NewLoader[H any](builtin map[string]Factory[H], provided []string) *Loader[H] {
	l := &Loader[H]{
		builtin:  builtin,
		provided: make(map[string]bool, len(provided)),
		loaded:   make(map[string]bool),
	}
	for _, p := range provided {
		l.provided[p] = true
	}
	return l
}

// SetResolver installs a fallback for names without a built-in factory.
func (l *Loader[H]) SetResolver(r Resolver[H]) { l.resolve = r }

// Loaded reports whether name has been loaded.
func (l *Loader[H]) Loaded(name string) bool { return l.loaded[name] }

// Load instantiates extension name and merges it into reg. Loading a name
// twice is a no-op. Failures wrap ErrExtensionLoad; the registry is left
// untouched in that case.
func (l *Loader[H]) Load(h H, reg *Registry[H], name string, opts args.KeyVals) error {
	if l.loaded[name] {
		return nil
	}
	if l.provided[name] {
		l.loaded[name] = true
		return nil
	}

	f, err := l.factory(name)
	if err != nil {
		return err
	}
	ext, err := f(h, opts)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExtensionLoad, name, err)
	}
	if err := reg.Merge(ext); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExtensionLoad, name, err)
	}
	l.loaded[name] = true
	return nil
}

func (l *Loader[H]) factory(name string) (Factory[H], error) {
	if f, ok := l.builtin[name]; ok {
		return f, nil
	}
	if l.resolve != nil {
		f, err := l.resolve(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrExtensionLoad, name, err)
		}
		if f != nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s: not found", ErrExtensionLoad, name)
}
