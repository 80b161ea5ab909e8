package tex2html

import (
	"fmt"
	"time"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/interp"
	"github.com/alnah/go-tex2html/internal/length"
)

// Extension is a package: macro definitions and symbols \usepackage
// registers.
type Extension = interp.Extension

// ExtensionFactory instantiates a package with its options.
type ExtensionFactory = interp.Factory

// ExtensionResolver finds packages that are neither built in nor added
// with WithExtensions. It returns nil and no error for unknown names.
type ExtensionResolver func(name string) (ExtensionFactory, error)

// Hyphenator inserts soft hyphens into running text.
type Hyphenator func(text string) string

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout     time.Duration
	precision   int
	class       string
	classOpts   args.KeyVals
	styles      []string
	hyphenate   bool
	hyphenator  Hyphenator
	language    string
	dateFormat  string
	clock       func() time.Time
	packages    []string
	extensions  map[string]ExtensionFactory
	resolver    ExtensionResolver
	assetPath   string
	assetLoader AssetLoader
}

// Defaults.
const (
	defaultTimeout = 30 * time.Second

	// DefaultPrecision is the number of decimals of pixel values.
	DefaultPrecision = length.DefaultPrecision
	// MaxPrecision bounds WithPrecision.
	MaxPrecision = 10
)

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("tex2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithPrecision sets the number of decimals of pixel values, between 0
// and MaxPrecision.
func WithPrecision(p int) Option {
	return func(c *Converter) {
		c.cfg.precision = p
	}
}

// WithDocumentClass sets the class used when a document does not declare
// one, with its options ("12pt", "twoside", "papersize=a4paper").
func WithDocumentClass(name string, options ...string) Option {
	return func(c *Converter) {
		c.cfg.class = name
		c.cfg.classOpts = nil
		for _, o := range options {
			c.cfg.classOpts = append(c.cfg.classOpts, args.ParseKeyVals(o)...)
		}
	}
}

// WithStyles adds stylesheets applied after the class style. Each entry is
// a style name for the asset loader, a file path, or CSS content.
func WithStyles(styles ...string) Option {
	return func(c *Converter) {
		c.cfg.styles = append(c.cfg.styles, styles...)
	}
}

// WithHyphenation turns on browser hyphenation of justified text. On by
// default.
func WithHyphenation(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.hyphenate = enabled
	}
}

// WithHyphenator installs a hook that inserts soft hyphens into every
// text node, for renderers without hyphenation support.
func WithHyphenator(h Hyphenator) Option {
	return func(c *Converter) {
		c.cfg.hyphenator = h
	}
}

// WithLanguage sets the BCP 47 language of generated names such as
// "Contents" and of the page.
func WithLanguage(tag string) Option {
	return func(c *Converter) {
		c.cfg.language = tag
	}
}

// WithDateFormat sets the format of \today: a preset (iso, european, us,
// long, full) or a pattern such as "D MMMM YYYY".
func WithDateFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.dateFormat = format
	}
}

// WithClock sets the time source of \today.
func WithClock(clock func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.clock = clock
	}
}

// WithPackages loads packages before the document starts, as if it began
// with \usepackage for each of them.
func WithPackages(names ...string) Option {
	return func(c *Converter) {
		c.cfg.packages = append(c.cfg.packages, names...)
	}
}

// WithExtensions registers packages next to the built-in ones. An entry
// named like a built-in package replaces it.
func WithExtensions(exts map[string]ExtensionFactory) Option {
	return func(c *Converter) {
		if c.cfg.extensions == nil {
			c.cfg.extensions = make(map[string]ExtensionFactory, len(exts))
		}
		for name, f := range exts {
			c.cfg.extensions[name] = f
		}
	}
}

// WithExtensionResolver sets the lookup for packages that are not
// registered.
func WithExtensionResolver(r ExtensionResolver) Option {
	return func(c *Converter) {
		c.cfg.resolver = r
	}
}

// WithAssetPath loads styles from a directory, falling back to the
// embedded ones. See NewAssetLoader for the layout.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom loader for styles.
func WithAssetLoader(l AssetLoader) Option {
	return func(c *Converter) {
		c.cfg.assetLoader = l
	}
}

func validatePrecision(p int) error {
	if p < 0 || p > MaxPrecision {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidPrecision, p, MaxPrecision)
	}
	return nil
}
