package tex2html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/language"

	"github.com/alnah/go-tex2html/internal/assets"
	"github.com/alnah/go-tex2html/internal/dateutil"
	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/event"
	"github.com/alnah/go-tex2html/internal/fileutil"
	"github.com/alnah/go-tex2html/internal/interp"
	"github.com/alnah/go-tex2html/internal/macro"
	"github.com/alnah/go-tex2html/internal/packages"
	"github.com/alnah/go-tex2html/internal/pipeline"
)

// hyphenationCSS lets the browser hyphenate justified text in the page
// language.
const hyphenationCSS = ".body { -webkit-hyphens: auto; hyphens: auto; }"

// Converter orchestrates the events-to-HTML conversion pipeline.
// Create with NewConverter() and use Convert() for conversion. A Converter
// holds no per-document state and is safe for concurrent use.
type Converter struct {
	cfg         converterConfig
	assetLoader AssetLoader
	lang        language.Tag
	styles      []string // resolved WithStyles content
	extensions  map[string]ExtensionFactory
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithDocumentClass, WithStyles).
// Returns error if an option value is invalid or a style cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:   defaultTimeout,
			precision: DefaultPrecision,
			hyphenate: true,
		},
		assetLoader: assets.Builtin(),
		lang:        language.English,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := validatePrecision(c.cfg.precision); err != nil {
		return nil, err
	}

	if c.cfg.language != "" {
		tag, err := language.Parse(c.cfg.language)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, c.cfg.language, err)
		}
		c.lang = tag
	}

	if c.cfg.dateFormat != "" {
		if _, err := dateutil.Layout(c.cfg.dateFormat); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
		}
	}

	// Handle WithAssetPath: resolve to a custom-first loader
	if c.cfg.assetPath != "" {
		stack, err := assets.New(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = stack
	}

	// WithAssetLoader wins over WithAssetPath
	if c.cfg.assetLoader != nil {
		c.assetLoader = c.cfg.assetLoader
	}

	if err := c.resolveStyles(); err != nil {
		return nil, err
	}

	c.extensions = packages.Builtin()
	for name, f := range c.cfg.extensions {
		c.extensions[name] = f
	}

	return c, nil
}

// Convert interprets the events and returns the rendered page.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	b := c.newBuilder()
	in, err := interp.New(c.interpOptions(b)...)
	if err != nil {
		return nil, fmt.Errorf("initializing interpreter: %w", err)
	}

	doc, err := in.Run(ctx, event.NewSliceSource(input.Events))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v: %w", ErrTimeout, c.cfg.timeout, err)
		}
		return nil, err
	}

	page := doc.Page(input.Title, nil, nil)
	root := b.Document(page)

	if err := pipeline.RewriteRelativePaths(root, input.SourceDir); err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}

	stylesheets, err := c.stylesheets(doc, input.CSS)
	if err != nil {
		return nil, err
	}
	pipeline.InlineStyles(root, stylesheets...)

	var buf bytes.Buffer
	if err := dom.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Result{
		HTML:     buf.Bytes(),
		Title:    page.Title,
		Warnings: doc.Warnings,
	}, nil
}

func (c *Converter) newBuilder() *dom.Builder {
	opts := []dom.Option{dom.WithPrecision(c.cfg.precision)}
	if c.cfg.hyphenator != nil {
		opts = append(opts, dom.WithHyphenator(dom.Hyphenator(c.cfg.hyphenator)))
	}
	return dom.New(opts...)
}

func (c *Converter) interpOptions(b *dom.Builder) []interp.Option {
	opts := []interp.Option{
		interp.WithBuilder(b),
		interp.WithDocumentClass(c.cfg.class, c.cfg.classOpts),
		interp.WithLanguage(c.lang),
		interp.WithExtensions(c.extensions),
		interp.WithPackages(c.cfg.packages...),
	}
	if c.cfg.clock != nil {
		opts = append(opts, interp.WithClock(c.cfg.clock))
	}
	if c.cfg.dateFormat != "" {
		opts = append(opts, interp.WithDateFormat(c.cfg.dateFormat))
	}
	if c.cfg.resolver != nil {
		opts = append(opts, interp.WithResolver(macro.Resolver[*interp.Interpreter](c.cfg.resolver)))
	}
	return opts
}

// stylesheets orders the CSS of a page: base and class styles, package
// styles, user styles, then the per-conversion CSS.
func (c *Converter) stylesheets(doc *interp.Document, extra string) ([]string, error) {
	out, err := assets.ClassStyles(c.assetLoader, doc.Class)
	if err != nil {
		return nil, err
	}
	if c.cfg.hyphenate {
		out = append(out, hyphenationCSS)
	}
	out = append(out, doc.Styles...)
	out = append(out, c.styles...)
	if extra != "" {
		out = append(out, extra)
	}
	return out, nil
}

// resolveStyles resolves each WithStyles entry (name, path, or CSS
// content) to CSS content.
func (c *Converter) resolveStyles() error {
	for _, input := range c.cfg.styles {
		css, err := c.resolveStyle(input)
		if err != nil {
			return err
		}
		c.styles = append(c.styles, css)
	}
	return nil
}

func (c *Converter) resolveStyle(input string) (string, error) {
	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		return input, nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}
