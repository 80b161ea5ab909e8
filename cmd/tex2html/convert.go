package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tex2html "github.com/alnah/go-tex2html"
	"github.com/alnah/go-tex2html/internal/config"
	"github.com/alnah/go-tex2html/internal/dateutil"
	"github.com/alnah/go-tex2html/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadCSS          = errors.New("failed to read CSS file")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrConversionFailed = errors.New("conversion failed")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig(env.Getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Precedence: CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no event files found in %s", ErrNoInput, inputPath)
	}

	css, err := readCSS(flags.assets.css)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cfg, timeout, env.Now())
	if err != nil {
		return err
	}
	// Report invalid options once instead of once per file.
	if _, err := tex2html.NewConverter(opts...); err != nil {
		return err
	}

	pool := tex2html.NewConverterPool(tex2html.ResolvePoolSize(workers), opts...)
	defer pool.Close()
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", pool.Size())
	}

	results := convertBatch(ctx, &poolAdapter{pool: pool}, files, &conversionParams{css: css})

	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s): %w", ErrConversionFailed, failed, len(results), firstError(results))
	}
	return nil
}

// loadConfig loads the config named by the flag, else by TEX2HTML_CONFIG,
// else returns the defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		hint := ""
		if errors.Is(err, config.ErrConfigNotFound) {
			hint = hints.ForConfigNotFound(config.SearchPaths(name))
		}
		return nil, fmt.Errorf("loading config: %w%s", err, hint)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	doc := flags.document
	if doc.class != "" {
		cfg.DocumentClass = doc.class
	}
	if len(doc.classOptions) > 0 {
		cfg.ClassOptions = doc.classOptions
	}
	if len(doc.packages) > 0 {
		cfg.Packages = append(cfg.Packages, doc.packages...)
	}
	if doc.language != "" {
		cfg.Language = doc.language
	}
	if doc.dateFormat != "" {
		cfg.DateFormat = doc.dateFormat
	}
	if doc.date != "" {
		cfg.Date = doc.date
	}
	if doc.precision >= 0 {
		cfg.Precision = doc.precision
	}
	if doc.noHyphenate {
		cfg.Hyphenate = false
	}

	if len(flags.assets.styles) > 0 {
		cfg.Styles = flags.assets.styles
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// buildOptions turns the merged config into converter options. The date is
// pinned once so every file of a batch shows the same \today.
func buildOptions(cfg *config.Config, timeout time.Duration, now time.Time) ([]tex2html.Option, error) {
	today, err := dateutil.ParseDate(cfg.Date, now)
	if err != nil {
		return nil, err
	}

	opts := []tex2html.Option{
		tex2html.WithPrecision(cfg.Precision),
		tex2html.WithHyphenation(cfg.Hyphenate),
		tex2html.WithDocumentClass(cfg.DocumentClass, cfg.ClassOptions...),
		tex2html.WithClock(func() time.Time { return today }),
	}
	if timeout > 0 {
		opts = append(opts, tex2html.WithTimeout(timeout))
	}
	if cfg.Language != "" {
		opts = append(opts, tex2html.WithLanguage(cfg.Language))
	}
	if cfg.DateFormat != "" {
		opts = append(opts, tex2html.WithDateFormat(cfg.DateFormat))
	}
	if len(cfg.Packages) > 0 {
		opts = append(opts, tex2html.WithPackages(cfg.Packages...))
	}
	if len(cfg.Styles) > 0 {
		opts = append(opts, tex2html.WithStyles(cfg.Styles...))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, tex2html.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts, nil
}

// resolveTimeout parses the --timeout flag, falling back to
// TEX2HTML_TIMEOUT. Zero keeps the library default.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveInputPath returns the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// readCSS reads the --css file, if any.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}
