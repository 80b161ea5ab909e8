// Package config loads the conversion settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/alnah/go-tex2html/internal/args"
	"github.com/alnah/go-tex2html/internal/dateutil"
	"github.com/alnah/go-tex2html/internal/docclass"
	"github.com/alnah/go-tex2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrInvalidPrecision = errors.New("invalid precision")
	ErrInvalidLanguage  = errors.New("invalid language tag")
)

// Field limits.
const (
	MaxPrecision     = 10
	DefaultPrecision = 3
	MaxNameLength    = 100     // class, package and option names
	MaxPathLength    = 4096    // directories and stylesheet paths
	MaxStyleLength   = 1 << 16 // inline CSS
	MaxLanguageLen   = 35      // BCP 47 tags
)

// Config holds all configuration for document generation.
type Config struct {
	// DocumentClass is used when the document declares none.
	DocumentClass string   `yaml:"documentClass" toml:"documentClass"`
	ClassOptions  []string `yaml:"classOptions" toml:"classOptions"`
	// Precision is the number of decimals of pixel values.
	Precision int  `yaml:"precision" toml:"precision"`
	Hyphenate bool `yaml:"hyphenate" toml:"hyphenate"`
	// Styles are names, paths or inline CSS, applied after the class style.
	Styles []string `yaml:"styles" toml:"styles"`
	// Language is the BCP 47 tag of generated names such as "Contents".
	Language string `yaml:"language" toml:"language"`
	// DateFormat is a dateutil preset or pattern for \today.
	DateFormat string `yaml:"dateFormat" toml:"dateFormat"`
	// Date pins \today: "auto" or YYYY-MM-DD.
	Date string `yaml:"date" toml:"date"`
	// Packages are loaded before the document starts.
	Packages []string `yaml:"packages" toml:"packages"`

	Input  InputConfig  `yaml:"input" toml:"input"`
	Output OutputConfig `yaml:"output" toml:"output"`
	Assets AssetsConfig `yaml:"assets" toml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // Default output directory (empty = same as source)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // Empty = use embedded assets
}

// ClassKeyVals returns the class options as a key=value list.
func (c *Config) ClassKeyVals() args.KeyVals {
	return args.ParseKeyVals(strings.Join(c.ClassOptions, ","))
}

// Validate checks ranges, names and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return fmt.Errorf("%w: precision must be between 0 and %d, got %d", ErrInvalidPrecision, MaxPrecision, c.Precision)
	}

	if c.DocumentClass != "" && !slices.Contains(docclass.Names(), c.DocumentClass) {
		return fmt.Errorf("documentClass: %w: %s", docclass.ErrUnknownClass, c.DocumentClass)
	}
	if err := validateFieldList("classOptions", c.ClassOptions, MaxNameLength); err != nil {
		return err
	}
	if _, err := docclass.ParseOptions(c.ClassKeyVals()); err != nil {
		return fmt.Errorf("classOptions: %w", err)
	}
	if err := validateFieldList("packages", c.Packages, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldList("styles", c.Styles, MaxStyleLength); err != nil {
		return err
	}

	if c.Language != "" {
		if err := validateFieldLength("language", c.Language, MaxLanguageLen); err != nil {
			return err
		}
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, c.Language, err)
		}
	}
	if c.DateFormat != "" {
		if _, err := dateutil.Layout(c.DateFormat); err != nil {
			return fmt.Errorf("dateFormat: %w", err)
		}
	}
	if _, err := dateutil.ParseDate(c.Date, time.Time{}); err != nil {
		return fmt.Errorf("date: %w", err)
	}

	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateFieldList(fieldName string, values []string, maxLength int) error {
	for i, v := range values {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", fieldName, i), v, maxLength); err != nil {
			return err
		}
	}
	return nil
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Precision: DefaultPrecision,
		Hyphenate: true,
		Date:      dateutil.Auto,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(configPath, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decode picks the format from the file extension. Unknown keys are
// rejected in both formats.
func decode(path string, data []byte, cfg *Config) error {
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		return yamlutil.UnmarshalStrict(data, cfg)
	}
	if len(data) > yamlutil.MaxConfigSize {
		return fmt.Errorf("%d bytes (max %d)", len(data), yamlutil.MaxConfigSize)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown fields: %s", strings.Join(keys, ", "))
	}
	return nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// extensions are tried in order for a config name.
var extensions = []string{".yaml", ".yml", ".toml"}

// SearchPaths lists where a config name is looked for: the current
// directory, then ~/.config/go-tex2html/.
func SearchPaths(name string) []string {
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-tex2html", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
