package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-tex2html/internal/config"
	"github.com/alnah/go-tex2html/internal/dateutil"
)

// envPrefix starts every environment variable the tool reads.
const envPrefix = "TEX2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string        // TEX2HTML_CONFIG: config file name or path
	Style      string        // TEX2HTML_STYLE: CSS style name or path
	Timeout    time.Duration // TEX2HTML_TIMEOUT: per-file conversion timeout
	Workers    int           // TEX2HTML_WORKERS: parallel workers

	InputDir  string // TEX2HTML_INPUT_DIR: default input directory
	OutputDir string // TEX2HTML_OUTPUT_DIR: default output directory
	AssetPath string // TEX2HTML_ASSET_PATH: custom asset directory

	Class    string // TEX2HTML_CLASS: default document class
	Language string // TEX2HTML_LANG: document language
	Date     string // TEX2HTML_DATE: \today date
}

// knownEnvVars lists valid TEX2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEX2HTML_CONFIG":     true,
	"TEX2HTML_STYLE":      true,
	"TEX2HTML_TIMEOUT":    true,
	"TEX2HTML_WORKERS":    true,
	"TEX2HTML_INPUT_DIR":  true,
	"TEX2HTML_OUTPUT_DIR": true,
	"TEX2HTML_ASSET_PATH": true,
	"TEX2HTML_CLASS":      true,
	"TEX2HTML_LANG":       true,
	"TEX2HTML_DATE":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("TEX2HTML_CONFIG"),
		Style:      getenv("TEX2HTML_STYLE"),
		InputDir:   getenv("TEX2HTML_INPUT_DIR"),
		OutputDir:  getenv("TEX2HTML_OUTPUT_DIR"),
		AssetPath:  getenv("TEX2HTML_ASSET_PATH"),
		Class:      getenv("TEX2HTML_CLASS"),
		Language:   getenv("TEX2HTML_LANG"),
		Date:       getenv("TEX2HTML_DATE"),
	}

	if timeout := getenv("TEX2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("TEX2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TEX2HTML_* variables.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && len(cfg.Styles) == 0 {
		cfg.Styles = []string{env.Style}
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Class != "" && cfg.DocumentClass == "" {
		cfg.DocumentClass = env.Class
	}
	if env.Language != "" && cfg.Language == "" {
		cfg.Language = env.Language
	}
	// Date defaults to "auto", which an explicit value overrides.
	if env.Date != "" && (cfg.Date == "" || strings.EqualFold(cfg.Date, dateutil.Auto)) {
		cfg.Date = env.Date
	}
}
