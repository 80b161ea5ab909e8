package main

// Notes:
// - loadEnvConfig reads through an injected getenv, so the tests run in
//   parallel without touching the process environment.
// - Invalid values for timeout and workers are ignored, not errors.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-tex2html/internal/config"
)

// fakeGetenv serves variables from a map.
func fakeGetenv(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := loadEnvConfig(fakeGetenv(map[string]string{
		"TEX2HTML_CONFIG":     "/path/to/config.yaml",
		"TEX2HTML_STYLE":      "book",
		"TEX2HTML_TIMEOUT":    "2m",
		"TEX2HTML_WORKERS":    "4",
		"TEX2HTML_INPUT_DIR":  "/input",
		"TEX2HTML_OUTPUT_DIR": "/output",
		"TEX2HTML_ASSET_PATH": "/assets",
		"TEX2HTML_CLASS":      "report",
		"TEX2HTML_LANG":       "fr",
		"TEX2HTML_DATE":       "2024-03-01",
	}))

	want := envConfig{
		ConfigPath: "/path/to/config.yaml",
		Style:      "book",
		Timeout:    2 * time.Minute,
		Workers:    4,
		InputDir:   "/input",
		OutputDir:  "/output",
		AssetPath:  "/assets",
		Class:      "report",
		Language:   "fr",
		Date:       "2024-03-01",
	}
	if *cfg != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadEnvConfig_InvalidNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout string
		workers string
	}{
		{name: "unparseable", timeout: "soon", workers: "many"},
		{name: "negative", timeout: "-1s", workers: "-2"},
		{name: "zero", timeout: "0s", workers: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := loadEnvConfig(fakeGetenv(map[string]string{
				"TEX2HTML_TIMEOUT": tt.timeout,
				"TEX2HTML_WORKERS": tt.workers,
			}))
			if cfg.Timeout != 0 || cfg.Workers != 0 {
				t.Errorf("Timeout = %v, Workers = %d, want both ignored", cfg.Timeout, cfg.Workers)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"TEX2HTML_STYLE=book",
		"TEX2HTML_STYEL=book",
		"HOME=/root",
	})

	got := buf.String()
	if !strings.Contains(got, "TEX2HTML_STYEL") {
		t.Errorf("no warning for the typo: %q", got)
	}
	if strings.Contains(got, "TEX2HTML_STYLE ") || strings.Contains(got, "HOME") {
		t.Errorf("warned about a known variable: %q", got)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Style:     "book",
		InputDir:  "/input",
		OutputDir: "/output",
		AssetPath: "/assets",
		Class:     "report",
		Language:  "fr",
		Date:      "2024-03-01",
	}

	t.Run("fills empty values", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if len(cfg.Styles) != 1 || cfg.Styles[0] != "book" {
			t.Errorf("Styles = %v", cfg.Styles)
		}
		if cfg.Input.DefaultDir != "/input" || cfg.Output.DefaultDir != "/output" {
			t.Errorf("dirs = %q, %q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
		if cfg.Assets.BasePath != "/assets" {
			t.Errorf("BasePath = %q", cfg.Assets.BasePath)
		}
		if cfg.DocumentClass != "report" || cfg.Language != "fr" {
			t.Errorf("class = %q, language = %q", cfg.DocumentClass, cfg.Language)
		}
		if cfg.Date != "2024-03-01" {
			t.Errorf("Date = %q, want the env date over auto", cfg.Date)
		}
	})

	t.Run("config file wins", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.DocumentClass = "book"
		cfg.Language = "de"
		cfg.Date = "2020-01-01"
		applyEnvConfig(env, cfg)

		if cfg.DocumentClass != "book" || cfg.Language != "de" || cfg.Date != "2020-01-01" {
			t.Errorf("env overrode the config file: %+v", cfg)
		}
	})
}
