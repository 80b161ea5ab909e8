// Package yamlutil wraps YAML parsing to isolate the external dependency.
// It reads two kinds of input: configuration files and the event streams
// produced by the tokenizer, each with its own size limit.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Input size limits.
const (
	// MaxConfigSize bounds configuration files.
	MaxConfigSize = 1 << 20
	// MaxStreamSize bounds event streams, which hold a whole document.
	MaxStreamSize = 64 << 20
)

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any, limit int) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), limit)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes a configuration-sized document, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v, MaxConfigSize); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// UnmarshalStrict rejects unknown fields in a configuration-sized input.
func UnmarshalStrict(data []byte, v any) error {
	return UnmarshalStrictLimit(data, v, MaxConfigSize)
}

// UnmarshalStrictLimit is UnmarshalStrict with a caller-chosen size limit.
func UnmarshalStrictLimit(data []byte, v any, limit int) error {
	if err := validateInput(data, v, limit); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
