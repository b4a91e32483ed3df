// Package loader reads schema and document files.
//
// Schemas and documents are plain structured data; the source format is
// YAML or JSON (the YAML parser accepts both), and the loader normalizes
// everything to string-keyed maps for the evaluator.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadMapping reads path and parses it as a top-level mapping.
func LoadMapping(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseMapping(data)
}

// ParseMapping parses YAML or JSON bytes as a top-level mapping.
func ParseMapping(data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if doc == nil {
		return map[string]any{}, nil
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a top-level mapping, got %T", doc)
	}
	return m, nil
}
