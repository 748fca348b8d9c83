package api

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// OpenAPISpec holds the raw OpenAPI 3.0 specification YAML.
//
//go:embed openapi.yaml
var OpenAPISpec []byte

// Paths returns the documented paths in sorted order.
func Paths() ([]string, error) {
	var doc struct {
		Paths map[string]yaml.Node `yaml:"paths"`
	}
	if err := yaml.Unmarshal(OpenAPISpec, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi.yaml: %w", err)
	}
	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
