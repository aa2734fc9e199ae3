// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// SpecFile is the on-disk form of a query specification, so a query can be
// saved once and re-run later. Results are never stored.
type SpecFile struct {
	Query Spec `yaml:"query"`

	// Rendered is the DSL string at save time, for reference only; it is
	// re-derived from Query on load.
	Rendered string    `yaml:"rendered,omitempty"`
	Saved    time.Time `yaml:"saved"`
}

// WriteSpecFile saves s to path as YAML.
func WriteSpecFile(path string, s Spec) error {
	s = s.withDefaults()
	sf := SpecFile{
		Query:    s,
		Rendered: s.Render(),
		Saved:    time.Now().UTC().Truncate(time.Second),
	}
	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling spec file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing spec file: %w", err)
	}
	return nil
}

// ReadSpecFile loads a query specification saved by WriteSpecFile.
func ReadSpecFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("reading spec file: %w", err)
	}
	var sf SpecFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return Spec{}, fmt.Errorf("parsing spec file %s: %w", path, err)
	}
	return sf.Query.withDefaults(), nil
}
