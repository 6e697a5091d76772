package blueprint

import (
	"fmt"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v3"
)

// BlueprintFileName is the well-known blueprint file name inside a
// template corpus directory.
const BlueprintFileName = "project.yaml"

// Parse unmarshals blueprint YAML. The result is structurally unchecked;
// callers validate with Validate (schema) and Check (semantics).
func Parse(data []byte) (*Blueprint, error) {
	var bp Blueprint
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("parsing blueprint: %w", err)
	}
	return &bp, nil
}

// ParseFile reads and parses a blueprint from a file path.
func ParseFile(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blueprint %s: %w", path, err)
	}
	bp, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bp, nil
}

// Load reads the well-known blueprint file from a template corpus and runs
// schema validation plus the semantic checks. It is the entry point used by
// the scaffold layer. Schema validation runs first: yaml.v3 silently drops
// unknown fields, so a typoed field name would otherwise survive into a
// structurally wrong Blueprint.
func Load(corpus fs.FS) (*Blueprint, error) {
	data, err := fs.ReadFile(corpus, BlueprintFileName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", BlueprintFileName, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		issue := result.Issues[0]
		detail := issue.Message
		if issue.Path != "" {
			detail = issue.Path + ": " + issue.Message
		}
		return nil, &ValidationError{
			Constraint: fmt.Sprintf("%s does not match the blueprint schema: %s", BlueprintFileName, detail),
		}
	}

	bp, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := bp.Check(); err != nil {
		return nil, err
	}
	return bp, nil
}
