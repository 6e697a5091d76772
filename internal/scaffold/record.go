package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/kiln-labs/kiln/internal/branding"
	"github.com/kiln-labs/kiln/internal/resolve"
)

const recordFileName = "answers.yaml"

// Record is the answer set written into a generated project. It pins every
// resolved value (including generated defaults), so a later update
// reproduces the same output without re-prompting or re-randomizing.
type Record struct {
	Blueprint string         `yaml:"blueprint"`
	Answers   map[string]any `yaml:"answers"`
}

// RecordPath returns the answer record location inside an output directory
// (e.g. <outDir>/.kiln/answers.yaml).
func RecordPath(outDir string) string {
	return filepath.Join(outDir, branding.HomeDir(), recordFileName)
}

// saveRecord writes the resolved configuration as the project's answer
// record. yaml.v3 marshals maps with sorted keys, so the record is
// deterministic for a given configuration.
func saveRecord(outDir, blueprintName string, cfg resolve.Config) error {
	rec := Record{
		Blueprint: blueprintName,
		Answers:   cfg.TemplateData(),
	}
	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("marshaling answer record: %w", err)
	}

	path := RecordPath(outDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating record directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing answer record: %w", err)
	}
	return nil
}

// LoadRecord reads the answer record from a previously generated project.
func LoadRecord(outDir string) (*Record, error) {
	path := RecordPath(outDir)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answer record %s: %w", path, err)
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing answer record %s: %w", path, err)
	}
	if rec.Answers == nil {
		return nil, fmt.Errorf("answer record %s has no answers", path)
	}
	return &rec, nil
}
