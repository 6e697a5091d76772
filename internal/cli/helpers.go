package cli

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kiln-labs/kiln/internal/output"
	"github.com/kiln-labs/kiln/internal/prompt"
	"github.com/kiln-labs/kiln/internal/scaffold"
)

// corpusFS returns the template corpus to scaffold from: the embedded
// default when dir is empty, otherwise the given directory.
func corpusFS(dir string) (fs.FS, error) {
	if dir == "" {
		return scaffold.Builtin(), nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("blueprint directory %s not found", dir)
	}
	return os.DirFS(dir), nil
}

// loadAnswersFile reads a flat YAML mapping of answers.
func loadAnswersFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file %s: %w", path, err)
	}
	var answers map[string]any
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	return answers, nil
}

// parseData converts repeated name=value flags into an answer map.
func parseData(items []string) (map[string]any, error) {
	answers := make(map[string]any, len(items))
	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --data %q: expected name=value", item)
		}
		answers[name] = value
	}
	return answers, nil
}

// printer returns a Printer wired to stdout with TTY detection.
func printer() *output.Printer {
	return output.NewPrinter(os.Stdout, prompt.IsTerminal(os.Stdout))
}

// printResult reports the generated files and any warnings.
func printResult(p *output.Printer, result *scaffold.Result) {
	p.Successf("Created project at %s/", result.OutputDir)
	for _, f := range result.Files {
		p.Printf("  %s\n", f)
	}
	for _, w := range result.Warnings {
		p.Warnf("%s", w)
	}
}
