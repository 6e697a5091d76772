package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kiln-labs/kiln/internal/blueprint"
	"github.com/kiln-labs/kiln/internal/render"
	"github.com/kiln-labs/kiln/internal/resolve"
)

// Options control one scaffold run.
type Options struct {
	Seed    int64  // forwarded to the resolver for generated defaults
	Version string // running CLI version, checked against the blueprint's min_version
	Update  bool   // allow writing into an existing output directory
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// Generate materializes a project from a template corpus into outDir.
// Resolution and rendering complete before any file is written, so a
// validation or template failure leaves no partial output.
func Generate(corpus fs.FS, answers map[string]any, outDir string, opts Options) (*Result, error) {
	bp, err := blueprint.Load(corpus)
	if err != nil {
		return nil, err
	}
	if err := bp.CheckVersion(opts.Version); err != nil {
		return nil, err
	}

	cfg, err := resolve.Resolve(bp, answers, resolve.Options{Seed: opts.Seed})
	if err != nil {
		return nil, err
	}

	rules := resolve.SelectFiles(bp, cfg)
	data := cfg.TemplateData()

	rendered := make([][]byte, len(rules))
	for i, rule := range rules {
		src := sourcePath(rule)
		body, err := fs.ReadFile(corpus, src)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", src, err)
		}
		if rule.Raw {
			rendered[i] = body
			continue
		}
		out, err := render.File(rule.Path, body, data)
		if err != nil {
			return nil, err
		}
		rendered[i] = out
	}

	if err := prepareOutputDir(outDir, opts.Update); err != nil {
		return nil, err
	}

	result := &Result{OutputDir: outDir}
	for i, rule := range rules {
		outPath := filepath.Join(outDir, filepath.FromSlash(rule.Path))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", rule.Path, err)
		}
		if err := os.WriteFile(outPath, rendered[i], 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, rule.Path)
	}

	if err := saveRecord(outDir, bp.Name, cfg); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not record answers: %v", err))
	}

	return result, nil
}

// Regenerate re-runs generation against an existing output directory using
// its recorded answers. With identical inputs the rewrite is byte-identical.
func Regenerate(corpus fs.FS, outDir string, opts Options) (*Result, error) {
	rec, err := LoadRecord(outDir)
	if err != nil {
		return nil, err
	}
	opts.Update = true
	return Generate(corpus, rec.Answers, outDir, opts)
}

// sourcePath maps an output path to its template source inside the corpus.
// Substituted files carry a .tmpl suffix; raw files are stored verbatim.
func sourcePath(rule blueprint.FileRule) string {
	if rule.Raw {
		return rule.Path
	}
	return rule.Path + ".tmpl"
}

func prepareOutputDir(outDir string, update bool) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if update {
		return nil
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return fmt.Errorf("reading output directory: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty; remove existing files first", outDir)
	}
	return nil
}
