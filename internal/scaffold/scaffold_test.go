package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/kiln-labs/kiln/internal/blueprint"
	"github.com/kiln-labs/kiln/internal/render"
)

func testCorpus() fstest.MapFS {
	return fstest.MapFS{
		blueprint.BlueprintFileName: &fstest.MapFile{Data: []byte(`
name: service
variables:
  - name: project_name
    type: string
    pattern: "^[a-z0-9][a-z0-9-]*$"
  - name: language
    type: choice
    choices: [Go, Python]
    default: Go
  - name: use_git
    type: bool
files:
  - path: README.md
  - path: .editorconfig
    raw: true
  - path: go.mod
    when:
      var: language
      equals: Go
  - path: pyproject.toml
    when:
      var: language
      equals: Python
  - path: docs/usage.md
    when:
      var: use_git
`)},
		"README.md.tmpl":      &fstest.MapFile{Data: []byte("# {{ .project_name }}\n")},
		".editorconfig":       &fstest.MapFile{Data: []byte("root = true\nindent with {{ not a template }}\n")},
		"go.mod.tmpl":         &fstest.MapFile{Data: []byte("module {{ .project_name }}\n")},
		"pyproject.toml.tmpl": &fstest.MapFile{Data: []byte("[project]\nname = \"{{ .project_name }}\"\n")},
		"docs/usage.md.tmpl":  &fstest.MapFile{Data: []byte("Usage of {{ .project_name }}.\n")},
	}
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func TestGenerate_SelectsAndRenders(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	answers := map[string]any{"project_name": "my-api", "use_git": true}

	result, err := Generate(testCorpus(), answers, outDir, Options{Seed: 1})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	want := []string{"README.md", ".editorconfig", "go.mod", "docs/usage.md"}
	if len(result.Files) != len(want) {
		t.Fatalf("Files = %v, want %v", result.Files, want)
	}
	for i := range want {
		if result.Files[i] != want[i] {
			t.Errorf("Files[%d] = %q, want %q", i, result.Files[i], want[i])
		}
	}

	if got := readOutput(t, outDir, "README.md"); got != "# my-api\n" {
		t.Errorf("README.md = %q, want substituted heading", got)
	}
	if got := readOutput(t, outDir, "go.mod"); got != "module my-api\n" {
		t.Errorf("go.mod = %q, want substituted module line", got)
	}

	if _, err := os.Stat(filepath.Join(outDir, "pyproject.toml")); !os.IsNotExist(err) {
		t.Error("pyproject.toml written, want excluded for Go")
	}
}

func TestGenerate_RawCopiedVerbatim(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	answers := map[string]any{"project_name": "my-api"}

	if _, err := Generate(testCorpus(), answers, outDir, Options{Seed: 1}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	got := readOutput(t, outDir, ".editorconfig")
	if !strings.Contains(got, "{{ not a template }}") {
		t.Errorf(".editorconfig = %q, want verbatim copy", got)
	}
}

func TestGenerate_WritesAnswerRecord(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	answers := map[string]any{"project_name": "my-api"}

	if _, err := Generate(testCorpus(), answers, outDir, Options{Seed: 1}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	rec, err := LoadRecord(outDir)
	if err != nil {
		t.Fatalf("LoadRecord error: %v", err)
	}
	if rec.Blueprint != "service" {
		t.Errorf("Blueprint = %q, want %q", rec.Blueprint, "service")
	}
	if rec.Answers["project_name"] != "my-api" {
		t.Errorf("Answers[project_name] = %v, want my-api", rec.Answers["project_name"])
	}
	// The record pins resolved defaults, not just supplied answers.
	if rec.Answers["language"] != "Go" {
		t.Errorf("Answers[language] = %v, want resolved default Go", rec.Answers["language"])
	}
	if rec.Answers["use_git"] != false {
		t.Errorf("Answers[use_git] = %v, want resolved default false", rec.Answers["use_git"])
	}
}

func TestGenerate_RefusesNonEmptyDir(t *testing.T) {
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outDir, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Generate(testCorpus(), map[string]any{"project_name": "my-api"}, outDir, Options{Seed: 1})
	if err == nil {
		t.Fatal("expected error for non-empty output directory, got nil")
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("error = %v, want not-empty refusal", err)
	}
}

func TestGenerate_NoPartialOutputOnTemplateError(t *testing.T) {
	corpus := testCorpus()
	corpus["go.mod.tmpl"] = &fstest.MapFile{Data: []byte("module {{ .undeclared }}\n")}

	outDir := filepath.Join(t.TempDir(), "out")
	_, err := Generate(corpus, map[string]any{"project_name": "my-api"}, outDir, Options{Seed: 1})
	if err == nil {
		t.Fatal("expected template error, got nil")
	}
	if _, ok := err.(*render.TemplateError); !ok {
		t.Fatalf("expected *render.TemplateError, got %T: %v", err, err)
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Error("output directory created despite render failure")
	}
}

func TestGenerate_ResolutionError(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	_, err := Generate(testCorpus(), map[string]any{}, outDir, Options{Seed: 1})
	if err == nil {
		t.Fatal("expected error for missing required answer, got nil")
	}
	if _, ok := err.(*blueprint.ValidationError); !ok {
		t.Fatalf("expected *blueprint.ValidationError, got %T: %v", err, err)
	}
}

func TestGenerate_MissingTemplateSource(t *testing.T) {
	corpus := testCorpus()
	delete(corpus, "README.md.tmpl")

	outDir := filepath.Join(t.TempDir(), "out")
	_, err := Generate(corpus, map[string]any{"project_name": "my-api"}, outDir, Options{Seed: 1})
	if err == nil {
		t.Fatal("expected error for missing template source, got nil")
	}
	if !strings.Contains(err.Error(), "README.md.tmpl") {
		t.Errorf("error = %v, want mention of the missing source", err)
	}
}

func TestRegenerate_ByteIdentical(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	answers := map[string]any{"project_name": "my-api", "use_git": true}

	first, err := Generate(testCorpus(), answers, outDir, Options{Seed: 7})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	before := make(map[string]string, len(first.Files))
	for _, f := range first.Files {
		before[f] = readOutput(t, outDir, f)
	}

	second, err := Regenerate(testCorpus(), outDir, Options{})
	if err != nil {
		t.Fatalf("Regenerate error: %v", err)
	}
	if len(second.Files) != len(first.Files) {
		t.Fatalf("Files = %v, want %v", second.Files, first.Files)
	}
	for f, want := range before {
		if got := readOutput(t, outDir, f); got != want {
			t.Errorf("%s changed on regenerate:\n got %q\nwant %q", f, got, want)
		}
	}
}

func TestRegenerate_AppliesTemplateChanges(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	answers := map[string]any{"project_name": "my-api"}

	if _, err := Generate(testCorpus(), answers, outDir, Options{Seed: 1}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	updated := testCorpus()
	updated["README.md.tmpl"] = &fstest.MapFile{Data: []byte("# {{ .project_name }} v2\n")}

	if _, err := Regenerate(updated, outDir, Options{}); err != nil {
		t.Fatalf("Regenerate error: %v", err)
	}
	if got := readOutput(t, outDir, "README.md"); got != "# my-api v2\n" {
		t.Errorf("README.md = %q, want updated template applied", got)
	}
}

func TestRegenerate_MissingRecord(t *testing.T) {
	_, err := Regenerate(testCorpus(), t.TempDir(), Options{})
	if err == nil {
		t.Fatal("expected error for missing answer record, got nil")
	}
}

func TestRecordPath(t *testing.T) {
	got := RecordPath("proj")
	want := filepath.Join("proj", ".kiln", "answers.yaml")
	if got != want {
		t.Errorf("RecordPath = %q, want %q", got, want)
	}
}

func TestBuiltin_Loads(t *testing.T) {
	bp, err := blueprint.Load(Builtin())
	if err != nil {
		t.Fatalf("loading built-in blueprint: %v", err)
	}
	if len(bp.Variables) == 0 || len(bp.Files) == 0 {
		t.Fatalf("built-in blueprint is empty: %+v", bp)
	}
}

func TestBuiltin_Generates(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	answers := map[string]any{
		"project_name": "demo-app",
		"project_type": "Python",
		"ai_tool":      "Claude",
		"use_git":      true,
	}

	result, err := Generate(Builtin(), answers, outDir, Options{Seed: 1})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	wantPresent := []string{"README.md", "CLAUDE.md", "pyproject.toml", "skills/code-style.md", ".gitignore"}
	for _, f := range wantPresent {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(f))); err != nil {
			t.Errorf("expected %s in output: %v", f, err)
		}
	}
	wantAbsent := []string{"composer.json", "Package.swift", "ANTIGRAVITY.md", "AGENTS.md", "tests/test_smoke.py"}
	for _, f := range wantAbsent {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(f))); !os.IsNotExist(err) {
			t.Errorf("unexpected %s in output", f)
		}
	}

	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}
