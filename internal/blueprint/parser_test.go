package blueprint

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestParseFile_Fields(t *testing.T) {
	bp, err := ParseFile(testPath("valid.yaml"))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if bp.Name != "service" {
		t.Errorf("Name = %q, want %q", bp.Name, "service")
	}
	if bp.MinVersion != "0.1.0" {
		t.Errorf("MinVersion = %q, want %q", bp.MinVersion, "0.1.0")
	}
	if len(bp.Variables) != 7 {
		t.Errorf("Variables len = %d, want 7", len(bp.Variables))
	}
	if len(bp.Files) != 6 {
		t.Errorf("Files len = %d, want 6", len(bp.Files))
	}
}

func TestParseFile_VariableDetails(t *testing.T) {
	bp, err := ParseFile(testPath("valid.yaml"))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}

	v, ok := bp.Variable("language")
	if !ok {
		t.Fatal("Variable(language) not found")
	}
	if v.Type != TypeChoice {
		t.Errorf("Type = %q, want %q", v.Type, TypeChoice)
	}
	if len(v.Choices) != 3 {
		t.Errorf("Choices len = %d, want 3", len(v.Choices))
	}
	if v.Default != "Go" {
		t.Errorf("Default = %v, want Go", v.Default)
	}

	v, ok = bp.Variable("author_name")
	if !ok {
		t.Fatal("Variable(author_name) not found")
	}
	if v.Generator != GeneratorDeveloperName {
		t.Errorf("Generator = %q, want %q", v.Generator, GeneratorDeveloperName)
	}

	v, ok = bp.Variable("use_git")
	if !ok {
		t.Fatal("Variable(use_git) not found")
	}
	if v.Default != true {
		t.Errorf("Default = %v, want true", v.Default)
	}
}

func TestParseFile_FileRules(t *testing.T) {
	bp, err := ParseFile(testPath("valid.yaml"))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}

	if bp.Files[0].Path != "README.md" || bp.Files[0].When != nil {
		t.Errorf("Files[0] = %+v, want unconditional README.md", bp.Files[0])
	}
	if !bp.Files[1].Raw {
		t.Errorf("Files[1].Raw = false, want true for %s", bp.Files[1].Path)
	}

	goMod := bp.Files[2]
	if goMod.When == nil || goMod.When.Var != "language" || goMod.When.Equals != "Go" {
		t.Errorf("Files[2].When = %+v, want language equals Go", goMod.When)
	}

	smoke := bp.Files[5]
	if smoke.When == nil || len(smoke.When.All) != 2 {
		t.Fatalf("Files[5].When = %+v, want all with 2 clauses", smoke.When)
	}
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(testPath("nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	if err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
}

func TestLoad_RunsChecks(t *testing.T) {
	corpus := fstest.MapFS{
		BlueprintFileName: &fstest.MapFile{Data: []byte(`
name: dup
variables:
  - name: x
    type: string
    default: a
  - name: x
    type: string
    default: b
files:
  - path: README.md
`)},
	}
	_, err := Load(corpus)
	if err == nil {
		t.Fatal("expected duplicate variable error, got nil")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Variable != "x" {
		t.Errorf("Variable = %q, want %q", ve.Variable, "x")
	}
}

func TestLoad_MissingBlueprintFile(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	if err == nil {
		t.Fatal("expected error for missing blueprint file, got nil")
	}
}

func TestLoad_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			// yaml.v3 would silently drop the typoed field, making the
			// variable spuriously required.
			name: "unknown variable field",
			data: `
name: demo
variables:
  - name: project_name
    type: string
    defult: demo
files:
  - path: README.md
`,
		},
		{
			name: "bad variable name shape",
			data: `
name: demo
variables:
  - name: Bad-Name
    type: string
    default: x
files:
  - path: README.md
`,
		},
		{
			name: "unknown top-level field",
			data: `
name: demo
extra: field
variables:
  - name: project_name
    type: string
    default: x
files:
  - path: README.md
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corpus := fstest.MapFS{
				BlueprintFileName: &fstest.MapFile{Data: []byte(tt.data)},
			}
			_, err := Load(corpus)
			if err == nil {
				t.Fatal("expected schema error, got nil")
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if !strings.Contains(ve.Constraint, "schema") {
				t.Errorf("Constraint = %q, want mention of the schema", ve.Constraint)
			}
		})
	}
}
