package blueprint

import (
	"strings"
	"testing"
)

func TestValidateFile_Valid(t *testing.T) {
	result, err := ValidateFile(testPath("valid.yaml"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("Valid = false, issues: %+v", result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Errorf("Issues len = %d, want 0", len(result.Issues))
	}
}

func TestValidateFile_Invalid(t *testing.T) {
	tests := []struct {
		file     string
		wantPath string
	}{
		{"invalid-missing-name.yaml", ""},
		{"invalid-bad-type.yaml", "/variables/0/type"},
		{"invalid-bad-variable-name.yaml", "/variables/0/name"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile error: %v", err)
			}
			if result.Valid {
				t.Fatal("Valid = true, want false")
			}
			if len(result.Issues) == 0 {
				t.Fatal("Issues empty, want at least one")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at path %q, got %+v", tt.wantPath, result.Issues)
			}
		})
	}
}

func TestValidate_UnknownTopLevelField(t *testing.T) {
	result, err := Validate([]byte(`
name: demo
unexpected: field
variables:
  - name: x
    type: string
files:
  - path: README.md
`))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("Valid = true, want false for unknown field")
	}
}

func TestValidate_MalformedYAML(t *testing.T) {
	_, err := Validate([]byte("name: [unclosed"))
	if err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
	if !strings.Contains(err.Error(), "parsing YAML") {
		t.Errorf("error = %v, want YAML parse failure", err)
	}
}
