package output

import (
	"strings"
	"testing"
)

func TestPrinter_PlainWhenNotTTY(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(&buf, false)

	p.Successf("created %s", "my-api")
	p.Warnf("skipped %s", "thing")
	p.KeyValue("Version", "1.0.0")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output contains escape sequences: %q", out)
	}
	if !strings.Contains(out, "created my-api") {
		t.Errorf("missing success line: %q", out)
	}
	if !strings.Contains(out, "Warning: skipped thing") {
		t.Errorf("missing warning line: %q", out)
	}
	if !strings.Contains(out, "Version: 1.0.0") {
		t.Errorf("missing key/value line: %q", out)
	}
}

func TestPrinter_TableAlignment(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(&buf, false)

	p.Table([]string{"NAME", "SOURCE"}, [][]string{
		{"default", "built-in"},
		{"my-longer-name", "/tmp/bp"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	// Columns align on the widest cell.
	if strings.Index(lines[0], "SOURCE") != strings.Index(lines[2], "/tmp/bp") {
		t.Errorf("columns misaligned:\n%s", buf.String())
	}
}

func TestPrinter_EmptyTable(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf, false).Table(nil, nil)
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}
