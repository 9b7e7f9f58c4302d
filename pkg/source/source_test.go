package source_test

import (
	"os"
	"path/filepath"
	"stackvm/pkg/source"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	input := `// counter program
# another comment style
LOAD_VAL 5
WRITE_VAR x   // bind x

	READ_VAR x
RETURN_VALUE
`

	l, err := source.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"LOAD_VAL 5", "WRITE_VAR x", "READ_VAR x", "RETURN_VALUE"}, l.Lines); diff != "" {
		t.Errorf("unexpected lines (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 4, 6, 7}, l.LineNumbers); diff != "" {
		t.Errorf("unexpected line numbers (-want +got):\n%s", diff)
	}

	if l.SourceLine(2) != 6 {
		t.Errorf("expected instruction 2 at line 6, got %d", l.SourceLine(2))
	}
	if l.SourceLine(10) != 0 || l.SourceLine(-1) != 0 {
		t.Errorf("expected 0 for out of range indices")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.svm")
	if err := os.WriteFile(path, []byte("LOAD_VAL 1\nRETURN_VALUE\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := source.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(l.Lines))
	}

	if _, err := source.ReadFile(filepath.Join(t.TempDir(), "missing.svm")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestFromLines(t *testing.T) {
	l := source.FromLines([]string{"LOAD_VAL 1", "EXIT"})
	if diff := cmp.Diff([]int{1, 2}, l.LineNumbers); diff != "" {
		t.Errorf("unexpected line numbers (-want +got):\n%s", diff)
	}
}
