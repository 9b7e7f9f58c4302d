package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"stackvm/internal/config"
	"stackvm/pkg/interpreter"
	"stackvm/pkg/isa"
	"stackvm/pkg/loader"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[vm]
max_steps = 50
variables = "alias"

[output]
trace = true
`)

	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.VM.MaxSteps != 50 {
		t.Errorf("expected max_steps 50, got %d", c.VM.MaxSteps)
	}
	if c.VM.Variables != "alias" {
		t.Errorf("expected alias variables, got %q", c.VM.Variables)
	}
	if c.VM.StackMax != config.Default().VM.StackMax {
		t.Errorf("expected default stack_max, got %d", c.VM.StackMax)
	}
	if !c.Output.Trace || !c.Output.Color {
		t.Errorf("unexpected output section %+v", c.Output)
	}
	if c.Path != path {
		t.Errorf("expected path %q, got %q", path, c.Path)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		description string
		body        string
	}{
		{"bad syntax", "[vm\nmax_steps = 1"},
		{"zero stack", "[vm]\nstack_max = 0"},
		{"negative steps", "[vm]\nmax_steps = -1"},
		{"unknown model", "[vm]\nvariables = \"heap\""},
		{"wrong type", "[vm]\nmax_steps = \"many\""},
	}

	for _, test := range tests {
		path := writeConfig(t, t.TempDir(), test.body)
		if _, err := config.Load(path); err == nil {
			t.Errorf("%s: expected error", test.description)
		}
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[vm]\nrequire_exit = true\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := config.FindAndLoad(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.VM.RequireExit {
		t.Errorf("expected config from parent directory")
	}
}

func TestOptionsApply(t *testing.T) {
	img, err := loader.Load([]string{"LOAD_VAL 1", "LOAD_VAL 2", "ADD", "RETURN_VALUE"}, isa.DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}

	c := config.Default()
	c.VM.MaxSteps = 3

	_, err = interpreter.Exec(img, c.Options()...)
	if !errors.Is(err, interpreter.ErrMaxStepsExceeded) {
		t.Errorf("expected step budget from config, got %v", err)
	}

	c.VM.MaxSteps = 0
	c.VM.RequireExit = true
	_, err = interpreter.Exec(img, c.Options()...)
	if !errors.Is(err, interpreter.ErrMissingExit) {
		t.Errorf("expected require_exit from config, got %v", err)
	}
}
