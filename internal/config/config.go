// Package config handles stackvm.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"stackvm/pkg/interpreter"
	"stackvm/pkg/stack"
)

// FileName is the configuration file looked up by FindAndLoad
const FileName = "stackvm.toml"

// Config represents a stackvm.toml file.
type Config struct {
	VM     VM     `toml:"vm"`
	Output Output `toml:"output"`

	// Path is the file the configuration was read from (empty for defaults).
	Path string `toml:"-"`
}

// VM configures the interpreter.
type VM struct {
	StackMax    int    `toml:"stack_max"`
	MaxSteps    int    `toml:"max_steps"`
	Variables   string `toml:"variables"`
	RequireExit bool   `toml:"require_exit"`
}

// Output configures reporting.
type Output struct {
	Trace      bool `toml:"trace"`
	TraceLimit int  `toml:"trace_limit"`
	Listing    bool `toml:"listing"`
	Color      bool `toml:"color"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		VM: VM{
			StackMax:  stack.DefaultMax,
			MaxSteps:  interpreter.DefaultMaxSteps,
			Variables: interpreter.ValueStorage.String(),
		},
		Output: Output{
			TraceLimit: 200,
			Color:      true,
		},
	}
}

// Load parses a configuration file. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if _, err := toml.Decode(string(data), c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	c.Path = path

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// FindAndLoad walks up from startDir looking for stackvm.toml. Defaults are
// returned when no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.VM.StackMax <= 0 {
		return fmt.Errorf("vm.stack_max must be positive, got %d", c.VM.StackMax)
	}
	if c.VM.MaxSteps < 0 {
		return fmt.Errorf("vm.max_steps must not be negative, got %d", c.VM.MaxSteps)
	}
	if _, err := interpreter.ParseVariableModel(c.VM.Variables); err != nil {
		return fmt.Errorf("vm.variables: %w", err)
	}
	if c.Output.TraceLimit < 0 {
		return fmt.Errorf("output.trace_limit must not be negative, got %d", c.Output.TraceLimit)
	}
	return nil
}

// Options translates the VM section into interpreter options
func (c *Config) Options() []interpreter.Option {
	model, _ := interpreter.ParseVariableModel(c.VM.Variables)

	return []interpreter.Option{
		interpreter.WithStackMax(c.VM.StackMax),
		interpreter.WithMaxSteps(c.VM.MaxSteps),
		interpreter.WithVariables(model),
		interpreter.WithRequireExit(c.VM.RequireExit),
	}
}
