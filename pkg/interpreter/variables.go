package interpreter

import (
	"fmt"
	"strings"

	"stackvm/pkg/stack"
)

// VariableModel selects how WRITE_VAR and READ_VAR store values
type VariableModel int

const (
	// ValueStorage keeps every variable in its own slot outside the operand
	// stack. WRITE_VAR pops the top of the stack into the variable.
	ValueStorage VariableModel = iota

	// StackAlias binds a variable to a stack index. The first WRITE_VAR labels
	// the current top without popping; later writes move the top down into the
	// bound slot. A binding outlives the value it was created for, so reads can
	// observe unrelated values once the stack below the slot changes.
	StackAlias
)

func (m VariableModel) String() string {
	switch m {
	case ValueStorage:
		return "value"
	case StackAlias:
		return "alias"
	default:
		return fmt.Sprintf("VariableModel(%d)", int(m))
	}
}

// ParseVariableModel maps "value" or "alias" to a model
func ParseVariableModel(s string) (VariableModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "value":
		return ValueStorage, nil
	case "alias":
		return StackAlias, nil
	default:
		return ValueStorage, fmt.Errorf("unknown variable model %q (expected value or alias)", s)
	}
}

// variables is the variable table of a single run
type variables interface {
	write(s *stack.Stack, name string) error
	read(s *stack.Stack, name string) (int64, error)
	snapshot(s *stack.Stack) map[string]int64
	reset()
}

func newVariables(m VariableModel) variables {
	if m == StackAlias {
		return &aliasTable{slots: make(map[string]int)}
	}
	return &valueTable{vals: make(map[string]int64)}
}

type valueTable struct {
	vals map[string]int64
}

func (t *valueTable) write(s *stack.Stack, name string) error {
	v, err := s.Pop()
	if err != nil {
		return ErrStackUnderflow
	}

	t.vals[name] = v
	return nil
}

func (t *valueTable) read(_ *stack.Stack, name string) (int64, error) {
	v, ok := t.vals[name]
	if !ok {
		return 0, ErrUnknownVariable
	}

	return v, nil
}

func (t *valueTable) snapshot(_ *stack.Stack) map[string]int64 {
	out := make(map[string]int64, len(t.vals))
	for k, v := range t.vals {
		out[k] = v
	}
	return out
}

func (t *valueTable) reset() {
	t.vals = make(map[string]int64)
}

type aliasTable struct {
	slots map[string]int // variable -> stack index
}

func (t *aliasTable) write(s *stack.Stack, name string) error {
	idx, ok := t.slots[name]
	if !ok {
		if s.Len() == 0 {
			return ErrStackUnderflow
		}
		t.slots[name] = s.Len() - 1
		return nil
	}

	if idx >= s.Len() {
		return ErrVariableOutOfScope
	}

	v, _ := s.Pop()
	if idx < s.Len() {
		return s.Set(idx, v)
	}

	// the bound slot was the top itself
	return s.Push(v)
}

func (t *aliasTable) read(s *stack.Stack, name string) (int64, error) {
	idx, ok := t.slots[name]
	if !ok {
		return 0, ErrUnknownVariable
	}

	v, err := s.Get(idx)
	if err != nil {
		return 0, ErrVariableOutOfScope
	}

	return v, nil
}

func (t *aliasTable) snapshot(s *stack.Stack) map[string]int64 {
	out := make(map[string]int64, len(t.slots))
	for k, idx := range t.slots {
		if v, err := s.Get(idx); err == nil {
			out[k] = v
		}
	}
	return out
}

func (t *aliasTable) reset() {
	t.slots = make(map[string]int)
}
