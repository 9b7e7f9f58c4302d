package image

import (
	"errors"
	"fmt"

	"stackvm/pkg/isa"
)

var (
	ErrUnmatchedLoop       = errors.New("unmatched loop label")
	ErrDuplicateLabel      = errors.New("duplicate loop label")
	ErrInvalidInstruction  = errors.New("invalid instruction")
	ErrProgramCounterRange = errors.New("program counter out of range")
)

// Image is a validated, immutable program. Loop boundaries are resolved once
// when the image is built and kept in a jump table keyed by instruction index.
type Image struct {
	instrs []isa.Instruction
	jumps  map[int]int // LOOPW_START -> index after its LOOPW_END, LOOPW_END -> its LOOPW_START
}

// New checks the shape of every instruction and resolves loop pairs
func New(instrs []isa.Instruction) (*Image, error) {
	img := &Image{
		instrs: append([]isa.Instruction(nil), instrs...),
		jumps:  make(map[int]int),
	}

	cat := isa.DefaultCatalog()
	for idx, in := range img.instrs {
		if err := checkShape(cat, in); err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", idx, in, err)
		}
	}

	if err := img.resolveLoops(); err != nil {
		return nil, err
	}

	return img, nil
}

// checkShape verifies an instruction carries the operands its variant needs
func checkShape(cat isa.Catalog, in isa.Instruction) error {
	if !cat.Has(in.Op) {
		return fmt.Errorf("%w: unknown mnemonic %q", ErrInvalidInstruction, in.Op)
	}

	switch in.Op {
	case isa.ReadVarOp, isa.WriteVarOp:
		if in.Name == "" {
			return fmt.Errorf("%w: missing variable name", ErrInvalidInstruction)
		}
	case isa.LoopStartOp:
		if in.Label == "" || in.Name == "" {
			return fmt.Errorf("%w: missing loop label or condition", ErrInvalidInstruction)
		}
	case isa.LoopEndOp:
		if in.Label == "" {
			return fmt.Errorf("%w: missing loop label", ErrInvalidInstruction)
		}
	}

	return nil
}

// resolveLoops builds the jump table, rejecting duplicate and unpaired labels
func (img *Image) resolveLoops() error {
	starts := make(map[string]int)
	ends := make(map[string]int)

	for idx, in := range img.instrs {
		var seen map[string]int
		switch in.Op {
		case isa.LoopStartOp:
			seen = starts
		case isa.LoopEndOp:
			seen = ends
		default:
			continue
		}

		if prev, ok := seen[in.Label]; ok {
			return fmt.Errorf("%w: %q at %d and %d", ErrDuplicateLabel, in.Label, prev, idx)
		}
		seen[in.Label] = idx
	}

	for idx, in := range img.instrs {
		switch in.Op {
		case isa.LoopStartOp:
			end, ok := FindMatchingEnd(img.instrs, in.Label)
			if !ok || end < idx {
				return fmt.Errorf("%w: %s %s at %d has no %s", ErrUnmatchedLoop, in.Op, in.Label, idx, isa.LoopEndOp)
			}
			img.jumps[idx] = end + 1

		case isa.LoopEndOp:
			start, ok := FindMatchingStart(img.instrs, in.Label)
			if !ok || start > idx {
				return fmt.Errorf("%w: %s %s at %d has no %s", ErrUnmatchedLoop, in.Op, in.Label, idx, isa.LoopStartOp)
			}
			img.jumps[idx] = start
		}
	}

	return nil
}

// FindMatchingEnd returns the index of the first LOOPW_END carrying label
func FindMatchingEnd(instrs []isa.Instruction, label string) (int, bool) {
	return find(instrs, isa.LoopEndOp, label)
}

// FindMatchingStart returns the index of the first LOOPW_START carrying label
func FindMatchingStart(instrs []isa.Instruction, label string) (int, bool) {
	return find(instrs, isa.LoopStartOp, label)
}

func find(instrs []isa.Instruction, op isa.Mnemonic, label string) (int, bool) {
	for idx, in := range instrs {
		if in.Op == op && in.Label == label {
			return idx, true
		}
	}

	return -1, false
}

// Len returns the number of instructions
func (img *Image) Len() int {
	return len(img.instrs)
}

// At returns the instruction at pc
func (img *Image) At(pc int) (isa.Instruction, error) {
	if pc < 0 || pc >= len(img.instrs) {
		return isa.Instruction{}, fmt.Errorf("%w: %d", ErrProgramCounterRange, pc)
	}

	return img.instrs[pc], nil
}

// Instructions returns a copy of the program
func (img *Image) Instructions() []isa.Instruction {
	return append([]isa.Instruction(nil), img.instrs...)
}

// Target returns the precomputed jump destination of a loop marker at pc
func (img *Image) Target(pc int) (int, bool) {
	t, ok := img.jumps[pc]
	return t, ok
}

// Lines renders the program back to source lines
func (img *Image) Lines() []string {
	out := make([]string, len(img.instrs))
	for i, in := range img.instrs {
		out[i] = in.String()
	}
	return out
}
