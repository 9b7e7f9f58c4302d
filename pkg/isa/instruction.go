package isa

import (
	"fmt"
	"strings"
)

// Instruction is a decoded instruction. Op selects the variant, and only the
// operand fields that variant uses are populated:
//
//	LOAD_VAL     Value
//	READ_VAR     Name
//	WRITE_VAR    Name
//	LOOPW_START  Label, Name (condition variable)
//	LOOPW_END    Label
type Instruction struct {
	Op    Mnemonic
	Value int64
	Name  string
	Label string
}

func LoadVal(v int64) Instruction { return Instruction{Op: LoadValOp, Value: v} }

func ReadVar(name string) Instruction { return Instruction{Op: ReadVarOp, Name: name} }

func WriteVar(name string) Instruction { return Instruction{Op: WriteVarOp, Name: name} }

func Add() Instruction { return Instruction{Op: AddOp} }

func Subtract() Instruction { return Instruction{Op: SubtractOp} }

func Multiply() Instruction { return Instruction{Op: MultiplyOp} }

func Divide() Instruction { return Instruction{Op: DivideOp} }

func Return() Instruction { return Instruction{Op: ReturnValueOp} }

func LoopStart(label, cond string) Instruction {
	return Instruction{Op: LoopStartOp, Label: label, Name: cond}
}

func LoopEnd(label string) Instruction { return Instruction{Op: LoopEndOp, Label: label} }

func Exit() Instruction { return Instruction{Op: ExitOp} }

// String renders the instruction in its source form, so that loading the
// result yields the same instruction again
func (i Instruction) String() string {
	switch i.Op {
	case LoadValOp:
		return fmt.Sprintf("%s %d", i.Op, i.Value)
	case ReadVarOp, WriteVarOp:
		return fmt.Sprintf("%s %s", i.Op, i.Name)
	case LoopStartOp:
		return strings.Join([]string{string(i.Op), i.Label, i.Name}, " ")
	case LoopEndOp:
		return fmt.Sprintf("%s %s", i.Op, i.Label)
	default:
		return string(i.Op)
	}
}

// IsLoop reports whether the instruction is a loop boundary marker
func (i Instruction) IsLoop() bool {
	return i.Op == LoopStartOp || i.Op == LoopEndOp
}
