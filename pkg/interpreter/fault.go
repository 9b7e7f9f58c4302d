package interpreter

import (
	"errors"
	"fmt"

	"stackvm/pkg/isa"
)

var (
	ErrStackOverflow      = errors.New("stack overflow")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrUnknownVariable    = errors.New("unknown variable")
	ErrVariableOutOfScope = errors.New("variable is out of scope")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrInternal           = errors.New("internal error")
	ErrMaxStepsExceeded   = errors.New("maximum steps exceeded")
	ErrMissingExit        = errors.New("program ended without EXIT")
)

// Fault is an execution-time error. It halts the run and records where it happened.
type Fault struct {
	Kind        error           // one of the Err* values above
	PC          int             // index of the faulting instruction
	Instruction isa.Instruction // zero value when PC is past the end of the program
	Detail      string
}

func (f *Fault) Error() string {
	msg := fmt.Sprintf("fault at %d", f.PC)
	if f.Instruction.Op != "" {
		msg += fmt.Sprintf(" (%s)", f.Instruction)
	}

	msg += ": " + f.Kind.Error()
	if f.Detail != "" {
		msg += ": " + f.Detail
	}

	return msg
}

func (f *Fault) Unwrap() error {
	return f.Kind
}

func newFault(pc int, in isa.Instruction, kind error, detail string) *Fault {
	return &Fault{Kind: kind, PC: pc, Instruction: in, Detail: detail}
}
