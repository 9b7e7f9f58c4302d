package interpreter

import (
	"fmt"

	"stackvm/pkg/isa"
)

// coreStep is the main single-step execution function
// it returns (halted, error).
func coreStep(i *Interpreter) (bool, error) {
	pc := i.pc
	if pc >= i.img.Len() {
		if i.requireExit {
			return true, newFault(pc, isa.Instruction{}, ErrMissingExit, "")
		}
		// running off the end is an implicit successful halt
		return true, nil
	}

	in, err := i.img.At(pc)
	if err != nil {
		return true, newFault(pc, isa.Instruction{}, ErrInternal, err.Error())
	}

	next, halted, fault := i.execute(pc, in)
	i.steps++

	if i.tracer != nil {
		i.tracer.Trace(Event{
			Step:        i.steps,
			PC:          pc,
			Instruction: in,
			Stack:       i.stack.Values(),
			Err:         faultErr(fault),
		})
	}

	if fault != nil {
		return true, fault
	}

	i.pc = next
	return halted, nil
}

// execute applies one instruction and returns the next PC
func (i *Interpreter) execute(pc int, in isa.Instruction) (int, bool, *Fault) {
	fail := func(kind error, detail string) (int, bool, *Fault) {
		return pc, true, newFault(pc, in, kind, detail)
	}

	switch in.Op {
	case isa.LoadValOp:
		if err := i.stack.Push(in.Value); err != nil {
			return fail(ErrStackOverflow, fmt.Sprintf("capacity %d", i.stack.Cap()))
		}

	case isa.WriteVarOp:
		if err := i.vars.write(i.stack, in.Name); err != nil {
			return fail(err, in.Name)
		}

	case isa.ReadVarOp:
		v, err := i.vars.read(i.stack, in.Name)
		if err != nil {
			return fail(err, in.Name)
		}
		if err := i.stack.Push(v); err != nil {
			return fail(ErrStackOverflow, fmt.Sprintf("capacity %d", i.stack.Cap()))
		}

	case isa.AddOp, isa.SubtractOp, isa.MultiplyOp, isa.DivideOp:
		if fault := i.arithmetic(pc, in); fault != nil {
			return pc, true, fault
		}

	case isa.ReturnValueOp:
		v, err := i.stack.Pop()
		if err != nil {
			return fail(ErrStackUnderflow, "nothing to return")
		}
		i.values = append(i.values, v)

	case isa.LoopStartOp:
		v, err := i.vars.read(i.stack, in.Name)
		if err != nil {
			return fail(err, in.Name)
		}
		if v > 0 {
			break
		}
		target, ok := i.img.Target(pc)
		if !ok {
			return fail(ErrInternal, "unresolved loop "+in.Label)
		}
		return target, false, nil

	case isa.LoopEndOp:
		target, ok := i.img.Target(pc)
		if !ok {
			return fail(ErrInternal, "unresolved loop "+in.Label)
		}
		return target, false, nil

	case isa.ExitOp:
		i.exited = true
		return pc + 1, true, nil

	default:
		return fail(ErrInternal, fmt.Sprintf("unhandled instruction %q", in.Op))
	}

	return pc + 1, false, nil
}

// arithmetic pops a (top) then b and pushes a op b. The stack is left
// untouched when the operation faults.
func (i *Interpreter) arithmetic(pc int, in isa.Instruction) *Fault {
	arity, ok := i.cat.Arity(in.Op)
	if !ok {
		return newFault(pc, in, ErrInternal, fmt.Sprintf("%s missing from catalog", in.Op))
	}

	depth := i.stack.Len()
	if depth < arity {
		return newFault(pc, in, ErrStackUnderflow, fmt.Sprintf("need %d values, have %d", arity, depth))
	}

	if in.Op == isa.DivideOp {
		if divisor, _ := i.stack.Get(depth - 2); divisor == 0 {
			return newFault(pc, in, ErrDivisionByZero, "")
		}
	}

	a, _ := i.stack.Pop()
	b, _ := i.stack.Pop()

	var res int64
	switch in.Op {
	case isa.AddOp:
		res = a + b
	case isa.SubtractOp:
		res = a - b
	case isa.MultiplyOp:
		res = a * b
	case isa.DivideOp:
		res = a / b
	}

	// two values were just popped, so this cannot overflow
	_ = i.stack.Push(res)
	return nil
}

func faultErr(f *Fault) error {
	if f == nil {
		return nil
	}
	return f
}
