package interpreter

import (
	"stackvm/pkg/image"
	"stackvm/pkg/isa"
	"stackvm/pkg/stack"
)

// DefaultMaxSteps bounds a run unless WithMaxSteps says otherwise
const DefaultMaxSteps = 1_000_000

// Interpreter executes a program image on an operand stack and a variable table
type Interpreter struct {
	img *image.Image // program being executed
	cat isa.Catalog  // instruction set (arity lookups)
	pc  int          // program counter (index into img)

	stack    *stack.Stack // operand stack
	stackMax int          // operand stack capacity
	vars     variables    // variable table
	model    VariableModel

	values []int64 // values emitted by RETURN_VALUE, in order

	maxSteps    int  // maximum steps (0 = unlimited)
	steps       int  // steps executed
	requireExit bool // falling off the end faults instead of halting
	halted      bool
	exited      bool

	tracer Tracer
}

// Result is what a run produced. It is returned even when the run faults.
type Result struct {
	Values    []int64          // emitted by RETURN_VALUE
	Steps     int              // instructions executed
	Exited    bool             // halted by EXIT rather than by running off the end
	Stack     []int64          // operand stack at halt, bottom first
	Variables map[string]int64 // variable values at halt
}

type Option func(*Interpreter)

// WithCatalog sets the instruction set used for arity lookups
func WithCatalog(c isa.Catalog) Option {
	return func(i *Interpreter) { i.cat = c }
}

// WithStackMax sets the operand stack capacity
func WithStackMax(n int) Option {
	return func(i *Interpreter) { i.stackMax = n }
}

// WithMaxSteps sets a maximum number of steps before returning ErrMaxStepsExceeded (0 = unlimited)
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithVariables selects the variable storage model
func WithVariables(m VariableModel) Option {
	return func(i *Interpreter) { i.model = m }
}

// WithRequireExit makes running past the last instruction a fault
func WithRequireExit(b bool) Option {
	return func(i *Interpreter) { i.requireExit = b }
}

// WithTracer installs a hook called after every executed instruction
func WithTracer(t Tracer) Option {
	return func(i *Interpreter) { i.tracer = t }
}

// NewInterpreter creates a new Interpreter instance
func NewInterpreter(img *image.Image, opts ...Option) *Interpreter {
	it := &Interpreter{
		img:      img,
		cat:      isa.DefaultCatalog(),
		stackMax: stack.DefaultMax,
		model:    ValueStorage,
		maxSteps: DefaultMaxSteps,
	}

	for _, o := range opts {
		o(it)
	}

	it.stack = stack.NewStack(it.stackMax)
	it.vars = newVariables(it.model)

	return it
}

// Exec runs an image to completion with the given options
func Exec(img *image.Image, opts ...Option) (Result, error) {
	return NewInterpreter(img, opts...).Run()
}

// Load replaces the current program image, resetting state
func (i *Interpreter) Load(img *image.Image) {
	i.img = img
	i.Reset()
}

// Reset clears runtime state (stack, variables, PC, counters)
func (i *Interpreter) Reset() {
	i.pc = 0
	i.stack.Reset()
	i.vars.reset()
	i.values = nil
	i.steps = 0
	i.halted = false
	i.exited = false
}

// Step executes a single instruction, returning (halted, error)
func (i *Interpreter) Step() (bool, error) {
	if i.halted {
		return true, nil
	}

	// the budget only applies to instructions still to execute
	if i.maxSteps > 0 && i.steps >= i.maxSteps && i.pc < i.img.Len() {
		i.halted = true
		in, err := i.img.At(i.pc)
		if err != nil {
			return true, newFault(i.pc, isa.Instruction{}, ErrInternal, err.Error())
		}
		return true, newFault(i.pc, in, ErrMaxStepsExceeded, "")
	}

	halted, err := coreStep(i)
	if halted || err != nil {
		i.halted = true
	}

	return halted, err
}

// Run executes until halt or fault
func (i *Interpreter) Run() (Result, error) {
	for {
		halted, err := i.Step()
		if err != nil {
			return i.Result(), err
		}

		if halted {
			return i.Result(), nil
		}
	}
}

// Result returns what the run has produced so far
func (i *Interpreter) Result() Result {
	return Result{
		Values:    append([]int64(nil), i.values...),
		Steps:     i.steps,
		Exited:    i.exited,
		Stack:     i.stack.Values(),
		Variables: i.vars.snapshot(i.stack),
	}
}

// PC returns the current program counter
func (i *Interpreter) PC() int {
	return i.pc
}

// Stack returns a copy of the operand stack, bottom first
func (i *Interpreter) Stack() []int64 {
	return i.stack.Values()
}

// Steps returns the number of instructions executed
func (i *Interpreter) Steps() int {
	return i.steps
}
