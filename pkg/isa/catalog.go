package isa

import "sort"

type Mnemonic string

// List of supported mnemonics
const (
	LoadValOp     Mnemonic = "LOAD_VAL"
	ReadVarOp     Mnemonic = "READ_VAR"
	WriteVarOp    Mnemonic = "WRITE_VAR"
	AddOp         Mnemonic = "ADD"
	SubtractOp    Mnemonic = "SUBTRACT"
	MultiplyOp    Mnemonic = "MULTIPLY"
	DivideOp      Mnemonic = "DIVIDE"
	ReturnValueOp Mnemonic = "RETURN_VALUE"
	LoopStartOp   Mnemonic = "LOOPW_START"
	LoopEndOp     Mnemonic = "LOOPW_END"
	ExitOp        Mnemonic = "EXIT"
)

// entry describes one mnemonic of the instruction set.
type entry struct {
	arity  int // operand-stack values consumed for data operands
	tokens int // whitespace separated tokens on a source line, mnemonic included
}

// Catalog is the fixed instruction set. It is never mutated after construction.
type Catalog struct {
	entries map[Mnemonic]entry
}

var defaultCatalog = Catalog{
	entries: map[Mnemonic]entry{
		LoadValOp:     {arity: 0, tokens: 2},
		ReadVarOp:     {arity: 0, tokens: 2},
		WriteVarOp:    {arity: 0, tokens: 2},
		AddOp:         {arity: 2, tokens: 1},
		SubtractOp:    {arity: 2, tokens: 1},
		MultiplyOp:    {arity: 2, tokens: 1},
		DivideOp:      {arity: 2, tokens: 1},
		ReturnValueOp: {arity: 0, tokens: 1},
		LoopStartOp:   {arity: 2, tokens: 3},
		LoopEndOp:     {arity: 0, tokens: 2},
		ExitOp:        {arity: 0, tokens: 1},
	},
}

// DefaultCatalog returns the instruction set understood by the loader and the interpreter
func DefaultCatalog() Catalog {
	return defaultCatalog
}

// Arity returns the number of stack values the instruction consumes
func (c Catalog) Arity(m Mnemonic) (int, bool) {
	e, ok := c.entries[m]
	return e.arity, ok
}

// Tokens returns the exact token count a source line must have for the mnemonic
func (c Catalog) Tokens(m Mnemonic) (int, bool) {
	e, ok := c.entries[m]
	return e.tokens, ok
}

// Has reports whether the mnemonic belongs to the instruction set
func (c Catalog) Has(m Mnemonic) bool {
	_, ok := c.entries[m]
	return ok
}

// Mnemonics returns every known mnemonic in lexical order
func (c Catalog) Mnemonics() []Mnemonic {
	out := make([]Mnemonic, 0, len(c.entries))
	for m := range c.entries {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
