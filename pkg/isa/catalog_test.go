package isa_test

import (
	"stackvm/pkg/isa"
	"testing"
)

func TestCatalogArity(t *testing.T) {
	cat := isa.DefaultCatalog()

	tests := []struct {
		op     isa.Mnemonic
		arity  int
		tokens int
	}{
		{isa.LoadValOp, 0, 2},
		{isa.ReadVarOp, 0, 2},
		{isa.WriteVarOp, 0, 2},
		{isa.AddOp, 2, 1},
		{isa.SubtractOp, 2, 1},
		{isa.MultiplyOp, 2, 1},
		{isa.DivideOp, 2, 1},
		{isa.ReturnValueOp, 0, 1},
		{isa.LoopStartOp, 2, 3},
		{isa.LoopEndOp, 0, 2},
		{isa.ExitOp, 0, 1},
	}

	for _, test := range tests {
		arity, ok := cat.Arity(test.op)
		if !ok {
			t.Fatalf("%s: expected to be in catalog", test.op)
		}
		if arity != test.arity {
			t.Errorf("%s: expected arity %d, got %d", test.op, test.arity, arity)
		}

		tokens, _ := cat.Tokens(test.op)
		if tokens != test.tokens {
			t.Errorf("%s: expected %d tokens, got %d", test.op, test.tokens, tokens)
		}
	}

	if len(cat.Mnemonics()) != len(tests) {
		t.Errorf("expected %d mnemonics, got %d", len(tests), len(cat.Mnemonics()))
	}
}

func TestCatalogUnknown(t *testing.T) {
	cat := isa.DefaultCatalog()

	for _, m := range []isa.Mnemonic{"", "NOP", "load_val", "LOOPW"} {
		if _, ok := cat.Arity(m); ok {
			t.Errorf("%q: expected unknown mnemonic", m)
		}
		if cat.Has(m) {
			t.Errorf("%q: Has returned true", m)
		}
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		in       isa.Instruction
		expected string
	}{
		{isa.LoadVal(-7), "LOAD_VAL -7"},
		{isa.ReadVar("x"), "READ_VAR x"},
		{isa.WriteVar("y"), "WRITE_VAR y"},
		{isa.Add(), "ADD"},
		{isa.Divide(), "DIVIDE"},
		{isa.Return(), "RETURN_VALUE"},
		{isa.LoopStart("myid", "z"), "LOOPW_START myid z"},
		{isa.LoopEnd("myid"), "LOOPW_END myid"},
		{isa.Exit(), "EXIT"},
	}

	for _, test := range tests {
		if got := test.in.String(); got != test.expected {
			t.Errorf("expected %q, got %q", test.expected, got)
		}
	}
}
