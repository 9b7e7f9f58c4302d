package stack_test

import (
	"errors"
	"stackvm/pkg/stack"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPushPop(t *testing.T) {
	s := stack.NewStack(4)

	for _, v := range []int64{1, 2, 3} {
		if err := s.Push(v); err != nil {
			t.Fatalf("push %d: %v", v, err)
		}
	}

	if top, _ := s.Get(s.Len() - 1); top != 3 {
		t.Errorf("expected top 3, got %d", top)
	}

	for _, expected := range []int64{3, 2, 1} {
		v, err := s.Pop()
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		if v != expected {
			t.Errorf("expected %d, got %d", expected, v)
		}
	}

	if _, err := s.Pop(); !errors.Is(err, stack.ErrUnderflow) {
		t.Errorf("expected underflow, got %v", err)
	}
	if _, err := s.Get(0); !errors.Is(err, stack.ErrOutOfRange) {
		t.Errorf("expected out of range on empty stack, got %v", err)
	}
}

func TestOverflowDoesNotMutate(t *testing.T) {
	s := stack.NewStack(stack.DefaultMax)
	for i := 0; i < stack.DefaultMax; i++ {
		if err := s.Push(int64(i)); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	before := s.Values()
	if err := s.Push(999); !errors.Is(err, stack.ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}

	if diff := cmp.Diff(before, s.Values()); diff != "" {
		t.Errorf("stack mutated on overflow (-before +after):\n%s", diff)
	}
	if !s.Full() {
		t.Errorf("expected stack to report full")
	}
}

func TestGetSet(t *testing.T) {
	s := stack.NewStack(0, 10, 20, 30)

	if s.Cap() != stack.DefaultMax {
		t.Errorf("expected default capacity %d, got %d", stack.DefaultMax, s.Cap())
	}

	if err := s.Set(0, 11); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := s.Get(0); v != 11 {
		t.Errorf("expected 11, got %d", v)
	}

	for _, idx := range []int{-1, 3, 50} {
		if _, err := s.Get(idx); !errors.Is(err, stack.ErrOutOfRange) {
			t.Errorf("get %d: expected out of range, got %v", idx, err)
		}
		if err := s.Set(idx, 1); !errors.Is(err, stack.ErrOutOfRange) {
			t.Errorf("set %d: expected out of range, got %v", idx, err)
		}
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("expected empty stack after reset, got %d", s.Len())
	}
}
