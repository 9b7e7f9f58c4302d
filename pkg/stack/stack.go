package stack

import (
	"errors"
	"fmt"
)

// DefaultMax is the operand stack capacity (STACK_MAX)
const DefaultMax = 100

var (
	ErrOverflow   = errors.New("stack overflow")
	ErrUnderflow  = errors.New("stack underflow")
	ErrOutOfRange = errors.New("stack index out of range")
)

// Stack is a bounded LIFO of int64 values
type Stack struct {
	a   []int64
	max int
}

// NewStack creates a new stack holding at most max values
func NewStack(max int, elm ...int64) *Stack {
	if max <= 0 {
		max = DefaultMax
	}

	s := &Stack{
		a:   make([]int64, 0, max),
		max: max,
	}

	for _, e := range elm {
		if len(s.a) == s.max {
			break
		}
		s.a = append(s.a, e)
	}

	return s
}

// Push adds an element to the top of the stack. A full stack is left untouched.
func (s *Stack) Push(v int64) error {
	if s.Full() {
		return ErrOverflow
	}

	s.a = append(s.a, v)
	return nil
}

// Pop removes and returns the top element of the stack
func (s *Stack) Pop() (int64, error) {
	l := len(s.a)
	if l < 1 {
		return 0, ErrUnderflow
	}

	v := s.a[l-1]
	s.a = s.a[:l-1]

	return v, nil
}

// Get returns the value at index i, counted from the bottom
func (s *Stack) Get(i int) (int64, error) {
	if i < 0 || i >= len(s.a) {
		return 0, fmt.Errorf("%w: %d (size %d)", ErrOutOfRange, i, len(s.a))
	}

	return s.a[i], nil
}

// Set overwrites the value at index i, counted from the bottom
func (s *Stack) Set(i int, v int64) error {
	if i < 0 || i >= len(s.a) {
		return fmt.Errorf("%w: %d (size %d)", ErrOutOfRange, i, len(s.a))
	}

	s.a[i] = v
	return nil
}

// Len returns the number of values on the stack
func (s *Stack) Len() int {
	return len(s.a)
}

// Cap returns the maximum number of values the stack holds
func (s *Stack) Cap() int {
	return s.max
}

// Full reports whether another push would overflow
func (s *Stack) Full() bool {
	return len(s.a) >= s.max
}

// Values returns a copy of the stack contents, bottom first
func (s *Stack) Values() []int64 {
	out := make([]int64, len(s.a))
	copy(out, s.a)
	return out
}

// Reset empties the stack
func (s *Stack) Reset() {
	s.a = s.a[:0]
}
