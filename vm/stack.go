package vm

import (
	"math/big"
)

// Stack is an unbounded stack of arbitrary precision integers.
type Stack struct {
	Data []*big.Int
}

// Push a copy of value.
func (s *Stack) Push(value *big.Int) {
	s.Data = append(s.Data, new(big.Int).Set(value))
}

func (s *Stack) Pop() (value *big.Int, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data[len(s.Data)-1] = nil
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Len() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value *big.Int, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		clear(s.Data)
		s.Data = s.Data[:0]
	}
}
