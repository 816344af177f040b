package tape

import (
	"errors"
	"math/big"

	"github.com/ezrec/tmvm/translate"
	"github.com/ezrec/tmvm/turing"
)

var f = translate.From

var (
	ErrBase     = errors.New(f("alphabet needs at least two symbols"))
	ErrEncoding = errors.New(f("invalid tape encoding"))
)

// ErrInput is an input symbol outside the alphabet.
type ErrInput struct {
	Index  int
	Symbol turing.Symbol
}

func (err *ErrInput) Error() string {
	return f("input %d: symbol %d not in alphabet", err.Index, err.Symbol)
}

// ErrCell is a stack cell holding a value outside the alphabet.
type ErrCell struct {
	Index int // Depth from the top of the stack.
	Value *big.Int
}

func (err *ErrCell) Error() string {
	return f("cell %d: %v %v", err.Index, err.Value, ErrEncoding)
}

func (err *ErrCell) Unwrap() error {
	return ErrEncoding
}
