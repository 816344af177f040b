package vm

import (
	"errors"

	"github.com/ezrec/tmvm/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrHalt           = errors.New(f("halt"))
	ErrProgramMissing = errors.New(f("program missing"))

	// Link errors
	ErrBlockUnclosed = errors.New(f("block without end"))
	ErrBlockUnopened = errors.New(f("end without block"))
	ErrBlockMismatch = errors.New(f("end does not match block"))
)

type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", Instruction(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrStructure reports where a program failed to link.
type ErrStructure struct {
	PC   int
	Code Instruction
	Err  error
}

func (err *ErrStructure) Error() string {
	return f("pc %d '%v' %v", err.PC, err.Code, err.Err)
}

func (err *ErrStructure) Unwrap() error {
	return err.Err
}
