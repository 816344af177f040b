package emulator

import (
	"errors"

	"github.com/ezrec/tmvm/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
	ErrNotReset  = errors.New(f("emulator not reset"))
)

// ErrRuntime indicates the step of a runtime error.
type ErrRuntime struct {
	Step int
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("step %d %v", err.Step, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
