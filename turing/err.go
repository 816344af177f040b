package turing

import (
	"errors"

	"github.com/ezrec/tmvm/translate"
)

var f = translate.From

var (
	ErrBaseInvalid   = errors.New(f("alphabet needs at least two symbols"))
	ErrStatesInvalid = errors.New(f("machine needs at least one state"))

	// Rule errors
	ErrStateRange    = errors.New(f("state out of range"))
	ErrSymbolRange   = errors.New(f("symbol out of range"))
	ErrNextRange     = errors.New(f("next state out of range"))
	ErrWriteRange    = errors.New(f("written symbol out of range"))
	ErrActionInvalid = errors.New(f("invalid action"))

	// Load errors
	ErrLoadBase      = errors.New(f("'base' must be an integer"))
	ErrLoadStates    = errors.New(f("'states' must be an integer"))
	ErrLoadDuplicate = errors.New(f("duplicate rule"))
	ErrLoadAction    = errors.New(f("rule needs exactly one of 'write' or 'move'"))
	ErrLoadMove      = errors.New(f("'move' must be \"left\" or \"right\""))
)

// ErrRuleMissing is the key of a rule a machine lacks.
type ErrRuleMissing Key

func (err ErrRuleMissing) Error() string {
	return f("no rule for state %d reading symbol %d", err.State, err.Symbol)
}

func (err ErrRuleMissing) Is(target error) (ok bool) {
	_, ok = target.(ErrRuleMissing)
	return
}

// ErrRule reports a rule with bad content.
type ErrRule struct {
	Key Key
	Err error
}

func (err *ErrRule) Error() string {
	return f("rule %v: %v", err.Key, err.Err)
}

func (err *ErrRule) Unwrap() error {
	return err.Err
}
