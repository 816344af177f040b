package turing

import (
	"fmt"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Load evaluates a Starlark machine description.
//
// The description must set the global 'base' to the alphabet size, and may
// set 'states' to the number of states. When 'states' is not set it is the
// largest state named by any rule. Rules are declared with the predeclared
// function
//
//	rule(state, symbol, next, write = None, move = "")
//
// where exactly one of 'write' (a symbol) or 'move' ("left" or "right") is
// given.
//
// src is handled as by starlark.ExecFileOptions: if nil, name is read as
// a file.
//
// The machine is not validated.
func Load(name string, src any) (m *Machine, err error) {
	m = &Machine{Rules: map[Key]Rule{}}

	largest := State(0)
	rule := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var state, symbol, next int
		var write starlark.Value
		var move string
		err = starlark.UnpackArgs(b.Name(), args, kwargs,
			"state", &state,
			"symbol", &symbol,
			"next", &next,
			"write?", &write,
			"move?", &move)
		if err != nil {
			return
		}

		key := Key{State: State(state), Symbol: Symbol(symbol)}
		if _, ok := m.Rules[key]; ok {
			err = &ErrRule{Key: key, Err: ErrLoadDuplicate}
			return
		}

		var action Action
		hasWrite := write != nil && write != starlark.None
		switch {
		case hasWrite == (move != ""):
			err = &ErrRule{Key: key, Err: ErrLoadAction}
			return
		case hasWrite:
			var sym int
			sym, err = starlark.AsInt32(write)
			if err != nil {
				err = &ErrRule{Key: key, Err: err}
				return
			}
			action = Write(Symbol(sym))
		case move == "left" || move == "L":
			action = Left
		case move == "right" || move == "R":
			action = Right
		default:
			err = &ErrRule{Key: key, Err: ErrLoadMove}
			return
		}

		m.Set(key.State, key.Symbol, State(next), action)
		largest = max(largest, key.State, State(next))

		value = starlark.None
		return
	}

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", name, msg)
		},
	}
	opts := syntax.FileOptions{
		TopLevelControl: true,
		While:           true,
	}
	pred := starlark.StringDict{
		"rule": starlark.NewBuiltin("rule", rule),
	}

	globals, err := starlark.ExecFileOptions(&opts, thread, name, src, pred)
	if err != nil {
		m = nil
		return
	}

	m.Base, err = globalInt(globals, "base", ErrLoadBase)
	if err != nil {
		m = nil
		return
	}

	if _, ok := globals["states"]; ok {
		m.States, err = globalInt(globals, "states", ErrLoadStates)
		if err != nil {
			m = nil
			return
		}
	} else {
		m.States = int(largest)
	}

	return
}

func globalInt(globals starlark.StringDict, key string, fail error) (value int, err error) {
	st_value, ok := globals[key]
	if !ok {
		err = fail
		return
	}

	value, err = starlark.AsInt32(st_value)
	if err != nil {
		err = fmt.Errorf("%w: %w", fail, err)
		return
	}

	return
}
