package turing

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/zeebo/blake3"
)

//go:generate go tool stringer -linecomment -type=ActionKind

// Symbol is a tape symbol. Symbol 0 is the blank.
type Symbol int

// State is a machine state. State 0 is the halting state.
type State int

const (
	BLANK   = Symbol(0)
	HALT    = State(0)
	START   = State(1)
	UNKNOWN = State(-1) // Not known while a step is under way.
)

// ActionKind selects what a rule does to the tape.
type ActionKind int

const (
	ACTION_WRITE ActionKind = iota // write
	ACTION_LEFT                    // left
	ACTION_RIGHT                   // right
)

// Action is the tape action of a rule.
type Action struct {
	Kind   ActionKind
	Symbol Symbol // Symbol written by ACTION_WRITE.
}

var (
	Left  = Action{Kind: ACTION_LEFT}
	Right = Action{Kind: ACTION_RIGHT}
)

// Write returns the action writing symbol under the head.
func Write(symbol Symbol) Action {
	return Action{Kind: ACTION_WRITE, Symbol: symbol}
}

func (action Action) String() string {
	if action.Kind == ACTION_WRITE {
		return fmt.Sprintf("%v %d", action.Kind, action.Symbol)
	}
	return action.Kind.String()
}

// Key selects a rule.
type Key struct {
	State  State
	Symbol Symbol
}

func (key Key) String() string {
	return fmt.Sprintf("(%d, %d)", key.State, key.Symbol)
}

func (key Key) compare(other Key) int {
	return cmp.Or(cmp.Compare(key.State, other.State), cmp.Compare(key.Symbol, other.Symbol))
}

// Rule is the transition taken for a key.
type Rule struct {
	Next   State
	Action Action
}

func (rule Rule) String() string {
	return fmt.Sprintf("%v -> %d", rule.Action, rule.Next)
}

// Machine is a Turing machine transition table.
type Machine struct {
	Base   int // Alphabet size, including the blank.
	States int // Number of non-halting states.
	Rules  map[Key]Rule
}

// New returns a machine with no rules.
func New(base int, states int) *Machine {
	return &Machine{
		Base:   base,
		States: states,
		Rules:  map[Key]Rule{},
	}
}

// Set the rule for state reading symbol, replacing any previous rule.
func (m *Machine) Set(state State, symbol Symbol, next State, action Action) *Machine {
	if m.Rules == nil {
		m.Rules = map[Key]Rule{}
	}
	m.Rules[Key{State: state, Symbol: symbol}] = Rule{Next: next, Action: action}
	return m
}

// Rule returns the rule for state reading symbol.
func (m *Machine) Rule(state State, symbol Symbol) (rule Rule, ok bool) {
	rule, ok = m.Rules[Key{State: state, Symbol: symbol}]
	return
}

// Keys returns the keys of all rules, ordered by state then symbol.
func (m *Machine) Keys() (keys []Key) {
	keys = make([]Key, 0, len(m.Rules))
	for key := range m.Rules {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, Key.compare)
	return
}

func (m *Machine) validSymbol(symbol Symbol) bool {
	return symbol >= 0 && int(symbol) < m.Base
}

func (m *Machine) validState(state State) bool {
	return state >= 0 && int(state) <= m.States
}

// Validate checks that the machine is complete and every rule is in range.
// All problems found are joined into the returned error.
func (m *Machine) Validate() (err error) {
	if m.Base < 2 {
		err = ErrBaseInvalid
		return
	}

	if m.States < 1 {
		err = ErrStatesInvalid
		return
	}

	var errs []error

	for state := START; int(state) <= m.States; state++ {
		for symbol := range Symbol(m.Base) {
			_, ok := m.Rule(state, symbol)
			if !ok {
				errs = append(errs, ErrRuleMissing{State: state, Symbol: symbol})
			}
		}
	}

	for _, key := range m.Keys() {
		rule := m.Rules[key]
		switch {
		case key.State == HALT || !m.validState(key.State):
			errs = append(errs, &ErrRule{Key: key, Err: ErrStateRange})
		case !m.validSymbol(key.Symbol):
			errs = append(errs, &ErrRule{Key: key, Err: ErrSymbolRange})
		}
		if !m.validState(rule.Next) {
			errs = append(errs, &ErrRule{Key: key, Err: ErrNextRange})
		}
		switch rule.Action.Kind {
		case ACTION_WRITE:
			if !m.validSymbol(rule.Action.Symbol) {
				errs = append(errs, &ErrRule{Key: key, Err: ErrWriteRange})
			}
		case ACTION_LEFT, ACTION_RIGHT:
		default:
			errs = append(errs, &ErrRule{Key: key, Err: ErrActionInvalid})
		}
	}

	err = errors.Join(errs...)
	return
}

// Fingerprint returns a digest of the machine's alphabet, states and rules.
// Machines with the same transition table have the same fingerprint.
func (m *Machine) Fingerprint() (sum [32]byte) {
	var buf []byte
	buf = binary.AppendVarint(buf, int64(m.Base))
	buf = binary.AppendVarint(buf, int64(m.States))
	for _, key := range m.Keys() {
		rule := m.Rules[key]
		written := rule.Action.Symbol
		if rule.Action.Kind != ACTION_WRITE {
			written = BLANK
		}
		buf = binary.AppendVarint(buf, int64(key.State))
		buf = binary.AppendVarint(buf, int64(key.Symbol))
		buf = binary.AppendVarint(buf, int64(rule.Next))
		buf = binary.AppendVarint(buf, int64(rule.Action.Kind))
		buf = binary.AppendVarint(buf, int64(written))
	}

	h := blake3.New()
	_, _ = h.Write(buf)
	h.Sum(sum[:0])
	return
}
