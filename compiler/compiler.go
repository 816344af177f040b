// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package compiler

import (
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/tmvm/internal"
	"github.com/ezrec/tmvm/tape"
	"github.com/ezrec/tmvm/turing"
	"github.com/ezrec/tmvm/vm"
)

// MAIN_LOOP is the program counter of the loop running one Turing step per
// pass.
const MAIN_LOOP = 0

var (
	inc     = vm.MakeCode(vm.OP_INC)
	dec     = vm.MakeCode(vm.OP_DEC)
	loop    = vm.MakeCode(vm.OP_LOOP)
	endLoop = vm.MakeCode(vm.OP_END_LOOP)
	ifZero  = vm.MakeCode(vm.OP_IF)
	endIf   = vm.MakeCode(vm.OP_END_IF)
)

// Compiler builds programs from Turing machines.
type Compiler struct {
	Verbose bool // If set, logs state graph warnings and the listing.
	Bias    int  // Added to every next state inside the ladders. Values below 1 are 1.
}

// ladder does the bookkeeping of the state register inside the ladders.
type ladder struct {
	states int
	base   int
	bias   int
}

// pending is the number of decrements the ladders still execute after
// the test for state reading symbol.
func (l ladder) pending(state turing.State, symbol turing.Symbol) int {
	return (l.base - 1 - int(symbol)) + (l.states - int(state))
}

// load is the value set in the register after the rule of state reading
// symbol has run. It reaches next + bias at the end of the ladders.
func (l ladder) load(state turing.State, symbol turing.Symbol, next turing.State) int {
	return int(next) + l.pending(state, symbol) + l.bias
}

// emitter collects instructions and debug marks.
type emitter struct {
	code  []vm.Instruction
	marks []vm.Mark
}

func (e *emitter) mark(format string, args ...any) {
	e.marks = append(e.marks, vm.Mark{PC: len(e.code), Text: fmt.Sprintf(format, args...)})
}

func (e *emitter) emit(codes ...vm.Instruction) {
	e.code = append(e.code, codes...)
}

func (e *emitter) emitSeq(seq iter.Seq[vm.Instruction]) {
	for code := range seq {
		e.code = append(e.code, code)
	}
}

// Compile validates m and translates it into a program.
func (comp *Compiler) Compile(m *turing.Machine) (prog *vm.Program, err error) {
	err = m.Validate()
	if err != nil {
		return
	}

	if comp.Verbose {
		comp.warn(m)
	}

	codec, err := tape.NewCodec(m.Base)
	if err != nil {
		return
	}

	l := ladder{
		states: m.States,
		base:   m.Base,
		bias:   max(comp.Bias, 1),
	}

	e := &emitter{}

	e.mark("step")
	e.emit(loop)

	for state := turing.START; int(state) <= m.States; state++ {
		e.mark("state %d", state)
		e.emit(dec, ifZero)
		e.emitSeq(codec.Read())

		for symbol := range turing.Symbol(m.Base) {
			rule, _ := m.Rule(state, symbol)

			e.mark("state %d, symbol %d: %v", state, symbol, rule)
			if symbol > 0 {
				e.emit(dec)
			}
			e.emit(ifZero, vm.MakePush(int64(symbol)))
			e.emitSeq(codec.Action(rule.Action))
			e.emitSeq(internal.IterSeqRepeat(inc, l.load(state, symbol, rule.Next)))
			e.emit(endIf)
		}

		e.emit(endIf)
	}

	e.mark("bias")
	e.emitSeq(internal.IterSeqRepeat(dec, l.bias))
	e.emit(endLoop)

	prog, err = vm.NewProgram(e.code, e.marks...)
	if err != nil {
		return
	}

	if comp.Verbose {
		log.Printf("compiler: %d states, %d symbols: %d instructions, depth %d",
			m.States, m.Base, prog.Len(), prog.Depth())
	}

	return
}

// warn logs problems with the state graph of m.
func (comp *Compiler) warn(m *turing.Machine) {
	analysis, err := turing.Analyze(m)
	if err != nil {
		log.Printf("compiler: %v", err)
		return
	}

	if !analysis.CanHalt {
		log.Printf("compiler: warning: the halting state is unreachable")
	}
	for _, state := range analysis.Unreachable {
		log.Printf("compiler: warning: state %d is unreachable", state)
	}
	for _, state := range analysis.Trapped {
		log.Printf("compiler: warning: state %d can never halt", state)
	}
}
