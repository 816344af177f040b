// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"context"
	"fmt"
	"log"
	"math/big"
)

// TICKS_PER_POLL is how many instructions Run executes between checks of
// its context.
const TICKS_PER_POLL = 4096

var one = big.NewInt(1)

// Vm is the simulation context for the two register stack machine.
type Vm struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Program being executed.

	Register [2]big.Int // Register pair.
	Active   Slot       // Register targeted by pop, inc, dec and the block tests.
	Stack    Stack      // Stack simulation.
	PC       int        // Next instruction to execute.

	Ticks int // Instructions executed since reset.
}

// NewVm creates a machine ready to run prog.
func NewVm(prog *Program) (vm *Vm) {
	vm = &Vm{
		Program: prog,
	}

	return
}

// Reg returns the register in slot.
func (vm *Vm) Reg(slot Slot) *big.Int {
	return &vm.Register[slot&1]
}

// Reset the machine state.
// - Clears both registers and the stack.
// - Makes the primary register active.
// - Rewinds to the first instruction.
func (vm *Vm) Reset() {
	if vm.Verbose {
		log.Printf("vm: reset")
	}

	vm.Register[SLOT_PRIMARY].SetInt64(0)
	vm.Register[SLOT_SECONDARY].SetInt64(0)
	vm.Active = SLOT_PRIMARY
	vm.Stack.Reset()
	vm.PC = 0
	vm.Ticks = 0
}

// Halted returns true once the program counter has left the program.
func (vm *Vm) Halted() bool {
	return vm.Program == nil || vm.PC < 0 || vm.PC >= len(vm.Program.Code)
}

// String returns the current machine state as a string.
func (vm *Vm) String() (text string) {
	for _, slot := range []Slot{SLOT_PRIMARY, SLOT_SECONDARY} {
		marker := " "
		if slot == vm.Active {
			marker = "*"
		}
		text += fmt.Sprintf("%9v:%v %v\n", slot, marker, vm.Reg(slot))
	}

	text += fmt.Sprintf("%9v: %d\n", "pc", vm.PC)

	stack := "----"
	if top, ok := vm.Stack.Peek(); ok {
		stack = fmt.Sprintf("%v (depth %d)", top, vm.Stack.Len())
	}
	text += fmt.Sprintf("%9v: %v\n", "stack", stack)

	return
}

// Tick executes the instruction at the program counter.
// Returns ErrHalt when there is nothing left to execute.
func (vm *Vm) Tick() (err error) {
	if vm.Program == nil {
		err = ErrProgramMissing
		return
	}

	if vm.Halted() {
		err = ErrHalt
		return
	}

	code := vm.Program.Code[vm.PC]
	if vm.Verbose {
		if mark, ok := vm.Program.Debug(vm.PC); ok && mark.PC == vm.PC {
			log.Printf("; %v", mark.Text)
		}
		log.Printf("%04d: %v [%v=%v]", vm.PC, code, vm.Active, vm.Reg(vm.Active))
	}

	err = vm.Execute(code)
	return
}

// Execute executes a single instruction at the current program counter.
func (vm *Vm) Execute(code Instruction) (err error) {
	reg := vm.Reg(vm.Active)
	next_pc := vm.PC + 1

	// skip moves past the block delimiter matching the current one.
	skip := func() {
		target, ok := vm.Program.Jump(vm.PC)
		if !ok {
			err = &ErrStructure{PC: vm.PC, Code: code, Err: ErrBlockUnclosed}
			return
		}
		next_pc = target + 1
	}

	switch code.Op {
	case OP_PUSH:
		vm.Stack.Push(big.NewInt(code.Value))
	case OP_PUSH_ZERO:
		vm.Stack.Push(new(big.Int))
	case OP_POP:
		value, ok := vm.Stack.Pop()
		if ok {
			reg.Set(value)
		} else {
			reg.SetInt64(0)
		}
	case OP_SWAP:
		vm.Active = vm.Active.Other()
	case OP_INC:
		reg.Add(reg, one)
	case OP_DEC:
		reg.Sub(reg, one)
	case OP_LOOP:
		if reg.Sign() == 0 {
			skip()
		}
	case OP_END_LOOP:
		if reg.Sign() != 0 {
			skip()
		}
	case OP_IF:
		if reg.Sign() != 0 {
			skip()
		}
	case OP_END_IF:
		// pass
	default:
		err = ErrOpcode(code)
	}

	if err != nil {
		return
	}

	vm.PC = next_pc
	vm.Ticks += 1

	return
}

// Run executes until the program counter leaves the program, or ctx is done.
// A program that never halts runs until ctx is cancelled.
func (vm *Vm) Run(ctx context.Context) (err error) {
	for {
		if vm.Ticks%TICKS_PER_POLL == 0 {
			err = ctx.Err()
			if err != nil {
				return
			}
		}

		err = vm.Tick()
		if err == ErrHalt {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}
