// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"log"

	"github.com/ezrec/tmvm/compiler"
	"github.com/ezrec/tmvm/tape"
	"github.com/ezrec/tmvm/turing"
	"github.com/ezrec/tmvm/vm"
)

// Emulator state. Machine + compiled program + VM.
type Emulator struct {
	Verbose  bool            // If set, enables verbose logging.
	*vm.Vm                   // Reference to the VM simulation.
	Machine  *turing.Machine // Machine being emulated.
	Program  *vm.Program     // Compiled machine.
	MaxSteps int             // If positive, Run stops after this many steps.

	Steps int // Turing steps completed since a reset.

	codec *tape.Codec
	body  int // First instruction of the step loop.
}

// NewEmulator validates and compiles m.
func NewEmulator(m *turing.Machine) (emu *Emulator, err error) {
	prog, err := compiler.DefaultCache.Compile(m)
	if err != nil {
		return
	}

	body, _, ok := prog.Loop(compiler.MAIN_LOOP)
	if !ok {
		err = vm.ErrProgramMissing
		return
	}

	codec, err := tape.NewCodec(m.Base)
	if err != nil {
		return
	}

	emu = &Emulator{
		Vm:      vm.NewVm(prog),
		Machine: m,
		Program: prog,
		codec:   codec,
		body:    body,
	}

	return
}

// Reset the emulator with input on the tape and the machine in its
// starting state.
func (emu *Emulator) Reset(input []turing.Symbol) (err error) {
	emu.Vm.Verbose = false

	err = emu.codec.Load(emu.Vm, input)
	if err != nil {
		return
	}

	emu.Steps = 0
	emu.Vm.Reg(emu.Vm.Active).SetInt64(int64(turing.START))

	// Enter the step loop.
	err = emu.Vm.Tick()
	if err != nil {
		return
	}

	emu.Vm.Verbose = emu.Verbose

	return
}

// Ticks returns the total VM instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Vm.Ticks
}

// State returns the current Turing machine state, or turing.UNKNOWN when
// the VM is stopped in the middle of a step.
func (emu *Emulator) State() turing.State {
	if !emu.Vm.Halted() && emu.Vm.PC != emu.body {
		// Mid step, the state register is a ladder counter.
		return turing.UNKNOWN
	}

	return turing.State(emu.Vm.Reg(emu.Vm.Active).Int64())
}

// Halted returns true when the machine has reached the halting state.
func (emu *Emulator) Halted() bool {
	return emu.Vm.Halted()
}

// Tape returns the decoded tape.
func (emu *Emulator) Tape() (tape.Tape, error) {
	return emu.codec.Dump(emu.Vm)
}

// Tick performs a single Turing step. The emulator must have been Reset,
// and not left mid step by ticking its VM directly.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Vm.Verbose = emu.Verbose

	step := emu.Steps
	defer func() {
		if err != nil {
			err = &ErrRuntime{Step: step, Err: err}
		}
	}()

	if emu.Vm.Halted() {
		done = true
		return
	}

	if emu.Vm.PC != emu.body {
		err = ErrNotReset
		return
	}

	for {
		err = emu.Vm.Tick()
		if err != nil {
			return
		}
		if emu.Vm.PC == emu.body || emu.Vm.Halted() {
			break
		}
	}

	emu.Steps++
	done = emu.Vm.Halted()

	if emu.Verbose {
		log.Printf("emulator: step %d: state %d, %d ticks", emu.Steps, emu.State(), emu.Vm.Ticks)
	}

	return
}

// Run steps the machine until it halts, ctx is done, or MaxSteps steps
// have been taken.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		if emu.MaxSteps > 0 && emu.Steps >= emu.MaxSteps && !emu.Halted() {
			err = ErrStepLimit
			return
		}

		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}
