package vm

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_PUSH      = Op(0) // push
	OP_PUSH_ZERO = Op(1) // push0
	OP_POP       = Op(2) // pop
	OP_SWAP      = Op(3) // swap
	OP_INC       = Op(4) // inc
	OP_DEC       = Op(5) // dec
	OP_LOOP      = Op(6) // loop
	OP_END_LOOP  = Op(7) // endloop
	OP_IF        = Op(8) // if
	OP_END_IF    = Op(9) // endif
)

// Opens returns true if the operation starts a block.
func (op Op) Opens() bool {
	return op == OP_LOOP || op == OP_IF
}

// Closes returns true if the operation ends a block.
func (op Op) Closes() bool {
	return op == OP_END_LOOP || op == OP_END_IF
}

// Closer returns the operation that ends a block started by op.
func (op Op) Closer() (end Op, ok bool) {
	switch op {
	case OP_LOOP:
		end, ok = OP_END_LOOP, true
	case OP_IF:
		end, ok = OP_END_IF, true
	}
	return
}

// Slot selects one of the two registers.
type Slot int

//go:generate go tool stringer -linecomment -type=Slot
const (
	SLOT_PRIMARY   = Slot(0) // primary
	SLOT_SECONDARY = Slot(1) // secondary
)

// Other returns the slot that is not s.
func (s Slot) Other() Slot {
	return s ^ 1
}

// Instruction is a single operation. Value is only used by OP_PUSH.
type Instruction struct {
	Op    Op
	Value int64
}

// MakeCode creates an instruction without an operand.
func MakeCode(op Op) Instruction {
	return Instruction{Op: op}
}

// MakePush creates an instruction that pushes value.
func MakePush(value int64) Instruction {
	if value == 0 {
		return Instruction{Op: OP_PUSH_ZERO}
	}
	return Instruction{Op: OP_PUSH, Value: value}
}

// String returns the mnemonic of the instruction.
func (code Instruction) String() string {
	if code.Op == OP_PUSH {
		return fmt.Sprintf("%v %d", code.Op, code.Value)
	}
	return code.Op.String()
}
