package tape

import (
	"iter"
	"math/big"
	"slices"

	"github.com/ezrec/tmvm/internal"
	"github.com/ezrec/tmvm/turing"
	"github.com/ezrec/tmvm/vm"
)

var (
	push0   = vm.MakeCode(vm.OP_PUSH_ZERO)
	pop     = vm.MakeCode(vm.OP_POP)
	swap    = vm.MakeCode(vm.OP_SWAP)
	inc     = vm.MakeCode(vm.OP_INC)
	dec     = vm.MakeCode(vm.OP_DEC)
	loop    = vm.MakeCode(vm.OP_LOOP)
	endLoop = vm.MakeCode(vm.OP_END_LOOP)
	ifZero  = vm.MakeCode(vm.OP_IF)
	endIf   = vm.MakeCode(vm.OP_END_IF)
)

var (
	seq    = internal.IterSeqOf[vm.Instruction]
	repeat = internal.IterSeqRepeat[vm.Instruction]
	concat = internal.IterSeqConcat[vm.Instruction]
)

// Codec emits tape operations for an alphabet of Base symbols.
type Codec struct {
	Base int
}

// NewCodec returns the codec for an alphabet of base symbols.
func NewCodec(base int) (codec *Codec, err error) {
	if base < 2 {
		err = ErrBase
		return
	}

	codec = &Codec{Base: base}
	return
}

// Read pops the head symbol into the active register.
// The head cell is consumed; callers push it back to keep the tape intact.
func (codec *Codec) Read() iter.Seq[vm.Instruction] {
	return seq(pop)
}

// Write replaces the head symbol with symbol.
func (codec *Codec) Write(symbol turing.Symbol) iter.Seq[vm.Instruction] {
	return seq(pop, push0, pop, vm.MakePush(int64(symbol)))
}

// MoveRight shifts the head cell into L.
//
//	L' = L*B + head
func (codec *Codec) MoveRight() iter.Seq[vm.Instruction] {
	return concat(
		seq(pop, swap),
		seq(loop, dec, swap),
		repeat(inc, codec.Base),
		seq(swap, endLoop),
	)
}

// MoveLeft shifts the least significant digit of L onto the stack as the
// new head.
//
//	head = L % B
//	L'   = L / B
//
// The division counts subtraction rounds in the scratch register, offset by
// one so the round loop can exit on zero. Each round subtracts B from L one
// step at a time, testing for zero after every step. When L reaches zero
// after step i the remainder is i % B; the counter is folded back into L
// and topped up by the steps left in the round, and the scratch register
// is left zero so the round loop ends.
func (codec *Codec) MoveLeft() iter.Seq[vm.Instruction] {
	base := codec.Base

	rounds := make([]iter.Seq[vm.Instruction], 0, base)
	for i := 1; i <= base; i++ {
		fold := []vm.Instruction{dec, ifZero, vm.MakePush(int64(i % base))}
		if i < base {
			// A partial round did not finish; uncount it.
			fold = append(fold, swap, dec, swap)
		}
		fold = append(fold, swap, loop, dec, swap, inc, swap, endLoop, swap)
		rounds = append(rounds, concat(
			seq(fold...),
			repeat(inc, base-i),
			seq(endIf),
		))
	}

	return concat(
		// Counter = 1, in the scratch register.
		seq(inc, swap),
		// L == 0: blank head, and the counter folds to L = 1.
		seq(ifZero, push0, swap, dec, swap, inc, endIf),
		seq(swap, loop, inc, swap),
		concat(rounds...),
		seq(swap, endLoop),
		// Drop the counter offset.
		seq(swap, dec, swap),
	)
}

// Action emits the tape operation of action.
func (codec *Codec) Action(action turing.Action) iter.Seq[vm.Instruction] {
	switch action.Kind {
	case turing.ACTION_LEFT:
		return codec.MoveLeft()
	case turing.ACTION_RIGHT:
		return codec.MoveRight()
	default:
		return codec.Write(action.Symbol)
	}
}

// Encode returns the left encoding of cells, nearest cell first.
func (codec *Codec) Encode(cells []turing.Symbol) (value *big.Int) {
	value = new(big.Int)
	base := big.NewInt(int64(codec.Base))
	for _, cell := range slices.Backward(cells) {
		value.Mul(value, base)
		value.Add(value, big.NewInt(int64(cell)))
	}

	return
}

// Decode returns the cells of a left encoding, nearest cell first.
func (codec *Codec) Decode(value *big.Int) (cells []turing.Symbol, err error) {
	if value.Sign() < 0 {
		err = ErrEncoding
		return
	}

	base := big.NewInt(int64(codec.Base))
	rest := new(big.Int).Set(value)
	digit := new(big.Int)
	for rest.Sign() != 0 {
		rest.QuoRem(rest, base, digit)
		cells = append(cells, turing.Symbol(digit.Int64()))
	}

	return
}

// Load resets v and pushes input onto its tape front to back, so the tape
// reads as the reverse of input and the head is on the last symbol.
// Input stops at the first blank.
func (codec *Codec) Load(v *vm.Vm, input []turing.Symbol) (err error) {
	end := len(input)
	for index, symbol := range input {
		if symbol == turing.BLANK {
			end = index
			break
		}
		if symbol < 0 || int(symbol) >= codec.Base {
			err = &ErrInput{Index: index, Symbol: symbol}
			return
		}
	}

	v.Reset()
	for _, symbol := range input[:end] {
		v.Stack.Push(big.NewInt(int64(symbol)))
	}

	return
}

// Dump decodes the tape held by v.
func (codec *Codec) Dump(v *vm.Vm) (tape Tape, err error) {
	tape.Left, err = codec.Decode(v.Reg(v.Active.Other()))
	if err != nil {
		return
	}

	data := v.Stack.Data
	for depth := range len(data) {
		value := data[len(data)-1-depth]
		if !value.IsInt64() || value.Sign() < 0 || value.Int64() >= int64(codec.Base) {
			err = &ErrCell{Index: depth, Value: new(big.Int).Set(value)}
			return
		}
		tape.Right = append(tape.Right, turing.Symbol(value.Int64()))
	}

	tape.Right = trimBlanks(tape.Right)
	return
}
