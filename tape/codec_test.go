package tape

import (
	"context"
	"iter"
	"math/big"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tmvm/turing"
	"github.com/ezrec/tmvm/vm"
)

type Symbols = []turing.Symbol

// setup places a tape directly on a fresh machine, blanks included.
func setup(codec *Codec, v *vm.Vm, tape Tape) {
	v.Reset()
	for _, cell := range slices.Backward(tape.Right) {
		v.Stack.Push(big.NewInt(int64(cell)))
	}
	v.Reg(v.Active.Other()).Set(codec.Encode(tape.Left))
}

// apply runs code over tape, checking the register contract on exit.
func apply(t *testing.T, codec *Codec, tape Tape, code ...iter.Seq[vm.Instruction]) (result Tape) {
	prog, err := vm.NewProgram(slices.Collect(concat(code...)))
	if err != nil {
		t.Fatal(err)
	}

	v := vm.NewVm(prog)
	setup(codec, v, tape)
	err = v.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if v.Reg(v.Active).Sign() != 0 {
		t.Fatalf("scratch register is %v", v.Reg(v.Active))
	}

	result, err = codec.Dump(v)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestNewCodec(t *testing.T) {
	assert := assert.New(t)

	_, err := NewCodec(1)
	assert.ErrorIs(err, ErrBase)

	codec, err := NewCodec(4)
	assert.NoError(err)
	assert.Equal(4, codec.Base)
}

func TestCodec_Encode(t *testing.T) {
	assert := assert.New(t)

	codec := &Codec{Base: 3}
	assert.Equal(int64(11), codec.Encode(Symbols{2, 0, 1}).Int64())
	assert.Equal(int64(0), codec.Encode(nil).Int64())

	cells, err := codec.Decode(big.NewInt(11))
	assert.NoError(err)
	assert.Equal(Symbols{2, 0, 1}, cells)

	cells, err = codec.Decode(new(big.Int))
	assert.NoError(err)
	assert.Empty(cells)

	_, err = codec.Decode(big.NewInt(-1))
	assert.ErrorIs(err, ErrEncoding)
}

func TestCodec_Read(t *testing.T) {
	assert := assert.New(t)

	codec := &Codec{Base: 3}
	prog, err := vm.NewProgram(slices.Collect(codec.Read()))
	assert.NoError(err)

	v := vm.NewVm(prog)
	setup(codec, v, Tape{Right: Symbols{2, 1}})
	assert.NoError(v.Run(context.Background()))
	assert.Equal(int64(2), v.Reg(v.Active).Int64())
	assert.Equal(1, v.Stack.Len())
}

func TestCodec_Write(t *testing.T) {
	assert := assert.New(t)

	codec := &Codec{Base: 3}
	start := Tape{Left: Symbols{1, 2}, Right: Symbols{1, 2}}

	tape := apply(t, codec, start, codec.Write(2))
	assert.Equal(Tape{Left: Symbols{1, 2}, Right: Symbols{2, 2}}, tape)

	tape = apply(t, codec, start, codec.Write(0))
	assert.Equal(Tape{Left: Symbols{1, 2}, Right: Symbols{0, 2}}, tape)

	// Writing on an empty stack.
	tape = apply(t, codec, Tape{}, codec.Write(1))
	assert.Equal(Tape{Right: Symbols{1}}, tape)
}

func TestCodec_Move(t *testing.T) {
	table := [](struct {
		name  string
		base  int
		start Tape
		right Tape
		left  Tape
	}){
		{"blank", 2, Tape{}, Tape{}, Tape{}},
		{"head_only", 2, Tape{Right: Symbols{1}}, Tape{Left: Symbols{1}}, Tape{Right: Symbols{0, 1}}},
		{"left_only", 3, Tape{Left: Symbols{2, 1}}, Tape{Left: Symbols{0, 2, 1}}, Tape{Left: Symbols{1}, Right: Symbols{2}}},
		{"both", 3, Tape{Left: Symbols{2, 0, 1}, Right: Symbols{1, 2}},
			Tape{Left: Symbols{1, 2, 0, 1}, Right: Symbols{2}},
			Tape{Left: Symbols{0, 1}, Right: Symbols{2, 1, 2}}},
		{"remainder_zero", 2, Tape{Left: Symbols{0, 1}, Right: Symbols{1}},
			Tape{Left: Symbols{1, 0, 1}},
			Tape{Left: Symbols{1}, Right: Symbols{0, 1}}},
		{"base_five", 5, Tape{Left: Symbols{4, 3}, Right: Symbols{0, 0, 2}},
			Tape{Left: Symbols{0, 4, 3}, Right: Symbols{0, 2}},
			Tape{Left: Symbols{3}, Right: Symbols{4, 0, 0, 2}}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			codec := &Codec{Base: entry.base}
			assert.Equal(entry.right, apply(t, codec, entry.start, codec.MoveRight()))
			assert.Equal(entry.left, apply(t, codec, entry.start, codec.MoveLeft()))
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	tapes := []Tape{
		{},
		{Right: Symbols{1}},
		{Left: Symbols{1}},
		{Left: Symbols{1, 1, 1}, Right: Symbols{1, 0, 1}},
		{Left: Symbols{0, 0, 1}, Right: Symbols{0, 1}},
		{Left: Symbols{1, 0, 1, 1}},
	}

	for _, base := range []int{2, 3, 4, 7} {
		codec := &Codec{Base: base}
		for _, start := range tapes {
			assert := assert.New(t)

			normal := apply(t, codec, start)

			tape := apply(t, codec, start, codec.MoveLeft(), codec.MoveRight())
			assert.Equal(normal, tape, "base %d, left then right of %v", base, start)

			tape = apply(t, codec, start, codec.MoveRight(), codec.MoveLeft())
			assert.Equal(normal, tape, "base %d, right then left of %v", base, start)
		}
	}
}

func TestCodec_LeftOffEmpty(t *testing.T) {
	assert := assert.New(t)

	codec := &Codec{Base: 3}
	tape := apply(t, codec, Tape{Right: Symbols{2}},
		codec.MoveLeft(), codec.MoveLeft(), codec.MoveLeft())
	assert.Nil(tape.Left)
	assert.Equal(Symbols{0, 0, 0, 2}, tape.Right)
	assert.Equal(Symbols{2}, tape.Cells())

	tape = apply(t, codec, Tape{Right: Symbols{2}},
		codec.MoveLeft(), codec.MoveLeft(), codec.MoveRight(), codec.MoveRight())
	assert.Equal(Tape{Right: Symbols{2}}, tape)
}

func TestCodec_Action(t *testing.T) {
	assert := assert.New(t)

	codec := &Codec{Base: 2}
	assert.Equal(slices.Collect(codec.MoveLeft()), slices.Collect(codec.Action(turing.Left)))
	assert.Equal(slices.Collect(codec.MoveRight()), slices.Collect(codec.Action(turing.Right)))
	assert.Equal(slices.Collect(codec.Write(1)), slices.Collect(codec.Action(turing.Write(1))))
}

func TestCodec_NoSwapPairs(t *testing.T) {
	for base := 2; base <= 5; base++ {
		codec := &Codec{Base: base}
		fragments := map[string]iter.Seq[vm.Instruction]{
			"read":  codec.Read(),
			"write": codec.Write(1),
			"right": codec.MoveRight(),
			"left":  codec.MoveLeft(),
		}
		for name, fragment := range fragments {
			code := slices.Collect(fragment)
			for pc := 1; pc < len(code); pc++ {
				if code[pc-1] == swap && code[pc] == swap {
					t.Errorf("base %d, %s: swap pair at %d", base, name, pc-1)
				}
			}
		}
	}
}

func TestCodec_Load(t *testing.T) {
	assert := assert.New(t)

	codec := &Codec{Base: 3}
	v := vm.NewVm(nil)

	// Leftovers from a previous run are cleared.
	v.Stack.Push(big.NewInt(2))
	v.Reg(vm.SLOT_SECONDARY).SetInt64(99)

	assert.NoError(codec.Load(v, Symbols{1, 2, 2, 0, 7}))
	tape, err := codec.Dump(v)
	assert.NoError(err)
	assert.Equal(Tape{Right: Symbols{2, 2, 1}}, tape)

	// The last symbol is under the head.
	assert.NoError(codec.Load(v, Symbols{1, 2}))
	tape, err = codec.Dump(v)
	assert.NoError(err)
	assert.Equal(turing.Symbol(2), tape.Head())
	assert.Equal(Symbols{2, 1}, tape.Sequence())
	assert.Equal("[2] 1", tape.String())

	err = codec.Load(v, Symbols{1, 3})
	var input_err *ErrInput
	assert.ErrorAs(err, &input_err)
	assert.Equal(1, input_err.Index)
	assert.Equal(turing.Symbol(3), input_err.Symbol)

	assert.Error(codec.Load(v, Symbols{-1}))
}

func TestCodec_Dump(t *testing.T) {
	assert := assert.New(t)

	codec := &Codec{Base: 2}
	v := vm.NewVm(nil)

	v.Stack.Push(big.NewInt(0))
	v.Stack.Push(big.NewInt(5))
	_, err := codec.Dump(v)
	var cell_err *ErrCell
	assert.ErrorAs(err, &cell_err)
	assert.Equal(0, cell_err.Index)
	assert.ErrorIs(err, ErrEncoding)

	v.Reset()
	v.Reg(v.Active.Other()).SetInt64(-4)
	_, err = codec.Dump(v)
	assert.ErrorIs(err, ErrEncoding)
}

func TestCodec_LongTape(t *testing.T) {
	assert := assert.New(t)

	codec := &Codec{Base: 5}
	left := make(Symbols, 1000)
	for n := range left {
		left[n] = turing.Symbol(1 + n%4)
	}

	value := codec.Encode(left)
	assert.Greater(value.BitLen(), 2000)

	cells, err := codec.Decode(value)
	assert.NoError(err)
	assert.Equal(left, cells)

	// Writing leaves a huge left encoding untouched.
	tape := apply(t, codec, Tape{Left: left, Right: Symbols{1}}, codec.Write(4))
	assert.Equal(left, tape.Left)
	assert.Equal(Symbols{4}, tape.Right)

	// Moves stay exact on the longest tapes that remain quick.
	codec = &Codec{Base: 2}
	walk := Tape{Right: Symbols{1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 1, 1}}
	var code []iter.Seq[vm.Instruction]
	for range len(walk.Right) {
		code = append(code, codec.MoveRight())
	}
	tape = apply(t, codec, walk, code...)
	assert.Equal(Symbols{1, 1, 1, 1, 1, 0, 1, 1, 1, 0, 1, 1}, tape.Left)
	assert.Nil(tape.Right)

	code = code[:0]
	for range len(walk.Right) {
		code = append(code, codec.MoveLeft())
	}
	tape = apply(t, codec, tape, code...)
	assert.Equal(walk, tape)
}

// model applies a move or write to a host side tape.
func model(tape Tape, op byte) Tape {
	left := slices.Clone(tape.Left)
	right := slices.Clone(tape.Right)
	if len(right) == 0 {
		right = Symbols{turing.BLANK}
	}

	switch op % 3 {
	case 0:
		left = append(Symbols{right[0]}, left...)
		right = right[1:]
	case 1:
		var head turing.Symbol
		if len(left) > 0 {
			head, left = left[0], left[1:]
		}
		right = append(Symbols{head}, right...)
	case 2:
		right[0] = turing.Symbol(op/3) % 2
	}

	for len(left) > 0 && left[len(left)-1] == turing.BLANK {
		left = left[:len(left)-1]
	}
	if len(left) == 0 {
		left = nil
	}

	return Tape{Left: left, Right: trimBlanks(right)}
}

func FuzzCodec(f *testing.F) {
	f.Add([]byte{0, 1, 2, 5})
	f.Add([]byte{5, 0, 5, 0, 1, 1, 1})
	f.Add([]byte{1, 1, 5, 0, 0, 0})

	codec := &Codec{Base: 2}
	f.Fuzz(func(t *testing.T, ops []byte) {
		if len(ops) > 10 {
			ops = ops[:10]
		}

		var code []iter.Seq[vm.Instruction]
		expect := Tape{}
		for _, op := range ops {
			switch op % 3 {
			case 0:
				code = append(code, codec.MoveRight())
			case 1:
				code = append(code, codec.MoveLeft())
			case 2:
				code = append(code, codec.Write(turing.Symbol(op/3)%2))
			}
			expect = model(expect, op)
		}

		tape := apply(t, codec, Tape{}, code...)
		if !slices.Equal(expect.Left, tape.Left) || !slices.Equal(expect.Right, tape.Right) {
			t.Fatalf("ops %v: expected %v, got %v", ops, expect, tape)
		}
	})
}
