package vm

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Mark annotates the instructions starting at PC, up to the next mark.
type Mark struct {
	PC   int
	Text string
}

// Program is a linked instruction sequence.
type Program struct {
	Code  []Instruction
	Marks []Mark // Sorted by PC.

	jump []int // Matching delimiter of each block instruction, else -1.
}

// NewProgram links code into a program, matching every block delimiter.
func NewProgram(code []Instruction, marks ...Mark) (prog *Program, err error) {
	prog = &Program{
		Code:  slices.Clone(code),
		Marks: slices.Clone(marks),
	}

	slices.SortStableFunc(prog.Marks, func(a, b Mark) int { return a.PC - b.PC })

	err = prog.link()
	if err != nil {
		prog = nil
	}

	return
}

// link builds the jump table.
func (prog *Program) link() (err error) {
	prog.jump = make([]int, len(prog.Code))

	var open []int
	for pc, code := range prog.Code {
		prog.jump[pc] = -1
		switch {
		case code.Op.Opens():
			open = append(open, pc)
		case code.Op.Closes():
			if len(open) == 0 {
				err = &ErrStructure{PC: pc, Code: code, Err: ErrBlockUnopened}
				return
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			end, _ := prog.Code[start].Op.Closer()
			if end != code.Op {
				err = &ErrStructure{PC: pc, Code: code, Err: ErrBlockMismatch}
				return
			}
			prog.jump[start] = pc
			prog.jump[pc] = start
		case code.Op < OP_PUSH || code.Op > OP_END_IF:
			err = &ErrStructure{PC: pc, Code: code, Err: ErrOpcode(code)}
			return
		}
	}

	if len(open) != 0 {
		start := open[len(open)-1]
		err = &ErrStructure{PC: start, Code: prog.Code[start], Err: ErrBlockUnclosed}
		return
	}

	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Code)
}

// Jump returns the matching delimiter of the block instruction at pc.
func (prog *Program) Jump(pc int) (target int, ok bool) {
	if pc < 0 || pc >= len(prog.jump) || prog.jump[pc] < 0 {
		return
	}

	return prog.jump[pc], true
}

// Loop returns the first body instruction and the closing delimiter
// of the loop that starts at pc.
func (prog *Program) Loop(pc int) (body, end int, ok bool) {
	if pc < 0 || pc >= len(prog.Code) || prog.Code[pc].Op != OP_LOOP {
		return
	}

	end, ok = prog.Jump(pc)
	body = pc + 1
	return
}

// Debug returns the mark covering pc.
func (prog *Program) Debug(pc int) (mark Mark, ok bool) {
	n, found := slices.BinarySearchFunc(prog.Marks, pc, func(m Mark, pc int) int { return m.PC - pc })
	if !found {
		// n is the first mark after pc.
		n--
	} else {
		for n+1 < len(prog.Marks) && prog.Marks[n+1].PC == pc {
			n++
		}
	}
	if n < 0 {
		return
	}

	return prog.Marks[n], true
}

// Instructions iterates over each pc and its instruction.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return slices.All(prog.Code)
}

// Depth returns the deepest block nesting in the program.
func (prog *Program) Depth() (depth int) {
	var level int
	for _, code := range prog.Code {
		switch {
		case code.Op.Opens():
			level++
			depth = max(depth, level)
		case code.Op.Closes():
			level--
		}
	}

	return
}

// String returns an indented listing with marks as comments.
func (prog *Program) String() string {
	var sb strings.Builder

	marks := prog.Marks
	level := 0
	for pc, code := range prog.Code {
		for len(marks) > 0 && marks[0].PC == pc {
			fmt.Fprintf(&sb, "%*s; %v\n", 6+2*level, "", marks[0].Text)
			marks = marks[1:]
		}
		if code.Op.Closes() {
			level--
		}
		fmt.Fprintf(&sb, "%04d: %*s%v\n", pc, 2*level, "", code)
		if code.Op.Opens() {
			level++
		}
	}

	return sb.String()
}
