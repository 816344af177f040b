// Package vm implements the two register stack machine that compiled
// Turing machines run on.
//
// The machine has two signed, arbitrary precision registers, one of which
// is active at any time, and an unbounded stack of arbitrary precision
// integers. Its ten instructions push, pop, swap the active register,
// increment and decrement the active register, and delimit two block
// constructs: a loop that repeats while the active register is non-zero,
// and a conditional that runs once when the active register is zero.
//
// Programs are linked once by NewProgram, which matches every block
// delimiter and rejects malformed nesting before anything runs. A linked
// program never fails at run time; popping an empty stack yields zero and
// registers may go negative.
package vm
