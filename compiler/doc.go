// Package compiler translates a Turing machine transition table into a
// vm.Program.
//
// The program is a single loop. The active register holds the current
// state, and the loop ends when it reaches the halting state 0. Each pass
// through the loop body performs one Turing step: a decrement ladder over
// the states selects the rule block of the current state, a second ladder
// over the symbol read from the head selects the rule, and the rule applies
// its tape action before loading the next state.
//
// Decrements still ahead in either ladder are added in advance, along with
// a bias that keeps the register away from zero until the end of the body.
package compiler
