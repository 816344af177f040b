// Package turing describes single tape Turing machines.
//
// A machine has an alphabet of Base symbols, where symbol 0 is the blank,
// and States states numbered from 1. State 0 is the halting state. Every
// (state, symbol) pair of a machine must have exactly one rule, which names
// the next state and a single action: write a symbol, or move the head one
// cell left or right.
//
// Machines can be built with New and Set, or loaded from a Starlark
// description with Load:
//
//	base = 2
//
//	rule(1, 0, 0, write = 1)
//	rule(1, 1, 1, move = "right")
package turing
