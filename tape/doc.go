// Package tape encodes a two sided Turing machine tape onto the registers
// and stack of a vm.Vm.
//
// The head cell and every cell to its right live on the stack, with the
// head on top. Cells past the bottom of the stack are blank. The cells to
// the left of the head are a single integer L in base B, with the cell
// nearest the head as the least significant digit, held in the inactive
// register.
//
// Every instruction fragment of a Codec keeps the same register contract
// on entry and on exit:
//
//	active register   = 0 (scratch)
//	inactive register = L
//	stack top         = head symbol
//
// L grows like B^n for n cells left of the head, and moving left or right
// costs time proportional to L. Long tapes are exact but slow.
package tape
