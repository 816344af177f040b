package tape

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ezrec/tmvm/turing"
)

// Tape is a decoded tape.
type Tape struct {
	Left  []turing.Symbol // Cells left of the head, nearest first.
	Right []turing.Symbol // Head cell and the cells right of it, without trailing blanks.
}

func trimBlanks(cells []turing.Symbol) []turing.Symbol {
	end := len(cells)
	for end > 0 && cells[end-1] == turing.BLANK {
		end--
	}
	if end == 0 {
		return nil
	}
	return cells[:end]
}

// Head returns the symbol under the head.
func (tape Tape) Head() turing.Symbol {
	if len(tape.Right) == 0 {
		return turing.BLANK
	}
	return tape.Right[0]
}

// Sequence returns the head cell and the cells right of it, followed by
// the cells left of the head, nearest first.
func (tape Tape) Sequence() (cells []turing.Symbol) {
	cells = append(cells, tape.Right...)
	cells = append(cells, tape.Left...)
	return
}

// Cells returns the written region from left to right, with blanks outside
// the outermost non-blank cells removed.
func (tape Tape) Cells() (cells []turing.Symbol) {
	cells = append(cells, tape.Left...)
	slices.Reverse(cells)
	cells = append(cells, tape.Right...)

	start := 0
	for start < len(cells) && cells[start] == turing.BLANK {
		start++
	}

	return trimBlanks(cells[start:])
}

// String renders the tape left to right with the head cell bracketed.
func (tape Tape) String() string {
	var sb strings.Builder

	for _, cell := range slices.Backward(tape.Left) {
		fmt.Fprintf(&sb, "%d ", cell)
	}
	fmt.Fprintf(&sb, "[%d]", tape.Head())
	for _, cell := range tape.Right[min(1, len(tape.Right)):] {
		fmt.Fprintf(&sb, " %d", cell)
	}

	return sb.String()
}
