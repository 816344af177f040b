package turing

import (
	"errors"
	"slices"

	"github.com/dominikbraun/graph"
)

// Analysis summarises the state graph of a machine.
type Analysis struct {
	Reachable   []State // States reachable from START, in order.
	Unreachable []State // Non-halting states never entered from START.
	Trapped     []State // Reachable states from which HALT cannot be reached.
	CanHalt     bool    // HALT is reachable from START.
}

// stateGraph builds the directed graph of state transitions.
// When reverse is set every edge points from the next state back to the
// state it was entered from.
func (m *Machine) stateGraph(reverse bool) (g graph.Graph[int, int], err error) {
	g = graph.New(graph.IntHash, graph.Directed())

	for state := range m.States + 1 {
		err = g.AddVertex(state)
		if err != nil {
			return
		}
	}

	for _, key := range m.Keys() {
		from, to := int(key.State), int(m.Rules[key].Next)
		if !m.validState(key.State) || !m.validState(State(to)) {
			continue
		}
		if reverse {
			from, to = to, from
		}
		err = g.AddEdge(from, to)
		if errors.Is(err, graph.ErrEdgeAlreadyExists) {
			err = nil
		}
		if err != nil {
			return
		}
	}

	return
}

func visit(g graph.Graph[int, int], start int) (seen map[int]bool, err error) {
	seen = map[int]bool{}
	err = graph.BFS(g, start, func(state int) bool {
		seen[state] = true
		return false
	})
	return
}

// Analyze walks the state graph of m. Rules naming states out of range
// are ignored.
func Analyze(m *Machine) (analysis *Analysis, err error) {
	if m.States < 1 {
		err = ErrStatesInvalid
		return
	}

	forward, err := m.stateGraph(false)
	if err != nil {
		return
	}
	backward, err := m.stateGraph(true)
	if err != nil {
		return
	}

	reached, err := visit(forward, int(START))
	if err != nil {
		return
	}
	halts, err := visit(backward, int(HALT))
	if err != nil {
		return
	}

	analysis = &Analysis{
		CanHalt: reached[int(HALT)],
	}
	for state := START; int(state) <= m.States; state++ {
		if !reached[int(state)] {
			analysis.Unreachable = append(analysis.Unreachable, state)
			continue
		}
		analysis.Reachable = append(analysis.Reachable, state)
		if !halts[int(state)] {
			analysis.Trapped = append(analysis.Trapped, state)
		}
	}
	if analysis.CanHalt {
		analysis.Reachable = slices.Insert(analysis.Reachable, 0, HALT)
	}

	return
}
