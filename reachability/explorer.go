// Package reachability enumerates the state space of a 1-safe Petri net
// by breadth-first search over the firing relation. Exploration is fully
// deterministic: transitions are considered in sorted order, and the
// output preserves first-discovery order, so results are reproducible
// across runs and usable as an oracle for the symbolic explorer.
package reachability

import (
	"fmt"

	"github.com/pnet-tools/go-pnet/petri"
)

// Explorer performs explicit reachability analysis. The method is
// exponential in the number of places and intended for small nets and as
// a correctness cross-check for the symbolic method.
type Explorer struct {
	net       *petri.Net
	initial   petri.Marking
	maxStates int
}

// NewExplorer creates an explorer starting from the net's initial marking.
func NewExplorer(net *petri.Net) *Explorer {
	return &Explorer{
		net:       net,
		initial:   net.Initial(),
		maxStates: 1 << 20,
	}
}

// WithInitialMarking overrides the starting marking.
func (e *Explorer) WithInitialMarking(m petri.Marking) *Explorer {
	e.initial = m
	return e
}

// WithMaxStates caps the number of explored states. The cap exists only
// as a guard against runaway nets; hitting it is reported as an error
// since a truncated explicit set would poison every downstream
// cross-check.
func (e *Explorer) WithMaxStates(max int) *Explorer {
	e.maxStates = max
	return e
}

// Result holds the outcome of an explicit exploration.
type Result struct {
	// Markings is every reachable marking exactly once, in first-discovery
	// order. Markings[0] is the initial marking.
	Markings []petri.Marking
	Graph    *Graph
}

// StateCount returns the size of the reachable set.
func (r *Result) StateCount() int {
	return len(r.Markings)
}

// Contains reports whether m was discovered.
func (r *Result) Contains(m petri.Marking) bool {
	return r.Graph.GetState(m) != nil
}

// Explore runs the breadth-first search. Each dequeued marking considers
// transitions in the net's sorted order; enabled ones fire, and unseen
// successors are appended to the output sequence and the frontier.
func (e *Explorer) Explore() (*Result, error) {
	graph := NewGraph(e.net, e.initial)
	transitions := e.net.Transitions()

	root := graph.AddState(e.initial)
	queue := []*State{root}
	order := []petri.Marking{e.initial}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, t := range transitions {
			if !e.net.Enabled(t, current.Marking) {
				continue
			}
			successor, err := e.net.Fire(t, current.Marking)
			if err != nil {
				// Enabled was just confirmed; a failure here is a defect
				// in the net model, not a recoverable condition.
				return nil, fmt.Errorf("explore %s: %w", e.net.Name, err)
			}
			next := graph.GetState(successor)
			if next == nil {
				if graph.StateCount() >= e.maxStates {
					return nil, fmt.Errorf("explore %s: state limit %d exceeded", e.net.Name, e.maxStates)
				}
				next = graph.AddState(successor)
				order = append(order, successor)
				queue = append(queue, next)
			}
			graph.AddEdge(current, next, t)
		}
	}

	return &Result{Markings: order, Graph: graph}, nil
}

// Explore is a convenience wrapper running a default explorer on the net.
func Explore(net *petri.Net) (*Result, error) {
	return NewExplorer(net).Explore()
}
