package reachability

import (
	"github.com/pnet-tools/go-pnet/petri"
)

// Graph is the state graph discovered by the explicit explorer: one node
// per reachable marking, one edge per transition firing.
type Graph struct {
	Net     *petri.Net
	Initial petri.Marking
	Root    *State
	Edges   []*Edge

	states    map[string]*State
	stateList []*State // discovery order
}

// State is a node of the reachability graph.
type State struct {
	ID         int
	Marking    petri.Marking
	Enabled    []string // enabled transitions, sorted
	Successors []*Edge
	IsInitial  bool
	IsTerminal bool // no enabled transition
	Depth      int  // BFS distance from the initial marking
}

// Edge records a single transition firing between two states.
type Edge struct {
	From       *State
	To         *State
	Transition string
}

// NewGraph creates an empty graph rooted at the initial marking.
func NewGraph(net *petri.Net, initial petri.Marking) *Graph {
	return &Graph{
		Net:     net,
		Initial: initial,
		states:  make(map[string]*State),
	}
}

// AddState records a marking as a state, or returns the existing state
// for an already seen marking.
func (g *Graph) AddState(m petri.Marking) *State {
	key := m.Key()
	if existing, ok := g.states[key]; ok {
		return existing
	}
	state := &State{
		ID:        len(g.stateList),
		Marking:   m,
		Enabled:   g.findEnabled(m),
		IsInitial: len(g.stateList) == 0,
		Depth:     -1,
	}
	state.IsTerminal = len(state.Enabled) == 0
	g.states[key] = state
	g.stateList = append(g.stateList, state)
	if state.IsInitial {
		g.Root = state
		state.Depth = 0
	}
	return state
}

// AddEdge records a firing from one state to another.
func (g *Graph) AddEdge(from, to *State, transition string) *Edge {
	edge := &Edge{From: from, To: to, Transition: transition}
	from.Successors = append(from.Successors, edge)
	g.Edges = append(g.Edges, edge)
	if from.Depth >= 0 && (to.Depth < 0 || to.Depth > from.Depth+1) {
		to.Depth = from.Depth + 1
	}
	return edge
}

// GetState retrieves the state for a marking, or nil if unseen.
func (g *Graph) GetState(m petri.Marking) *State {
	return g.states[m.Key()]
}

// StateCount returns the number of discovered states.
func (g *Graph) StateCount() int {
	return len(g.stateList)
}

// EdgeCount returns the number of recorded firings.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// States returns all states in discovery order.
func (g *Graph) States() []*State {
	return g.stateList
}

// TerminalStates returns states with no enabled transition, in discovery
// order.
func (g *Graph) TerminalStates() []*State {
	var terminal []*State
	for _, state := range g.stateList {
		if state.IsTerminal {
			terminal = append(terminal, state)
		}
	}
	return terminal
}

// MaxDepth returns the largest BFS depth in the graph.
func (g *Graph) MaxDepth() int {
	max := 0
	for _, state := range g.stateList {
		if state.Depth > max {
			max = state.Depth
		}
	}
	return max
}

// findEnabled returns the transitions enabled at m, in the net's fixed
// sorted order.
func (g *Graph) findEnabled(m petri.Marking) []string {
	var enabled []string
	for _, t := range g.Net.Transitions() {
		if g.Net.Enabled(t, m) {
			enabled = append(enabled, t)
		}
	}
	return enabled
}
