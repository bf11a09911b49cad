// Package symbolic represents sets of 1-safe Petri net markings as binary
// decision diagrams and computes the reachable set as a least fixpoint of
// the image under the global transition relation. One boolean variable is
// allocated per place for the current state and one shadow variable for
// the next state; the BDD manager is an explicitly passed handle, never a
// process-global.
package symbolic

import (
	"errors"
	"fmt"

	"github.com/dalzilio/rudd"
	"github.com/pnet-tools/go-pnet/petri"
)

// ErrEmptyNet is returned when a net declares no places; the encoding
// needs at least one boolean variable.
var ErrEmptyNet = errors.New("net has no places")

// Encoder owns the BDD manager for one net and allocates variables in a
// fixed interleaved order: place i gets current variable 2i and shadow
// (next-state) variable 2i+1, with places sorted lexically. The same
// ordering is used for the whole run.
type Encoder struct {
	net    *petri.Net
	bdd    *rudd.BDD
	places []string
	index  map[string]int

	curVars   []int
	nextVars  []int
	curSet    rudd.Node     // Makeset over current variables
	toCurrent rudd.Replacer // renames shadow variables to current ones
}

// NewEncoder allocates a BDD manager sized for the net and prepares the
// variable ordering and the shadow→current renaming.
func NewEncoder(net *petri.Net) (*Encoder, error) {
	places := net.Places()
	if len(places) == 0 {
		return nil, fmt.Errorf("encode %s: %w", net.Name, ErrEmptyNet)
	}

	bdd, err := rudd.New(2*len(places), rudd.Nodesize(10000), rudd.Cachesize(5000))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", net.Name, err)
	}

	e := &Encoder{
		net:      net,
		bdd:      bdd,
		places:   places,
		index:    make(map[string]int, len(places)),
		curVars:  make([]int, len(places)),
		nextVars: make([]int, len(places)),
	}
	for i, p := range places {
		e.index[p] = i
		e.curVars[i] = 2 * i
		e.nextVars[i] = 2*i + 1
	}
	e.curSet = bdd.Makeset(e.curVars)
	e.toCurrent, err = bdd.NewReplacer(e.nextVars, e.curVars)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", net.Name, err)
	}
	return e, nil
}

// Places returns the place ordering used by the encoding.
func (e *Encoder) Places() []string {
	return e.places
}

// cur returns the current-state literal for place i, positive or negated.
func (e *Encoder) cur(i int, marked bool) rudd.Node {
	if marked {
		return e.bdd.Ithvar(e.curVars[i])
	}
	return e.bdd.NIthvar(e.curVars[i])
}

// InitialSet encodes the initial marking as a conjunction fixing every
// current-state variable.
func (e *Encoder) InitialSet() rudd.Node {
	initial := e.net.Initial()
	node := e.bdd.True()
	for i, p := range e.places {
		node = e.bdd.And(node, e.cur(i, initial.Has(p)))
	}
	return node
}

// Cube encodes a single marking over the current-state variables.
func (e *Encoder) Cube(m petri.Marking) rudd.Node {
	node := e.bdd.True()
	for i, p := range e.places {
		node = e.bdd.And(node, e.cur(i, m.Has(p)))
	}
	return node
}

// relationFor builds the per-transition relation T_t(X,Y): the enabling
// guard over current variables, conjoined with the effect on every place.
// A place both consumed and produced by t keeps its value (instantaneous
// firing semantics); encoding it as ¬y ∧ y instead would make the whole
// relation unsatisfiable for self-looping transitions.
func (e *Encoder) relationFor(t string) rudd.Node {
	pre := make(map[string]bool)
	for _, p := range e.net.Preset(t) {
		pre[p] = true
	}
	post := make(map[string]bool)
	for _, p := range e.net.Postset(t) {
		post[p] = true
	}

	node := e.bdd.True()
	for i, p := range e.places {
		x := e.bdd.Ithvar(e.curVars[i])
		y := e.bdd.Ithvar(e.nextVars[i])
		switch {
		case pre[p] && post[p]:
			node = e.bdd.And(node, x, e.bdd.Equiv(x, y))
		case pre[p]:
			node = e.bdd.And(node, x, e.bdd.Not(y))
		case post[p]:
			node = e.bdd.And(node, y)
		default:
			node = e.bdd.And(node, e.bdd.Equiv(x, y))
		}
	}
	return node
}

// TransitionRelation builds the global relation T(X,Y) as the union of
// every per-transition relation, accumulated pairwise to keep the
// intermediate diagrams small.
func (e *Encoder) TransitionRelation() rudd.Node {
	relation := e.bdd.False()
	for _, t := range e.net.Transitions() {
		relation = e.bdd.Or(relation, e.relationFor(t))
	}
	return relation
}
