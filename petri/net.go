// Package petri implements the core data model for 1-safe Petri nets:
// places, transitions, arcs with derived preset/postset maps, markings,
// and the single-step firing rule. A place holds at most one token; the
// state of a net is the set of marked places.
package petri

import (
	"fmt"
	"sort"
)

// Arc is a directed connection between a place and a transition. Exactly
// one endpoint is a place and the other a transition.
type Arc struct {
	Source string
	Target string
}

// Net is an immutable-after-construction 1-safe Petri net. Preset and
// postset maps are derived from arcs and never hand-edited. All node
// identifiers are globally unique across places and transitions.
type Net struct {
	Name string

	places      map[string]struct{}
	transitions map[string]struct{}
	arcs        []Arc
	preset      map[string]map[string]struct{}
	postset     map[string]map[string]struct{}
	initial     map[string]struct{}
}

// NewNet creates an empty net with the given name.
func NewNet(name string) *Net {
	return &Net{
		Name:        name,
		places:      make(map[string]struct{}),
		transitions: make(map[string]struct{}),
		preset:      make(map[string]map[string]struct{}),
		postset:     make(map[string]map[string]struct{}),
		initial:     make(map[string]struct{}),
	}
}

// AddPlace declares a place. The id must not collide with any declared
// place or transition.
func (n *Net) AddPlace(id string) error {
	if n.declared(id) {
		return fmt.Errorf("place %q: %w", id, ErrDuplicateID)
	}
	n.places[id] = struct{}{}
	n.preset[id] = make(map[string]struct{})
	n.postset[id] = make(map[string]struct{})
	return nil
}

// AddTransition declares a transition. The id must not collide with any
// declared place or transition.
func (n *Net) AddTransition(id string) error {
	if n.declared(id) {
		return fmt.Errorf("transition %q: %w", id, ErrDuplicateID)
	}
	n.transitions[id] = struct{}{}
	n.preset[id] = make(map[string]struct{})
	n.postset[id] = make(map[string]struct{})
	return nil
}

// AddArc connects a place to a transition or a transition to a place and
// updates the derived preset/postset maps. Both endpoints must already be
// declared.
func (n *Net) AddArc(source, target string) error {
	if !n.declared(source) {
		return fmt.Errorf("arc source %q: %w", source, ErrUnknownNode)
	}
	if !n.declared(target) {
		return fmt.Errorf("arc target %q: %w", target, ErrUnknownNode)
	}
	srcPlace := n.HasPlace(source)
	tgtPlace := n.HasPlace(target)
	if srcPlace == tgtPlace {
		return fmt.Errorf("arc %s→%s: %w", source, target, ErrInvalidArc)
	}
	n.arcs = append(n.arcs, Arc{Source: source, Target: target})
	n.postset[source][target] = struct{}{}
	n.preset[target][source] = struct{}{}
	return nil
}

// SetInitial sets the initial token count of a place. Counts above one
// are clamped to a single token (1-safe semantics); the returned clamped
// flag lets the caller report the non-fatal warning.
func (n *Net) SetInitial(place string, tokens int) (clamped bool, err error) {
	if !n.HasPlace(place) {
		return false, fmt.Errorf("initial marking of %q: %w", place, ErrUnknownNode)
	}
	if tokens <= 0 {
		delete(n.initial, place)
		return false, nil
	}
	n.initial[place] = struct{}{}
	return tokens > 1, nil
}

// Initial returns the initial marking.
func (n *Net) Initial() Marking {
	set := make(map[string]struct{}, len(n.initial))
	for p := range n.initial {
		set[p] = struct{}{}
	}
	return Marking{set: set}
}

// HasPlace reports whether id is a declared place.
func (n *Net) HasPlace(id string) bool {
	_, ok := n.places[id]
	return ok
}

// HasTransition reports whether id is a declared transition.
func (n *Net) HasTransition(id string) bool {
	_, ok := n.transitions[id]
	return ok
}

// Places returns all place ids in sorted order.
func (n *Net) Places() []string {
	return sortedKeys(n.places)
}

// Transitions returns all transition ids in sorted order. The sorted
// order is the fixed total order used by the explorers, so results are
// reproducible across runs.
func (n *Net) Transitions() []string {
	return sortedKeys(n.transitions)
}

// Arcs returns the declared arcs in insertion order.
func (n *Net) Arcs() []Arc {
	arcs := make([]Arc, len(n.arcs))
	copy(arcs, n.arcs)
	return arcs
}

// Preset returns the input nodes of a place or transition, sorted.
func (n *Net) Preset(id string) []string {
	return sortedKeys(n.preset[id])
}

// Postset returns the output nodes of a place or transition, sorted.
func (n *Net) Postset(id string) []string {
	return sortedKeys(n.postset[id])
}

// Enabled reports whether every place in the preset of t is marked in m.
// A transition with an empty preset is always enabled. Pure, no side
// effects. Undeclared transitions are never enabled.
func (n *Net) Enabled(t string, m Marking) bool {
	if !n.HasTransition(t) {
		return false
	}
	for p := range n.preset[t] {
		if !m.Has(p) {
			return false
		}
	}
	return true
}

// Fire returns the marking (m \ preset(t)) ∪ postset(t). Firing a
// disabled transition is a caller contract violation and returns
// ErrNotEnabled; callers must only fire transitions confirmed enabled.
func (n *Net) Fire(t string, m Marking) (Marking, error) {
	if !n.HasTransition(t) {
		return Marking{}, fmt.Errorf("fire %q: %w", t, ErrUnknownNode)
	}
	if !n.Enabled(t, m) {
		return Marking{}, fmt.Errorf("illegal firing of %q at %s: %w", t, m, ErrNotEnabled)
	}
	return m.next(n.preset[t], n.postset[t]), nil
}

func (n *Net) declared(id string) bool {
	return n.HasPlace(id) || n.HasTransition(id)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
