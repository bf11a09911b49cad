package symbolic

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/dalzilio/rudd"
	"github.com/pnet-tools/go-pnet/petri"
)

// StateSet is an opaque handle on a symbolically represented set of
// markings over the current-state variables of its encoder.
type StateSet struct {
	enc  *Encoder
	node rudd.Node
}

// Reachable computes the reachable set as a forward fixpoint: starting
// from the initial set, repeatedly take the image under the transition
// relation, rename shadow variables back to current ones, subtract the
// states already known, and union in the rest. The lattice of marking
// sets is finite, so the loop terminates in at most 2^|places|
// iterations.
func (e *Encoder) Reachable() (*StateSet, error) {
	relation := e.TransitionRelation()
	reached := e.InitialSet()

	for {
		img := e.bdd.Exist(e.bdd.And(reached, relation), e.curSet)
		next := e.bdd.Replace(img, e.toCurrent)
		fresh := e.bdd.And(next, e.bdd.Not(reached))
		if fresh == nil {
			return nil, fmt.Errorf("fixpoint on %s: manager out of nodes", e.net.Name)
		}
		if e.bdd.Equal(fresh, e.bdd.False()) {
			break
		}
		reached = e.bdd.Or(reached, fresh)
	}

	return &StateSet{enc: e, node: reached}, nil
}

// Explore encodes the net and computes its reachable set.
func Explore(net *petri.Net) (*StateSet, error) {
	enc, err := NewEncoder(net)
	if err != nil {
		return nil, err
	}
	return enc.Reachable()
}

// Count returns the exact number of markings in the set. The manager
// counts assignments over both current and shadow variables; the shadow
// half is unconstrained, so the raw count is halved once per place.
func (s *StateSet) Count() *big.Int {
	count := s.enc.bdd.Satcount(s.node)
	return count.Rsh(count, uint(len(s.enc.places)))
}

// Contains reports whether the marking is in the set.
func (s *StateSet) Contains(m petri.Marking) bool {
	cube := s.enc.Cube(m)
	return !s.enc.bdd.Equal(s.enc.bdd.And(s.node, cube), s.enc.bdd.False())
}

// Markings enumerates every marking in the set, sorted by canonical key
// for a deterministic order. Enumeration is exponential in the worst
// case and meant for small sets (deadlock scans, cross-checks).
func (s *StateSet) Markings() ([]petri.Marking, error) {
	var markings []petri.Marking
	err := s.enc.bdd.Allsat(func(varset []int) error {
		markings = append(markings, s.expand(varset, 0, nil)...)
		return nil
	}, s.node)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", s.enc.net.Name, err)
	}
	sort.Slice(markings, func(i, j int) bool {
		return markings[i].Key() < markings[j].Key()
	})
	return markings, nil
}

// expand turns one satisfying path into markings, branching on every
// don't-care current-state variable. Shadow variables are ignored: the
// set never constrains them.
func (s *StateSet) expand(varset []int, from int, marked []string) []petri.Marking {
	for i := from; i < len(s.enc.places); i++ {
		switch varset[s.enc.curVars[i]] {
		case 1:
			marked = append(marked, s.enc.places[i])
		case 0:
			// place unmarked
		default:
			// Don't-care: the path covers both values.
			with := append(append([]string(nil), marked...), s.enc.places[i])
			out := s.expand(varset, i+1, with)
			return append(out, s.expand(varset, i+1, marked)...)
		}
	}
	return []petri.Marking{petri.NewMarking(marked...)}
}
