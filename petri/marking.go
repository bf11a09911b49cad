package petri

import (
	"sort"
	"strings"
)

// keySep separates place ids inside a marking key. It cannot occur in a
// well-formed identifier.
const keySep = "\x1f"

// Marking is the state of a 1-safe net: the set of currently marked
// places. Markings are immutable; firing a transition produces a new one.
// Two markings are equal iff they mark exactly the same places.
type Marking struct {
	set map[string]struct{}
}

// NewMarking creates a marking from the given place ids.
func NewMarking(places ...string) Marking {
	set := make(map[string]struct{}, len(places))
	for _, p := range places {
		set[p] = struct{}{}
	}
	return Marking{set: set}
}

// Has reports whether the place is marked.
func (m Marking) Has(place string) bool {
	_, ok := m.set[place]
	return ok
}

// Size returns the number of marked places.
func (m Marking) Size() int {
	return len(m.set)
}

// Places returns the marked places in sorted order.
func (m Marking) Places() []string {
	places := make([]string, 0, len(m.set))
	for p := range m.set {
		places = append(places, p)
	}
	sort.Strings(places)
	return places
}

// Key returns a canonical string key: the sorted place ids joined by a
// separator. Markings with the same key are equal.
func (m Marking) Key() string {
	return strings.Join(m.Places(), keySep)
}

// Equal reports whether both markings mark exactly the same places.
func (m Marking) Equal(other Marking) bool {
	if len(m.set) != len(other.set) {
		return false
	}
	for p := range m.set {
		if _, ok := other.set[p]; !ok {
			return false
		}
	}
	return true
}

// String returns a human-readable representation, e.g. "{P0, P1}".
func (m Marking) String() string {
	if len(m.set) == 0 {
		return "{}"
	}
	return "{" + strings.Join(m.Places(), ", ") + "}"
}

// next builds the successor marking (m \ consume) ∪ produce.
func (m Marking) next(consume, produce map[string]struct{}) Marking {
	set := make(map[string]struct{}, len(m.set)+len(produce))
	for p := range m.set {
		if _, drop := consume[p]; !drop {
			set[p] = struct{}{}
		}
	}
	for p := range produce {
		set[p] = struct{}{}
	}
	return Marking{set: set}
}
