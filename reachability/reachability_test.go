package reachability

import (
	"fmt"
	"testing"

	"github.com/pnet-tools/go-pnet/petri"
)

// Helper: linear chain P0 → T0 → P1 → ... → P(n-1), token on P0.
func buildChain(t *testing.T, n int) *petri.Net {
	t.Helper()
	b := petri.Build(fmt.Sprintf("chain-%d", n))
	for i := 0; i < n; i++ {
		tokens := 0
		if i == 0 {
			tokens = 1
		}
		b.Place(fmt.Sprintf("P%d", i), tokens)
	}
	for i := 0; i < n-1; i++ {
		b.Transition(fmt.Sprintf("T%d", i))
		b.Flow(fmt.Sprintf("P%d", i), fmt.Sprintf("T%d", i), fmt.Sprintf("P%d", i+1))
	}
	net, err := b.Done()
	if err != nil {
		t.Fatalf("build chain: %v", err)
	}
	return net
}

// Helper: n independent two-step chains Pi_0 → Pi_1 → Pi_2. Each chain
// contributes 3 local states and the chains combine multiplicatively,
// so the reachable set has 3^n markings.
func buildParallelChains(t *testing.T, n int) *petri.Net {
	t.Helper()
	b := petri.Build(fmt.Sprintf("parallel-%d", n))
	for i := 0; i < n; i++ {
		b.Place(fmt.Sprintf("P%d_0", i), 1)
		b.Place(fmt.Sprintf("P%d_1", i), 0)
		b.Place(fmt.Sprintf("P%d_2", i), 0)
		b.Transition(fmt.Sprintf("T%d_1", i))
		b.Transition(fmt.Sprintf("T%d_2", i))
		b.Flow(fmt.Sprintf("P%d_0", i), fmt.Sprintf("T%d_1", i), fmt.Sprintf("P%d_1", i))
		b.Flow(fmt.Sprintf("P%d_1", i), fmt.Sprintf("T%d_2", i), fmt.Sprintf("P%d_2", i))
	}
	net, err := b.Done()
	if err != nil {
		t.Fatalf("build parallel chains: %v", err)
	}
	return net
}

func TestChainReachableSet(t *testing.T) {
	net := buildChain(t, 5)
	res, err := Explore(net)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if res.StateCount() != 5 {
		t.Fatalf("StateCount = %d, want 5", res.StateCount())
	}
	// Discovery order follows the chain.
	for i, m := range res.Markings {
		want := petri.NewMarking(fmt.Sprintf("P%d", i))
		if !m.Equal(want) {
			t.Errorf("Markings[%d] = %s, want %s", i, m, want)
		}
	}
}

func TestNoDuplicateMarkings(t *testing.T) {
	net := buildParallelChains(t, 3)
	res, err := Explore(net)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	seen := make(map[string]bool)
	for _, m := range res.Markings {
		if seen[m.Key()] {
			t.Errorf("marking %s produced twice", m)
		}
		seen[m.Key()] = true
	}
	// 3 states per chain, 3 independent chains.
	if res.StateCount() != 27 {
		t.Errorf("StateCount = %d, want 27", res.StateCount())
	}
}

func TestSelfLoopSingleState(t *testing.T) {
	net, err := petri.Build("cycle").
		Place("P1", 1).
		Transition("T1").
		Flow("P1", "T1", "P1").
		Done()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	res, err := Explore(net)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if res.StateCount() != 1 {
		t.Errorf("StateCount = %d, want 1", res.StateCount())
	}
	if res.Graph.Root.IsTerminal {
		t.Error("self-loop state should not be terminal")
	}
	if res.Graph.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1 (the self edge)", res.Graph.EdgeCount())
	}
}

func TestToggleLoopsStayConstant(t *testing.T) {
	// k single-place loops Pi ⇄ Ti, each marked: exactly one reachable
	// marking regardless of k.
	for _, k := range []int{1, 3, 6} {
		b := petri.Build(fmt.Sprintf("toggle-%d", k))
		for i := 0; i < k; i++ {
			b.Place(fmt.Sprintf("P%d", i), 1)
			b.Transition(fmt.Sprintf("T%d", i))
			b.Flow(fmt.Sprintf("P%d", i), fmt.Sprintf("T%d", i), fmt.Sprintf("P%d", i))
		}
		net, err := b.Done()
		if err != nil {
			t.Fatalf("build toggle-%d: %v", k, err)
		}
		res, err := Explore(net)
		if err != nil {
			t.Fatalf("Explore toggle-%d: %v", k, err)
		}
		if res.StateCount() != 1 {
			t.Errorf("toggle-%d: StateCount = %d, want 1", k, res.StateCount())
		}
	}
}

func TestEveryMarkingHasFiringPath(t *testing.T) {
	net := buildParallelChains(t, 2)
	res, err := Explore(net)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	// Every non-initial state is the target of some edge whose source was
	// discovered earlier, so a firing sequence from the initial marking
	// exists by induction over discovery order.
	reachedBy := make(map[int]bool)
	reachedBy[res.Graph.Root.ID] = true
	for _, state := range res.Graph.States() {
		if !reachedBy[state.ID] {
			t.Fatalf("state %d (%s) discovered out of order", state.ID, state.Marking)
		}
		for _, edge := range state.Successors {
			reachedBy[edge.To.ID] = true
		}
	}
	if len(reachedBy) != res.StateCount() {
		t.Errorf("reached %d of %d states", len(reachedBy), res.StateCount())
	}
}

func TestDeterministicDiscoveryOrder(t *testing.T) {
	net := buildParallelChains(t, 3)
	first, err := Explore(net)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	for run := 0; run < 3; run++ {
		again, err := Explore(net)
		if err != nil {
			t.Fatalf("Explore run %d: %v", run, err)
		}
		if again.StateCount() != first.StateCount() {
			t.Fatalf("run %d: StateCount = %d, want %d", run, again.StateCount(), first.StateCount())
		}
		for i := range first.Markings {
			if !first.Markings[i].Equal(again.Markings[i]) {
				t.Fatalf("run %d: Markings[%d] = %s, want %s",
					run, i, again.Markings[i], first.Markings[i])
			}
		}
	}
}

func TestStateLimit(t *testing.T) {
	net := buildParallelChains(t, 4) // 81 states
	_, err := NewExplorer(net).WithMaxStates(10).Explore()
	if err == nil {
		t.Fatal("expected state limit error")
	}
}

func TestEmptyInitialMarking(t *testing.T) {
	net, err := petri.Build("dead").
		Place("P0", 0).
		Place("P1", 0).
		Transition("T").
		Flow("P0", "T", "P1").
		Done()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	res, err := Explore(net)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if res.StateCount() != 1 {
		t.Fatalf("StateCount = %d, want 1 (the empty marking)", res.StateCount())
	}
	if !res.Markings[0].Equal(petri.NewMarking()) {
		t.Errorf("Markings[0] = %s, want {}", res.Markings[0])
	}
	if !res.Graph.Root.IsTerminal {
		t.Error("empty marking with no enabled transition should be terminal")
	}
}
