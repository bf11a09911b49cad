package deadlock

import (
	"fmt"
	"strconv"

	"github.com/crillab/gophersat/bf"
	"go.uber.org/zap"

	"github.com/pnet-tools/go-pnet/petri"
)

// findSolver poses deadlock existence as a 0/1 feasibility problem: one
// boolean per place, a one-hot selector over the enumerated satisfying
// assignments of the symbolic reachable set, and one constraint per
// transition with a non-empty preset forcing at least one preset place
// unmarked. Mathematically this is the symbolic-guided scan reframed as
// constraint satisfaction.
func (f *Finder) findSolver() (petri.Marking, bool, error) {
	// A transition with an empty preset is enabled under every marking,
	// so no constraint could be stated for it and no deadlock exists.
	for _, t := range f.net.Transitions() {
		if len(f.net.Preset(t)) == 0 {
			return f.verdictAgainstExplicit(false, MethodSolver)
		}
	}

	set, err := f.stateSet()
	if err != nil {
		return petri.Marking{}, false, err
	}
	explicit, err := f.explicitResult()
	if err != nil {
		return petri.Marking{}, false, err
	}
	assignments, err := set.Markings()
	if err != nil {
		return petri.Marking{}, false, err
	}
	if len(assignments) == 0 {
		return f.verdictAgainstExplicit(false, MethodSolver)
	}

	clauses := []bf.Formula{f.selectionFormula(assignments)}
	for _, t := range f.net.Transitions() {
		var free []bf.Formula
		for _, p := range f.net.Preset(t) {
			free = append(free, bf.Not(bf.Var(placeVar(p))))
		}
		clauses = append(clauses, bf.Or(free...))
	}

	// The relation encoding may admit spurious assignments; when the
	// solver picks one, forbid its selector and ask again.
	for {
		model := bf.Solve(bf.And(clauses...))
		if model == nil {
			return f.verdictAgainstExplicit(false, MethodSolver)
		}
		m := f.modelMarking(model)
		if explicit.Contains(m) && f.IsDeadlock(m) {
			return m, true, nil
		}
		f.logger.Warn("discarding spurious solver model",
			zap.String("net", f.net.Name),
			zap.String("marking", m.String()))
		selected, ok := selectedIndex(model, len(assignments))
		if !ok {
			// No selector true would mean the one-hot constraint failed;
			// treat it as an unusable model rather than looping forever.
			return petri.Marking{}, false, fmt.Errorf("solver model violates one-hot selection")
		}
		clauses = append(clauses, bf.Not(bf.Var(selectorVar(selected))))
	}
}

// selectionFormula constrains the place variables to match exactly one
// enumerated assignment of the reachable set.
func (f *Finder) selectionFormula(assignments []petri.Marking) bf.Formula {
	selectors := make([]string, len(assignments))
	for j := range assignments {
		selectors[j] = selectorVar(j)
	}
	clauses := []bf.Formula{bf.Unique(selectors...)}
	for j, m := range assignments {
		sel := bf.Var(selectors[j])
		for _, p := range f.net.Places() {
			if m.Has(p) {
				clauses = append(clauses, bf.Implies(sel, bf.Var(placeVar(p))))
			} else {
				clauses = append(clauses, bf.Implies(sel, bf.Not(bf.Var(placeVar(p)))))
			}
		}
	}
	return bf.And(clauses...)
}

// modelMarking extracts the marking from a solver model.
func (f *Finder) modelMarking(model map[string]bool) petri.Marking {
	var marked []string
	for _, p := range f.net.Places() {
		if model[placeVar(p)] {
			marked = append(marked, p)
		}
	}
	return petri.NewMarking(marked...)
}

func selectedIndex(model map[string]bool, count int) (int, bool) {
	for j := 0; j < count; j++ {
		if model[selectorVar(j)] {
			return j, true
		}
	}
	return 0, false
}

func placeVar(p string) string {
	return "m:" + p
}

func selectorVar(j int) string {
	return "s:" + strconv.Itoa(j)
}
