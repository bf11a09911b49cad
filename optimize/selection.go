package optimize

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Selection solves the 0/1 selection program over the reachable set: one
// indicator variable per marking, objective Σ value_i·x_i, constraint
// Σ x_i = 1. In standard form this is min −valueᵀx subject to 1ᵀx = 1,
// x ≥ 0; the simplex optimum sits on a vertex of the unit simplex, i.e. a
// single selected marking, so no integrality branching is needed.
func (o *Optimizer) Selection() (Result, error) {
	markings, err := o.reachable()
	if err != nil {
		return Result{}, err
	}
	n := len(markings)
	if n == 0 {
		return Result{}, nil
	}

	objective := make([]float64, n)
	for i, m := range markings {
		objective[i] = -o.Value(m)
	}
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	constraint := mat.NewDense(1, n, ones)

	optF, optX, err := lp.Simplex(objective, constraint, []float64{1}, 0, nil)
	if err != nil {
		return Result{}, fmt.Errorf("selection program: %w", err)
	}

	selected := 0
	for i, x := range optX {
		if x > optX[selected] {
			selected = i
		}
	}
	return Result{Marking: markings[selected], Value: -optF, Found: true}, nil
}
