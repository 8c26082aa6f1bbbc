package steady

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Solve computes a steady-state production plan sustaining the target
// rate, or the set of bottlenecks preventing one.
//
// It returns:
//   - *Result — StatusOK with recipe rates, integer machine counts and
//     raw draws, or StatusInfeasible with BottleneckHint (both are valid
//     outcomes, never errors)
//   - err     — a structural error (ErrNoTargetItem, RecipeError), raised
//     before any numerics run
//
// Steps:
//  1. Validate structure; bail to an infeasible hint when nothing
//     produces the target item.
//  2. Fold module effects into machine factors; build the sorted item
//     universe, the stoichiometric matrix and the balance equalities
//     Aeq·[x;u] = beq.
//  3. Solve for a nonnegative steady state: least-squares (QR/LQ), clamp
//     negatives, re-solve on the active column set until the ∞-norm
//     residual drops within tolerance.
//  4. Guard chain, each failure reported as a stable hint list: raw items
//     net-produced, raw supply caps, machine speeds, integer machine
//     counts versus caps.
//
// The plan is a pure function of p: identical input yields an identical
// Result (sorted item/recipe orders fix the matrix layout and every hint
// order).
func Solve(p *Plant, opts Options) (*Result, error) {
	// 1) Structural validation.
	opts.normalize()
	if p.Target.Item == "" {
		return nil, ErrNoTargetItem
	}
	order := recipeOrder(p)
	for _, name := range order {
		if _, ok := p.Machines[p.Recipes[name].Machine]; !ok {
			return nil, RecipeError{Recipe: name, Machine: p.Recipes[name].Machine}
		}
	}
	if !hasTargetProducer(p) {
		return infeasible("no recipe produces target item"), nil
	}

	// 2) Matrices.
	craftSpeed, prodMult := machineEffects(p)
	items := itemUniverse(p)
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item] = i
	}
	s := buildStoich(p, order, items, index, prodMult)
	raws, intermediates := splitItems(items, p.Limits.RawSupplyPerMin, p.Target.Item)
	aeq, beq, rawCol := assembleEqualities(s, index, raws, intermediates, p.Target.Item, p.Target.RatePerMin)

	// 3) Nonnegative steady state.
	y, ok := nonnegLeastSquares(aeq, beq, opts.RefineIterations, opts.Tolerance)
	if !ok {
		return infeasible("steady-state balance infeasible"), nil
	}
	x := y[:len(order)]

	// 4a) Raw items must be net-consumed: S_raw·x ≤ 0 held as equality
	//     against u ≥ 0, so any positive net production is a modeling
	//     violation worth its own hint.
	var hints []string
	for _, raw := range raws {
		var net float64
		for j := range order {
			net += s.At(index[raw], j) * x[j]
		}
		if net > opts.Tolerance {
			hints = append(hints, raw+" must be net-consumed")
		}
	}
	if len(hints) > 0 {
		return infeasible(hints...), nil
	}

	// 4b) Raw draws against supply caps.
	rawDraw := make(map[string]float64, len(raws))
	for _, raw := range raws {
		rawDraw[raw] = math.Max(0, y[len(order)+rawCol[raw]])
	}
	for _, raw := range raws {
		if rawDraw[raw] > p.Limits.RawSupplyPerMin[raw]+opts.Tolerance {
			hints = append(hints, raw+" supply")
		}
	}
	if len(hints) > 0 {
		return infeasible(hints...), nil
	}

	// 4c) Machine usage: crafts/min over effective rate, in machine-units.
	usage := make(map[string]float64, len(p.Machines))
	for name := range p.Machines {
		usage[name] = 0
	}
	for j, name := range order {
		r := p.Recipes[name]
		eff := effCraftsPerMin(r, craftSpeed)
		if eff <= opts.Tolerance {
			return infeasible("invalid machine/recipe speed"), nil
		}
		usage[r.Machine] += x[j] / eff
	}

	// 4d) Integer machine counts against caps, sorted machine order.
	counts := make(map[string]int, len(usage))
	for name, u := range usage {
		counts[name] = int(math.Ceil(u - ceilSlack))
	}
	for _, name := range sortedKeys(counts) {
		if counts[name] > p.Limits.MaxMachines[name] {
			hints = append(hints, name+" cap")
		}
	}
	if len(hints) > 0 {
		return infeasible(hints...), nil
	}

	// Success: per-recipe rates, counts and raw draws.
	perRecipe := make(map[string]float64, len(order))
	for j, name := range order {
		perRecipe[name] = x[j]
	}

	return &Result{
		Status:                StatusOK,
		PerRecipeCraftsPerMin: perRecipe,
		PerMachineCounts:      counts,
		RawConsumptionPerMin:  rawDraw,
	}, nil
}

// hasTargetProducer reports whether any recipe outputs the target item.
func hasTargetProducer(p *Plant) bool {
	for _, r := range p.Recipes {
		if _, ok := r.Out[p.Target.Item]; ok {
			return true
		}
	}

	return false
}

// infeasible builds an infeasible Result with unique hints, first
// occurrence order preserved.
func infeasible(hints ...string) *Result {
	ordered := make([]string, 0, len(hints))
	seen := make(map[string]struct{}, len(hints))
	for _, h := range hints {
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		ordered = append(ordered, h)
	}

	return &Result{Status: StatusInfeasible, BottleneckHint: ordered}
}

// nonnegLeastSquares finds y ≥ 0 with Aeq·y ≈ beq via a small active-set
// refinement: unconstrained least-squares, clamp negatives to zero, then
// re-solve restricted to the currently positive columns until the ∞-norm
// residual is within tol or progress stalls. Reports success when the
// final residual is acceptable.
func nonnegLeastSquares(aeq *mat.Dense, beq *mat.VecDense, iters int, tol float64) ([]float64, bool) {
	_, cols := aeq.Dims()

	y, ok := clampedSolve(aeq, beq, cols)
	if !ok {
		return y, false
	}

	for iter := 0; iter < iters; iter++ {
		active := positiveSet(y)
		if len(active) == 0 {
			// Everything clamped away; retry the full system once more.
			yNew, retried := clampedSolve(aeq, beq, cols)
			if !retried {
				return y, false
			}
			if maxAbsDiff(yNew, y) < ceilSlack {
				break
			}
			y = yNew
			continue
		}

		// Solve restricted to the active columns, inactive vars fixed at 0.
		sub := activeColumns(aeq, active)
		var ySub mat.VecDense
		if err := ySub.SolveVec(sub, beq); err != nil && !isCondition(err) {
			return y, false
		}
		yNew := make([]float64, cols)
		for k, col := range active {
			yNew[col] = math.Max(0, ySub.AtVec(k))
		}

		if residualInf(aeq, yNew, beq) <= tol {
			return yNew, true
		}
		if maxAbsDiff(yNew, y) < ceilSlack {
			y = yNew
			break
		}
		y = yNew
	}

	return y, residualInf(aeq, y, beq) <= tol
}

// clampedSolve runs one unconstrained least-squares solve and clamps the
// result to the nonnegative orthant.
func clampedSolve(aeq *mat.Dense, beq *mat.VecDense, cols int) ([]float64, bool) {
	var sol mat.VecDense
	if err := sol.SolveVec(aeq, beq); err != nil && !isCondition(err) {
		return make([]float64, cols), false
	}
	y := make([]float64, cols)
	for i := range y {
		y[i] = math.Max(0, sol.AtVec(i))
	}

	return y, true
}

// isCondition reports whether err is gonum's ill-conditioning warning,
// which carries a usable solution.
func isCondition(err error) bool {
	var cond mat.Condition

	return errors.As(err, &cond)
}

// positiveSet returns the indices of strictly positive entries.
func positiveSet(y []float64) []int {
	var active []int
	for i, v := range y {
		if v > 0 {
			active = append(active, i)
		}
	}

	return active
}

// activeColumns copies the selected columns of a into a new matrix.
func activeColumns(a *mat.Dense, active []int) *mat.Dense {
	rows, _ := a.Dims()
	sub := mat.NewDense(rows, len(active), nil)
	for k, col := range active {
		for i := 0; i < rows; i++ {
			sub.Set(i, k, a.At(i, col))
		}
	}

	return sub
}

// residualInf computes ‖Aeq·y − beq‖∞.
func residualInf(aeq *mat.Dense, y []float64, beq *mat.VecDense) float64 {
	rows, cols := aeq.Dims()
	worst := 0.0
	for i := 0; i < rows; i++ {
		r := -beq.AtVec(i)
		for j := 0; j < cols; j++ {
			r += aeq.At(i, j) * y[j]
		}
		worst = math.Max(worst, math.Abs(r))
	}

	return worst
}

// maxAbsDiff computes ‖a − b‖∞ over equal-length slices.
func maxAbsDiff(a, b []float64) float64 {
	worst := 0.0
	for i := range a {
		worst = math.Max(worst, math.Abs(a[i]-b[i]))
	}

	return worst
}

// sortedKeys returns the map keys in sorted order; hint and report
// ordering must not depend on map iteration.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
