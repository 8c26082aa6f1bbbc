package steady

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// machineEffects folds module boosts into per-machine factors:
// craftSpeed[m] = CraftsPerMin·(1+speed), prodMult[m] = 1+prod.
// Productivity multiplies recipe outputs only, never inputs.
func machineEffects(p *Plant) (craftSpeed, prodMult map[string]float64) {
	craftSpeed = make(map[string]float64, len(p.Machines))
	prodMult = make(map[string]float64, len(p.Machines))
	for name, m := range p.Machines {
		eff := p.Modules[name]
		craftSpeed[name] = m.CraftsPerMin * (1 + eff.Speed)
		prodMult[name] = 1 + eff.Prod
	}

	return craftSpeed, prodMult
}

// effCraftsPerMin is the sustained crafting rate of one machine running
// recipe r: the speed-adjusted base rate scaled by 60/TimeS. Non-positive
// craft times yield 0, which the solver reports as an invalid-speed
// bottleneck.
func effCraftsPerMin(r Recipe, craftSpeed map[string]float64) float64 {
	if r.TimeS <= 0 {
		return 0
	}

	return craftSpeed[r.Machine] * 60 / r.TimeS
}

// itemUniverse collects every item name touched by the plant — recipe
// inputs/outputs, raw-cap keys and the target — in sorted order. Sorted
// item and recipe orders fix the matrix layout, making plans deterministic.
func itemUniverse(p *Plant) []string {
	set := make(map[string]struct{})
	for _, r := range p.Recipes {
		for item := range r.In {
			set[item] = struct{}{}
		}
		for item := range r.Out {
			set[item] = struct{}{}
		}
	}
	for item := range p.Limits.RawSupplyPerMin {
		set[item] = struct{}{}
	}
	set[p.Target.Item] = struct{}{}

	items := make([]string, 0, len(set))
	for item := range set {
		items = append(items, item)
	}
	sort.Strings(items)

	return items
}

// recipeOrder returns the recipe names in sorted (column) order.
func recipeOrder(p *Plant) []string {
	names := make([]string, 0, len(p.Recipes))
	for name := range p.Recipes {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// buildStoich assembles the items×recipes stoichiometric matrix S:
// S[i][j] = −input qty + output qty·prodMult for item i in recipe j,
// so S·x is the net per-minute production of each item at craft rates x.
func buildStoich(p *Plant, order, items []string, index map[string]int, prodMult map[string]float64) *mat.Dense {
	s := mat.NewDense(len(items), len(order), nil)
	for j, name := range order {
		r := p.Recipes[name]
		pm := prodMult[r.Machine]
		for item, qty := range r.In {
			i := index[item]
			s.Set(i, j, s.At(i, j)-qty)
		}
		for item, qty := range r.Out {
			i := index[item]
			s.Set(i, j, s.At(i, j)+qty*pm)
		}
	}

	return s
}

// splitItems partitions the universe into raw items (those with a declared
// supply cap) and intermediates (everything else except the target),
// preserving sorted order.
func splitItems(items []string, rawCaps map[string]float64, target string) (raws, intermediates []string) {
	for _, item := range items {
		if _, raw := rawCaps[item]; raw {
			raws = append(raws, item)
			continue
		}
		if item != target {
			intermediates = append(intermediates, item)
		}
	}

	return raws, intermediates
}

// assembleEqualities builds the balance system Aeq·y = beq over
// y = [x (recipe rates); u (raw draws)]:
//
//	intermediates:  S_i·x         = 0
//	target:         S_t·x         = rate
//	raws:           S_i·x + u_i   = 0
//
// rawCol maps each raw item to its u-column offset (0-based within the
// u block).
func assembleEqualities(
	s *mat.Dense,
	index map[string]int,
	raws, intermediates []string,
	target string,
	rate float64,
) (aeq *mat.Dense, beq *mat.VecDense, rawCol map[string]int) {
	_, nRecipes := s.Dims()
	rows := len(intermediates) + 1 + len(raws)
	cols := nRecipes + len(raws)

	aeq = mat.NewDense(rows, cols, nil)
	beq = mat.NewVecDense(rows, nil)
	rawCol = make(map[string]int, len(raws))

	row := 0
	copyItemRow := func(item string) {
		src := index[item]
		for j := 0; j < nRecipes; j++ {
			aeq.Set(row, j, s.At(src, j))
		}
	}
	for _, item := range intermediates {
		copyItemRow(item)
		row++
	}
	copyItemRow(target)
	beq.SetVec(row, rate)
	row++
	for k, item := range raws {
		copyItemRow(item)
		aeq.Set(row, nRecipes+k, 1)
		rawCol[item] = k
		row++
	}

	return aeq, beq, rawCol
}
