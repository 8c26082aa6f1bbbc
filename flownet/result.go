package flownet

import (
	"math"
	"sort"
)

// buildSuccess reconstructs the original-edge flow assignment after the
// engine saturated every super-source arc.
//
// For each original edge, recovered flow = Lo + flow carried by its
// transformed arc, clamped into [Lo, Hi+eps] to absorb tolerance-level
// residue. Conservation at every original node holds by construction of
// the reduction; no balancing pass is needed. MaxFlowPerMin is the total
// recovered flow into the original sink, which equals the declared supply
// for any feasible instance.
func buildSuccess(tr *transformed, p *Problem, eps float64) *Result {
	flows := make([]EdgeFlow, 0, len(tr.edges))
	var total float64
	for _, m := range tr.edges {
		f := m.lo + tr.eng.flowOn(m.arc)
		f = math.Max(m.lo, math.Min(m.hi+eps, f))
		flows = append(flows, EdgeFlow{From: m.from, To: m.to, Flow: f})
		if m.to == p.Sink {
			total += f
		}
	}

	return &Result{
		Status:        StatusOK,
		MaxFlowPerMin: total,
		Flows:         flows,
	}
}

// buildCertificate constructs the deterministic infeasibility certificate
// from the final residual graph.
//
// Steps:
//  1. Cut = nodes reachable from the super-source over residual capacity
//     > eps; split halves coalesce to their original name (a node is on
//     the source side if either half is), SS/TT are never reported.
//  2. Tight edges = original edges whose transformed arc is saturated
//     (residual ≤ eps) and crosses the cut source-side → sink-side,
//     reported once per (from,to) pair even when parallel edges exist.
//  3. Tight nodes = capped nodes whose cap arc is saturated and crosses
//     the cut, in sorted order.
//  4. Deficit = super-source capacity sum − achieved flow, split equally
//     across the tight edges; with zero tight edges the full deficit is
//     attributed to the tight nodes and no per-edge split is reported.
func buildCertificate(tr *transformed, pushed, eps float64) *Result {
	seen := tr.eng.reachable(tr.ss)

	// 1) Source side of the cut, coalesced and sorted.
	cutSet := make(map[string]struct{})
	for id, name := range tr.names {
		if seen[id] {
			cutSet[baseName(name)] = struct{}{}
		}
	}
	cut := make([]string, 0, len(cutSet))
	for name := range cutSet {
		cut = append(cut, name)
	}
	sort.Strings(cut)

	// 2) Saturated original edges crossing the cut, one per endpoint pair.
	type pair struct{ from, to string }
	reported := make(map[pair]struct{})
	var tightEdges []TightEdge
	for _, m := range tr.edges {
		if !seen[m.uID] || seen[m.vID] || tr.eng.residualOn(m.arc) > eps {
			continue
		}
		key := pair{m.from, m.to}
		if _, dup := reported[key]; dup {
			continue
		}
		reported[key] = struct{}{}
		tightEdges = append(tightEdges, TightEdge{From: m.from, To: m.to})
	}

	// 3) Saturated cap arcs crossing the cut.
	tightNodes := make([]string, 0)
	for _, v := range tr.capNodes {
		id := tr.capArcs[v]
		if seen[tr.eng.tail(id)] && !seen[tr.eng.arcs[id].to] && tr.eng.residualOn(id) <= eps {
			tightNodes = append(tightNodes, v)
		}
	}

	// 4) Equal-split deficit attribution. The equal split (rather than a
	//    share proportional to existing flow) is part of the observable
	//    contract.
	deficit := math.Max(0, tr.required-pushed)
	if k := len(tightEdges); k > 0 && deficit > eps {
		share := deficit / float64(k)
		for i := range tightEdges {
			tightEdges[i].FlowNeeded = share
		}
	}
	if tightEdges == nil {
		tightEdges = []TightEdge{}
	}

	return &Result{
		Status:       StatusInfeasible,
		CutReachable: cut,
		Deficit: &Deficit{
			DemandBalance: deficit,
			TightNodes:    tightNodes,
			TightEdges:    tightEdges,
		},
	}
}
