package flownet

import (
	"sort"
	"strings"
)

// Split-half name suffixes. A capped node v is replaced internally by
// v__in and v__out joined by one cap arc; certificates coalesce the halves
// back to v before reporting.
const (
	splitInSuffix  = "__in"
	splitOutSuffix = "__out"
)

// baseName coalesces a split-half name back to its original node name.
func baseName(name string) string {
	if strings.HasSuffix(name, splitOutSuffix) {
		return strings.TrimSuffix(name, splitOutSuffix)
	}
	if strings.HasSuffix(name, splitInSuffix) {
		return strings.TrimSuffix(name, splitInSuffix)
	}

	return name
}

// edgeMeta ties a transformed arc back to the original edge it encodes,
// so the outcome builder can recover real flow as Lo + carried and report
// it under the original endpoint names.
type edgeMeta struct {
	from, to string  // original endpoint names
	lo, hi   float64 // original bounds
	uID, vID int     // post-split endpoint indices
	arc      int     // forward arc index in the arena
}

// transformed is the fully reduced instance handed to the Dinic engine:
// split nodes, lower bounds folded into balances, super-source/super-sink
// wired from the signed balances. Each construction stage only adds
// structure; nothing built by an earlier stage is mutated in place.
type transformed struct {
	eng      *engine
	names    []string // id → post-split name, lexicographically indexed
	ss, tt   int      // super-source / super-sink indices
	required float64  // Σ positive balances = super-source capacity sum
	edges    []edgeMeta
	capNodes []string       // capped node names, sorted
	capArcs  map[string]int // capped node → its cap arc index
}

// sortEdges returns the problem's edges in deterministic order:
// by (From, To, Name), parallel edges kept independent. Combined with
// lexicographic node indexing this fixes every later iteration order.
func sortEdges(edges []Edge) []Edge {
	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}

		return a.Name < b.Name
	})

	return sorted
}

// buildTransformed reduces a validated Problem to a plain max-flow
// instance.
//
// Steps:
//  1. Collect the node universe: declared nodes ∪ edge endpoints ∪
//     source ∪ sink, plus v__in/v__out for every capped node; sort
//     lexicographically and assign stable indices (O(V log V)).
//  2. Allocate the engine over the universe plus SS and TT.
//  3. Add one cap arc v__in→v__out per capped node, in sorted order.
//  4. Lower-bound reduction: per original edge (sorted), one arc of
//     capacity Hi−Lo between its post-split endpoints, plus
//     balance[u]−=Lo, balance[v]+=Lo (O(E)).
//  5. Circulation wiring: balance[source]+=supply, balance[sink]−=supply
//     (the required sink→source circulation, no physical edge), then
//     SS→v for every positive balance and v→TT for every negative one.
//
// The sum of all balances is zero throughout, so the instance is feasible
// iff a max flow saturates every SS arc.
func buildTransformed(p *Problem, opts Options) *transformed {
	source, supply := sourceEntry(p)

	// 1) Caps on the source or the sink carry no meaning; drop them here
	//    so the splitter and the certificate agree on what is capped.
	caps := make(map[string]float64, len(p.NodeCaps))
	for v, c := range p.NodeCaps {
		if v == source || v == p.Sink {
			continue
		}
		caps[v] = c
	}

	// 1a) Node universe, split halves included.
	universe := make(map[string]struct{}, len(p.Nodes)+2*len(caps)+2)
	for _, n := range p.Nodes {
		universe[n] = struct{}{}
	}
	for _, e := range p.Edges {
		universe[e.From] = struct{}{}
		universe[e.To] = struct{}{}
	}
	universe[source] = struct{}{}
	universe[p.Sink] = struct{}{}
	for v := range caps {
		universe[v+splitInSuffix] = struct{}{}
		universe[v+splitOutSuffix] = struct{}{}
	}

	// 1b) Lexicographic sort → stable indices. This is the sole
	//     determinism mechanism: indices drive every later iteration.
	names := make([]string, 0, len(universe))
	for n := range universe {
		names = append(names, n)
	}
	sort.Strings(names)
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	// asTail/asHead map an original endpoint to its post-split node:
	// edges leaving a capped node leave v__out, edges entering reach v__in.
	asTail := func(v string) int {
		if _, capped := caps[v]; capped {
			return index[v+splitOutSuffix]
		}

		return index[v]
	}
	asHead := func(v string) int {
		if _, capped := caps[v]; capped {
			return index[v+splitInSuffix]
		}

		return index[v]
	}

	// 2) Engine over universe + SS + TT.
	n := len(names)
	tr := &transformed{
		eng:     newEngine(n+2, opts.Epsilon),
		names:   names,
		ss:      n,
		tt:      n + 1,
		capArcs: make(map[string]int, len(caps)),
	}
	tr.eng.verbose = opts.Verbose

	// 3) Cap arcs, sorted capped-node order.
	tr.capNodes = make([]string, 0, len(caps))
	for v := range caps {
		tr.capNodes = append(tr.capNodes, v)
	}
	sort.Strings(tr.capNodes)
	for _, v := range tr.capNodes {
		tr.capArcs[v] = tr.eng.addArc(index[v+splitInSuffix], index[v+splitOutSuffix], caps[v])
	}

	// 4) Lower-bound reduction over deterministically ordered edges.
	balance := make([]float64, n)
	for _, e := range sortEdges(p.Edges) {
		u, v := asTail(e.From), asHead(e.To)
		id := tr.eng.addArc(u, v, e.Hi-e.Lo)
		tr.edges = append(tr.edges, edgeMeta{
			from: e.From, to: e.To,
			lo: e.Lo, hi: e.Hi,
			uID: u, vID: v,
			arc: id,
		})
		balance[u] -= e.Lo
		balance[v] += e.Lo
	}

	// 5) Circulation trick: a required supply-unit circulation sink→source,
	//    expressed purely as balance adjustments.
	balance[asTail(source)] += supply
	balance[asHead(p.Sink)] -= supply

	// 5a) Wire SS/TT from the signed balances, ascending index order.
	for v, b := range balance {
		switch {
		case b > opts.Epsilon:
			tr.eng.addArc(tr.ss, v, b)
			tr.required += b
		case b < -opts.Epsilon:
			tr.eng.addArc(v, tr.tt, -b)
		}
	}

	return tr
}

// sourceEntry extracts the single {source: supply} pair of a validated
// Problem.
func sourceEntry(p *Problem) (string, float64) {
	for name, supply := range p.Sources {
		return name, supply
	}

	return "", 0
}
