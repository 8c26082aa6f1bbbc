// Package flownet solves feasibility-and-flow problems on directed networks
// with per-edge lower and upper throughput bounds, optional per-node caps,
// and exactly one source/sink pair. It either produces a concrete flow
// assignment satisfying every bound and cap, or a deterministic
// infeasibility certificate: a minimum cut, the tight edges and capped
// nodes across it, and the numeric deficit.
//
// # Pipeline
//
// The solver is a chain of additive transforms ending in a max-flow run;
// no stage mutates a previous stage's output, so every transformed arc
// stays traceable back to its original edge:
//
//	Graph Model → Node-Splitting → Lower-Bound Reduction →
//	Circulation Wiring → Dinic → Outcome Builder
//
//   - Node-splitting: a capped node v becomes v__in/v__out joined by one
//     cap arc of the cap's capacity.
//   - Lower-bound reduction: an edge [lo,hi] becomes an arc of capacity
//     hi−lo plus balance adjustments (+lo at the head, −lo at the tail).
//   - Circulation wiring: the required supply is folded into the source
//     and sink balances; a super-source feeds every positive balance and
//     a super-sink drains every negative one. The instance is feasible
//     iff max-flow saturates every super-source arc.
//
// # Engine
//
// Dinic's algorithm (level graph + blocking flow with per-node current-arc
// pointers) over an index arena of paired forward/reverse arcs.
//
//	Time:   O(V² · E) in general; O(E·√V) on unit-capacity networks.
//	Memory: O(V + E).
//
// Cyclic inputs are handled natively; no acyclicity assumption is made
// anywhere.
//
// # Determinism
//
// Node names are sorted lexicographically before stable integer indices
// are assigned; edges are ordered by (From, To, Name). Indices then drive
// every iteration, so identical input yields byte-identical output.
//
// # API
//
//	res, err := flownet.Solve(problem, flownet.DefaultOptions())
//
// A non-nil err is always a structural validation error (ErrNoSource,
// ErrMultipleSources, ErrNoSink, ErrSourceIsSink, ErrNegativeSupply,
// BoundError). Infeasibility is NOT an error: it is a StatusInfeasible
// Result carrying the certificate.
//
// All capacity comparisons — augmenting-path admission in the engine and
// "tight" classification in the certificate — share one Epsilon
// (default 1e-9), so near-zero residues are treated as saturated
// consistently in both places.
package flownet
