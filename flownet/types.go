package flownet

// DefaultEpsilon is the tolerance used for all capacity comparisons when
// Options.Epsilon is unset. Residuals at or below this value are treated
// as saturated, both by the max-flow engine and by the certificate builder.
const DefaultEpsilon = 1e-9

// Edge is a directed belt segment with throughput bounds.
// Flow routed over the edge must satisfy Lo ≤ f ≤ Hi (within tolerance).
// Parallel edges between the same pair of nodes are tracked independently,
// never merged; Name disambiguates their deterministic ordering.
type Edge struct {
	From string
	To   string
	Lo   float64
	Hi   float64
	Name string // optional label; defaults supplied by the parser
}

// Problem is the canonical description of one feasibility instance:
// a directed network with per-edge [Lo,Hi] bounds, optional per-node
// throughput caps, exactly one source with a declared supply, and one sink.
//
// Fields:
//   - Nodes    — declared node names; names appearing only on edges,
//     in Sources or as Sink are inferred automatically.
//   - Edges    — directed bounded edges (parallel edges permitted).
//   - NodeCaps — optional per-node throughput caps; entries for the
//     source or the sink are ignored.
//   - Sources  — must contain exactly one {name: supply} entry.
//   - Sink     — the sink node name.
type Problem struct {
	Nodes    []string
	Edges    []Edge
	NodeCaps map[string]float64
	Sources  map[string]float64
	Sink     string
}

// Status distinguishes the two valid solver outcomes. Infeasibility is a
// successfully computed result carrying a certificate, not an error.
type Status string

const (
	// StatusOK reports a concrete flow assignment satisfying every bound and cap.
	StatusOK Status = "ok"
	// StatusInfeasible reports a minimum-cut certificate of infeasibility.
	StatusInfeasible Status = "infeasible"
)

// EdgeFlow is the recovered flow on one original edge, reported under the
// edge's original endpoint names (split halves coalesced).
type EdgeFlow struct {
	From string
	To   string
	Flow float64
}

// TightEdge is an original edge that is saturated and crosses the minimum
// cut from the source side to the sink side. FlowNeeded is this edge's
// equal share of the total deficit.
type TightEdge struct {
	From       string
	To         string
	FlowNeeded float64
}

// Deficit is the numeric part of an infeasibility certificate.
//
// DemandBalance is the shortfall: the super-source capacity that could not
// be saturated. It is distributed equally across TightEdges; when no tight
// edge crosses the cut, the full deficit is attributed to TightNodes alone
// and no per-edge split is reported.
type Deficit struct {
	DemandBalance float64
	TightNodes    []string
	TightEdges    []TightEdge
}

// Result is the outcome of one solve.
//
//   - StatusOK:         MaxFlowPerMin and Flows are populated.
//   - StatusInfeasible: CutReachable and Deficit are populated.
//
// Identical input always yields an identical Result: node indexing is fixed
// by lexicographic name order and every later stage iterates in index order.
type Result struct {
	Status        Status
	MaxFlowPerMin float64
	Flows         []EdgeFlow
	CutReachable  []string
	Deficit       *Deficit
}

// Options configures a solve.
//   - Epsilon: residual capacities ≤ Epsilon are treated as saturated
//     (default 1e-9). The same tolerance drives both the engine's
//     augmenting-path admission and the certificate's "tight" classification.
//   - Verbose: if true, log each blocking-flow push to stdout.
type Options struct {
	Epsilon float64
	Verbose bool
}

// DefaultOptions returns production-safe defaults: Epsilon=1e-9, Verbose off.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}

// normalize fills in defaults for zero-valued fields.
func (o *Options) normalize() {
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
}
