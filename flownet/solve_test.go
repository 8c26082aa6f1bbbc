package flownet_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/beltflow/flownet"
)

const tol = 1e-6

// SolveSuite exercises the full solver pipeline under feasible, infeasible
// and structurally invalid instances.
type SolveSuite struct {
	suite.Suite
}

// fanout is the shared five-edge belt layout: s feeds a, which fans out
// to the sink via b (lower-bounded) and c. The b/c branches absorb only
// 1300 of the 1500 supply, so the bare layout is infeasible by 200.
func fanout() *flownet.Problem {
	return &flownet.Problem{
		Edges: []flownet.Edge{
			{From: "s", To: "a", Lo: 0, Hi: 1500},
			{From: "a", To: "b", Lo: 0, Hi: 800},
			{From: "b", To: "sink", Lo: 200, Hi: 800},
			{From: "a", To: "c", Lo: 0, Hi: 500},
			{From: "c", To: "sink", Lo: 0, Hi: 500},
		},
		Sources: map[string]float64{"s": 1500},
		Sink:    "sink",
	}
}

// assertFeasible checks the contract of every StatusOK result: per-edge
// bounds, conservation at interior nodes, and source outflow == supply.
func assertFeasible(t *testing.T, p *flownet.Problem, res *flownet.Result) {
	t.Helper()
	require.Equal(t, flownet.StatusOK, res.Status)
	require.Len(t, res.Flows, len(p.Edges))

	source, supply := "", 0.0
	for name, s := range p.Sources {
		source, supply = name, s
	}

	// Bounds per original edge. Flows are reported in deterministic
	// (From,To,Name) order, which matches the sorted problem edges.
	net := map[string]float64{}
	for _, f := range res.Flows {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, e := range p.Edges {
			if e.From == f.From && e.To == f.To {
				lo, hi = math.Min(lo, e.Lo), math.Max(hi, e.Hi)
			}
		}
		require.GreaterOrEqual(t, f.Flow, lo-tol, "edge %s→%s below lower bound", f.From, f.To)
		require.LessOrEqual(t, f.Flow, hi+tol, "edge %s→%s above upper bound", f.From, f.To)
		net[f.From] -= f.Flow
		net[f.To] += f.Flow
	}

	// Conservation at every interior node; supply leaves the source.
	for node, n := range net {
		switch node {
		case source:
			require.InDelta(t, -supply, n, tol, "source outflow must equal supply")
		case p.Sink:
			require.InDelta(t, supply, n, tol, "sink inflow must equal supply")
		default:
			require.InDelta(t, 0, n, tol, "conservation violated at %q", node)
		}
	}

	// Node caps: interior throughput (inflow) never exceeds the cap.
	inflow := map[string]float64{}
	for _, f := range res.Flows {
		inflow[f.To] += f.Flow
	}
	for node, c := range p.NodeCaps {
		if node == source || node == p.Sink {
			continue
		}
		require.LessOrEqual(t, inflow[node], c+tol, "cap exceeded at %q", node)
	}
}

// TestFeasibleFanOut widens the branches to 900/600 so the full 1500/min
// supply routes through, 900 via the lower-bounded b belt and 600 via c.
func (s *SolveSuite) TestFeasibleFanOut() {
	p := fanout()
	p.Edges[1] = flownet.Edge{From: "a", To: "b", Lo: 0, Hi: 900}
	p.Edges[2] = flownet.Edge{From: "b", To: "sink", Lo: 200, Hi: 900}
	p.Edges[3] = flownet.Edge{From: "a", To: "c", Lo: 0, Hi: 600}
	p.Edges[4] = flownet.Edge{From: "c", To: "sink", Lo: 0, Hi: 600}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	assertFeasible(s.T(), p, res)
	require.InDelta(s.T(), 1500, res.MaxFlowPerMin, tol)
}

// TestNarrowedFanOutInfeasible shrinks b→sink to 300 so the sink can
// absorb only 800 of the 1500 supply; the certificate must name the
// saturated crossing edges and split the 700 deficit equally.
func (s *SolveSuite) TestNarrowedFanOutInfeasible() {
	p := fanout()
	p.Edges[2] = flownet.Edge{From: "b", To: "sink", Lo: 0, Hi: 300}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), flownet.StatusInfeasible, res.Status)

	require.Contains(s.T(), res.CutReachable, "s")
	require.Contains(s.T(), res.CutReachable, "a")
	require.NotContains(s.T(), res.CutReachable, "sink")

	require.NotNil(s.T(), res.Deficit)
	require.InDelta(s.T(), 700, res.Deficit.DemandBalance, tol)
	require.Empty(s.T(), res.Deficit.TightNodes)

	// Equal-split policy: every share identical, shares sum to the deficit.
	require.Len(s.T(), res.Deficit.TightEdges, 2)
	var sum float64
	for _, te := range res.Deficit.TightEdges {
		require.InDelta(s.T(), res.Deficit.TightEdges[0].FlowNeeded, te.FlowNeeded, tol)
		sum += te.FlowNeeded
	}
	require.InDelta(s.T(), res.Deficit.DemandBalance, sum, tol)
}

// TestCappedFixture reproduces the reference belt layout with node caps on
// a, b and c: the 200/min lower bound on b→sink strands 200 units of the
// 1500 supply behind a's saturated fan-out.
func (s *SolveSuite) TestCappedFixture() {
	p := fanout()
	p.Nodes = []string{"s", "a", "b", "c", "sink"}
	p.NodeCaps = map[string]float64{"a": 1500, "b": 800, "c": 500}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), flownet.StatusInfeasible, res.Status)

	require.Equal(s.T(), []string{"a", "s"}, res.CutReachable)
	require.InDelta(s.T(), 200, res.Deficit.DemandBalance, tol)
	require.Empty(s.T(), res.Deficit.TightNodes)
	require.Equal(s.T(), []flownet.TightEdge{
		{From: "a", To: "b", FlowNeeded: 100},
		{From: "a", To: "c", FlowNeeded: 100},
	}, res.Deficit.TightEdges)
}

// TestNodeCapBottleneck forces the cap arc itself across the cut: the
// certificate must report the capped node, not merely a saturated edge.
func (s *SolveSuite) TestNodeCapBottleneck() {
	p := &flownet.Problem{
		Edges: []flownet.Edge{
			{From: "s", To: "a", Lo: 0, Hi: 1000},
			{From: "a", To: "t", Lo: 0, Hi: 1000},
		},
		NodeCaps: map[string]float64{"a": 100},
		Sources:  map[string]float64{"s": 500},
		Sink:     "t",
	}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), flownet.StatusInfeasible, res.Status)

	require.InDelta(s.T(), 400, res.Deficit.DemandBalance, tol)
	require.Equal(s.T(), []string{"a"}, res.Deficit.TightNodes)
	// Full deficit attributed to the tight node; no per-edge split.
	require.Empty(s.T(), res.Deficit.TightEdges)
}

// TestNodeCapFeasibleThroughput verifies a binding-but-sufficient cap.
func (s *SolveSuite) TestNodeCapFeasibleThroughput() {
	p := &flownet.Problem{
		Edges: []flownet.Edge{
			{From: "s", To: "a", Lo: 0, Hi: 1000},
			{From: "a", To: "t", Lo: 0, Hi: 1000},
		},
		NodeCaps: map[string]float64{"a": 100},
		Sources:  map[string]float64{"s": 100},
		Sink:     "t",
	}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	assertFeasible(s.T(), p, res)
	require.InDelta(s.T(), 100, res.MaxFlowPerMin, tol)
}

// TestLowerBoundForcesRouting checks that a lower-bounded side branch
// receives its mandatory share even when a direct route exists.
func (s *SolveSuite) TestLowerBoundForcesRouting() {
	p := &flownet.Problem{
		Edges: []flownet.Edge{
			{From: "s", To: "a", Lo: 0, Hi: 10},
			{From: "a", To: "t", Lo: 0, Hi: 10},
			{From: "a", To: "b", Lo: 2, Hi: 5},
			{From: "b", To: "t", Lo: 0, Hi: 5},
		},
		Sources: map[string]float64{"s": 4},
		Sink:    "t",
	}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	assertFeasible(s.T(), p, res)
	for _, f := range res.Flows {
		if f.From == "a" && f.To == "b" {
			require.GreaterOrEqual(s.T(), f.Flow, 2.0-tol)
		}
	}
}

// TestLowerBoundExceedsSupply: a mandatory 5 units cannot be sustained by
// a 2-unit supply; infeasible with deficit 3 and an empty tight-edge set.
func (s *SolveSuite) TestLowerBoundExceedsSupply() {
	p := &flownet.Problem{
		Edges:   []flownet.Edge{{From: "s", To: "t", Lo: 5, Hi: 10}},
		Sources: map[string]float64{"s": 2},
		Sink:    "t",
	}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), flownet.StatusInfeasible, res.Status)
	require.InDelta(s.T(), 3, res.Deficit.DemandBalance, tol)
}

// TestParallelEdgesIndependent keeps two s→t belts separate in the output.
func (s *SolveSuite) TestParallelEdgesIndependent() {
	p := &flownet.Problem{
		Edges: []flownet.Edge{
			{From: "s", To: "t", Lo: 0, Hi: 3, Name: "e0"},
			{From: "s", To: "t", Lo: 2, Hi: 4, Name: "e1"},
		},
		Sources: map[string]float64{"s": 6},
		Sink:    "t",
	}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), flownet.StatusOK, res.Status)
	require.Len(s.T(), res.Flows, 2)

	var total float64
	for _, f := range res.Flows {
		total += f.Flow
	}
	require.InDelta(s.T(), 6, total, tol)
}

// TestCyclicGraph routes through a cycle; no acyclicity assumption exists.
func (s *SolveSuite) TestCyclicGraph() {
	p := &flownet.Problem{
		Edges: []flownet.Edge{
			{From: "s", To: "a", Lo: 0, Hi: 10},
			{From: "a", To: "b", Lo: 0, Hi: 10},
			{From: "b", To: "a", Lo: 0, Hi: 10}, // back edge
			{From: "b", To: "t", Lo: 0, Hi: 10},
		},
		Sources: map[string]float64{"s": 7},
		Sink:    "t",
	}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	assertFeasible(s.T(), p, res)
}

// TestZeroSupply is a degenerate but valid instance.
func (s *SolveSuite) TestZeroSupply() {
	p := &flownet.Problem{
		Edges:   []flownet.Edge{{From: "s", To: "t", Lo: 0, Hi: 5}},
		Sources: map[string]float64{"s": 0},
		Sink:    "t",
	}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), flownet.StatusOK, res.Status)
	require.InDelta(s.T(), 0, res.MaxFlowPerMin, tol)
}

// TestIdempotence re-solves the same instance and requires identical results.
func (s *SolveSuite) TestIdempotence() {
	p := fanout()
	p.NodeCaps = map[string]float64{"a": 1500, "b": 800, "c": 500}

	first, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	second, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), first, second)
}

// TestValidationErrors covers every structural rejection, each of which
// must fire before any transform runs and must be distinct from infeasible.
func (s *SolveSuite) TestValidationErrors() {
	opts := flownet.DefaultOptions()

	_, err := flownet.Solve(&flownet.Problem{Sink: "t"}, opts)
	require.True(s.T(), errors.Is(err, flownet.ErrNoSource))

	_, err = flownet.Solve(&flownet.Problem{
		Sources: map[string]float64{"s1": 1, "s2": 1}, Sink: "t",
	}, opts)
	require.True(s.T(), errors.Is(err, flownet.ErrMultipleSources))

	_, err = flownet.Solve(&flownet.Problem{
		Sources: map[string]float64{"s": 1},
	}, opts)
	require.True(s.T(), errors.Is(err, flownet.ErrNoSink))

	_, err = flownet.Solve(&flownet.Problem{
		Sources: map[string]float64{"s": 1}, Sink: "s",
	}, opts)
	require.True(s.T(), errors.Is(err, flownet.ErrSourceIsSink))

	_, err = flownet.Solve(&flownet.Problem{
		Sources: map[string]float64{"s": -4}, Sink: "t",
	}, opts)
	require.True(s.T(), errors.Is(err, flownet.ErrNegativeSupply))

	_, err = flownet.Solve(&flownet.Problem{
		Edges:   []flownet.Edge{{From: "s", To: "t", Lo: 5, Hi: 2}},
		Sources: map[string]float64{"s": 1}, Sink: "t",
	}, opts)
	var be flownet.BoundError
	require.True(s.T(), errors.As(err, &be))
	require.Equal(s.T(), "s", be.From)

	_, err = flownet.Solve(&flownet.Problem{
		Edges:   []flownet.Edge{{From: "s", To: "t", Lo: -1, Hi: 2}},
		Sources: map[string]float64{"s": 1}, Sink: "t",
	}, opts)
	require.True(s.T(), errors.As(err, &be))
}

// TestCapOnSourceIgnored: caps declared on the source or sink are inert.
func (s *SolveSuite) TestCapOnSourceIgnored() {
	p := &flownet.Problem{
		Edges:    []flownet.Edge{{From: "s", To: "t", Lo: 0, Hi: 10}},
		NodeCaps: map[string]float64{"s": 1, "t": 1},
		Sources:  map[string]float64{"s": 8},
		Sink:     "t",
	}

	res, err := flownet.Solve(p, flownet.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), flownet.StatusOK, res.Status)
	require.InDelta(s.T(), 8, res.MaxFlowPerMin, tol)
}

// Entry point for running the suite.
func TestSolveSuite(t *testing.T) {
	suite.Run(t, new(SolveSuite))
}
