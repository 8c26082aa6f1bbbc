package steady

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoichSuite verifies matrix assembly and the machine-effect folding.
type StoichSuite struct {
	suite.Suite
}

func fixture() *Plant {
	return &Plant{
		Machines: map[string]Machine{"press": {CraftsPerMin: 12}},
		Modules:  map[string]ModuleEffect{"press": {Speed: 0.5, Prod: 0.25}},
		Recipes: map[string]Recipe{
			"rod": {
				Machine: "press",
				TimeS:   20,
				In:      map[string]float64{"ingot": 2},
				Out:     map[string]float64{"rod": 4},
			},
		},
		Limits: Limits{RawSupplyPerMin: map[string]float64{"ingot": 50}},
		Target: Target{Item: "rod", RatePerMin: 10},
	}
}

// TestMachineEffects folds speed into craft rate and prod into a
// separate output multiplier.
func (s *StoichSuite) TestMachineEffects() {
	craftSpeed, prodMult := machineEffects(fixture())
	require.InDelta(s.T(), 18, craftSpeed["press"], 1e-12) // 12·1.5
	require.InDelta(s.T(), 1.25, prodMult["press"], 1e-12)
}

// TestEffCraftsPerMin scales the adjusted rate by 60/TimeS and rejects
// non-positive craft times.
func (s *StoichSuite) TestEffCraftsPerMin() {
	craftSpeed, _ := machineEffects(fixture())
	r := fixture().Recipes["rod"]
	require.InDelta(s.T(), 54, effCraftsPerMin(r, craftSpeed), 1e-12) // 18·60/20

	r.TimeS = 0
	require.Zero(s.T(), effCraftsPerMin(r, craftSpeed))
}

// TestItemUniverseSorted gathers recipe items, raw caps and the target.
func (s *StoichSuite) TestItemUniverseSorted() {
	p := fixture()
	p.Target.Item = "zz_export" // not produced; universe must still hold it
	require.Equal(s.T(), []string{"ingot", "rod", "zz_export"}, itemUniverse(p))
}

// TestBuildStoichProductivity: inputs negative and unscaled, outputs
// positive and multiplied by productivity.
func (s *StoichSuite) TestBuildStoichProductivity() {
	p := fixture()
	items := itemUniverse(p)
	index := map[string]int{}
	for i, item := range items {
		index[item] = i
	}
	_, prodMult := machineEffects(p)

	m := buildStoich(p, recipeOrder(p), items, index, prodMult)
	require.InDelta(s.T(), -2, m.At(index["ingot"], 0), 1e-12)
	require.InDelta(s.T(), 5, m.At(index["rod"], 0), 1e-12) // 4·1.25
}

// TestSplitItems partitions into raws and intermediates minus the target.
func (s *StoichSuite) TestSplitItems() {
	raws, intermediates := splitItems(
		[]string{"a", "b", "c", "t"},
		map[string]float64{"a": 1, "c": 2},
		"t",
	)
	require.Equal(s.T(), []string{"a", "c"}, raws)
	require.Equal(s.T(), []string{"b"}, intermediates)
}

// TestAssembleEqualitiesShape: one row per intermediate, target and raw;
// raw rows carry an identity column for their draw variable.
func (s *StoichSuite) TestAssembleEqualitiesShape() {
	p := fixture()
	items := itemUniverse(p)
	index := map[string]int{}
	for i, item := range items {
		index[item] = i
	}
	_, prodMult := machineEffects(p)
	m := buildStoich(p, recipeOrder(p), items, index, prodMult)
	raws, intermediates := splitItems(items, p.Limits.RawSupplyPerMin, p.Target.Item)

	aeq, beq, rawCol := assembleEqualities(m, index, raws, intermediates, p.Target.Item, 10)
	rows, cols := aeq.Dims()
	require.Equal(s.T(), 2, rows) // target + 1 raw, no intermediates
	require.Equal(s.T(), 2, cols) // 1 recipe + 1 raw draw

	require.InDelta(s.T(), 10, beq.AtVec(0), 1e-12) // target row first here
	require.InDelta(s.T(), 1, aeq.At(1, 1), 1e-12)  // ingot draw identity
	require.Equal(s.T(), 0, rawCol["ingot"])
}

// TestNonnegLeastSquaresExact solves a consistent square system exactly.
func (s *StoichSuite) TestNonnegLeastSquaresExact() {
	p := fixture()
	items := itemUniverse(p)
	index := map[string]int{}
	for i, item := range items {
		index[item] = i
	}
	_, prodMult := machineEffects(p)
	m := buildStoich(p, recipeOrder(p), items, index, prodMult)
	raws, intermediates := splitItems(items, p.Limits.RawSupplyPerMin, p.Target.Item)
	aeq, beq, _ := assembleEqualities(m, index, raws, intermediates, p.Target.Item, 10)

	y, ok := nonnegLeastSquares(aeq, beq, defaultRefineIterations, DefaultTolerance)
	require.True(s.T(), ok)
	require.InDelta(s.T(), 2, y[0], 1e-9) // 10 rods at 5 effective out/craft
	require.InDelta(s.T(), 4, y[1], 1e-9) // ingot draw 2·2
}

// Entry point for running the suite.
func TestStoichSuite(t *testing.T) {
	suite.Run(t, new(StoichSuite))
}
