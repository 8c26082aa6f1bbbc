package steady

// DefaultTolerance bounds the accepted ∞-norm residual of the steady-state
// balance system when Options.Tolerance is unset.
const DefaultTolerance = 1e-9

// defaultRefineIterations caps the active-set refinement loop.
const defaultRefineIterations = 30

// ceilSlack keeps 1.00000000001 machine-equivalents from rounding up to 2.
const ceilSlack = 1e-12

// Machine is a producer type with a base crafting rate.
type Machine struct {
	CraftsPerMin float64
}

// ModuleEffect modifies one machine type: Speed scales crafting rate,
// Prod scales recipe outputs only (productivity).
type ModuleEffect struct {
	Speed float64
	Prod  float64
}

// Recipe converts input items to output items on one machine type.
// TimeS is the base craft time in seconds.
type Recipe struct {
	Machine string
	TimeS   float64
	In      map[string]float64
	Out     map[string]float64
}

// Limits bounds the plant: raw item draw per minute and machine counts.
// Machines absent from MaxMachines are capped at zero.
type Limits struct {
	RawSupplyPerMin map[string]float64
	MaxMachines     map[string]int
}

// Target names the item and rate the plant must sustain.
type Target struct {
	Item       string
	RatePerMin float64
}

// Plant is the full production-planning instance.
type Plant struct {
	Machines map[string]Machine
	Modules  map[string]ModuleEffect
	Recipes  map[string]Recipe
	Limits   Limits
	Target   Target
}

// Status distinguishes the two valid solver outcomes; an unreachable
// target is a computed result with bottleneck hints, not an error.
type Status string

const (
	// StatusOK reports a sustainable steady-state plan.
	StatusOK Status = "ok"
	// StatusInfeasible reports the bottlenecks blocking the target rate.
	StatusInfeasible Status = "infeasible"
)

// Result is the outcome of one plan.
//
//   - StatusOK: crafts/min per recipe, integer machine counts per machine
//     type, and raw draw per minute.
//   - StatusInfeasible: BottleneckHint lists the binding constraints in a
//     stable, de-duplicated order.
type Result struct {
	Status                Status
	PerRecipeCraftsPerMin map[string]float64
	PerMachineCounts      map[string]int
	RawConsumptionPerMin  map[string]float64
	BottleneckHint        []string
}

// Options configures a plan.
//   - Tolerance: accepted residual of the balance equalities (default 1e-9).
//   - RefineIterations: active-set refinement rounds (default 30).
type Options struct {
	Tolerance        float64
	RefineIterations int
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance, RefineIterations: defaultRefineIterations}
}

// normalize fills in defaults for zero-valued fields.
func (o *Options) normalize() {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.RefineIterations <= 0 {
		o.RefineIterations = defaultRefineIterations
	}
}
