// Package steady plans steady-state production rates for a plant of
// crafting machines: given machine types (with optional speed/productivity
// modules), recipes, raw-supply limits and machine-count caps, it finds
// per-recipe crafting rates that sustain a target item rate — or names the
// bottlenecks that make the target unreachable.
//
// # Model
//
// The plant is linear: with x the per-recipe crafts/min and S the
// stoichiometric matrix (inputs negative, outputs positive and scaled by
// productivity), a sustainable plan satisfies
//
//	S_i·x = 0        for every intermediate item i
//	S_t·x = rate     for the target item t
//	S_r·x + u_r = 0  for every raw item r, with draw u_r ≥ 0
//
// The solver finds a nonnegative [x;u] by least-squares (gonum QR/LQ)
// with a small active-set refinement: clamp negatives, re-solve on the
// positive column set, accept when the ∞-norm residual is within
// tolerance.
//
// # Outcomes
//
// A plan is valid when raw items are net-consumed, raw draws respect the
// supply caps, every recipe's machine runs at a positive effective rate,
// and the rounded-up machine counts fit under the per-machine caps. Any
// violation yields StatusInfeasible with stable BottleneckHint strings
// ("iron_ore supply", "smelter cap", ...); structural defects (no target
// item, a recipe on an undeclared machine) are errors instead.
//
// This package shares no code or data structures with flownet: belt
// feasibility and steady-state planning are independent problems over the
// same factory.
package steady
