// Package beltflow answers two independent factory-logistics questions
// over the same plant: can the belt network carry the required item flow,
// and can the machines craft items fast enough to sustain it?
//
// 🚀 What is beltflow?
//
//	A deterministic, pure-computation toolkit:
//		• flownet/ — feasibility-and-flow solver for belt networks with
//		  per-edge [lo,hi] throughput bounds, per-node caps and a single
//		  source/sink pair; produces a concrete flow assignment or a
//		  minimum-cut infeasibility certificate (Dinic's algorithm over a
//		  lower-bound/circulation reduction)
//		• steady/  — steady-state production-rate planner: stoichiometric
//		  balance over recipes and machines with speed/productivity
//		  modules, solved by nonnegative least-squares
//		• schema/  — JSON boundary: problem-document decoding and
//		  canonical result rendering for both solvers
//		• cmd/belts, cmd/factory — stdin→stdout JSON filters
//
// ✨ Why choose beltflow?
//
//   - Deterministic by construction – lexicographic indexing and sorted
//     iteration everywhere; identical input yields byte-identical output
//   - Infeasibility is an answer, not an error – every "no" comes with a
//     certificate (minimum cut, tight edges/nodes, deficit) or a
//     bottleneck-hint list
//   - Pure Go cores – no I/O, no shared state, trivially testable
//
// Quick ASCII example (belt network, 1500 items/min from s to sink):
//
//	        ┌──▶ b ──▶┐
//	s ──▶ a │         sink
//	        └──▶ c ──▶┘
//
// Start with flownet.Solve and steady.Solve; the cmd/ filters show the
// full parse→solve→render round trip.
package beltflow
