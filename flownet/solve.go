package flownet

// Solve computes a feasible flow assignment for p, or a deterministic
// infeasibility certificate when none exists.
//
// It returns:
//   - *Result — StatusOK with per-edge flows, or StatusInfeasible with a
//     minimum-cut certificate (both are valid outcomes, never errors)
//   - err     — a structural validation error (ErrNoSource,
//     ErrMultipleSources, ErrNoSink, ErrSourceIsSink,
//     ErrNegativeSupply, BoundError), raised before any
//     transform runs
//
// Steps:
//  1. Normalize options and validate the instance (O(V + E)).
//  2. Reduce to plain max-flow: split capped nodes, fold lower bounds
//     into balances, wire super-source/super-sink (O(V log V + E log E)).
//  3. Run Dinic from super-source to super-sink.
//  4. Feasible iff the flow saturates every super-source arc (within
//     tolerance); build the flow assignment or the certificate from the
//     final residual graph.
//
// The solve is a pure function of p: single-threaded, no I/O, no shared
// state. Identical input yields byte-identical results.
func Solve(p *Problem, opts Options) (*Result, error) {
	// 1) Options and structural validation.
	opts.normalize()
	if err := validate(p, opts.Epsilon); err != nil {
		return nil, err
	}

	// 2) Node-splitting, lower-bound reduction, circulation wiring.
	tr := buildTransformed(p, opts)

	// 3) Max-flow on the transformed graph.
	pushed := tr.eng.maxFlow(tr.ss, tr.tt)

	// 4) Outcome.
	if tr.required-pushed <= opts.Epsilon {
		return buildSuccess(tr, p, opts.Epsilon), nil
	}

	return buildCertificate(tr, pushed, opts.Epsilon), nil
}

// validate fails fast on structurally invalid instances. Infeasibility is
// NOT detected here: it is a computed outcome, not a rejection.
func validate(p *Problem, eps float64) error {
	switch len(p.Sources) {
	case 0:
		return ErrNoSource
	case 1:
		// exactly one source, as required
	default:
		return ErrMultipleSources
	}
	if p.Sink == "" {
		return ErrNoSink
	}

	source, supply := sourceEntry(p)
	if source == p.Sink {
		return ErrSourceIsSink
	}
	if supply < -eps {
		return ErrNegativeSupply
	}

	for _, e := range p.Edges {
		if e.Lo < -eps || e.Hi < -eps || e.Hi < e.Lo-eps {
			return BoundError{From: e.From, To: e.To, Lo: e.Lo, Hi: e.Hi}
		}
	}

	return nil
}
