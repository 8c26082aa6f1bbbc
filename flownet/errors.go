package flownet

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSource indicates Problem.Sources is empty.
	ErrNoSource = errors.New("flownet: exactly one source with a declared supply is required")
	// ErrMultipleSources indicates Problem.Sources holds more than one entry.
	ErrMultipleSources = errors.New("flownet: more than one source given")
	// ErrNoSink indicates the sink name is empty.
	ErrNoSink = errors.New("flownet: sink name must not be empty")
	// ErrSourceIsSink indicates the source and sink name coincide.
	ErrSourceIsSink = errors.New("flownet: source and sink must be distinct")
	// ErrNegativeSupply indicates a negative declared supply.
	ErrNegativeSupply = errors.New("flownet: source supply must be non-negative")
)

// BoundError is returned when an edge carries invalid bounds:
// a negative Lo or Hi, or Hi < Lo.
type BoundError struct {
	From, To string
	Lo, Hi   float64
}

func (e BoundError) Error() string {
	return fmt.Sprintf("flownet: invalid bounds [%g,%g] on edge %q→%q", e.Lo, e.Hi, e.From, e.To)
}
