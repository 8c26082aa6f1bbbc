package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/katalvlaran/beltflow/flownet"
	"github.com/katalvlaran/beltflow/steady"
)

var (
	// ErrMissingSink indicates the network document lacks a "sink" field.
	ErrMissingSink = errors.New(`schema: network input requires a "sink" field`)
	// ErrMissingMachines indicates the plant document lacks "machines".
	ErrMissingMachines = errors.New(`schema: plant input requires a "machines" field`)
	// ErrMissingRecipes indicates the plant document has neither
	// "recipes" nor the historical "recipies" spelling.
	ErrMissingRecipes = errors.New(`schema: plant input requires a "recipes" (or "recipies") field`)
)

// networkInput is the wire shape of a belts problem document.
type networkInput struct {
	Nodes     []string           `json:"nodes"`
	Edges     []networkEdge      `json:"edges"`
	NodeCaps  map[string]float64 `json:"node_caps"`
	Sources   map[string]float64 `json:"sources"`
	Sink      *string            `json:"sink"`
	Tolerance *float64           `json:"tolerance"`
}

type networkEdge struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Lo   float64 `json:"lo"`
	Hi   float64 `json:"hi"`
	Name string  `json:"name"`
}

// ParseNetwork decodes a belts problem document.
//
// Defaults and normalizations applied here, not in the solver:
//   - tolerance defaults to flownet.DefaultEpsilon;
//   - unnamed edges get positional names e0, e1, … so parallel edges
//     order deterministically;
//   - node caps declared on the source or the sink are dropped.
//
// Structural solver checks (single source, bounds, …) stay with
// flownet.Solve; only document-shape defects are rejected here.
func ParseNetwork(data []byte) (*flownet.Problem, flownet.Options, error) {
	var in networkInput
	opts := flownet.DefaultOptions()
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, opts, fmt.Errorf("schema: decode network input: %w", err)
	}
	if in.Sink == nil {
		return nil, opts, ErrMissingSink
	}
	if in.Tolerance != nil {
		opts.Epsilon = *in.Tolerance
	}

	p := &flownet.Problem{
		Nodes:    in.Nodes,
		NodeCaps: make(map[string]float64, len(in.NodeCaps)),
		Sources:  in.Sources,
		Sink:     *in.Sink,
	}
	for i, e := range in.Edges {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("e%d", i)
		}
		p.Edges = append(p.Edges, flownet.Edge{
			From: e.From, To: e.To,
			Lo: e.Lo, Hi: e.Hi,
			Name: name,
		})
	}
	for node, c := range in.NodeCaps {
		if _, isSource := in.Sources[node]; isSource || node == *in.Sink {
			continue
		}
		p.NodeCaps[node] = c
	}

	return p, opts, nil
}

// plantInput is the wire shape of a factory planning document.
type plantInput struct {
	Machines map[string]machineInput `json:"machines"`
	Recipes  map[string]recipeInput  `json:"recipes"`
	Recipies map[string]recipeInput  `json:"recipies"` // historical spelling
	Modules  map[string]moduleInput  `json:"modules"`
	Limits   limitsInput             `json:"limits"`
	Target   targetInput             `json:"target"`
}

type machineInput struct {
	CraftsPerMin float64 `json:"crafts_per_min"`
}

type moduleInput struct {
	Speed float64 `json:"speed"`
	Prod  float64 `json:"prod"`
}

type recipeInput struct {
	Machine string             `json:"machine"`
	TimeS   float64            `json:"time_s"`
	In      map[string]float64 `json:"in"`
	Out     map[string]float64 `json:"out"`
}

type limitsInput struct {
	RawSupplyPerMin map[string]float64 `json:"raw_supply_per_min"`
	MaxMachines     map[string]int     `json:"max_machines"`
}

type targetInput struct {
	Item       string  `json:"item"`
	RatePerMin float64 `json:"rate_per_min"`
}

// ParsePlant decodes a factory planning document. Either "recipes" or the
// historical "recipies" spelling is accepted; "recipes" wins when both
// appear.
func ParsePlant(data []byte) (*steady.Plant, error) {
	var in plantInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("schema: decode plant input: %w", err)
	}
	if in.Machines == nil {
		return nil, ErrMissingMachines
	}
	recipes := in.Recipes
	if recipes == nil {
		recipes = in.Recipies
	}
	if recipes == nil {
		return nil, ErrMissingRecipes
	}

	p := &steady.Plant{
		Machines: make(map[string]steady.Machine, len(in.Machines)),
		Modules:  make(map[string]steady.ModuleEffect, len(in.Modules)),
		Recipes:  make(map[string]steady.Recipe, len(recipes)),
		Limits: steady.Limits{
			RawSupplyPerMin: in.Limits.RawSupplyPerMin,
			MaxMachines:     in.Limits.MaxMachines,
		},
		Target: steady.Target{Item: in.Target.Item, RatePerMin: in.Target.RatePerMin},
	}
	for name, m := range in.Machines {
		p.Machines[name] = steady.Machine{CraftsPerMin: m.CraftsPerMin}
	}
	for name, mod := range in.Modules {
		p.Modules[name] = steady.ModuleEffect{Speed: mod.Speed, Prod: mod.Prod}
	}
	for name, r := range recipes {
		p.Recipes[name] = steady.Recipe{
			Machine: r.Machine,
			TimeS:   r.TimeS,
			In:      r.In,
			Out:     r.Out,
		}
	}

	return p, nil
}
