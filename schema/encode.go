package schema

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/beltflow/flownet"
	"github.com/katalvlaran/beltflow/steady"
)

// Wire shapes of the two result documents. Success and infeasible carry
// different fields, so each status renders its own struct; nil slices and
// maps are replaced by empty ones so the output always shows [] / {}.

type edgeFlowJSON struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Flow float64 `json:"flow"`
}

type networkOKJSON struct {
	Status        string         `json:"status"`
	MaxFlowPerMin float64        `json:"max_flow_per_min"`
	Flows         []edgeFlowJSON `json:"flows"`
}

type tightEdgeJSON struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	FlowNeeded float64 `json:"flow_needed"`
}

type deficitJSON struct {
	DemandBalance float64         `json:"demand_balance"`
	TightNodes    []string        `json:"tight_nodes"`
	TightEdges    []tightEdgeJSON `json:"tight_edges"`
}

type networkInfeasibleJSON struct {
	Status       string      `json:"status"`
	CutReachable []string    `json:"cut_reachable"`
	Deficit      deficitJSON `json:"deficit"`
}

// EncodeNetworkResult renders a flownet result to its canonical
// 2-space-indented JSON document.
func EncodeNetworkResult(res *flownet.Result) ([]byte, error) {
	switch res.Status {
	case flownet.StatusOK:
		out := networkOKJSON{
			Status:        string(res.Status),
			MaxFlowPerMin: res.MaxFlowPerMin,
			Flows:         make([]edgeFlowJSON, 0, len(res.Flows)),
		}
		for _, f := range res.Flows {
			out.Flows = append(out.Flows, edgeFlowJSON{From: f.From, To: f.To, Flow: f.Flow})
		}

		return json.MarshalIndent(out, "", "  ")

	case flownet.StatusInfeasible:
		out := networkInfeasibleJSON{
			Status:       string(res.Status),
			CutReachable: emptyIfNil(res.CutReachable),
			Deficit: deficitJSON{
				TightNodes: []string{},
				TightEdges: []tightEdgeJSON{},
			},
		}
		if res.Deficit != nil {
			out.Deficit.DemandBalance = res.Deficit.DemandBalance
			out.Deficit.TightNodes = emptyIfNil(res.Deficit.TightNodes)
			for _, te := range res.Deficit.TightEdges {
				out.Deficit.TightEdges = append(out.Deficit.TightEdges,
					tightEdgeJSON{From: te.From, To: te.To, FlowNeeded: te.FlowNeeded})
			}
		}

		return json.MarshalIndent(out, "", "  ")
	}

	return nil, fmt.Errorf("schema: unknown network result status %q", res.Status)
}

type plantOKJSON struct {
	Status                string             `json:"status"`
	PerRecipeCraftsPerMin map[string]float64 `json:"per_recipe_crafts_per_min"`
	PerMachineCounts      map[string]int     `json:"per_machine_counts"`
	RawConsumptionPerMin  map[string]float64 `json:"raw_consumption_per_min"`
}

type plantInfeasibleJSON struct {
	Status         string   `json:"status"`
	BottleneckHint []string `json:"bottleneck_hint"`
}

// EncodePlantResult renders a steady result to its canonical
// 2-space-indented JSON document. Map keys marshal sorted, so identical
// plans yield byte-identical documents.
func EncodePlantResult(res *steady.Result) ([]byte, error) {
	switch res.Status {
	case steady.StatusOK:
		out := plantOKJSON{
			Status:                string(res.Status),
			PerRecipeCraftsPerMin: emptyMapIfNil(res.PerRecipeCraftsPerMin),
			PerMachineCounts:      res.PerMachineCounts,
			RawConsumptionPerMin:  emptyMapIfNil(res.RawConsumptionPerMin),
		}
		if out.PerMachineCounts == nil {
			out.PerMachineCounts = map[string]int{}
		}

		return json.MarshalIndent(out, "", "  ")

	case steady.StatusInfeasible:
		return json.MarshalIndent(plantInfeasibleJSON{
			Status:         string(res.Status),
			BottleneckHint: emptyIfNil(res.BottleneckHint),
		}, "", "  ")
	}

	return nil, fmt.Errorf("schema: unknown plant result status %q", res.Status)
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

func emptyMapIfNil(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}

	return m
}
