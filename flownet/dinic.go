package flownet

import (
	"fmt"
	"math"
)

// arc is one directed residual arc in the arena. Forward and reverse
// partners are appended adjacently, so the partner of arcs[i] is arcs[i^1]:
// pushing f units decrements arcs[i].cap and increments arcs[i^1].cap,
// which lets the engine undo routing decisions and lets callers read the
// flow carried by a forward arc directly off its partner.
type arc struct {
	to  int     // head node index
	cap float64 // remaining residual capacity
}

// engine is an index-arena Dinic max-flow solver: an arena of arc records
// plus per-node adjacency lists of arc indices. No pointer graph is built,
// so cycles in the input need no special handling.
//
// Complexity:
//
//	Time:   O(V² · E) in general; O(E·√V) on unit-capacity networks.
//	Memory: O(V + E) for the arena, level and current-arc slices.
type engine struct {
	arcs    []arc
	adj     [][]int32 // adj[v] = indices into arcs, in insertion order
	level   []int
	iter    []int // per-node current-arc pointer, monotone within a phase
	eps     float64
	verbose bool
}

// newEngine allocates an engine over n nodes with tolerance eps.
func newEngine(n int, eps float64) *engine {
	return &engine{
		adj:   make([][]int32, n),
		level: make([]int, n),
		iter:  make([]int, n),
		eps:   eps,
	}
}

// addArc appends a forward arc from→to with the given capacity and its
// zero-capacity reverse partner, returning the forward arc's index.
// Negative capacities are clamped to zero (tolerance-level noise only;
// structural negatives are rejected during validation).
func (e *engine) addArc(from, to int, capacity float64) int {
	id := len(e.arcs)
	e.arcs = append(e.arcs, arc{to: to, cap: math.Max(0, capacity)}, arc{to: from})
	e.adj[from] = append(e.adj[from], int32(id))
	e.adj[to] = append(e.adj[to], int32(id+1))

	return id
}

// flowOn reports the flow currently carried by forward arc id: the
// capacity accumulated on its reverse partner.
func (e *engine) flowOn(id int) float64 {
	return e.arcs[id^1].cap
}

// residualOn reports the remaining forward capacity of arc id.
func (e *engine) residualOn(id int) float64 {
	return e.arcs[id].cap
}

// tail reports the tail node of forward arc id (the head of its partner).
func (e *engine) tail(id int) int {
	return e.arcs[id^1].to
}

// bfs builds the level graph: level[v] = BFS distance from s over arcs with
// residual capacity > eps. Reports whether t is reachable.
func (e *engine) bfs(s, t int) bool {
	for i := range e.level {
		e.level[i] = -1
	}
	queue := []int{s}
	e.level[s] = 0
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, id := range e.adj[u] {
			a := e.arcs[id]
			if a.cap > e.eps && e.level[a.to] < 0 {
				e.level[a.to] = e.level[u] + 1
				queue = append(queue, a.to)
			}
		}
	}

	return e.level[t] >= 0
}

// dfs pushes up to avail units from u toward t along level-increasing arcs.
// iter[u] advances monotonically, so within one blocking-flow phase every
// arc is scanned at most once. Returns the amount actually sent.
func (e *engine) dfs(u, t int, avail float64) float64 {
	if u == t {
		return avail
	}
	for ; e.iter[u] < len(e.adj[u]); e.iter[u]++ {
		id := e.adj[u][e.iter[u]]
		a := e.arcs[id]
		if a.cap <= e.eps || e.level[u] >= e.level[a.to] {
			continue
		}
		send := avail
		if a.cap < send {
			send = a.cap
		}
		if pushed := e.dfs(a.to, t, send); pushed > e.eps {
			e.arcs[id].cap -= pushed
			e.arcs[id^1].cap += pushed

			return pushed
		}
	}

	return 0
}

// maxFlow runs Dinic from s to t and returns the total flow routed.
//
// Steps:
//  1. BFS the level graph; stop when t is unreachable (O(V+E) per phase).
//  2. Reset current-arc pointers, then push blocking flow via repeated DFS
//     until no augmentation above tolerance remains (O(V·E) per phase).
//  3. Accumulate; each phase strictly increases the s→t level distance,
//     which bounds the number of phases by V and guarantees termination.
//
// The final residual capacities stay in the arena; the outcome builder
// reads flows and reachability from there without any extra bookkeeping.
func (e *engine) maxFlow(s, t int) float64 {
	var total float64
	for e.bfs(s, t) {
		for i := range e.iter {
			e.iter[i] = 0
		}
		for {
			pushed := e.dfs(s, t, math.Inf(1))
			if pushed <= e.eps {
				break
			}
			total += pushed
			if e.verbose {
				fmt.Printf("flownet: pushed %g, total %g\n", pushed, total)
			}
		}
	}

	return total
}

// reachable marks every node reachable from s over arcs with residual
// capacity > eps in the final residual graph. Used for cut construction.
func (e *engine) reachable(s int) []bool {
	seen := make([]bool, len(e.adj))
	queue := []int{s}
	seen[s] = true
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, id := range e.adj[u] {
			a := e.arcs[id]
			if a.cap > e.eps && !seen[a.to] {
				seen[a.to] = true
				queue = append(queue, a.to)
			}
		}
	}

	return seen
}
