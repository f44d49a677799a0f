// Package pathfind implements the k-shortest-paths engine (spec.md §4.B):
// Yen's loopless algorithm over a pluggable edge-weight function, plus the
// destination-first aggregated cost pass that turns a node/edge sequence
// into a CandidatePath with real fees, timelocks and debit amount.
package pathfind

import (
	"sort"

	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// Finder runs Yen's k-shortest-paths over a fixed graph and weight
// function.
type Finder struct {
	g *graph.Graph
	w weight.Func
	k int
}

// New builds a Finder. k <= 0 selects DefaultK.
func New(g *graph.Graph, w weight.Func, k int) *Finder {
	if k <= 0 {
		k = DefaultK
	}
	return &Finder{g: g, w: w, k: k}
}

// FindPaths returns up to K candidate paths from src to dst able to carry
// amount, sorted ascending by aggregated weight (spec.md §4.B). Returns an
// empty slice if src == dst, amount <= 0, or no path exists.
func (f *Finder) FindPaths(src, dst models.NodeID, amount int64) []models.CandidatePath {
	if src == dst || amount <= 0 {
		return nil
	}

	raw := yenKShortestPaths(f.g, f.w, src, dst, amount, f.k)
	if len(raw) == 0 {
		return nil
	}

	out := make([]models.CandidatePath, len(raw))
	for i, p := range raw {
		cand := aggregatePathCost(p.nodes, p.edges, amount)
		cand.Weight = rankWeight(f.w, src, p.nodes, p.edges, amount)
		out[i] = cand
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight < out[j].Weight })
	return out
}

// ShortestPathNodes returns the node sequence of the single cheapest path
// from src to dst able to carry amount under g's current balances and w's
// weight function. Used by the adversary engine (spec.md §4.F step 4) to
// re-derive a node's local view of the shortest route to a candidate
// destination, independent of Yen's k-best ranking machinery.
func ShortestPathNodes(g *graph.Graph, w weight.Func, src, dst models.NodeID, amount int64) ([]models.NodeID, bool) {
	if src == dst || amount <= 0 {
		return nil, false
	}
	res := dijkstra(g, w, amount, src, src, dst, nil, nil)
	if !res.ok {
		return nil, false
	}
	return res.nodes, true
}
