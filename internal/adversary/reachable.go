package adversary

import (
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// reduceGraph keeps only edges whose capacity is at least minCapacity
// (spec.md §4.F step 2).
func reduceGraph(g *graph.Graph, minCapacity int64) *graph.Graph {
	nodeIDs := g.NodeIDs()
	nodes := make([]models.Node, len(nodeIDs))
	for i, id := range nodeIDs {
		nodes[i] = models.Node{ID: id}
	}

	var edges []models.Edge
	for _, id := range nodeIDs {
		for _, e := range g.OutgoingEdges(id) {
			if e.Capacity >= minCapacity {
				edges = append(edges, e)
			}
		}
	}
	return graph.FromTopology(nodes, edges)
}

// reachablePaths enumerates loopless walks of at most maxHops from start
// whose cumulative cltv delta exactly equals ttlTarget and whose every
// traversed edge has capacity >= minCapacity (spec.md §4.F step 3, "phase
// 1"). Each returned slice is a node sequence starting at start.
func reachablePaths(g *graph.Graph, start models.NodeID, ttlTarget uint32, minCapacity int64, maxHops int) [][]models.NodeID {
	var out [][]models.NodeID
	visited := map[models.NodeID]bool{start: true}

	var dfs func(node models.NodeID, path []models.NodeID, cum uint32, depth int)
	dfs = func(node models.NodeID, path []models.NodeID, cum uint32, depth int) {
		if cum == ttlTarget {
			cp := make([]models.NodeID, len(path))
			copy(cp, path)
			out = append(out, cp)
		}
		if depth >= maxHops {
			return
		}
		for _, e := range g.OutgoingEdges(node) {
			if e.Capacity < minCapacity || visited[e.Destination] {
				continue
			}
			visited[e.Destination] = true
			dfs(e.Destination, append(path, e.Destination), cum+e.CLTVDelta, depth+1)
			delete(visited, e.Destination)
		}
	}

	dfs(start, []models.NodeID{start}, 0, 0)
	return out
}

func nodeSeqEqual(a, b []models.NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsNode(seq []models.NodeID, id models.NodeID) bool {
	for _, n := range seq {
		if n == id {
			return true
		}
	}
	return false
}
