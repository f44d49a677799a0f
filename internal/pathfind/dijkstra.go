package pathfind

import (
	"container/heap"

	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// edgeCost scores the edge leaving `from`. The source of the overall search
// never pays a routing fee for its own first hop (spec.md §4.B): its
// outgoing edge is scored by the weight function's SourceWeight() instead
// of EdgeWeight(), regardless of which node the Dijkstra sub-search itself
// starts from (relevant when this is a Yen spur search).
func edgeCost(w weight.Func, trueSrc models.NodeID, from models.NodeID, e models.Edge, amount int64) int64 {
	if from == trueSrc {
		return w.SourceWeight()
	}
	return w.EdgeWeight(e, amount)
}

// cheapestParallelEdge returns the lowest-cost edge among the parallel
// edges from `from` to `to`, ties broken by channel id, skipping any
// banned channel.
func cheapestParallelEdge(edges []models.Edge, to models.NodeID, w weight.Func, trueSrc, from models.NodeID, amount int64, bannedEdges map[string]bool) (models.Edge, int64, bool) {
	var best models.Edge
	var bestCost int64
	found := false
	for _, e := range edges {
		if e.Destination != to {
			continue
		}
		if bannedEdges[e.ChannelID] {
			continue
		}
		c := edgeCost(w, trueSrc, from, e, amount)
		if !found || c < bestCost || (c == bestCost && e.ChannelID < best.ChannelID) {
			best, bestCost, found = e, c, true
		}
	}
	return best, bestCost, found
}

type pqItem struct {
	node models.NodeID
	dist int64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node < pq[j].node // lexicographic tie-break, spec.md §4.B
}
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)        { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstraResult is one shortest-path computation's outcome.
type dijkstraResult struct {
	nodes []models.NodeID
	edges []models.Edge // edges[i] connects nodes[i] -> nodes[i+1]
	cost  int64
	ok    bool
}

// dijkstra finds the cheapest loopless walk from `from` to `dst` under the
// active weight function, skipping bannedNodes (Yen's root-path exclusion)
// and bannedEdges (channel ids already used by a previously found path
// sharing the same root). trueSrc identifies the overall search's origin
// so the source-side fee exemption applies even in a Yen spur search.
func dijkstra(g *graph.Graph, w weight.Func, amount int64, trueSrc, from, dst models.NodeID, bannedNodes, bannedEdges map[string]bool) dijkstraResult {
	dist := map[models.NodeID]int64{from: 0}
	prevNode := map[models.NodeID]models.NodeID{}
	prevEdge := map[models.NodeID]models.Edge{}
	visited := map[models.NodeID]bool{}

	pq := &priorityQueue{{node: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == dst {
			break
		}

		edges := g.OutgoingEdges(cur.node)
		byDest := map[models.NodeID][]models.Edge{}
		for _, e := range edges {
			if bannedNodes[string(e.Destination)] {
				continue
			}
			if e.Balance < amount {
				continue
			}
			byDest[e.Destination] = append(byDest[e.Destination], e)
		}

		for to, parallels := range byDest {
			if visited[to] {
				continue
			}
			best, cost, found := cheapestParallelEdge(parallels, to, w, trueSrc, cur.node, amount, bannedEdges)
			if !found {
				continue
			}
			nd := dist[cur.node] + cost
			old, seen := dist[to]
			if !seen || nd < old {
				dist[to] = nd
				prevNode[to] = cur.node
				prevEdge[to] = best
				heap.Push(pq, pqItem{node: to, dist: nd})
			}
		}
	}

	finalCost, ok := dist[dst]
	if !ok {
		return dijkstraResult{}
	}

	var nodes []models.NodeID
	var edges []models.Edge
	n := dst
	for n != from {
		p, ok := prevNode[n]
		if !ok {
			return dijkstraResult{}
		}
		nodes = append([]models.NodeID{n}, nodes...)
		edges = append([]models.Edge{prevEdge[n]}, edges...)
		n = p
	}
	nodes = append([]models.NodeID{from}, nodes...)

	return dijkstraResult{nodes: nodes, edges: edges, cost: finalCost, ok: true}
}
