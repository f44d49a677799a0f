package pathfind

import (
	"sort"
	"strings"

	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// DefaultK is the default number of loopless shortest paths Yen's
// algorithm returns (spec.md §6 "Constants").
const DefaultK = 20

type yenPath struct {
	nodes []models.NodeID
	edges []models.Edge
	cost  int64
}

func pathKey(nodes []models.NodeID) string {
	ss := make([]string, len(nodes))
	for i, n := range nodes {
		ss[i] = string(n)
	}
	return strings.Join(ss, ">")
}

// yenKShortestPaths implements Yen's loopless k-shortest-paths algorithm
// over g under weight function w for a payment of `amount`, src != dst
// already validated by the caller.
func yenKShortestPaths(g *graph.Graph, w weight.Func, src, dst models.NodeID, amount int64, k int) []yenPath {
	first := dijkstra(g, w, amount, src, src, dst, nil, nil)
	if !first.ok {
		return nil
	}

	A := []yenPath{{nodes: first.nodes, edges: first.edges, cost: first.cost}}
	seen := map[string]bool{pathKey(first.nodes): true}

	var B []yenPath

	for len(A) < k {
		prev := A[len(A)-1]

		for i := 0; i < len(prev.nodes)-1; i++ {
			spurNode := prev.nodes[i]
			rootNodes := prev.nodes[:i+1]
			rootKey := pathKey(rootNodes)

			bannedEdges := map[string]bool{}
			for _, p := range A {
				if len(p.nodes) <= i {
					continue
				}
				if pathKey(p.nodes[:i+1]) == rootKey {
					bannedEdges[p.edges[i].ChannelID] = true
				}
			}

			bannedNodes := map[string]bool{}
			for _, n := range rootNodes[:len(rootNodes)-1] {
				bannedNodes[string(n)] = true
			}

			spur := dijkstra(g, w, amount, src, spurNode, dst, bannedNodes, bannedEdges)
			if !spur.ok {
				continue
			}

			totalNodes := append(append([]models.NodeID{}, rootNodes[:len(rootNodes)-1]...), spur.nodes...)
			totalEdges := append(append([]models.Edge{}, prev.edges[:i]...), spur.edges...)

			rootCost := int64(0)
			for j := 0; j < i; j++ {
				rootCost += edgeCost(w, src, prev.nodes[j], prev.edges[j], amount)
			}
			totalCost := rootCost + spur.cost

			key := pathKey(totalNodes)
			if seen[key] {
				continue
			}
			dup := false
			for _, b := range B {
				if pathKey(b.nodes) == key {
					dup = true
					break
				}
			}
			if !dup {
				B = append(B, yenPath{nodes: totalNodes, edges: totalEdges, cost: totalCost})
			}
		}

		if len(B) == 0 {
			break
		}

		sort.SliceStable(B, func(a, bIdx int) bool {
			if B[a].cost != B[bIdx].cost {
				return B[a].cost < B[bIdx].cost
			}
			return pathKey(B[a].nodes) < pathKey(B[bIdx].nodes)
		})

		next := B[0]
		B = B[1:]
		A = append(A, next)
		seen[pathKey(next.nodes)] = true
	}

	return A
}
