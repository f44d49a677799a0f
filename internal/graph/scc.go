package graph

import (
	"sort"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// tarjan holds the working state for one run of Tarjan's SCC algorithm
// over outgoing_edges. Node ids are visited in sorted order so that,
// given identical input, the resulting component partition is
// deterministic (spec.md §8 "SCC determinism").
type tarjan struct {
	g        *Graph
	index    int
	indices  map[models.NodeID]int
	lowlink  map[models.NodeID]int
	onStack  map[models.NodeID]bool
	stack    []models.NodeID
	sccs     [][]models.NodeID
}

// stronglyConnectedComponents returns every SCC of g, each as a sorted
// slice of node ids, in the order Tarjan's algorithm completes them (a
// component comes after every component reachable from it).
func stronglyConnectedComponents(g *Graph) [][]models.NodeID {
	t := &tarjan{
		g:       g,
		indices: make(map[models.NodeID]int),
		lowlink: make(map[models.NodeID]int),
		onStack: make(map[models.NodeID]bool),
	}

	ids := g.NodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if _, seen := t.indices[id]; !seen {
			t.strongConnect(id)
		}
	}
	return t.sccs
}

func (t *tarjan) strongConnect(v models.NodeID) {
	t.indices[v] = t.index
	t.lowlink[v] = t.index
	t.index++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	neighbors := t.g.OutgoingEdges(v)
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].Destination < neighbors[j].Destination })

	seenDst := make(map[models.NodeID]bool)
	for _, e := range neighbors {
		w := e.Destination
		if seenDst[w] {
			continue
		}
		seenDst[w] = true

		if _, visited := t.indices[w]; !visited {
			t.strongConnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.indices[w] < t.lowlink[v] {
				t.lowlink[v] = t.indices[w]
			}
		}
	}

	if t.lowlink[v] == t.indices[v] {
		var component []models.NodeID
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		sort.Slice(component, func(i, j int) bool { return component[i] < component[j] })
		t.sccs = append(t.sccs, component)
	}
}

// GreatestStronglyConnectedComponent returns a new graph containing only
// the nodes of the largest SCC and the edges whose both endpoints lie
// within it. Ties go to the component completed first (spec.md §4.A).
func (g *Graph) GreatestStronglyConnectedComponent() *Graph {
	sccs := stronglyConnectedComponents(g)

	var best []models.NodeID
	for _, c := range sccs {
		if len(c) > len(best) {
			best = c
		}
	}

	keep := make(map[models.NodeID]struct{}, len(best))
	for _, id := range best {
		keep[id] = struct{}{}
	}

	out := New()
	for id := range keep {
		out.nodes[id] = struct{}{}
	}
	for src := range keep {
		for _, e := range g.OutgoingEdges(src) {
			if _, ok := keep[e.Destination]; !ok {
				continue
			}
			edge := e.Clone()
			out.outgoing[src] = append(out.outgoing[src], &edge)
			out.byChan[edge.ChannelID] = &edge
		}
	}
	return out
}
