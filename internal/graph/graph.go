// Package graph implements the directed, capacity-constrained multigraph
// that backs the payment-channel network: a mapping from source node to
// its set of outgoing edges, plus per-edge mutable balances.
package graph

import (
	"log"
	"sync"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// Graph is a directed multigraph keyed by source node. Edges are addressed
// by (source, channelId); parallel edges between the same ordered node
// pair are permitted. Balance mutations are in place — the caller is
// responsible for ordering (spec.md §4.A).
type Graph struct {
	mu       sync.RWMutex
	nodes    map[models.NodeID]struct{}
	outgoing map[models.NodeID][]*models.Edge
	byChan   map[string]*models.Edge // channelId -> edge, source-side lookup
}

// New builds an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[models.NodeID]struct{}),
		outgoing: make(map[models.NodeID][]*models.Edge),
		byChan:   make(map[string]*models.Edge),
	}
}

// FromTopology constructs a graph from an immutable topology description.
// Edges whose endpoints are not both present in nodes are dropped by the
// caller (internal/topology) before this is invoked; FromTopology itself
// adds every node referenced by an edge to satisfy invariant I1.
func FromTopology(nodes []models.Node, edges []models.Edge) *Graph {
	g := New()
	for _, n := range nodes {
		g.nodes[n.ID] = struct{}{}
	}
	for i := range edges {
		e := edges[i]
		g.nodes[e.Source] = struct{}{}
		g.nodes[e.Destination] = struct{}{}
		ptr := &e
		g.outgoing[e.Source] = append(g.outgoing[e.Source], ptr)
		g.byChan[e.ChannelID] = ptr
	}
	return g
}

// NodeIDs returns every node in the graph, in no particular order.
func (g *Graph) NodeIDs() []models.NodeID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]models.NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}

// HasNode reports whether id is a member of the node set.
func (g *Graph) HasNode(id models.NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// OutgoingEdges returns the edges leaving node. A non-existent node yields
// an empty (nil) slice, not an error (spec.md §4.A failure mode).
func (g *Graph) OutgoingEdges(node models.NodeID) []models.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ptrs := g.outgoing[node]
	out := make([]models.Edge, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}

// AllEdgesBetween returns every parallel edge from src directly to dst.
func (g *Graph) AllEdgesBetween(src, dst models.NodeID) []models.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []models.Edge
	for _, p := range g.outgoing[src] {
		if p.Destination == dst {
			out = append(out, *p)
		}
	}
	return out
}

// GetChannelBalance returns the balance of the named channel as seen from
// node's outgoing side, and whether that channel/side exists.
func (g *Graph) GetChannelBalance(node models.NodeID, channelID string) (int64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, p := range g.outgoing[node] {
		if p.ChannelID == channelID {
			return p.Balance, true
		}
	}
	return 0, false
}

// UpdateChannelBalance sets the balance of the named channel in place. A
// channel id unknown to this graph is a logged no-op (spec.md §4.A).
func (g *Graph) UpdateChannelBalance(channelID string, newBalance int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.byChan[channelID]
	if !ok {
		log.Printf("graph: update_channel_balance on unknown channel %q (no-op)", channelID)
		return
	}
	e.Balance = newBalance
}

// RemoveEdge deletes every edge directly from src to dst.
func (g *Graph) RemoveEdge(src, dst models.NodeID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	kept := g.outgoing[src][:0]
	for _, p := range g.outgoing[src] {
		if p.Destination == dst {
			delete(g.byChan, p.ChannelID)
			continue
		}
		kept = append(kept, p)
	}
	g.outgoing[src] = kept
}

// RemoveNode deletes id and cascades to every edge touching it, either as
// source or as destination.
func (g *Graph) RemoveNode(id models.NodeID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.nodes, id)
	for _, p := range g.outgoing[id] {
		delete(g.byChan, p.ChannelID)
	}
	delete(g.outgoing, id)
	for src, edges := range g.outgoing {
		kept := edges[:0]
		for _, p := range edges {
			if p.Destination == id {
				delete(g.byChan, p.ChannelID)
				continue
			}
			kept = append(kept, p)
		}
		g.outgoing[src] = kept
	}
}

// Clone deep-copies the graph so a worker (parallel scenario run, or a
// resilience re-run) can mutate its own balances without affecting the
// original (spec.md §5, §9 "parallel scenario runs").
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c := New()
	for id := range g.nodes {
		c.nodes[id] = struct{}{}
	}
	for src, edges := range g.outgoing {
		cloned := make([]*models.Edge, len(edges))
		for i, p := range edges {
			e := p.Clone()
			cloned[i] = &e
			c.byChan[e.ChannelID] = &e
		}
		c.outgoing[src] = cloned
	}
	return c
}

// EdgeCount returns the total number of directed edges in the graph.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, edges := range g.outgoing {
		n += len(edges)
	}
	return n
}
