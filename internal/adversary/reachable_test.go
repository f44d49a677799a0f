package adversary

import (
	"testing"

	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

func diamond(capacity int64) *graph.Graph {
	nodes := []models.Node{{ID: "m"}, {ID: "x"}, {ID: "y"}, {ID: "z"}}
	edges := []models.Edge{
		{ChannelID: "mx", Source: "m", Destination: "x", Capacity: capacity, Balance: capacity, CLTVDelta: 10},
		{ChannelID: "my", Source: "m", Destination: "y", Capacity: capacity, Balance: capacity, CLTVDelta: 20},
		{ChannelID: "xz", Source: "x", Destination: "z", Capacity: capacity, Balance: capacity, CLTVDelta: 10},
		{ChannelID: "yz", Source: "y", Destination: "z", Capacity: capacity, Balance: capacity, CLTVDelta: 10},
	}
	return graph.FromTopology(nodes, edges)
}

func TestReduceGraphDropsUndersizedEdges(t *testing.T) {
	g := diamond(1000)
	reduced := reduceGraph(g, 1500)
	if len(reduced.OutgoingEdges("m")) != 0 {
		t.Fatal("expected all edges pruned below the min-capacity floor")
	}
}

func TestReachablePathsMatchesExactCLTVSum(t *testing.T) {
	g := diamond(1000)
	// m->x->z accumulates 10+10=20 and the one-hop m->y accumulates 20;
	// m->y->z accumulates 20+10=30 and does not match.
	paths := reachablePaths(g, "m", 20, 500, 3)
	if len(paths) != 2 {
		t.Fatalf("expected exactly 2 paths matching ttl 20, got %d: %v", len(paths), paths)
	}
	if !nodeSeqEqual(paths[0], []models.NodeID{"m", "x", "z"}) {
		t.Fatalf("expected m->x->z first, got %v", paths[0])
	}
	if !nodeSeqEqual(paths[1], []models.NodeID{"m", "y"}) {
		t.Fatalf("expected m->y second, got %v", paths[1])
	}
}

func TestReachablePathsRespectsHopBound(t *testing.T) {
	g := diamond(1000)
	paths := reachablePaths(g, "m", 30, 500, 1)
	if len(paths) != 0 {
		t.Fatalf("expected no matches within 1 hop, got %v", paths)
	}
}
