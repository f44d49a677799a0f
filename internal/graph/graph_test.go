package graph

import (
	"testing"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

func lnbookGraph(balance int64) *Graph {
	nodes := []models.Node{{ID: "alice"}, {ID: "bob"}, {ID: "dina"}}
	edges := []models.Edge{
		{ChannelID: "ab", Source: "alice", Destination: "bob", BaseFee: 100, ProportionalPPM: 1000, HTLCMax: 1_000_000, Capacity: balance, Balance: balance},
		{ChannelID: "bd", Source: "bob", Destination: "dina", BaseFee: 75, ProportionalPPM: 1000, HTLCMax: 1_000_000, Capacity: balance, Balance: balance},
	}
	return FromTopology(nodes, edges)
}

func TestUpdateChannelBalance(t *testing.T) {
	g := lnbookGraph(70_000)
	g.UpdateChannelBalance("ab", 100)
	bal, ok := g.GetChannelBalance("alice", "ab")
	if !ok || bal != 100 {
		t.Fatalf("expected balance 100, got %d (ok=%v)", bal, ok)
	}
}

func TestUpdateChannelBalanceUnknownIsNoop(t *testing.T) {
	g := lnbookGraph(70_000)
	g.UpdateChannelBalance("nope", 100) // must not panic
	if g.EdgeCount() != 2 {
		t.Fatalf("expected edge count unchanged, got %d", g.EdgeCount())
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g := lnbookGraph(70_000)
	g.RemoveNode("bob")
	if g.HasNode("bob") {
		t.Fatalf("bob should be removed")
	}
	if len(g.OutgoingEdges("alice")) != 0 {
		t.Fatalf("alice->bob edge should be cascaded away")
	}
}

func TestGreatestSCCDeterministic(t *testing.T) {
	nodes := []models.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "isolated"}}
	edges := []models.Edge{
		{ChannelID: "ab", Source: "a", Destination: "b", Capacity: 1, Balance: 1},
		{ChannelID: "bc", Source: "b", Destination: "c", Capacity: 1, Balance: 1},
		{ChannelID: "ca", Source: "c", Destination: "a", Capacity: 1, Balance: 1},
	}
	g := FromTopology(nodes, edges)

	first := g.GreatestStronglyConnectedComponent().NodeIDs()
	second := g.GreatestStronglyConnectedComponent().NodeIDs()

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3-node SCC, got %d and %d", len(first), len(second))
	}
	if g.GreatestStronglyConnectedComponent().HasNode("isolated") {
		t.Fatalf("isolated node must not be in the greatest SCC")
	}
}
