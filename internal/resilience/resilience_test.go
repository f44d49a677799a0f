package resilience

import (
	"testing"

	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/rng"
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// lnbook is the spec.md §8 scenario-6 topology: alice->bob->chan->dina.
func lnbook(balance int64) *graph.Graph {
	nodes := []models.Node{{ID: "alice"}, {ID: "bob"}, {ID: "chan"}, {ID: "dina"}, {ID: "eve"}}
	edges := []models.Edge{
		{ChannelID: "ab", Source: "alice", Destination: "bob", HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
		{ChannelID: "bc", Source: "bob", Destination: "chan", HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
		{ChannelID: "cd", Source: "chan", Destination: "dina", HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
		{ChannelID: "ea", Source: "eve", Destination: "alice", HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
	}
	return graph.FromTopology(nodes, edges)
}

func TestRerunDropsPairsWithRemovedEndpoint(t *testing.T) {
	g := lnbook(70_000)
	pairs := []rng.Pair{
		{Src: "alice", Dst: "bob"},
		{Src: "bob", Dst: "chan"},
		{Src: "bob", Dst: "dina"},
	}

	result := Rerun(g, weight.MinFee{}, pairs, []models.NodeID{"bob"}, 1000, models.PaymentPartsSingle, 0)

	if result.DroppedPairs != 3 {
		t.Fatalf("expected all 3 pairs dropped once bob (an endpoint of each) is removed, got %d", result.DroppedPairs)
	}
	if len(result.ReplayedPairs) != 0 {
		t.Fatalf("expected no surviving pairs, got %v", result.ReplayedPairs)
	}
}

func TestRerunReplaysSurvivingPairs(t *testing.T) {
	g := lnbook(70_000)
	pairs := []rng.Pair{
		{Src: "alice", Dst: "bob"},
		{Src: "eve", Dst: "dina"}, // dina is the removed target: this pair's endpoint no longer exists
	}

	result := Rerun(g, weight.MinFee{}, pairs, []models.NodeID{"dina"}, 1000, models.PaymentPartsSingle, 0)

	if result.DroppedPairs != 1 {
		t.Fatalf("expected 1 pair dropped (the one whose destination was removed), got %d", result.DroppedPairs)
	}
	if len(result.ReplayedPairs) != 1 || result.ReplayedPairs[0].Src != "alice" {
		t.Fatalf("expected alice->bob to survive, got %v", result.ReplayedPairs)
	}
	if len(result.Payments) != 1 {
		t.Fatalf("expected 1 replayed payment, got %d", len(result.Payments))
	}
	if result.SucceededCount != 1 {
		t.Fatalf("expected alice->bob (direct channel) to succeed, got succeeded=%d failed=%d", result.SucceededCount, result.FailedCount)
	}
}
