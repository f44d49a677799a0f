package pathfind

import (
	"testing"

	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// lnbook builds the textbook alice->bob->chan->dina channel graph used by
// spec.md §8 scenario 1, with uniform balance on every edge.
func lnbook(balance int64) *graph.Graph {
	nodes := []models.Node{{ID: "alice"}, {ID: "bob"}, {ID: "chan"}, {ID: "dina"}}
	edges := []models.Edge{
		{ChannelID: "ab", Source: "alice", Destination: "bob", BaseFee: 0, ProportionalPPM: 0, HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
		{ChannelID: "bc", Source: "bob", Destination: "chan", BaseFee: 100, ProportionalPPM: 0, HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
		{ChannelID: "cd", Source: "chan", Destination: "dina", BaseFee: 75, ProportionalPPM: 0, HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
	}
	return graph.FromTopology(nodes, edges)
}

func TestFindPathsTrivialMinFee(t *testing.T) {
	g := lnbook(70_000)
	f := New(g, weight.MinFee{}, 0)
	paths := f.FindPaths("alice", "dina", 5000)
	if len(paths) == 0 {
		t.Fatal("expected at least one path")
	}
	top := paths[0]
	ids := top.Path.NodeIDs()
	want := []models.NodeID{"alice", "bob", "chan", "dina"}
	if len(ids) != len(want) {
		t.Fatalf("expected path length %d, got %d (%v)", len(want), len(ids), ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected node %d to be %s, got %s", i, want[i], ids[i])
		}
	}
	if top.Amount != 5175 {
		t.Fatalf("expected aggregated amount 5175 (5000 + 175 fee), got %d", top.Amount)
	}
}

func TestFindPathsMonotonicWeight(t *testing.T) {
	g := lnbook(70_000)
	f := New(g, weight.MinFee{}, 5)
	paths := f.FindPaths("alice", "dina", 5000)
	for i := 1; i < len(paths); i++ {
		if paths[i].Weight < paths[i-1].Weight {
			t.Fatalf("paths not sorted ascending by weight at index %d: %d < %d", i, paths[i].Weight, paths[i-1].Weight)
		}
	}
}

func TestFindPathsNoRoute(t *testing.T) {
	nodes := []models.Node{{ID: "a"}, {ID: "b"}}
	g := graph.FromTopology(nodes, nil)
	f := New(g, weight.MinFee{}, 0)
	if paths := f.FindPaths("a", "b", 100); len(paths) != 0 {
		t.Fatalf("expected no paths, got %d", len(paths))
	}
}

func TestFindPathsRejectsSameSrcDst(t *testing.T) {
	g := lnbook(70_000)
	f := New(g, weight.MinFee{}, 0)
	if paths := f.FindPaths("alice", "alice", 100); paths != nil {
		t.Fatalf("expected nil for src==dst, got %v", paths)
	}
}

func TestFindPathsMaxProbBounded(t *testing.T) {
	g := lnbook(70_000)
	f := New(g, weight.MaxProb{}, 0)
	paths := f.FindPaths("alice", "dina", 5000)
	for _, p := range paths {
		if p.Weight != 0 && p.Weight != 1 {
			t.Fatalf("MaxProb candidate weight must be 0 or 1, got %d", p.Weight)
		}
	}
}
