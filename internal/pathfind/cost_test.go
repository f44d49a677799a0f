package pathfind

import (
	"testing"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// At lnbook-test scale (amount in the thousands, cltv_delta around 40) the
// CLTV risk term truncates to 0 and is easy to miss. Use a large amount and
// cltv_delta so amount*cltv*15/1e9 is unambiguously non-zero.
func TestAggregatePathCostIncludesCLTVRiskTerm(t *testing.T) {
	nodes := []models.NodeID{"alice", "bob", "dina"}
	edges := []models.Edge{
		{ChannelID: "ab", Source: "alice", Destination: "bob", CLTVDelta: 0},
		{ChannelID: "bd", Source: "bob", Destination: "dina", BaseFee: 0, ProportionalPPM: 0, CLTVDelta: 1000},
	}

	amount := int64(100_000_000)
	got := aggregatePathCost(nodes, edges, amount)

	wantRisk := amount * 1000 * 15 / 1_000_000_000
	if wantRisk == 0 {
		t.Fatal("test fixture does not actually exercise the risk term")
	}
	if got.Path[1].Fee != wantRisk {
		t.Fatalf("hop fee = %d, want %d (the CLTV risk term alone, base and proportional are 0)", got.Path[1].Fee, wantRisk)
	}
	if got.Amount != amount+wantRisk {
		t.Fatalf("aggregated amount = %d, want %d", got.Amount, amount+wantRisk)
	}
}
