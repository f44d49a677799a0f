package simclock

import (
	"testing"

	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/payment"
	"github.com/rawblock/pcn-simulator/internal/pathfind"
	"github.com/rawblock/pcn-simulator/internal/rng"
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

func lnbook(balance int64) *graph.Graph {
	nodes := []models.Node{{ID: "alice"}, {ID: "bob"}, {ID: "chan"}, {ID: "dina"}}
	edges := []models.Edge{
		{ChannelID: "ab", Source: "alice", Destination: "bob", HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
		{ChannelID: "bc", Source: "bob", Destination: "chan", BaseFee: 100, HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
		{ChannelID: "cd", Source: "chan", Destination: "dina", BaseFee: 75, HTLCMax: balance, Capacity: balance, Balance: balance, CLTVDelta: 40},
	}
	return graph.FromTopology(nodes, edges)
}

func TestDriverRunSinglePaymentSucceeds(t *testing.T) {
	g := lnbook(70_000)
	invReg := payment.NewInvoiceRegistry()
	finder := pathfind.New(g, weight.MinFee{}, 0)
	d := NewDriver(g, invReg, finder, models.PaymentPartsSingle)

	results := d.Run([]rng.Pair{{Src: "alice", Dst: "dina"}}, 5000)
	if len(results) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(results))
	}
	if !results[0].Succeeded {
		t.Fatalf("expected payment to succeed, got reason %q", results[0].FailureReason)
	}
}

func TestDriverRunNoRouteFails(t *testing.T) {
	nodes := []models.Node{{ID: "alice"}, {ID: "dina"}}
	g := graph.FromTopology(nodes, nil)
	invReg := payment.NewInvoiceRegistry()
	finder := pathfind.New(g, weight.MinFee{}, 0)
	d := NewDriver(g, invReg, finder, models.PaymentPartsSingle)

	results := d.Run([]rng.Pair{{Src: "alice", Dst: "dina"}}, 5000)
	if len(results) != 1 || results[0].Succeeded {
		t.Fatal("expected the unroutable payment to fail")
	}
	if results[0].FailureReason != models.FailureNoRoute {
		t.Fatalf("expected no_route, got %q", results[0].FailureReason)
	}
}

func TestDriverRunStaggersScheduledTicks(t *testing.T) {
	g := lnbook(70_000)
	invReg := payment.NewInvoiceRegistry()
	finder := pathfind.New(g, weight.MinFee{}, 0)
	d := NewDriver(g, invReg, finder, models.PaymentPartsSingle)

	pairs := []rng.Pair{
		{Src: "alice", Dst: "dina"},
		{Src: "bob", Dst: "dina"},
		{Src: "chan", Dst: "dina"},
	}
	d.Run(pairs, 1000)

	tick := models.FromSecs(120)
	for i := 0; i < len(pairs); i++ {
		want := tick * models.Time(i)
		if _, ok := d.queue.buckets[want]; ok {
			t.Fatalf("tick %d should have drained during Run, bucket still present", i)
		}
	}
	if d.queue.now != tick*models.Time(len(pairs)-1) {
		t.Fatalf("expected clock to advance to the last payment's own tick (%d), got %d",
			tick*models.Time(len(pairs)-1), d.queue.now)
	}
}

func TestDriverRunPreservesSchedulingOrder(t *testing.T) {
	g := lnbook(70_000)
	invReg := payment.NewInvoiceRegistry()
	finder := pathfind.New(g, weight.MinFee{}, 0)
	d := NewDriver(g, invReg, finder, models.PaymentPartsSingle)

	pairs := []rng.Pair{{Src: "alice", Dst: "dina"}, {Src: "bob", Dst: "dina"}}
	results := d.Run(pairs, 1000)
	if len(results) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(results))
	}
	if results[0].Source != "alice" || results[1].Source != "bob" {
		t.Fatalf("expected scheduling order preserved, got %+v", results)
	}
}
