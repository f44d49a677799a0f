package sim

import (
	"testing"

	"github.com/rawblock/pcn-simulator/internal/adversary"
	"github.com/rawblock/pcn-simulator/internal/config"
	"github.com/rawblock/pcn-simulator/internal/diversity"
	"github.com/rawblock/pcn-simulator/internal/graph"
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

func TestRunProducesReportWithCorrectCounts(t *testing.T) {
	g := lnbook(70_000)
	cfg := config.SimConfig{
		Seed:          1,
		AmountSat:     5,
		NumPairs:      3,
		RoutingMetric: models.RoutingMetricMinFee,
		PaymentParts:  models.PaymentPartsSingle,
	}
	combi := config.WeightPartsCombi{Metric: models.RoutingMetricMinFee, Parts: models.PaymentPartsSingle}

	report := Run(g, cfg, combi, nil)
	if report.TotalPayments != 3 {
		t.Fatalf("expected 3 payments, got %d", report.TotalPayments)
	}
	if report.SucceededPayments+report.FailedPayments != report.TotalPayments {
		t.Fatal("succeeded+failed should equal total")
	}
	if len(report.Diversity) != len(diversity.Lambdas) {
		t.Fatalf("expected %d diversity entries, got %d", len(diversity.Lambdas), len(report.Diversity))
	}
}

func TestRunWithRandomAdversarySelection(t *testing.T) {
	g := lnbook(70_000)
	cfg := config.SimConfig{
		Seed:                2,
		AmountSat:           5,
		NumPairs:            2,
		RoutingMetric:       models.RoutingMetricMinFee,
		PaymentParts:        models.PaymentPartsSingle,
		AdversarySelections: []models.AdversarySelectionStrategy{models.AdversaryRandom},
		AdversaryPercent:    50,
	}
	combi := config.WeightPartsCombi{Metric: models.RoutingMetricMinFee, Parts: models.PaymentPartsSingle}

	report := Run(g, cfg, combi, nil)
	if len(report.AdversaryStats) != 1 {
		t.Fatalf("expected 1 adversary stats entry, got %d", len(report.AdversaryStats))
	}
	if report.AdversaryStats[0].Selection != models.AdversaryRandom {
		t.Fatalf("expected random selection, got %q", report.AdversaryStats[0].Selection)
	}
}

func TestRunMissingRankingFileProducesEmptyAdversarySet(t *testing.T) {
	g := lnbook(70_000)
	cfg := config.SimConfig{
		Seed:                3,
		AmountSat:           5,
		NumPairs:            1,
		RoutingMetric:       models.RoutingMetricMinFee,
		PaymentParts:        models.PaymentPartsSingle,
		AdversarySelections: []models.AdversarySelectionStrategy{models.AdversaryHighBetweenness},
		AdversaryPercent:    20,
	}
	combi := config.WeightPartsCombi{Metric: models.RoutingMetricMinFee, Parts: models.PaymentPartsSingle}
	missing := func(models.AdversarySelectionStrategy) ([]adversary.NodeRank, bool) { return nil, false }

	report := Run(g, cfg, combi, missing)
	if len(report.AdversaryStats[0].AdversaryNodes) != 0 {
		t.Fatal("expected an empty adversary set when the ranking file load fails")
	}
}

func TestRunBatchProducesOneReportPerScenario(t *testing.T) {
	g := lnbook(70_000)
	cfg := config.SimConfig{
		Seed:          5,
		NumPairs:      2,
		RoutingMetric: models.RoutingMetricMinFee,
		PaymentParts:  models.PaymentPartsSingle,
	}
	reports := RunBatch(g, cfg, []int64{5, 10}, nil)
	if len(reports) != 2*len(config.AllWeightPartsCombis()) {
		t.Fatalf("expected %d reports, got %d", 2*len(config.AllWeightPartsCombis()), len(reports))
	}
}
