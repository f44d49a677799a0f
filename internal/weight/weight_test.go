package weight

import (
	"testing"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

func TestMinFeeAtLeastBaseFee(t *testing.T) {
	e := models.Edge{BaseFee: 100, ProportionalPPM: 1000, CLTVDelta: 40, HTLCMax: 1_000_000}
	w := MinFee{}.EdgeWeight(e, 5000)
	if w < e.BaseFee {
		t.Fatalf("MinFee weight %d below base fee %d", w, e.BaseFee)
	}
}

func TestMinFeeTrivialExample(t *testing.T) {
	// lnbook alice->bob->chan->dina example (spec.md §8 scenario 1): the
	// chan->dina edge's base_fee=75 (no proportional part) plus bob->chan's
	// base_fee=100 make up the aggregated 175 msat fee.
	e := models.Edge{BaseFee: 75, ProportionalPPM: 0, CLTVDelta: 0}
	w := MinFee{}.EdgeWeight(e, 5000)
	if w != 75 {
		t.Fatalf("expected weight 75, got %d", w)
	}
}

func TestMaxProbBounded(t *testing.T) {
	cases := []struct {
		htlcMax, amount int64
	}{
		{1_000_000, 5000}, {1000, 5000}, {0, 1},
	}
	for _, c := range cases {
		e := models.Edge{HTLCMax: c.htlcMax}
		w := MaxProb{}.EdgeWeight(e, c.amount)
		if w != 0 && w != 1 {
			t.Fatalf("MaxProb weight must be 0 or 1, got %d", w)
		}
	}
}

func TestMaxProbCarryable(t *testing.T) {
	e := models.Edge{HTLCMax: 10_000}
	if w := (MaxProb{}).EdgeWeight(e, 5_000); w != 0 {
		t.Fatalf("expected 0 for carryable amount, got %d", w)
	}
	if w := (MaxProb{}).EdgeWeight(e, 50_000); w != 1 {
		t.Fatalf("expected 1 for amount exceeding htlc_max, got %d", w)
	}
}
