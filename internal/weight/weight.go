// Package weight implements the two pluggable edge-weight functions the
// path finder can be run under (spec.md §4.B).
package weight

import (
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// CLTVRiskFactor and the ppm/billionths normalisation constants are kept
// bit-exact per spec.md §9 — preserved even though they may not match LND
// precisely.
const (
	CLTVRiskFactor = 15
	ppm            = 1_000_000
	billionths     = 1_000_000_000
)

// Func is a pluggable edge-weight function. EdgeWeight scores one edge for
// a candidate amount; SourceWeight is the weight counted for the
// src-to-first-hop edge, which the source never pays a routing fee for
// (spec.md §4.B).
type Func interface {
	Name() models.RoutingMetric
	EdgeWeight(e models.Edge, amount int64) int64
	SourceWeight() int64
}

// ForMetric resolves the configured routing metric to its Func.
func ForMetric(m models.RoutingMetric) Func {
	switch m {
	case models.RoutingMetricMaxProb:
		return MaxProb{}
	default:
		return MinFee{}
	}
}

// MinFee scores an edge by its absolute fee cost, including a CLTV risk
// term proportional to the capital locked for the duration of the
// timelock.
type MinFee struct{}

func (MinFee) Name() models.RoutingMetric { return models.RoutingMetricMinFee }

func (MinFee) EdgeWeight(e models.Edge, amount int64) int64 {
	proportional := amount * e.ProportionalPPM / ppm
	risk := amount * int64(e.CLTVDelta) * CLTVRiskFactor / billionths
	return e.BaseFee + proportional + risk
}

func (MinFee) SourceWeight() int64 { return 0 }

// MaxProb scores an edge by (the complement of) its probability of
// carrying amount: 0 when the edge's htlc_max can carry the amount, 1
// otherwise. This is the open-question behaviour documented in spec.md §9
// — the ceil() collapses any fractional shortfall to a full unit of cost,
// so most carryable edges tie at weight 0. That degeneracy is intentional
// and preserved rather than "fixed"; see DESIGN.md.
type MaxProb struct{}

func (MaxProb) Name() models.RoutingMetric { return models.RoutingMetricMaxProb }

func (MaxProb) EdgeWeight(e models.Edge, amount int64) int64 {
	denom := e.HTLCMax + 1
	numer := denom - amount
	var ceilDiv int64
	switch {
	case numer <= 0:
		ceilDiv = 0
	default:
		ceilDiv = (numer + denom - 1) / denom
	}
	return 1 - ceilDiv
}

func (MaxProb) SourceWeight() int64 { return 1 }
