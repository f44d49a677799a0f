package diversity

import (
	"math"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// Lambdas is the fixed set of decay parameters EPD is reported for
// (spec.md §4.G).
var Lambdas = []float64{0.2, 0.5, 0.7, 1.0}

// intermediates is a path's intermediate-node set (every hop excluding the
// first and last) plus its traversed channel-id set, per spec.md §4.G's
// definition of I(p).
func intermediates(p models.Path) (nodes map[models.NodeID]bool, channels map[string]bool) {
	nodes = make(map[models.NodeID]bool)
	if len(p) > 2 {
		for _, h := range p[1 : len(p)-1] {
			nodes[h.NodeID] = true
		}
	}
	channels = make(map[string]bool)
	for _, c := range p.ChannelIDs() {
		channels[c] = true
	}
	return nodes, channels
}

// Diversity computes div(base, alt) = 1 - |I(base) ∩ I(alt)| / |I(base)|.
// A base path with an empty intermediate set (fewer than two hops, so no
// channel either; a direct 1-hop channel still counts its channel id) is
// fully diverse from anything else by convention, and identical to itself.
func Diversity(base, alt models.Path) float64 {
	baseNodes, baseChans := intermediates(base)
	if len(baseNodes) == 0 && len(baseChans) == 0 {
		if PathLevenshtein(base, alt) == 0 {
			return 0
		}
		return 1
	}

	altNodes, altChans := intermediates(alt)
	overlap := 0
	for n := range baseNodes {
		if altNodes[n] {
			overlap++
		}
	}
	for c := range baseChans {
		if altChans[c] {
			overlap++
		}
	}

	total := len(baseNodes) + len(baseChans)
	return 1 - float64(overlap)/float64(total)
}

// EffectivePathDiversity computes EPD(paths, λ) = 1 - e^(-λD), where
// D_i = min over j≠i of div(i,j) and D = Σ D_i (spec.md §4.G). A set of
// fewer than two paths has no diversity to measure and reports 0 for every
// λ.
func EffectivePathDiversity(paths []models.Path, lambda float64) float64 {
	if len(paths) < 2 {
		return 0
	}

	var total float64
	for i := range paths {
		minDiv := math.Inf(1)
		for j := range paths {
			if i == j {
				continue
			}
			d := Diversity(paths[i], paths[j])
			if d < minDiv {
				minDiv = d
			}
		}
		total += minDiv
	}

	return 1 - math.Exp(-lambda*total)
}

// EPDReport computes EffectivePathDiversity for every λ in Lambdas, keyed
// by the λ value, matching the "diversity list per λ" result shape of
// spec.md §6.
func EPDReport(paths []models.Path) map[float64]float64 {
	out := make(map[float64]float64, len(Lambdas))
	for _, lambda := range Lambdas {
		out[lambda] = EffectivePathDiversity(paths, lambda)
	}
	return out
}
