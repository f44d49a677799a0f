// Package adversary implements the adversary-observation and
// deanonymisation model (spec.md §4.F): hit accounting over an adversary
// node set, and the per-occurrence sender/recipient anonymity-set
// inference.
package adversary

import "github.com/rawblock/pcn-simulator/pkg/models"

// CountHits tallies, over every payment, whether any of its used or
// failed paths touches an adversary node (a "hit"), whether that payment
// also succeeded, and the distinct adversary nodes each payment touched.
func CountHits(payments []*models.Payment, adversaries map[models.NodeID]bool) (hits, hitsSuccessful int, perPayment map[string]int) {
	perPayment = make(map[string]int, len(payments))
	for _, p := range payments {
		touched := make(map[models.NodeID]bool)
		for _, path := range p.UsedPaths {
			markTouched(path, adversaries, touched)
		}
		for _, path := range p.FailedPaths {
			markTouched(path, adversaries, touched)
		}
		if len(touched) == 0 {
			continue
		}
		hits++
		if p.Succeeded {
			hitsSuccessful++
		}
		perPayment[p.ID] = len(touched)
	}
	return hits, hitsSuccessful, perPayment
}

func markTouched(path models.Path, adversaries, touched map[models.NodeID]bool) {
	for _, id := range path.NodeIDs() {
		if adversaries[id] {
			touched[id] = true
		}
	}
}
