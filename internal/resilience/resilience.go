// Package resilience implements the targeted-attack re-run of spec.md
// §4.H: clone the graph, remove a target node set, filter the original
// payment pairs down to ones whose endpoints survive, and replay the
// driver against the reduced graph. Grounded on the teacher's shadow-mode
// pattern (internal/shadow/shadow_runner.go): run the same workload twice
// under two conditions and diff the outcomes.
package resilience

import (
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/pathfind"
	"github.com/rawblock/pcn-simulator/internal/payment"
	"github.com/rawblock/pcn-simulator/internal/rng"
	"github.com/rawblock/pcn-simulator/internal/simclock"
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// Result is the targeted-attack report for one target set: the pairs that
// survived endpoint filtering, the re-run payments, and how many of the
// original pairs were dropped because an endpoint was removed.
type Result struct {
	Targets         []models.NodeID    `json:"targets"`
	DroppedPairs    int                `json:"droppedPairs"`
	ReplayedPairs   []rng.Pair         `json:"replayedPairs"`
	Payments        []*models.Payment  `json:"payments"`
	SucceededCount  int                `json:"succeededCount"`
	FailedCount     int                `json:"failedCount"`
}

// Rerun implements spec.md §4.H in full: clone g, cascade-remove every
// target, filter original down to pairs whose source and destination both
// remain, and replay them through a fresh driver and event queue.
func Rerun(g *graph.Graph, w weight.Func, original []rng.Pair, targets []models.NodeID, amount int64, parts models.PaymentParts, finderK int) Result {
	clone := g.Clone()
	for _, t := range targets {
		clone.RemoveNode(t)
	}

	var surviving []rng.Pair
	dropped := 0
	for _, pr := range original {
		if clone.HasNode(pr.Src) && clone.HasNode(pr.Dst) {
			surviving = append(surviving, pr)
		} else {
			dropped++
		}
	}

	invReg := payment.NewInvoiceRegistry()
	finder := pathfind.New(clone, w, finderK)
	driver := simclock.NewDriver(clone, invReg, finder, parts)
	payments := driver.Run(surviving, amount)

	succeeded, failed := 0, 0
	for _, p := range payments {
		if p.Succeeded {
			succeeded++
		} else {
			failed++
		}
	}

	return Result{
		Targets:        targets,
		DroppedPairs:   dropped,
		ReplayedPairs:  surviving,
		Payments:       payments,
		SucceededCount: succeeded,
		FailedCount:    failed,
	}
}
