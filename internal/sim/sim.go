// Package sim orchestrates one full scenario run: draw payment pairs,
// run the event-driven driver, then compute the adversary and diversity
// analyses spec.md §6 reports alongside it. Run leaves the report's
// TargetedAttacks empty; RunResilience is the separate entry point for the
// targeted-attack re-run. Grounded on the
// teacher's cmd/engine/main.go wiring style (construct collaborators, wire
// them together, run) and its goroutine-per-worker pattern in
// mempool/poller.go for the data-parallel batch fan-out.
package sim

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/rawblock/pcn-simulator/internal/adversary"
	"github.com/rawblock/pcn-simulator/internal/config"
	"github.com/rawblock/pcn-simulator/internal/diversity"
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/pathfind"
	"github.com/rawblock/pcn-simulator/internal/payment"
	"github.com/rawblock/pcn-simulator/internal/resilience"
	"github.com/rawblock/pcn-simulator/internal/rng"
	"github.com/rawblock/pcn-simulator/internal/simclock"
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// RankingLoader resolves an adversary-selection strategy to its ranking
// rows, reporting false when none are available. The caller supplies the
// loader (e.g. one built on internal/adversary's CSV loader) so Run itself
// does no file I/O.
type RankingLoader func(strategy models.AdversarySelectionStrategy) ([]adversary.NodeRank, bool)

// Run executes one (seed, amount, weight-parts) scenario to completion
// against g and returns its Report. g is cloned internally; Run never
// mutates the caller's graph.
func Run(g *graph.Graph, cfg config.SimConfig, combi config.WeightPartsCombi, loadRanking RankingLoader) models.Report {
	work := g.Clone()
	src := rng.New(int64(cfg.Seed))

	w := weight.ForMetric(combi.Metric)
	finder := pathfind.New(work, w, config.DefaultK)
	invReg := payment.NewInvoiceRegistry()
	driver := simclock.NewDriver(work, invReg, finder, combi.Parts)

	pairs := rng.DrawPairs(src, sortedNodeIDs(work), cfg.NumPairs)
	amount := cfg.AmountMsat()
	payments := driver.Run(pairs, amount)

	report := models.Report{
		RunID:         uuid.NewString(),
		Seed:          cfg.Seed,
		AmountSat:     cfg.AmountSat,
		RoutingMetric: combi.Metric,
		PaymentParts:  combi.Parts,
		TotalPayments: len(payments),
	}

	var allUsedPaths []models.Path
	for _, p := range payments {
		if p.Succeeded {
			report.SucceededPayments++
		} else {
			report.FailedPayments++
		}
		report.Payments = append(report.Payments, models.PaymentInfo{
			PaymentID:     p.ID,
			Source:        p.Source,
			Destination:   p.Destination,
			AmountMsat:    p.AmountMsat,
			Succeeded:     p.Succeeded,
			NumParts:      p.NumParts,
			Paths:         p.UsedPaths,
			FailureReason: p.FailureReason,
		})
		allUsedPaths = append(allUsedPaths, p.UsedPaths...)
		report.LevenshteinDist = append(report.LevenshteinDist, diversity.PairwiseLevenshtein(p.UsedPaths)...)
	}

	for _, lambda := range diversity.Lambdas {
		report.Diversity = append(report.Diversity, models.DiversityEntry{
			Lambda: lambda,
			EPD:    diversity.EffectivePathDiversity(allUsedPaths, lambda),
		})
	}

	report.AdversaryStats = buildAdversaryStats(work, payments, cfg, loadRanking)

	return report
}

func buildAdversaryStats(g *graph.Graph, payments []*models.Payment, cfg config.SimConfig, loadRanking RankingLoader) []models.AdversaryStats {
	var out []models.AdversaryStats
	nodeIDs := sortedNodeIDs(g)

	for _, strategy := range cfg.AdversarySelections {
		var adversarySet map[models.NodeID]bool

		switch strategy {
		case models.AdversaryRandom:
			adversarySet = selectRandom(nodeIDs, cfg)
		case models.AdversaryHighBetweenness, models.AdversaryHighDegree:
			if loadRanking == nil {
				adversarySet = map[models.NodeID]bool{}
				break
			}
			ranks, ok := loadRanking(strategy)
			if !ok {
				adversarySet = map[models.NodeID]bool{}
				break
			}
			n := len(nodeIDs) * cfg.AdversaryPercent / 100
			adversarySet = adversary.TopN(ranks, n)
		}

		hits, hitsSuccessful, perPayment := adversary.CountHits(payments, adversarySet)

		var nodes []models.NodeID
		for n := range adversarySet {
			nodes = append(nodes, n)
		}

		stats := models.AdversaryStats{
			Selection:             strategy,
			AdversaryNodes:        nodes,
			Hits:                  hits,
			HitsSuccessful:        hitsSuccessful,
			AdversariesPerPayment: perPayment,
		}
		stats.AnonymitySets = deanonymiseAll(g, payments, adversarySet)
		out = append(out, stats)
	}

	return out
}

func deanonymiseAll(g *graph.Graph, payments []*models.Payment, adversarySet map[models.NodeID]bool) []models.AnonymitySet {
	w := weight.MinFee{}
	var sets []models.AnonymitySet
	for _, p := range payments {
		for _, path := range p.UsedPaths {
			for _, node := range path.NodeIDs() {
				if !adversarySet[node] {
					continue
				}
				set, ok := adversary.Deanonymise(g, w, node, p.ID, path, p.Source)
				if ok {
					sets = append(sets, set)
				}
			}
		}
	}
	return sets
}

func selectRandom(nodeIDs []models.NodeID, cfg config.SimConfig) map[models.NodeID]bool {
	n := len(nodeIDs) * cfg.AdversaryPercent / 100
	src := rng.New(int64(cfg.Seed) + 1) // distinct stream from the pair-draw RNG
	set := make(map[models.NodeID]bool, n)
	for len(set) < n && len(set) < len(nodeIDs) {
		set[nodeIDs[src.Intn(len(nodeIDs))]] = true
	}
	return set
}

// RunResilience executes the spec.md §4.H targeted-attack re-run for one
// target set, against the same graph and payment pairs a prior Run drew.
func RunResilience(g *graph.Graph, pairs []rng.Pair, targets []models.NodeID, cfg config.SimConfig, combi config.WeightPartsCombi) models.TargetedAttackResult {
	w := weight.ForMetric(combi.Metric)
	result := resilience.Rerun(g, w, pairs, targets, cfg.AmountMsat(), combi.Parts, config.DefaultK)

	return models.TargetedAttackResult{
		RemovedNodes:      targets,
		TotalPayments:     len(result.Payments),
		SucceededPayments: result.SucceededCount,
		FailedPayments:    result.FailedCount,
		SkippedPayments:   result.DroppedPairs,
	}
}

// ErrNoNodes describes a topology with no nodes to draw payment pairs
// from. Run itself does not return it: on such a graph it draws no pairs.
var ErrNoNodes = fmt.Errorf("sim: graph has no nodes")

// sortedNodeIDs returns g's node ids in ascending order, so that draws
// from a seeded source do not depend on map iteration order.
func sortedNodeIDs(g *graph.Graph) []models.NodeID {
	ids := g.NodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
