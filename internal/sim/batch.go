package sim

import (
	"sync"

	"github.com/rawblock/pcn-simulator/internal/config"
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// RunBatch fans out across the four WeightPartsCombi scenarios and the
// amount schedule, independently and in parallel (spec.md §5 "Parallelism
// boundary"): each worker gets its own cloned graph via Run and appends
// to a single mutex-guarded results slice, the only cross-worker
// synchronisation point.
func RunBatch(g *graph.Graph, baseCfg config.SimConfig, amountsSat []int64, loadRanking RankingLoader) []models.Report {
	combis := config.AllWeightPartsCombis()

	var mu sync.Mutex
	var reports []models.Report
	var wg sync.WaitGroup

	for _, amountSat := range amountsSat {
		for _, combi := range combis {
			wg.Add(1)
			cfg := baseCfg
			cfg.AmountSat = amountSat
			go func(cfg config.SimConfig, combi config.WeightPartsCombi) {
				defer wg.Done()
				report := Run(g, cfg, combi, loadRanking)
				mu.Lock()
				reports = append(reports, report)
				mu.Unlock()
			}(cfg, combi)
		}
	}

	wg.Wait()
	return reports
}
