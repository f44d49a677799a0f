// Command simulator is the PCN simulator's entrypoint. Grounded on the
// teacher's cmd/engine/main.go wiring order (connect optional collaborators,
// warn and continue on non-fatal failures, wire the gin router last) but
// expressed as cobra subcommands instead of a single main() so the topology
// file and output sink can vary per invocation.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rawblock/pcn-simulator/internal/adversary"
	"github.com/rawblock/pcn-simulator/internal/aggregation"
	"github.com/rawblock/pcn-simulator/internal/api"
	"github.com/rawblock/pcn-simulator/internal/config"
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/sim"
	"github.com/rawblock/pcn-simulator/internal/topology"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

func main() {
	root := &cobra.Command{
		Use:   "simulator",
		Short: "Payment-channel network routing and privacy simulator",
	}

	var topoPath string
	var outPath string
	root.PersistentFlags().StringVar(&topoPath, "topology", "", "path to the channel graph JSON document (required)")
	root.PersistentFlags().StringVar(&outPath, "out", "", "path to write the JSON report(s) (defaults to stdout-adjacent reports.json)")
	_ = root.MarkPersistentFlagRequired("topology")

	v := viper.New()

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single (routing metric, payment parts) scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(cmd, v, topoPath, outPath)
		},
	}
	config.BindFlags(runCmd, v)

	vBatch := viper.New()
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Run all four WeightPartsCombi scenarios across an amount schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, vBatch, topoPath, outPath)
		},
	}
	var amountsSat []int64
	batchCmd.Flags().Int64SliceVar(&amountsSat, "amounts-sat", []int64{1_000, 10_000, 100_000}, "amount schedule, in satoshis")
	config.BindFlags(batchCmd, vBatch)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Load a topology and expose the results API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(topoPath)
		},
	}

	root.AddCommand(runCmd, batchCmd, serveCmd)

	if err := root.Execute(); err != nil {
		log.Fatalf("simulator: %v", err)
	}
}

func loadTopology(path string) (*graph.Graph, error) {
	if path == "" {
		return nil, fmt.Errorf("simulator: --topology is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("simulator: open topology: %w", err)
	}
	defer f.Close()
	return topology.Load(f)
}

// rankingLoader reads the CSV files bound to each adversary-selection
// strategy each time the returned loader is called, mirroring the teacher's lazy-connect pattern in
// cmd/engine/main.go (collaborators that fail to initialise produce a
// warning and an empty result rather than aborting the run).
func rankingLoader(cfg config.SimConfig) sim.RankingLoader {
	return func(strategy models.AdversarySelectionStrategy) ([]adversary.NodeRank, bool) {
		path, ok := cfg.RankingFiles[strategy]
		if !ok || path == "" {
			return nil, false
		}
		f, err := os.Open(path)
		if err != nil {
			log.Printf("simulator: warning: cannot open ranking file %q for %s: %v", path, strategy, err)
			return nil, false
		}
		defer f.Close()
		ranks, err := adversary.LoadRanking(f)
		if err != nil {
			log.Printf("simulator: warning: cannot parse ranking file %q for %s: %v", path, strategy, err)
			return nil, false
		}
		return ranks, true
	}
}

func runOne(cmd *cobra.Command, v *viper.Viper, topoPath, outPath string) error {
	g, err := loadTopology(topoPath)
	if err != nil {
		return err
	}
	log.Printf("simulator: loaded topology with %d nodes, %d edges", len(g.NodeIDs()), g.EdgeCount())

	cfg := config.FromViper(v)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("simulator: invalid configuration: %w", err)
	}

	combi := config.WeightPartsCombi{Metric: cfg.RoutingMetric, Parts: cfg.PaymentParts}
	report := sim.Run(g, cfg, combi, rankingLoader(cfg))

	if outPath == "" {
		outPath = "reports.json"
	}
	if err := aggregation.WriteJSON(outPath, []models.Report{report}); err != nil {
		return err
	}
	log.Printf("simulator: wrote report for run %s to %s (%d/%d payments succeeded)",
		report.RunID, outPath, report.SucceededPayments, report.TotalPayments)
	return nil
}

func runBatch(cmd *cobra.Command, v *viper.Viper, topoPath, outPath string) error {
	amountsSat, err := cmd.Flags().GetInt64Slice("amounts-sat")
	if err != nil {
		return err
	}

	g, err := loadTopology(topoPath)
	if err != nil {
		return err
	}
	log.Printf("simulator: loaded topology with %d nodes, %d edges", len(g.NodeIDs()), g.EdgeCount())

	cfg := config.FromViper(v)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("simulator: invalid configuration: %w", err)
	}

	reports := sim.RunBatch(g, cfg, amountsSat, rankingLoader(cfg))

	if outPath == "" {
		outPath = "reports.json"
	}
	if err := aggregation.WriteJSON(outPath, reports); err != nil {
		return err
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL != "" {
		ctx := context.Background()
		store, err := aggregation.Connect(ctx, dbURL)
		if err != nil {
			log.Printf("simulator: warning: failed to connect to Postgres, reports only written to %s: %v", outPath, err)
		} else {
			defer store.Close()
			if err := store.InitSchema(ctx); err != nil {
				log.Printf("simulator: warning: schema init failed: %v", err)
			}
			store.SaveReports(ctx, reports)
		}
	}

	log.Printf("simulator: wrote %d scenario reports to %s", len(reports), outPath)
	return nil
}

func serve(topoPath string) error {
	g, err := loadTopology(topoPath)
	if err != nil {
		return err
	}
	log.Printf("simulator: loaded topology with %d nodes, %d edges", len(g.NodeIDs()), g.EdgeCount())

	wsHub := api.NewHub()
	go wsHub.Run()

	r := api.SetupRouter(g, wsHub)

	port := getEnvOrDefault("PORT", "5339")
	log.Printf("simulator: results API listening on :%s", port)
	return r.Run(":" + port)
}

func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
