// CLI flag binding for SimConfig, following the teacher's
// requireEnv/getEnvOrDefault split (cmd/engine/main.go) but expressed
// through cobra flags bound into viper so values can come from flags,
// environment variables (PCNSIM_ prefix), or a config file uniformly.
package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// BindFlags registers the simulation configuration flags on cmd and wires
// them into v, so FromViper can read the resolved values regardless of
// whether they came from a flag, an environment variable, or a config
// file loaded into v beforehand.
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()
	flags.Uint64("seed", 42, "PRNG seed")
	flags.Int64("amount-sat", 10_000, "payment amount in satoshis")
	flags.Int("num-pairs", 1000, "number of (source, destination) pairs to draw")
	flags.String("routing-metric", string(models.RoutingMetricMinFee), "MinFee or MaxProb")
	flags.String("payment-parts", string(models.PaymentPartsSingle), "Single or Split")
	flags.Int64("min-shard-amt-sat", 0, "minimum shard amount in satoshis (0 = use default)")
	flags.StringSlice("adversary-selection", nil, "zero or more of random,high_betweenness,high_degree")
	flags.Int("adversary-percent", 0, "percentage of nodes to select as adversaries, 1..99")
	flags.String("betweenness-ranking-file", "", "CSV ranking file for the high_betweenness strategy")
	flags.String("degree-ranking-file", "", "CSV ranking file for the high_degree strategy")

	v.SetEnvPrefix("PCNSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
}

// FromViper builds a SimConfig from v's resolved values.
func FromViper(v *viper.Viper) SimConfig {
	cfg := SimConfig{
		Seed:              v.GetUint64("seed"),
		AmountSat:         v.GetInt64("amount-sat"),
		NumPairs:          v.GetInt("num-pairs"),
		RoutingMetric:     models.RoutingMetric(v.GetString("routing-metric")),
		PaymentParts:      models.PaymentParts(v.GetString("payment-parts")),
		MinShardAmountSat: v.GetInt64("min-shard-amt-sat"),
		AdversaryPercent:  v.GetInt("adversary-percent"),
		RankingFiles:      map[models.AdversarySelectionStrategy]string{},
	}

	for _, s := range v.GetStringSlice("adversary-selection") {
		cfg.AdversarySelections = append(cfg.AdversarySelections, models.AdversarySelectionStrategy(s))
	}
	if f := v.GetString("betweenness-ranking-file"); f != "" {
		cfg.RankingFiles[models.AdversaryHighBetweenness] = f
	}
	if f := v.GetString("degree-ranking-file"); f != "" {
		cfg.RankingFiles[models.AdversaryHighDegree] = f
	}

	return cfg
}
