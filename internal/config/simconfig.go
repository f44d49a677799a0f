package config

import (
	"fmt"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// SimConfig is the enumerated simulation configuration of spec.md §6.
type SimConfig struct {
	Seed              uint64
	AmountSat         int64
	NumPairs          int
	RoutingMetric     models.RoutingMetric
	PaymentParts      models.PaymentParts
	MinShardAmountSat int64
	AdversarySelections []models.AdversarySelectionStrategy
	RankingFiles      map[models.AdversarySelectionStrategy]string
	AdversaryPercent  int
}

// AmountMsat converts AmountSat to msat via the SAT_SCALE constant.
func (c SimConfig) AmountMsat() int64 { return c.AmountSat * SatScale }

// MinShardAmountMsat converts MinShardAmountSat, or the default
// MinShardAmount constant when unset.
func (c SimConfig) MinShardAmountMsat() int64 {
	if c.MinShardAmountSat <= 0 {
		return MinShardAmount
	}
	return c.MinShardAmountSat * SatScale
}

// Validate checks the enumerated option constraints of spec.md §6.
func (c SimConfig) Validate() error {
	if c.AmountSat <= 0 {
		return fmt.Errorf("config: amount_sat must be positive, got %d", c.AmountSat)
	}
	if c.NumPairs <= 0 {
		return fmt.Errorf("config: num_pairs must be positive, got %d", c.NumPairs)
	}
	if c.RoutingMetric != models.RoutingMetricMinFee && c.RoutingMetric != models.RoutingMetricMaxProb {
		return fmt.Errorf("config: unknown routing_metric %q", c.RoutingMetric)
	}
	if c.PaymentParts != models.PaymentPartsSingle && c.PaymentParts != models.PaymentPartsSplit {
		return fmt.Errorf("config: unknown payment_parts %q", c.PaymentParts)
	}
	if c.AdversaryPercent < 0 || c.AdversaryPercent > 99 {
		return fmt.Errorf("config: adversary_percent must be in 1..99, got %d", c.AdversaryPercent)
	}
	for _, sel := range c.AdversarySelections {
		switch sel {
		case models.AdversaryRandom, models.AdversaryHighBetweenness, models.AdversaryHighDegree:
		default:
			return fmt.Errorf("config: unknown adversary_selection %q", sel)
		}
	}
	return nil
}

// WeightPartsCombi enumerates the four (routing metric, payment parts)
// scenario combinations the batch driver runs per amount (spec.md §4.H /
// §5 "the four WeightPartsCombi scenarios").
type WeightPartsCombi struct {
	Metric models.RoutingMetric
	Parts  models.PaymentParts
}

func AllWeightPartsCombis() []WeightPartsCombi {
	return []WeightPartsCombi{
		{models.RoutingMetricMinFee, models.PaymentPartsSingle},
		{models.RoutingMetricMinFee, models.PaymentPartsSplit},
		{models.RoutingMetricMaxProb, models.PaymentPartsSingle},
		{models.RoutingMetricMaxProb, models.PaymentPartsSplit},
	}
}
