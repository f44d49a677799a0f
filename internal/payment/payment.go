// Package payment implements the Payment/Shard state machine and the
// invoice registry (spec.md §4.C).
package payment

import (
	"github.com/google/uuid"
	"github.com/rawblock/pcn-simulator/internal/config"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// New initialises a Payment with succeeded=false, num_parts=1, and the
// effective minimum shard floor (the caller override if positive,
// otherwise config.MinShardAmount).
func New(id string, src, dst models.NodeID, amount int64, minShardOverride int64) *models.Payment {
	if id == "" {
		id = uuid.NewString()
	}
	minShard := config.MinShardAmount
	if minShardOverride > 0 {
		minShard = minShardOverride
	}
	return &models.Payment{
		ID:          id,
		Source:      src,
		Destination: dst,
		AmountMsat:  amount,
		MinShardAmt: minShard,
		NumParts:    1,
	}
}

// ToShard carves a shard of amount msat from p, sharing p's id and
// endpoints. The shard counts its own htlc attempts; MergeShard adds them
// to the parent payment's counter.
func ToShard(p *models.Payment, amount int64) models.Shard {
	return models.Shard{
		ID:          uuid.NewString(),
		PaymentID:   p.ID,
		Source:      p.Source,
		Destination: p.Destination,
		Amount:      amount,
	}
}

// MergeShard folds a settled shard's outcome back into its parent payment:
// used/failed paths, successful-shard bookkeeping and the htlc-attempt
// counter.
func MergeShard(p *models.Payment, s models.Shard) {
	p.HTLCAttempts += s.Attempts
	if s.Succeeded {
		p.UsedPaths = append(p.UsedPaths, s.UsedPath)
		p.SuccessfulShards = append(p.SuccessfulShards, s)
		return
	}
	if s.UsedPath != nil {
		p.FailedPaths = append(p.FailedPaths, s.UsedPath)
	}
	p.FailedAmounts = append(p.FailedAmounts, s.Amount)
}

// Equal reports whether two payments share an id (spec.md §4.C).
func Equal(a, b *models.Payment) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// SuccessfulAmount sums the amounts of a payment's successful shards.
func SuccessfulAmount(p *models.Payment) int64 {
	var total int64
	for _, s := range p.SuccessfulShards {
		total += s.Amount
	}
	return total
}
