package executor

import (
	"github.com/rawblock/pcn-simulator/internal/config"
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/pathfind"
	"github.com/rawblock/pcn-simulator/internal/payment"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// SendMPPPayment implements send_mpp_payment (spec.md §4.D): a work queue
// of shards, initially just the whole payment, drained by single-path
// attempts; a failing shard is split and its halves requeued, up to
// MAX_PARTS. The payment succeeds iff the successful shards' amounts sum
// to the original amount; on any other outcome the already-successful
// shards are reverted.
func SendMPPPayment(g *graph.Graph, invReg *payment.InvoiceRegistry, finder *pathfind.Finder, p *models.Payment) bool {
	queue := []models.Shard{payment.ToShard(p, p.AmountMsat)}

	for len(queue) > 0 && p.NumParts <= config.MaxParts {
		shard := queue[0]
		queue = queue[1:]

		// The split rule is checked against the amounts that failed before
		// this shard; MergeShard records this shard's own failure below.
		failedBefore := p.FailedAmounts[:len(p.FailedAmounts):len(p.FailedAmounts)]

		SendSinglePayment(g, invReg, finder, &shard)
		payment.MergeShard(p, shard)

		if shard.Succeeded {
			continue
		}

		left, right, ok := payment.Split(shard.Amount, p.MinShardAmt, failedBefore)
		if !ok {
			p.FailureReason = models.FailureSplitNotPossible
			revertSuccessfulShards(g, p)
			p.Succeeded = false
			return false
		}
		p.NumParts++
		queue = append(queue, payment.ToShard(p, left), payment.ToShard(p, right))
	}

	if payment.SuccessfulAmount(p) == p.AmountMsat {
		p.Succeeded = true
		p.FailureReason = models.FailureNone
		return true
	}

	p.FailureReason = models.FailureMPPExhaustion
	revertSuccessfulShards(g, p)
	p.Succeeded = false
	return false
}

func revertSuccessfulShards(g *graph.Graph, p *models.Payment) {
	for _, s := range p.SuccessfulShards {
		RevertShard(g, s)
	}
	p.SuccessfulShards = nil
}
