// Package executor implements the payment executor (spec.md §4.D): the
// atomic per-attempt balance transfer with compensation-list revert, the
// single-path send policy, and the MPP split-on-failure policy.
package executor

import (
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/payment"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// compEntry is one entry of attempt_payment's compensation list: the
// channel a balance mutation was applied to, and how to undo it.
type compEntry struct {
	node      models.NodeID
	channelID string
	amount    int64
	isSource  bool // true: mutation was a debit, undo by crediting back
}

// Preflight reports whether amount can possibly be sent from src toward
// dst, by checking whether any of the given candidates' first-hop channel
// has balance >= amount (spec.md §4.D "max outgoing balance of source
// toward destination"). An empty candidate list always fails.
func Preflight(g *graph.Graph, candidates []models.CandidatePath, amount int64) bool {
	var max int64
	for _, c := range candidates {
		if len(c.Path) == 0 {
			continue
		}
		bal, ok := g.GetChannelBalance(c.Path[0].NodeID, c.Path[0].ChannelID)
		if ok && bal > max {
			max = bal
		}
	}
	return max >= amount
}

// AttemptPayment transfers cand.Amount (the path's aggregated,
// fee-inclusive amount) from source to the path's destination, crediting
// each intermediate's fee and verifying the invoice at the end. Any
// failure reverts every balance mutation already applied during this
// attempt (spec.md §4.D "all-or-nothing atomicity per attempt").
func AttemptPayment(g *graph.Graph, invReg *payment.InvoiceRegistry, paymentID string, source models.NodeID, cand models.CandidatePath) (bool, models.FailureReason) {
	path := cand.Path
	n := len(path)
	if n < 2 {
		return false, models.FailureNoRoute
	}

	var comp []compEntry
	revert := func() {
		for _, e := range comp {
			bal, _ := g.GetChannelBalance(e.node, e.channelID)
			if e.isSource {
				g.UpdateChannelBalance(e.channelID, bal+e.amount)
			} else {
				g.UpdateChannelBalance(e.channelID, bal-e.amount)
			}
		}
	}

	srcNode := path[0].NodeID
	srcChannel := path[0].ChannelID
	bal, ok := g.GetChannelBalance(srcNode, srcChannel)
	if !ok || bal < cand.Amount {
		return false, models.FailureSourceBalance
	}
	g.UpdateChannelBalance(srcChannel, bal-cand.Amount)
	comp = append(comp, compEntry{srcNode, srcChannel, cand.Amount, true})

	remaining := cand.Amount
	for i := 1; i <= n-2; i++ {
		fee := path[i].Fee
		node := path[i].NodeID
		channel := path[i].ChannelID
		need := remaining - fee

		hopBal, ok := g.GetChannelBalance(node, channel)
		if !ok || hopBal < need {
			revert()
			return false, models.FailureMidHopBalance
		}
		g.UpdateChannelBalance(channel, hopBal+fee)
		comp = append(comp, compEntry{node, channel, fee, false})
		remaining = need
	}

	dst := path[n-1].NodeID
	if !invReg.Match(dst, paymentID, remaining, source) {
		revert()
		return false, models.FailureInvoiceMismatch
	}
	invReg.Consume(dst, paymentID)

	lastNode := path[n-2].NodeID
	lastChannel := path[n-2].ChannelID
	lastBal, _ := g.GetChannelBalance(lastNode, lastChannel)
	g.UpdateChannelBalance(lastChannel, lastBal+remaining)

	return true, models.FailureNone
}

// RevertShard undoes the balance effects of a shard that succeeded,
// exactly reversing the debit/credit sequence AttemptPayment applied: used
// when an overall MPP payment fails after some of its shards already
// settled (spec.md §4.D "reverts the already-successful shards' balance
// effects").
func RevertShard(g *graph.Graph, shard models.Shard) {
	path := shard.UsedPath
	n := len(path)
	if n < 2 {
		return
	}

	var totalFees int64
	for i := 1; i <= n-2; i++ {
		totalFees += path[i].Fee
	}
	aggregated := shard.Amount + totalFees

	bal, _ := g.GetChannelBalance(path[0].NodeID, path[0].ChannelID)
	g.UpdateChannelBalance(path[0].ChannelID, bal+aggregated)

	for i := 1; i <= n-2; i++ {
		hopBal, _ := g.GetChannelBalance(path[i].NodeID, path[i].ChannelID)
		g.UpdateChannelBalance(path[i].ChannelID, hopBal-path[i].Fee)
	}

	lastNode := path[n-2].NodeID
	lastChannel := path[n-2].ChannelID
	lastBal, _ := g.GetChannelBalance(lastNode, lastChannel)
	g.UpdateChannelBalance(lastChannel, lastBal-shard.Amount)
}
