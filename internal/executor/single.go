package executor

import (
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/pathfind"
	"github.com/rawblock/pcn-simulator/internal/payment"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// SendSinglePayment implements send_single_payment (spec.md §4.D): ask the
// finder for up to K candidates, then try each in ascending weight order
// until one settles. Mutates shard in place and returns its success flag.
//
// The pending invoice for the shard's (destination, payment id) is
// (re-)issued for this shard's own amount before attempting it, so a part
// split off an MPP payment is checked against the amount it actually
// carries rather than the original payment total.
func SendSinglePayment(g *graph.Graph, invReg *payment.InvoiceRegistry, finder *pathfind.Finder, shard *models.Shard) bool {
	invReg.AddInvoice(models.Invoice{
		PaymentID: shard.PaymentID,
		Amount:    shard.Amount,
		Source:    shard.Source,
		Dest:      shard.Destination,
	})

	candidates := finder.FindPaths(shard.Source, shard.Destination, shard.Amount)
	if len(candidates) == 0 {
		shard.FailureReason = models.FailureNoRoute
		return false
	}
	if !Preflight(g, candidates, shard.Amount) {
		shard.FailureReason = models.FailureSourceBalance
		return false
	}

	for _, cand := range candidates {
		shard.Attempts++
		ok, reason := AttemptPayment(g, invReg, shard.PaymentID, shard.Source, cand)
		if ok {
			shard.Succeeded = true
			shard.UsedPath = cand.Path
			shard.FailureReason = models.FailureNone
			return true
		}
		shard.FailureReason = reason
	}
	return false
}
