package pathfind

import (
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// realFee is the fee model the executor actually debits/credits: base fee
// plus proportional plus the CLTV risk term, unconditionally, regardless
// of which metric ranked the path. It reuses weight.MinFee's EdgeWeight,
// which is the full formula; MaxProb only changes how candidates are
// *ranked*, never what a hop actually costs to traverse.
var realFee = weight.MinFee{}

// aggregatePathCost walks nodes/edges destination-first (spec.md §4.B
// "walk the path in reverse... because fees accrue toward the source")
// and produces the CandidatePath's real hop fees, timelocks and the
// principal-plus-fees amount the source must debit. The source's own
// edge (index 0) and the destination's terminal hop never carry a fee or
// timelock — only the n-2 intermediate edges do.
func aggregatePathCost(nodes []models.NodeID, edges []models.Edge, amount int64) models.CandidatePath {
	n := len(nodes)
	fees := make([]int64, n)
	timelocks := make([]uint32, n)

	amt := amount
	for i := n - 2; i >= 1; i-- {
		e := edges[i]
		fee := realFee.EdgeWeight(e, amt)
		fees[i] = fee
		timelocks[i] = e.CLTVDelta
		amt += fee
	}

	var totalTime uint32
	hops := make(models.Path, n)
	for i, id := range nodes {
		channelID := ""
		if i < n-1 {
			channelID = edges[i].ChannelID
		}
		hops[i] = models.Hop{
			NodeID:    id,
			Fee:       fees[i],
			Timelock:  timelocks[i],
			ChannelID: channelID,
		}
		totalTime += timelocks[i]
	}

	return models.CandidatePath{Path: hops, Amount: amt, Time: totalTime}
}

// rankWeight reproduces the weight function's aggregated cost for a path,
// used to populate CandidatePath.Weight. Under MinFee it is the additive
// sum of edge weights (the source's first edge pays SourceWeight(), 0).
// Under MaxProb it is the complement of the path's multiplicative success
// probability: 0 if every edge can carry the amount, 1 if any cannot
// (spec.md §4.B).
func rankWeight(w weight.Func, trueSrc models.NodeID, nodes []models.NodeID, edges []models.Edge, amount int64) int64 {
	if w.Name() == models.RoutingMetricMaxProb {
		anyFail := false
		for _, e := range edges {
			if w.EdgeWeight(e, amount) != 0 {
				anyFail = true
				break
			}
		}
		if anyFail {
			return 1
		}
		return 0
	}

	var total int64
	for i, e := range edges {
		total += edgeCost(w, trueSrc, nodes[i], e, amount)
	}
	return total
}
