package adversary

import (
	"github.com/rawblock/pcn-simulator/internal/config"
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/pathfind"
	"github.com/rawblock/pcn-simulator/internal/weight"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// Deanonymise runs the per-occurrence inference of spec.md §4.F step 4 for
// one adversary node sitting on one path of a payment. ok is false when the
// adversary sits at the path's source or destination (deanonymisation does
// not apply there) or when phase 1 finds no candidate recipient at all.
func Deanonymise(g *graph.Graph, w weight.Func, adv models.NodeID, paymentID string, path models.Path, source models.NodeID) (models.AnonymitySet, bool) {
	nodes := path.NodeIDs()
	idx := indexOf(nodes, adv)
	if idx <= 0 || idx >= len(nodes)-1 {
		return models.AnonymitySet{}, false
	}

	pred := nodes[idx-1]
	succ := nodes[idx+1]

	var amountToSucc int64
	var ttlToRx uint32
	for i := idx + 1; i < len(path); i++ {
		amountToSucc += path[i].Fee
		ttlToRx += path[i].Timelock
	}

	reduced := reduceGraph(g, amountToSucc)
	phase1 := reachablePaths(reduced, succ, ttlToRx, amountToSucc, config.ReachableHops)
	if len(phase1) == 0 {
		return models.AnonymitySet{}, false
	}

	senders := make(map[models.NodeID]bool)
	recipients := make(map[models.NodeID]bool)
	recipientCorrect := false

	trueDest := path.Destination()

	for _, p1 := range phase1 {
		dest, advRefPath, ok := isPotentialDestination(reduced, w, adv, p1, ttlToRx, amountToSucc)
		if !ok {
			continue
		}
		recipients[dest] = true
		if dest == trueDest {
			recipientCorrect = true
		}
		collectPotentialSenders(reduced, w, pred, adv, advRefPath, p1, dest, amountToSucc, senders)
	}

	return models.AnonymitySet{
		PaymentID:        paymentID,
		Adversary:        adv,
		SenderSetSize:    len(senders),
		RecipientSetSize: len(recipients),
		RecipientCorrect: recipientCorrect,
		SourceCorrect:    senders[source],
	}, true
}

// isPotentialDestination implements spec.md §4.F step 4b. When
// ttlToRx == 0 the adversary itself is the only possible recipient.
// Otherwise the adversary's own shortest path to p1's terminal must equal
// p1's suffix as seen from the adversary, confirming the phase-1 candidate
// is reachable along the same route the adversary would itself compute.
func isPotentialDestination(g *graph.Graph, w weight.Func, adv models.NodeID, p1 []models.NodeID, ttlToRx uint32, amount int64) (models.NodeID, []models.NodeID, bool) {
	dest := p1[len(p1)-1]
	if ttlToRx == 0 {
		return adv, nil, true
	}
	sp, ok := pathfind.ShortestPathNodes(g, w, adv, dest, amount)
	if !ok {
		return "", nil, false
	}
	extended := append([]models.NodeID{adv}, p1...)
	if !nodeSeqEqual(sp, extended) {
		return "", nil, false
	}
	return dest, sp, true
}

// collectPotentialSenders implements spec.md §4.F step 4c: walk the
// pred+adversary+P_i extended path, and for each position require that
// node's own shortest path to dest equal the extended path's suffix from
// that position. On any mismatch, abort — no sender can be inferred from
// this occurrence, and nothing accumulated so far may leak into senders:
// candidates are held locally and merged only once the whole walk
// validates clean.
func collectPotentialSenders(g *graph.Graph, w weight.Func, pred, adv models.NodeID, advRefPath, p1 []models.NodeID, dest models.NodeID, amount int64, senders map[models.NodeID]bool) {
	extended := append([]models.NodeID{pred, adv}, p1...)
	pending := make(map[models.NodeID]bool)

	for pos, node := range extended {
		suffix := extended[pos:]
		if len(suffix) == 1 {
			// node == dest itself; trivially consistent.
			continue
		}
		sp, ok := pathfind.ShortestPathNodes(g, w, node, dest, amount)
		if !ok || !nodeSeqEqual(sp, suffix) {
			return
		}
		if pos == 0 {
			pending[pred] = true
		}
		if node == adv && advRefPath != nil && containsNode(advRefPath, pred) {
			for _, nb := range neighbours(g, pred) {
				if !containsNode(extended, nb) {
					pending[nb] = true
				}
			}
		}
	}

	for n := range pending {
		senders[n] = true
	}
}

func neighbours(g *graph.Graph, node models.NodeID) []models.NodeID {
	edges := g.OutgoingEdges(node)
	out := make([]models.NodeID, 0, len(edges))
	seen := make(map[models.NodeID]bool, len(edges))
	for _, e := range edges {
		if !seen[e.Destination] {
			seen[e.Destination] = true
			out = append(out, e.Destination)
		}
	}
	return out
}

func indexOf(nodes []models.NodeID, id models.NodeID) int {
	for i, n := range nodes {
		if n == id {
			return i
		}
	}
	return -1
}
