package models

// Hop is one step of a Path: the node the payment passes through, the fee
// and timelock it owes to the next hop, and the channel used to get there.
type Hop struct {
	NodeID    NodeID `json:"nodeId"`
	Fee       int64  `json:"fee"`       // msat owed to the next hop
	Timelock  uint32 `json:"timelock"`  // cltv delta owed to the next hop
	ChannelID string `json:"channelId"` // channel used to reach the next hop
}

// Path is an ordered sequence of hops; the first hop is the source, the
// last is the destination.
type Path []Hop

// NodeIDs returns the ordered node-id sequence of the path, used by the
// diversity and Levenshtein computations.
func (p Path) NodeIDs() []NodeID {
	ids := make([]NodeID, len(p))
	for i, h := range p {
		ids[i] = h.NodeID
	}
	return ids
}

// ChannelIDs returns the ordered channel-id sequence traversed by the path
// (one fewer than the number of hops: the destination hop uses no channel).
func (p Path) ChannelIDs() []string {
	if len(p) == 0 {
		return nil
	}
	ids := make([]string, 0, len(p)-1)
	for _, h := range p[:len(p)-1] {
		ids = append(ids, h.ChannelID)
	}
	return ids
}

// Source returns the path's originating node.
func (p Path) Source() NodeID {
	if len(p) == 0 {
		return ""
	}
	return p[0].NodeID
}

// Destination returns the path's terminal node.
func (p Path) Destination() NodeID {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1].NodeID
}

// CandidatePath is a Path plus the aggregate cost the path finder computed
// for it.
type CandidatePath struct {
	Path   Path   `json:"path"`
	Weight int64  `json:"weight"` // aggregated weight in the active metric's units
	Amount int64  `json:"amount"` // principal + cumulative fees, msat
	Time   uint32 `json:"time"`   // cumulative cltv
}
