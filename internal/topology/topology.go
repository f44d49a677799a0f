// Package topology ingests the JSON channel-graph document described in
// spec.md §6 and builds an internal/graph.Graph from it. Grounded on the
// teacher's internal/bitcoin/client.go JSON-RPC decoding style (plain
// encoding/json structs, explicit field validation before use) and on
// original_source/network-parser/src/lib.rs's field set.
package topology

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// rawNode mirrors the "nodes" array entries of the ingestion document.
type rawNode struct {
	ID        string `json:"id"`
	OutDegree int    `json:"out_degree"`
	InDegree  int    `json:"in_degree"`
}

// rawEdge mirrors one entry of a source node's adjacency list.
type rawEdge struct {
	ChannelID       string `json:"scid"`
	Source          string `json:"source"`
	Destination     string `json:"destination"`
	FeeBaseMsat     *int64 `json:"fee_base_msat"`
	FeeProportional *int64 `json:"fee_proportional_millionths"`
	HTLCMin         int64  `json:"htlc_minimum_msat"`
	HTLCMax         int64  `json:"htlc_maximum_msat"`
	CLTVDelta       uint32 `json:"cltv_expiry_delta"`
	Capacity        *int64 `json:"capacity"`
}

// rawAdjacency is one source node's outgoing edge list, keyed by source id
// in the document's "adjacency" array.
type rawAdjacency struct {
	Source models.NodeID `json:"source"`
	Edges  []rawEdge     `json:"edges"`
}

type document struct {
	Nodes     []rawNode      `json:"nodes"`
	Adjacency []rawAdjacency `json:"adjacency"`
}

// Load parses the ingestion document from r and builds a Graph. It is a
// fatal error for the JSON itself to be malformed (spec.md §7 "topology
// parse error"); individual edges with missing mandatory fees or unknown
// endpoints are dropped and logged rather than failing the whole load.
func Load(r io.Reader) (*graph.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("topology: parse error: %w", err)
	}

	nodeSet := make(map[models.NodeID]bool, len(doc.Nodes))
	nodes := make([]models.Node, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		id := models.NodeID(n.ID)
		nodeSet[id] = true
		nodes = append(nodes, models.Node{ID: id, OutDegree: n.OutDegree, InDegree: n.InDegree})
	}

	var edges []models.Edge
	dropped := 0
	for _, adj := range doc.Adjacency {
		for _, e := range adj.Edges {
			src := models.NodeID(e.Source)
			dst := models.NodeID(e.Destination)
			if e.FeeBaseMsat == nil || e.FeeProportional == nil {
				log.Printf("topology: dropping edge %q: missing mandatory fee fields", e.ChannelID)
				dropped++
				continue
			}
			if !nodeSet[src] || !nodeSet[dst] {
				log.Printf("topology: dropping edge %q: endpoint not in node list", e.ChannelID)
				dropped++
				continue
			}
			capacity := e.HTLCMax
			if e.Capacity != nil {
				capacity = *e.Capacity
			}
			edges = append(edges, models.Edge{
				ChannelID:       e.ChannelID,
				Source:          src,
				Destination:     dst,
				BaseFee:         *e.FeeBaseMsat,
				ProportionalPPM: *e.FeeProportional,
				HTLCMin:         e.HTLCMin,
				HTLCMax:         e.HTLCMax,
				CLTVDelta:       e.CLTVDelta,
				Capacity:        capacity,
				Balance:         capacity,
			})
		}
	}

	var totalCapacityMsat int64
	for _, e := range edges {
		totalCapacityMsat += e.Capacity
	}
	totalCapacity := btcutil.Amount(totalCapacityMsat / 1000)
	log.Printf("topology: loaded %d edges (%s total capacity), dropped %d", len(edges), totalCapacity, dropped)

	return graph.FromTopology(nodes, edges), nil
}
