package adversary

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// NodeRank is one row of a centrality ranking file: a node id and its score
// under whatever metric produced the file (betweenness, degree, ...).
type NodeRank struct {
	Node  models.NodeID
	Score float64
}

// LoadRanking reads a two-column "node,score" CSV (no header) the way the
// teacher's LoadActiveInvestigationSeeds reads its address/score seed file,
// and returns the rows sorted by descending score.
func LoadRanking(r io.Reader) ([]NodeRank, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var ranks []NodeRank
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("adversary: read ranking row: %w", err)
		}
		var score float64
		if _, err := fmt.Sscanf(record[1], "%f", &score); err != nil {
			return nil, fmt.Errorf("adversary: parse score for node %q: %w", record[0], err)
		}
		ranks = append(ranks, NodeRank{Node: models.NodeID(record[0]), Score: score})
	}

	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Score > ranks[j].Score })
	return ranks, nil
}

// TopN selects the n highest-ranked nodes (or all of them, if fewer than n
// rows were loaded) as an adversary node set.
func TopN(ranks []NodeRank, n int) map[models.NodeID]bool {
	if n > len(ranks) {
		n = len(ranks)
	}
	set := make(map[models.NodeID]bool, n)
	for _, r := range ranks[:n] {
		set[r.Node] = true
	}
	return set
}
