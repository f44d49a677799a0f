package models

// PaymentParts selects the executor policy used to settle a Payment.
type PaymentParts string

const (
	PaymentPartsSingle PaymentParts = "single"
	PaymentPartsSplit  PaymentParts = "split"
)

// RoutingMetric selects the edge-weight function used by the path finder.
type RoutingMetric string

const (
	RoutingMetricMinFee  RoutingMetric = "min_fee"
	RoutingMetricMaxProb RoutingMetric = "max_prob"
)

// FailureReason classifies why a Payment or Shard failed to settle. Carried
// forward from original_source/simulator/src/stats/failures.rs, which the
// distilled spec only describes as log-line reasons (spec.md §7) — here it
// is a first-class reportable field.
type FailureReason string

const (
	FailureNone              FailureReason = ""
	FailureNoRoute           FailureReason = "no_route"
	FailureSourceBalance     FailureReason = "source_balance"
	FailureMidHopBalance     FailureReason = "mid_hop_balance"
	FailureInvoiceMismatch   FailureReason = "invoice_mismatch"
	FailureMPPExhaustion     FailureReason = "mpp_exhaustion"
	FailureSplitNotPossible  FailureReason = "split_not_possible"
)

// Shard is a slice of a Payment carrying its own amount and routing result.
type Shard struct {
	ID            string        `json:"id"`
	PaymentID     string        `json:"paymentId"`
	Source        NodeID        `json:"source"`
	Destination   NodeID        `json:"destination"`
	Amount        int64         `json:"amount"` // msat
	UsedPath      Path          `json:"usedPath,omitempty"`
	Succeeded     bool          `json:"succeeded"`
	FailureReason FailureReason `json:"failureReason,omitempty"`
	Attempts      int           `json:"attempts"`
}

// Payment is the top-level record tracked by the simulator for one
// scheduled (source, destination, amount) draw.
type Payment struct {
	ID                string          `json:"id"`
	Source            NodeID          `json:"source"`
	Destination       NodeID          `json:"destination"`
	AmountMsat        int64           `json:"amountMsat"`
	Succeeded         bool            `json:"succeeded"`
	MinShardAmt       int64           `json:"minShardAmt"`
	NumParts          int             `json:"numParts"`
	UsedPaths         []Path          `json:"usedPaths,omitempty"`
	FailedPaths       []Path          `json:"failedPaths,omitempty"`
	HTLCAttempts      int             `json:"htlcAttempts"`
	FailedAmounts     []int64         `json:"failedAmounts,omitempty"`
	SuccessfulShards  []Shard         `json:"successfulShards,omitempty"`
	FailureReason     FailureReason   `json:"failureReason,omitempty"`
}

// Invoice is the recipient-issued record a delivered shard must match.
type Invoice struct {
	PaymentID string `json:"paymentId"`
	Amount    int64  `json:"amount"`
	Source    NodeID `json:"source"`
	Dest      NodeID `json:"destination"`
}
