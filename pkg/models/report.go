package models

// PaymentInfo is the per-payment row embedded in a scenario report.
type PaymentInfo struct {
	PaymentID     string        `json:"paymentId"`
	Source        NodeID        `json:"source"`
	Destination   NodeID        `json:"destination"`
	AmountMsat    int64         `json:"amountMsat"`
	Succeeded     bool          `json:"succeeded"`
	NumParts      int           `json:"numParts"`
	Paths         []Path        `json:"paths"`
	FailureReason FailureReason `json:"failureReason,omitempty"`
}

// DiversityEntry is the effective-path-diversity result for one lambda.
type DiversityEntry struct {
	Lambda float64 `json:"lambda"`
	EPD    float64 `json:"epd"`
}

// TargetedAttackResult is the resilience re-run outcome for one target set.
type TargetedAttackResult struct {
	RemovedNodes      []NodeID `json:"removedNodes"`
	TotalPayments     int      `json:"totalPayments"`
	SucceededPayments int      `json:"succeededPayments"`
	FailedPayments    int      `json:"failedPayments"`
	SkippedPayments   int      `json:"skippedPayments"` // endpoint removed, pair not replayed
}

// Report is the full structured output for one (run, scenario).
type Report struct {
	RunID              string                  `json:"runId"`
	Seed               uint64                  `json:"seed"`
	AmountSat          int64                   `json:"amountSat"`
	RoutingMetric      RoutingMetric           `json:"routingMetric"`
	PaymentParts       PaymentParts            `json:"paymentParts"`
	TotalPayments      int                     `json:"totalPayments"`
	SucceededPayments  int                     `json:"succeededPayments"`
	FailedPayments     int                     `json:"failedPayments"`
	Payments           []PaymentInfo           `json:"payments"`
	AdversaryStats     []AdversaryStats        `json:"adversaryStats,omitempty"`
	LevenshteinDist    []int                   `json:"levenshteinDistances,omitempty"`
	Diversity          []DiversityEntry        `json:"diversity,omitempty"`
	TargetedAttacks    []TargetedAttackResult  `json:"targetedAttacks,omitempty"`
}
