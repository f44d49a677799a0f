package models

// AdversarySelectionStrategy names how the adversary node set is chosen.
type AdversarySelectionStrategy string

const (
	AdversaryRandom          AdversarySelectionStrategy = "random"
	AdversaryHighBetweenness AdversarySelectionStrategy = "high_betweenness"
	AdversaryHighDegree      AdversarySelectionStrategy = "high_degree"
)

// AnonymitySet is the per-payment-occurrence deanonymisation result: the
// adversary's inferred candidate sender and recipient sets, and whether
// the true sender/recipient is among them.
type AnonymitySet struct {
	PaymentID        string `json:"paymentId"`
	Adversary        NodeID `json:"adversary"`
	SenderSetSize    int    `json:"senderSetSize"`
	RecipientSetSize int    `json:"recipientSetSize"`
	RecipientCorrect bool   `json:"recipientCorrect"`
	SourceCorrect    bool   `json:"sourceCorrect"`
}

// AdversaryStats aggregates hit accounting and deanonymisation results for
// one adversary-set selection over one simulation run.
type AdversaryStats struct {
	Selection           AdversarySelectionStrategy `json:"selection"`
	AdversaryNodes       []NodeID                   `json:"adversaryNodes"`
	Hits                 int                        `json:"hits"`
	HitsSuccessful       int                        `json:"hitsSuccessful"`
	AdversariesPerPayment map[string]int            `json:"adversariesPerPayment"`
	AnonymitySets        []AnonymitySet             `json:"anonymitySets"`
}
