package payment

import (
	"sync"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// InvoiceRegistry is the per-destination mapping payment_id -> Invoice
// (spec.md §4.C). One pending invoice exists per (payment_id, destination)
// pair; it is removed when consumed by a successful delivery.
type InvoiceRegistry struct {
	mu   sync.Mutex
	byDst map[models.NodeID]map[string]models.Invoice
}

// NewInvoiceRegistry builds an empty registry.
func NewInvoiceRegistry() *InvoiceRegistry {
	return &InvoiceRegistry{byDst: make(map[models.NodeID]map[string]models.Invoice)}
}

// AddInvoice registers inv under its destination and payment id.
func (r *InvoiceRegistry) AddInvoice(inv models.Invoice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byDst[inv.Dest]
	if !ok {
		m = make(map[string]models.Invoice)
		r.byDst[inv.Dest] = m
	}
	m[inv.PaymentID] = inv
}

// GetInvoicesForNode returns every pending invoice addressed to dst.
func (r *InvoiceRegistry) GetInvoicesForNode(dst models.NodeID) []models.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.byDst[dst]
	out := make([]models.Invoice, 0, len(m))
	for _, inv := range m {
		out = append(out, inv)
	}
	return out
}

// Lookup finds the pending invoice for (dst, paymentID), if any.
func (r *InvoiceRegistry) Lookup(dst models.NodeID, paymentID string) (models.Invoice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byDst[dst]
	if !ok {
		return models.Invoice{}, false
	}
	inv, ok := m[paymentID]
	return inv, ok
}

// Consume removes the invoice for (dst, paymentID), marking it delivered.
func (r *InvoiceRegistry) Consume(dst models.NodeID, paymentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.byDst[dst]; ok {
		delete(m, paymentID)
	}
}

// Match reports whether a delivered amount and source satisfy the pending
// invoice for (dst, paymentID): invoice.amount == delivered &&
// invoice.source == source (spec.md §4.C).
func (r *InvoiceRegistry) Match(dst models.NodeID, paymentID string, delivered int64, source models.NodeID) bool {
	inv, ok := r.Lookup(dst, paymentID)
	if !ok {
		return false
	}
	return inv.Amount == delivered && inv.Source == source
}
