package simclock

import (
	"github.com/rawblock/pcn-simulator/internal/config"
	"github.com/rawblock/pcn-simulator/internal/executor"
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/pathfind"
	"github.com/rawblock/pcn-simulator/internal/payment"
	"github.com/rawblock/pcn-simulator/internal/rng"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// Driver runs one scenario to completion: it schedules a Payment for every
// drawn (src, dst) pair, then drains the event queue, dispatching each
// Scheduled tick to the configured executor policy (spec.md §4.E).
type Driver struct {
	g      *graph.Graph
	invReg *payment.InvoiceRegistry
	finder *pathfind.Finder
	parts  models.PaymentParts
	queue  *EventQueue
}

// NewDriver wires a driver against a graph, invoice registry and path
// finder already configured for the scenario's routing metric.
func NewDriver(g *graph.Graph, invReg *payment.InvoiceRegistry, finder *pathfind.Finder, parts models.PaymentParts) *Driver {
	return &Driver{g: g, invReg: invReg, finder: finder, parts: parts, queue: NewEventQueue()}
}

// Run schedules one Payment per pair at amount msat, drains the queue, and
// returns every Payment in scheduling order, each frozen on completion.
func (d *Driver) Run(pairs []rng.Pair, amount int64) []*models.Payment {
	tick := models.FromSecs(uint64(config.SimDelay.Seconds()))
	payments := make([]*models.Payment, 0, len(pairs))

	for i, pr := range pairs {
		p := payment.New("", pr.Src, pr.Dst, amount, 0)
		d.invReg.AddInvoice(models.Invoice{PaymentID: p.ID, Amount: amount, Source: pr.Src, Dest: pr.Dst})
		payments = append(payments, p)
		offset := tick * models.Time(i)
		d.queue.Schedule(offset, models.Event{Kind: models.EventScheduled, Payment: p})
	}

	for {
		ev, ok := d.queue.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case models.EventScheduled:
			succeeded := d.dispatch(ev.Payment)
			kind := models.EventUpdateFailed
			if succeeded {
				kind = models.EventUpdateSuccessful
			}
			d.queue.Schedule(0, models.Event{Kind: kind, Payment: ev.Payment})
		case models.EventUpdateSuccessful, models.EventUpdateFailed:
			// bookkeeping-only ticks; the Payment is already frozen.
		}
	}

	return payments
}

func (d *Driver) dispatch(p *models.Payment) bool {
	if d.parts == models.PaymentPartsSplit {
		return executor.SendMPPPayment(d.g, d.invReg, d.finder, p)
	}

	shard := payment.ToShard(p, p.AmountMsat)
	ok := executor.SendSinglePayment(d.g, d.invReg, d.finder, &shard)
	payment.MergeShard(p, shard)
	p.Succeeded = ok
	if !ok {
		p.FailureReason = shard.FailureReason
	}
	return ok
}
