package simclock

import (
	"testing"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

func TestEventQueueOrdersByTimeThenFIFO(t *testing.T) {
	q := NewEventQueue()
	a := models.Payment{ID: "a"}
	b := models.Payment{ID: "b"}
	c := models.Payment{ID: "c"}

	q.Schedule(models.FromSecs(5), models.Event{Kind: models.EventScheduled, Payment: &b})
	q.Schedule(models.FromSecs(1), models.Event{Kind: models.EventScheduled, Payment: &a})
	q.Schedule(models.FromSecs(1), models.Event{Kind: models.EventScheduled, Payment: &c})

	order := []string{}
	for {
		ev, ok := q.Next()
		if !ok {
			break
		}
		order = append(order, ev.Payment.ID)
	}
	want := []string{"a", "c", "b"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestEventQueuePeekDoesNotAdvance(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(models.FromSecs(3), models.Event{Kind: models.EventScheduled})
	peeked, ok := q.PeekNextTime()
	if !ok || peeked != models.FromSecs(3) {
		t.Fatalf("peek = %v, %v; want %v, true", peeked, ok, models.FromSecs(3))
	}
	if q.Now() != 0 {
		t.Fatal("peek must not advance the clock")
	}
}

func TestEventQueueExhausted(t *testing.T) {
	q := NewEventQueue()
	if _, ok := q.Next(); ok {
		t.Fatal("expected empty queue to report ok=false")
	}
}
