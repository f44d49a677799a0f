// Package simclock implements the event queue and driver loop described in
// spec.md §4.E: a monotone nanosecond clock with FIFO per-tick delivery,
// and the single-threaded loop that schedules payments and dispatches
// settled ticks to the executor.
package simclock

import (
	"container/heap"
	"sync"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// timeHeap is a min-heap of distinct tick values currently holding events.
type timeHeap []models.Time

func (h timeHeap) Len() int            { return len(h) }
func (h timeHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h timeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timeHeap) Push(x interface{}) { *h = append(*h, x.(models.Time)) }
func (h *timeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// EventQueue orders events by Time, each tick holding a FIFO list. now
// advances monotonically as events are drained.
type EventQueue struct {
	mu      sync.Mutex
	now     models.Time
	buckets map[models.Time][]models.Event
	times   timeHeap
}

// NewEventQueue builds an empty queue with the clock at zero.
func NewEventQueue() *EventQueue {
	return &EventQueue{buckets: make(map[models.Time][]models.Event)}
}

// Schedule inserts event at now+delay.
func (q *EventQueue) Schedule(delay models.Time, event models.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := q.now.Add(delay)
	if _, exists := q.buckets[t]; !exists {
		heap.Push(&q.times, t)
	}
	q.buckets[t] = append(q.buckets[t], event)
}

// Next pops the first event from the earliest non-empty tick, advancing now
// to that tick; the tick is removed once its list empties. Returns
// ok=false when the queue is exhausted.
func (q *EventQueue) Next() (models.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.times.Len() > 0 {
		t := q.times[0]
		bucket := q.buckets[t]
		if len(bucket) == 0 {
			heap.Pop(&q.times)
			delete(q.buckets, t)
			continue
		}
		ev := bucket[0]
		remaining := bucket[1:]
		q.now = t
		if len(remaining) == 0 {
			heap.Pop(&q.times)
			delete(q.buckets, t)
		} else {
			q.buckets[t] = remaining
		}
		return ev, true
	}
	return models.Event{}, false
}

// PeekNextTime returns the next tick without advancing the clock.
func (q *EventQueue) PeekNextTime() (models.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.times.Len() == 0 {
		return 0, false
	}
	return q.times[0], true
}

// Now returns the clock's current tick.
func (q *EventQueue) Now() models.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.now
}
