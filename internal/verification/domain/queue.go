package domain

import "sync"

// LeadQueue is the ordered sequence of leads awaiting a call, consumed FIFO.
type LeadQueue struct {
	mu    sync.Mutex
	items []Lead
}

// NewLeadQueue creates a queue preloaded with the given leads in order.
func NewLeadQueue(leads []Lead) *LeadQueue {
	items := make([]Lead, len(leads))
	copy(items, leads)
	return &LeadQueue{items: items}
}

// Dequeue removes and returns the oldest lead. The second return value is
// false when the queue is empty; Dequeue never blocks.
func (q *LeadQueue) Dequeue() (Lead, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Lead{}, false
	}
	lead := q.items[0]
	q.items = q.items[1:]
	return lead, true
}

// PushFront returns a lead to the head of the queue, used when a dequeued
// lead cannot be dispatched because no resource is free.
func (q *LeadQueue) PushFront(lead Lead) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append([]Lead{lead}, q.items...)
}

// Len returns the number of queued leads.
func (q *LeadQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
