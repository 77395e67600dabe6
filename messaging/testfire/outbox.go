package testfire

import (
	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
)

// Outbox holds signed reports and retractions until they are flushed to relays. It is a ring that
// doubles when full, so events always leave in the order they were queued.
type Outbox struct {
	events []nostr.Event
	head   int
	count  int
	mutex  *deadlock.Mutex
}

func NewOutbox(size int) *Outbox {
	if size < 1 {
		size = 1
	}
	return &Outbox{
		events: make([]nostr.Event, size),
		mutex:  &deadlock.Mutex{},
	}
}

func (o *Outbox) Push(e nostr.Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.count == len(o.events) {
		grown := make([]nostr.Event, 2*len(o.events))
		n := copy(grown, o.events[o.head:])
		copy(grown[n:], o.events[:o.head])
		o.events = grown
		o.head = 0
	}
	o.events[(o.head+o.count)%len(o.events)] = e
	o.count++
}

// Pop removes the oldest queued event.
func (o *Outbox) Pop() (nostr.Event, bool) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.pop()
}

func (o *Outbox) pop() (nostr.Event, bool) {
	if o.count == 0 {
		return nostr.Event{}, false
	}
	e := o.events[o.head]
	o.events[o.head] = nostr.Event{}
	o.head = (o.head + 1) % len(o.events)
	o.count--
	return e, true
}

func (o *Outbox) Len() int {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.count
}

// Drain empties the outbox, oldest event first.
func (o *Outbox) Drain() []nostr.Event {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	out := make([]nostr.Event, 0, o.count)
	for {
		e, ok := o.pop()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}
