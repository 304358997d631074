package core

import (
	"sync"
)

// Subscription is a bounded event stream for one instrument. Delivery is
// asynchronous relative to ingestion: a slow consumer loses the oldest
// queued events instead of blocking the ingest path.
type Subscription struct {
	id           uint64
	instrumentID string
	intervals    map[string]bool
	events       chan Event

	core      *Core
	closeOnce sync.Once
}

// Events returns the subscriber's event stream. The channel is closed by
// Close.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// InstrumentID returns the subscribed instrument.
func (s *Subscription) InstrumentID() string {
	return s.instrumentID
}

// Close tears the subscription down and releases its resources.
// Idempotent; events in flight are dropped silently.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.core.removeSubscription(s.id)
		close(s.events)
	})
}

// wants reports whether the subscriber asked for this event. Candle events
// are filtered by interval when the subscriber named specific timeframes.
func (s *Subscription) wants(event Event) bool {
	if event.InstrumentID != s.instrumentID {
		return false
	}
	if len(s.intervals) == 0 || event.Candle == nil {
		return true
	}
	return s.intervals[event.Candle.Interval]
}

// deliver enqueues without blocking, evicting the oldest queued event when
// the buffer is full.
func (s *Subscription) deliver(event Event) {
	select {
	case s.events <- event:
		return
	default:
	}

	// Full queue: drop the oldest entry and retry once. If a concurrent
	// Close emptied the channel the event is simply dropped.
	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- event:
	default:
	}
}
