package ingestor

import (
	"sync"
	"time"

	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/registry"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
)

// Ingestor normalizes and validates raw ticks before they reach the book
// and candle engines. Out-of-order ticks are rejected, not reordered: a
// rejected tick affects only itself.
type Ingestor struct {
	registry *registry.Registry

	mu       sync.Mutex
	lastSeen map[string]time.Time
	sequence uint64
}

// NewIngestor creates an ingestor bound to the given instrument registry.
func NewIngestor(reg *registry.Registry) *Ingestor {
	return &Ingestor{
		registry: reg,
		lastSeen: make(map[string]time.Time),
	}
}

// Accept validates a raw tick and stamps it with an ingestion sequence
// number. On success the returned tick is the one downstream engines must
// apply. On failure the ingestor's state is untouched.
func (i *Ingestor) Accept(tick marketv1.Tick) (marketv1.Tick, error) {
	if tick.Price <= 0 {
		return marketv1.Tick{}, errors.NewInvalidTick("price", "tick price must be positive, got %v", tick.Price)
	}
	if tick.Volume < 0 {
		return marketv1.Tick{}, errors.NewInvalidTick("volume", "tick volume cannot be negative, got %v", tick.Volume)
	}
	if tick.Timestamp.IsZero() {
		return marketv1.Tick{}, errors.NewInvalidTick("timestamp", "tick timestamp is required")
	}
	if !i.registry.Has(tick.InstrumentID) {
		return marketv1.Tick{}, errors.NewInvalidTick("instrument_id", "tick references unregistered instrument %s", tick.InstrumentID)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if last, ok := i.lastSeen[tick.InstrumentID]; ok && tick.Timestamp.Before(last) {
		return marketv1.Tick{}, errors.NewInvalidTick(
			"timestamp",
			"tick for %s is out of order: %s is before last accepted %s",
			tick.InstrumentID, tick.Timestamp.Format(time.RFC3339Nano), last.Format(time.RFC3339Nano),
		)
	}

	i.lastSeen[tick.InstrumentID] = tick.Timestamp
	i.sequence++
	tick.Sequence = i.sequence

	return tick, nil
}

// LastAccepted returns the timestamp of the last accepted tick for an
// instrument, or false when none has been accepted yet.
func (i *Ingestor) LastAccepted(instrumentID string) (time.Time, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	ts, ok := i.lastSeen[instrumentID]
	return ts, ok
}
