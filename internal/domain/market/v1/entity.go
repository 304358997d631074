package v1

import (
	"strings"
	"time"

	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
)

// Side marks which side of the book originated a tick, when known.
type Side string

const (
	// SideBuy marks ticks produced by aggressive buys.
	SideBuy Side = "buy"
	// SideSell marks ticks produced by aggressive sells.
	SideSell Side = "sell"
	// SideUnknown is used when the feed does not report a side.
	SideUnknown Side = ""
)

// DefaultVenue is assumed when a tick carries no venue label.
const DefaultVenue = "primary"

// Instrument is a tradable pair and its static metadata.
// Immutable after registration.
type Instrument struct {
	ID          string
	TickSize    float64
	BaseSymbol  string
	QuoteSymbol string
}

// Validate checks the registration parameters.
func (i Instrument) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.NewConfiguration("id", "instrument id cannot be empty")
	}
	if i.TickSize <= 0 {
		return errors.NewConfiguration("tick_size", "instrument %s: tick size must be positive, got %v", i.ID, i.TickSize)
	}
	if i.BaseSymbol == "" || i.QuoteSymbol == "" {
		return errors.NewConfiguration("symbols", "instrument %s: base and quote symbols are required", i.ID)
	}
	return nil
}

// Tick is the unit of ingestion: one trade event for one instrument.
// Immutable once accepted.
type Tick struct {
	InstrumentID string
	Venue        string
	Timestamp    time.Time
	Price        float64
	Volume       float64
	Side         Side

	// Sequence is assigned by the ingestor on acceptance.
	Sequence uint64
}

// VenueOrDefault returns the tick's venue, falling back to DefaultVenue.
func (t Tick) VenueOrDefault() string {
	if t.Venue == "" {
		return DefaultVenue
	}
	return t.Venue
}

// Stats is a rolling 24h summary for one instrument, the shape the
// watchlist row renders from.
type Stats struct {
	InstrumentID string
	LastPrice    float64
	Open24h      float64
	High24h      float64
	Low24h       float64
	Volume24h    float64
	ChangePct24h float64
	TickCount    int64
	UpdatedAt    time.Time
}
