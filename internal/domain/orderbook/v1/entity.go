package v1

import "time"

// Level is one price level of a ladder.
type Level struct {
	Price float64
	// Size aggregated at this level.
	Size float64
	// Total is the running sum of sizes from the best price outward.
	Total float64
}

// Ladder is one side of the book, ordered by increasing distance from mid.
type Ladder []Level

// Best returns the level closest to mid, or false for an empty ladder.
func (l Ladder) Best() (Level, bool) {
	if len(l) == 0 {
		return Level{}, false
	}
	return l[0], true
}

// TotalSize returns the aggregated size across the whole ladder.
func (l Ladder) TotalSize() float64 {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].Total
}

// State is a committed order-book snapshot for one instrument.
type State struct {
	InstrumentID string
	Bids         Ladder
	Asks         Ladder
	BestBid      float64
	BestAsk      float64
	MidPrice     float64
	Spread       float64
	SpreadPct    float64
	Sequence     uint64
	UpdatedAt    time.Time
}

// Clone returns a deep copy so readers never observe in-place mutation.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Bids = append(Ladder(nil), s.Bids...)
	cp.Asks = append(Ladder(nil), s.Asks...)
	return &cp
}
