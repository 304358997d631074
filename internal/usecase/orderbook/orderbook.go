package orderbook

import (
	"math"
	"math/rand"
	"sync"

	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	orderbookv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/orderbook/v1"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
)

// SizeModel supplies the aggregate size for a ladder level. side is
// "bid" or "ask", level is 1-based distance from mid.
type SizeModel func(side string, level int) float64

// Options configures ladder reconstruction.
type Options struct {
	// Depth is the number of levels per side.
	Depth int
	// Spacing is the relative distance between adjacent levels (0.0001 = 0.01%).
	Spacing float64
	// Sizes overrides the default random size model when set.
	Sizes SizeModel
	// Seed makes the default size model deterministic when non-zero.
	Seed int64
}

// DefaultOptions mirrors the dashboard's ladder: 15 levels per side,
// 0.01% spacing, sizes uniform in [0.1, 5.1).
func DefaultOptions() Options {
	return Options{
		Depth:   15,
		Spacing: 0.0001,
	}
}

// Validate checks reconstruction parameters at startup.
func (o Options) Validate() error {
	if o.Depth <= 0 {
		return errors.NewConfiguration("depth", "ladder depth must be positive, got %d", o.Depth)
	}
	if o.Spacing <= 0 {
		return errors.NewConfiguration("spacing", "ladder spacing must be positive, got %v", o.Spacing)
	}
	return nil
}

// Engine reconstructs a bounded synthetic ladder per instrument from trade
// ticks. Raw ticks carry only price and size, so the ladder is an explicit
// reconstruction around the last trade price, not observed exchange depth.
type Engine struct {
	opts Options

	mu    sync.RWMutex
	books map[string]*orderbookv1.State
	rng   *rand.Rand
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	e := &Engine{
		opts:  opts,
		books: make(map[string]*orderbookv1.State),
		rng:   rand.New(rand.NewSource(seed)),
	}
	if e.opts.Sizes == nil {
		e.opts.Sizes = e.randomSize
	}
	return e, nil
}

func (e *Engine) randomSize(string, int) float64 {
	return e.rng.Float64()*5 + 0.1
}

// ApplyTick rebuilds the instrument's ladder around the tick price and
// returns the committed state. Recomputation is O(depth).
func (e *Engine) ApplyTick(tick marketv1.Tick, tickSize float64) (*orderbookv1.State, error) {
	if tick.Price <= 0 {
		return nil, errors.NewInvalidTick("price", "cannot build ladder around non-positive price %v", tick.Price)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	mid := tick.Price

	// Levels sit at mid*(1 ± k*spacing). When the relative step collapses
	// below one tick (cheap instruments), fall back to one tick per level so
	// prices stay strictly monotone after rounding.
	step := mid * e.opts.Spacing
	if tickSize > 0 && step < tickSize {
		step = tickSize
	}

	asks := make(orderbookv1.Ladder, 0, e.opts.Depth)
	bids := make(orderbookv1.Ladder, 0, e.opts.Depth)

	var askTotal, bidTotal float64
	for k := 1; k <= e.opts.Depth; k++ {
		askPrice := roundToTick(mid+float64(k)*step, tickSize)
		askSize := e.opts.Sizes("ask", k)
		askTotal += askSize
		asks = append(asks, orderbookv1.Level{Price: askPrice, Size: askSize, Total: askTotal})

		bidPrice := roundToTick(mid-float64(k)*step, tickSize)
		bidSize := e.opts.Sizes("bid", k)
		bidTotal += bidSize
		bids = append(bids, orderbookv1.Level{Price: bidPrice, Size: bidSize, Total: bidTotal})
	}

	bestAsk := asks[0].Price
	bestBid := bids[0].Price
	spread := bestAsk - bestBid

	state := &orderbookv1.State{
		InstrumentID: tick.InstrumentID,
		Bids:         bids,
		Asks:         asks,
		BestBid:      bestBid,
		BestAsk:      bestAsk,
		MidPrice:     mid,
		Spread:       spread,
		SpreadPct:    spread / bestAsk,
		Sequence:     tick.Sequence,
		UpdatedAt:    tick.Timestamp,
	}

	e.books[tick.InstrumentID] = state
	return state.Clone(), nil
}

// Snapshot returns a copy of the current state for the instrument.
func (e *Engine) Snapshot(instrumentID string) (*orderbookv1.State, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	state, exists := e.books[instrumentID]
	if !exists {
		return nil, errors.NewUnknownInstrument(instrumentID)
	}
	return state.Clone(), nil
}

// roundToTick snaps a price to the instrument's minimum increment.
func roundToTick(price, tickSize float64) float64 {
	if tickSize <= 0 {
		return price
	}
	return math.Round(price/tickSize) * tickSize
}
