package core

import (
	"context"
	"sync"
	"time"

	alertv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/alert/v1"
	candlev1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/candle/v1"
	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	orderbookv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/orderbook/v1"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/alert"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/candle"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/ingestor"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/orderbook"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/registry"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
	"github.com/Goutam245/Crypto-DashBoard/pkg/interval"
	"github.com/Goutam245/Crypto-DashBoard/pkg/logger"
)

const statsWindow = 24 * time.Hour

// Options configures the core and its engines.
type Options struct {
	Book   orderbook.Options
	Candle candle.Options
	Alert  alert.Options

	// SubscriberQueue bounds each subscription's event buffer.
	SubscriberQueue int
}

// DefaultOptions composes every engine's defaults with a 64 event
// subscriber queue.
func DefaultOptions() Options {
	return Options{
		Book:            orderbook.DefaultOptions(),
		Candle:          candle.DefaultOptions(),
		Alert:           alert.DefaultOptions(),
		SubscriberQueue: 64,
	}
}

// shard serializes all mutation for one instrument. Ticks for different
// instruments proceed in parallel; two ticks for the same instrument are
// never applied out of program order.
type shard struct {
	mu    sync.Mutex
	stats marketv1.Stats

	windowStart time.Time
}

// Core owns the registry, ingestor, book engine, candle aggregator and
// alert engine, and keeps their views mutually consistent: a snapshot
// taken after Ingest returns reflects the whole tick or none of it.
type Core struct {
	opts   Options
	logger logger.Interface

	registry *registry.Registry
	ingestor *ingestor.Ingestor
	books    *orderbook.Engine
	candles  *candle.Aggregator
	alerts   *alert.Engine
	shortest interval.Interval

	mu     sync.RWMutex
	shards map[string]*shard

	// venuePrices holds the last committed trade price per venue per
	// instrument. Cross-venue rules read this committed copy so arbitrage
	// evaluation never locks two shards at once.
	venueMu     sync.RWMutex
	venuePrices map[string]map[string]float64

	subMu   sync.RWMutex
	subs    map[uint64]*Subscription
	nextSub uint64
}

// NewCore builds a core from options, failing fast on invalid parameters.
func NewCore(opts Options, log logger.Interface) (*Core, error) {
	if opts.SubscriberQueue <= 0 {
		return nil, errors.NewConfiguration("subscriber_queue", "subscriber queue capacity must be positive, got %d", opts.SubscriberQueue)
	}

	books, err := orderbook.NewEngine(opts.Book)
	if err != nil {
		return nil, err
	}
	candles, err := candle.NewAggregator(opts.Candle)
	if err != nil {
		return nil, err
	}
	alerts, err := alert.NewEngine(opts.Alert)
	if err != nil {
		return nil, err
	}

	shortest, _ := interval.Shortest(opts.Candle.Intervals)

	reg := registry.NewRegistry()
	return &Core{
		opts:        opts,
		logger:      log,
		registry:    reg,
		ingestor:    ingestor.NewIngestor(reg),
		books:       books,
		candles:     candles,
		alerts:      alerts,
		shortest:    shortest,
		shards:      make(map[string]*shard),
		venuePrices: make(map[string]map[string]float64),
		subs:        make(map[uint64]*Subscription),
	}, nil
}

// RegisterInstrument adds an instrument to the canonical set.
func (c *Core) RegisterInstrument(instrument marketv1.Instrument) error {
	if err := c.registry.Register(instrument); err != nil {
		return err
	}

	c.mu.Lock()
	c.shards[instrument.ID] = &shard{}
	c.mu.Unlock()

	c.logger.Info("instrument registered",
		logger.Field{Key: "instrument_id", Value: instrument.ID},
		logger.Field{Key: "tick_size", Value: instrument.TickSize},
	)
	return nil
}

// Instruments lists the registered instruments.
func (c *Core) Instruments() []marketv1.Instrument {
	return c.registry.List()
}

// AddRule registers an alert rule after validating it against the
// configured instruments.
func (c *Core) AddRule(rule alertv1.Rule) error {
	if rule.InstrumentID != alertv1.WildcardInstrument && rule.InstrumentID != "" && !c.registry.Has(rule.InstrumentID) {
		return errors.NewUnknownInstrument(rule.InstrumentID)
	}
	return c.alerts.AddRule(rule)
}

// RemoveRule deregisters an alert rule.
func (c *Core) RemoveRule(id string) {
	c.alerts.RemoveRule(id)
}

// Ingest validates and applies one tick. On success the candle, book,
// alert and stats views all reflect the tick before Ingest returns; on
// failure none of them do. Candles are applied ahead of the book because
// the aggregator is the only engine that can still reject after
// validation.
func (c *Core) Ingest(ctx context.Context, tick marketv1.Tick) error {
	sh, err := c.shard(tick.InstrumentID)
	if err != nil {
		// Unregistered instruments are an ingestion-time validation error.
		err = errors.NewInvalidTick("instrument_id", "tick references unregistered instrument %s", tick.InstrumentID)
		c.logger.WarnContext(ctx, "tick rejected",
			logger.Field{Key: "instrument_id", Value: tick.InstrumentID},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		return err
	}

	instrument, err := c.registry.Get(tick.InstrumentID)
	if err != nil {
		return err
	}

	sh.mu.Lock()

	accepted, err := c.ingestor.Accept(tick)
	if err != nil {
		sh.mu.Unlock()
		c.logger.WarnContext(ctx, "tick rejected",
			logger.Field{Key: "instrument_id", Value: tick.InstrumentID},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		return err
	}

	updated, sealed, err := c.candles.ApplyTick(accepted)
	if err != nil {
		sh.mu.Unlock()
		c.logger.WarnContext(ctx, "tick rejected by aggregator",
			logger.Field{Key: "instrument_id", Value: tick.InstrumentID},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		return err
	}

	bookState, err := c.books.ApplyTick(accepted, instrument.TickSize)
	if err != nil {
		sh.mu.Unlock()
		return errors.TracerFromError(err)
	}

	c.updateStats(sh, accepted)
	c.commitVenuePrice(accepted)

	view := alert.View{
		Tick:        accepted,
		Book:        bookState,
		VenuePrices: c.venueSnapshot(accepted.InstrumentID),
	}
	if series, err := c.candles.GetSeries(accepted.InstrumentID, c.shortest.Name, 0); err == nil {
		view.Candles = series
	}
	fired := c.alerts.Evaluate(view)

	events := c.collectEvents(accepted, bookState, updated, sealed, fired)

	sh.mu.Unlock()

	c.publish(events)
	return nil
}

// Subscribe opens a bounded event stream for one instrument. An empty
// timeframe list subscribes to every configured interval.
func (c *Core) Subscribe(instrumentID string, timeframes ...string) (*Subscription, error) {
	if !c.registry.Has(instrumentID) {
		return nil, errors.NewUnknownInstrument(instrumentID)
	}
	for _, name := range timeframes {
		if !interval.IsValidInterval(name) {
			return nil, errors.NewConfiguration("timeframes", "unsupported interval %q", name)
		}
	}

	intervals := make(map[string]bool, len(timeframes))
	for _, name := range timeframes {
		intervals[name] = true
	}

	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextSub++
	sub := &Subscription{
		id:           c.nextSub,
		instrumentID: instrumentID,
		intervals:    intervals,
		events:       make(chan Event, c.opts.SubscriberQueue),
		core:         c,
	}
	c.subs[sub.id] = sub
	return sub, nil
}

// GetOrderBook returns the latest committed book state.
func (c *Core) GetOrderBook(instrumentID string) (*orderbookv1.State, error) {
	if !c.registry.Has(instrumentID) {
		return nil, errors.NewUnknownInstrument(instrumentID)
	}
	state, err := c.books.Snapshot(instrumentID)
	if err != nil {
		// Registered but not yet ticked: an empty book, not an error.
		return &orderbookv1.State{InstrumentID: instrumentID}, nil
	}
	return state, nil
}

// GetCandles returns the most recent limit candles, oldest first.
func (c *Core) GetCandles(instrumentID, intervalName string, limit int) ([]candlev1.Candle, error) {
	if !c.registry.Has(instrumentID) {
		return nil, errors.NewUnknownInstrument(instrumentID)
	}
	return c.candles.GetSeries(instrumentID, intervalName, limit)
}

// GetRecentAlerts returns the newest alerts first, optionally filtered by
// instrument.
func (c *Core) GetRecentAlerts(instrumentID string, limit int) []alertv1.Alert {
	return c.alerts.RecentAlerts(instrumentID, limit)
}

// GetStats returns the rolling 24h summary for an instrument.
func (c *Core) GetStats(instrumentID string) (marketv1.Stats, error) {
	sh, err := c.shard(instrumentID)
	if err != nil {
		return marketv1.Stats{}, err
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.stats, nil
}

// Snapshot returns a mutually consistent view of every derived state for
// one instrument: the shard lock is held across all reads, so the parts
// always reflect the same last committed tick.
func (c *Core) Snapshot(instrumentID string) (*Snapshot, error) {
	instrument, err := c.registry.Get(instrumentID)
	if err != nil {
		return nil, err
	}
	sh, err := c.shard(instrumentID)
	if err != nil {
		return nil, err
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()

	snap := &Snapshot{
		Instrument: instrument,
		Stats:      sh.stats,
		Candles:    make(map[string][]candlev1.Candle, len(c.candles.Intervals())),
		Alerts:     c.alerts.RecentAlerts(instrumentID, 0),
	}
	if book, err := c.books.Snapshot(instrumentID); err == nil {
		snap.Book = book
	} else {
		snap.Book = &orderbookv1.State{InstrumentID: instrumentID}
	}
	for _, iv := range c.candles.Intervals() {
		series, err := c.candles.GetSeries(instrumentID, iv.Name, 0)
		if err == nil && len(series) > 0 {
			snap.Candles[iv.Name] = series
		}
	}
	return snap, nil
}

func (c *Core) shard(instrumentID string) (*shard, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sh, exists := c.shards[instrumentID]
	if !exists {
		return nil, errors.NewUnknownInstrument(instrumentID)
	}
	return sh, nil
}

// updateStats folds the tick into the shard's rolling day window,
// restarting the window once it ages out.
func (c *Core) updateStats(sh *shard, tick marketv1.Tick) {
	stats := &sh.stats

	if sh.windowStart.IsZero() || tick.Timestamp.Sub(sh.windowStart) > statsWindow {
		sh.windowStart = tick.Timestamp
		stats.InstrumentID = tick.InstrumentID
		stats.Open24h = tick.Price
		stats.High24h = tick.Price
		stats.Low24h = tick.Price
		stats.Volume24h = 0
		stats.TickCount = 0
	}

	stats.LastPrice = tick.Price
	if tick.Price > stats.High24h {
		stats.High24h = tick.Price
	}
	if tick.Price < stats.Low24h {
		stats.Low24h = tick.Price
	}
	stats.Volume24h += tick.Volume
	stats.TickCount++
	if stats.Open24h > 0 {
		stats.ChangePct24h = (tick.Price - stats.Open24h) / stats.Open24h * 100
	}
	stats.UpdatedAt = tick.Timestamp
}

func (c *Core) commitVenuePrice(tick marketv1.Tick) {
	c.venueMu.Lock()
	defer c.venueMu.Unlock()

	byVenue := c.venuePrices[tick.InstrumentID]
	if byVenue == nil {
		byVenue = make(map[string]float64)
		c.venuePrices[tick.InstrumentID] = byVenue
	}
	byVenue[tick.VenueOrDefault()] = tick.Price
}

func (c *Core) venueSnapshot(instrumentID string) map[string]float64 {
	c.venueMu.RLock()
	defer c.venueMu.RUnlock()

	byVenue := c.venuePrices[instrumentID]
	out := make(map[string]float64, len(byVenue))
	for venue, price := range byVenue {
		out[venue] = price
	}
	return out
}

func (c *Core) collectEvents(
	tick marketv1.Tick,
	book *orderbookv1.State,
	updated, sealed []candlev1.Candle,
	fired []alertv1.Alert,
) []Event {
	events := make([]Event, 0, 1+len(updated)+len(sealed)+len(fired))

	events = append(events, Event{
		Type:         EventOrderBookUpdated,
		InstrumentID: tick.InstrumentID,
		Sequence:     tick.Sequence,
		Book:         book,
	})
	for i := range sealed {
		events = append(events, Event{
			Type:         EventCandleClosed,
			InstrumentID: tick.InstrumentID,
			Sequence:     tick.Sequence,
			Candle:       &sealed[i],
		})
	}
	for i := range updated {
		events = append(events, Event{
			Type:         EventCandleUpdated,
			InstrumentID: tick.InstrumentID,
			Sequence:     tick.Sequence,
			Candle:       &updated[i],
		})
	}
	for i := range fired {
		events = append(events, Event{
			Type:         EventAlertFired,
			InstrumentID: tick.InstrumentID,
			Sequence:     tick.Sequence,
			Alert:        &fired[i],
		})
	}
	return events
}

// publish fans events out to matching subscribers. Delivery never blocks:
// a full subscriber queue loses its oldest event.
func (c *Core) publish(events []Event) {
	c.subMu.RLock()
	defer c.subMu.RUnlock()

	for _, sub := range c.subs {
		for _, event := range events {
			if sub.wants(event) {
				sub.deliver(event)
			}
		}
	}
}

func (c *Core) removeSubscription(id uint64) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	delete(c.subs, id)
}
