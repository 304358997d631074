package candle

import (
	"sync"

	candlev1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/candle/v1"
	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
	"github.com/Goutam245/Crypto-DashBoard/pkg/interval"
)

// Options configures candle aggregation.
type Options struct {
	// Intervals are the timeframes maintained concurrently per instrument.
	Intervals []interval.Interval
	// Retention bounds each series, open candle included. FIFO eviction.
	Retention int
}

// DefaultOptions aggregates the chart's timeframes with a 100 candle window.
func DefaultOptions() Options {
	return Options{
		Intervals: []interval.Interval{
			interval.Interval1m,
			interval.Interval5m,
			interval.Interval15m,
			interval.Interval1h,
			interval.Interval4h,
			interval.Interval1d,
		},
		Retention: 100,
	}
}

// Validate checks aggregation parameters at startup.
func (o Options) Validate() error {
	if len(o.Intervals) == 0 {
		return errors.NewConfiguration("intervals", "at least one candle interval is required")
	}
	if o.Retention <= 0 {
		return errors.NewConfiguration("retention", "candle retention must be positive, got %d", o.Retention)
	}
	return nil
}

// series is one (instrument, interval) window: a mutable open candle plus
// a bounded run of sealed ones.
type series struct {
	open   *candlev1.Candle
	sealed []candlev1.Candle
}

// Aggregator buckets ticks into OHLCV candles for every configured
// interval. Exactly one open candle exists per (instrument, interval).
type Aggregator struct {
	opts Options

	mu     sync.RWMutex
	series map[string]map[string]*series
}

// NewAggregator creates an aggregator with the given options.
func NewAggregator(opts Options) (*Aggregator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Aggregator{
		opts:   opts,
		series: make(map[string]map[string]*series),
	}, nil
}

// Intervals returns the configured timeframes.
func (a *Aggregator) Intervals() []interval.Interval {
	return a.opts.Intervals
}

// ApplyTick folds one tick into every configured interval. It returns the
// candles that were updated and the ones sealed by this tick, as copies.
// A tick older than any open bucket is rejected before any interval is
// touched, so application is all-or-nothing.
func (a *Aggregator) ApplyTick(tick marketv1.Tick) (updated, sealed []candlev1.Candle, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	byInterval := a.series[tick.InstrumentID]
	if byInterval == nil {
		byInterval = make(map[string]*series, len(a.opts.Intervals))
		a.series[tick.InstrumentID] = byInterval
	}

	// Ordering is enforced upstream by the ingestor; this guard is defense
	// in depth against a tick landing behind an already-open bucket.
	for _, iv := range a.opts.Intervals {
		s := byInterval[iv.Name]
		if s == nil || s.open == nil {
			continue
		}
		if iv.CalculateBucketTime(tick.Timestamp).Before(s.open.BucketStart) {
			return nil, nil, errors.NewStaleTick(tick.InstrumentID, iv.Name)
		}
	}

	for _, iv := range a.opts.Intervals {
		s := byInterval[iv.Name]
		if s == nil {
			s = &series{}
			byInterval[iv.Name] = s
		}

		bucket := iv.CalculateBucketTime(tick.Timestamp)

		switch {
		case s.open == nil:
			s.open = candlev1.NewCandle(tick.InstrumentID, iv.Name, bucket, tick.Price, tick.Volume)
		case bucket.Equal(s.open.BucketStart):
			s.open.Update(tick.Price, tick.Volume)
		default:
			s.open.Seal()
			sealed = append(sealed, s.open.Clone())
			s.sealed = append(s.sealed, s.open.Clone())
			if len(s.sealed) > a.opts.Retention-1 {
				s.sealed = s.sealed[1:]
			}
			s.open = candlev1.NewCandle(tick.InstrumentID, iv.Name, bucket, tick.Price, tick.Volume)
		}

		updated = append(updated, s.open.Clone())
	}

	return updated, sealed, nil
}

// GetSeries returns the most recent limit candles for the instrument and
// interval, oldest first, open candle last. limit <= 0 returns the whole
// retained window.
func (a *Aggregator) GetSeries(instrumentID, intervalName string, limit int) ([]candlev1.Candle, error) {
	if !interval.IsValidInterval(intervalName) {
		return nil, errors.NewConfiguration("interval", "unsupported interval %q", intervalName)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	byInterval := a.series[instrumentID]
	if byInterval == nil {
		return nil, nil
	}
	s := byInterval[intervalName]
	if s == nil || s.open == nil {
		return nil, nil
	}

	out := make([]candlev1.Candle, 0, len(s.sealed)+1)
	out = append(out, s.sealed...)
	out = append(out, s.open.Clone())

	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// OpenCandle returns a copy of the open candle for (instrument, interval),
// or false when no tick has been seen yet.
func (a *Aggregator) OpenCandle(instrumentID, intervalName string) (candlev1.Candle, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	byInterval := a.series[instrumentID]
	if byInterval == nil {
		return candlev1.Candle{}, false
	}
	s := byInterval[intervalName]
	if s == nil || s.open == nil {
		return candlev1.Candle{}, false
	}
	return s.open.Clone(), true
}
