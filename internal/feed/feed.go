package feed

import (
	"context"
	"math"
	"math/rand"
	"time"

	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
	"github.com/Goutam245/Crypto-DashBoard/pkg/logger"
)

// Sink consumes the generated ticks. The core satisfies it.
type Sink interface {
	Ingest(ctx context.Context, tick marketv1.Tick) error
}

// Options configures the synthetic tick source.
type Options struct {
	// Interval is the spacing between generated ticks per instrument.
	Interval time.Duration
	// Drift bounds the per-tick relative price move.
	Drift float64
	// Seed fixes the walk for reproducible runs. Zero seeds from time.
	Seed int64
	// SecondVenue, when set, emits a shadow tick per instrument on that
	// venue with prices offset by VenueOffset. It exists to feed
	// cross-venue alert rules.
	SecondVenue string
	VenueOffset float64
	// StartPrices maps instrument IDs to initial prices. Instruments
	// without an entry start at 100.
	StartPrices map[string]float64
}

// Simulator drives a seeded random walk per instrument and pushes the
// resulting ticks into a sink. It exists so the system produces realistic
// load without any exchange connectivity.
type Simulator struct {
	opts   Options
	sink   Sink
	logger logger.Interface

	instruments []marketv1.Instrument
	prices      map[string]float64
	rng         *rand.Rand
}

// NewSimulator builds a simulator for the given instruments.
func NewSimulator(opts Options, instruments []marketv1.Instrument, sink Sink, log logger.Interface) (*Simulator, error) {
	if opts.Interval <= 0 {
		return nil, errors.NewConfiguration("feed.interval", "tick interval must be positive, got %s", opts.Interval)
	}
	if opts.Drift <= 0 {
		opts.Drift = 0.0002
	}
	if len(instruments) == 0 {
		return nil, errors.NewConfiguration("feed.instruments", "at least one instrument is required")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	prices := make(map[string]float64, len(instruments))
	for _, instrument := range instruments {
		price := opts.StartPrices[instrument.ID]
		if price <= 0 {
			price = 100
		}
		prices[instrument.ID] = price
	}

	return &Simulator{
		opts:        opts,
		sink:        sink,
		logger:      log,
		instruments: instruments,
		prices:      prices,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

// Run generates ticks until the context is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "feed started",
		logger.Field{Key: "instruments", Value: len(s.instruments)},
		logger.Field{Key: "interval", Value: s.opts.Interval.String()},
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "feed stopped")
			return
		case now := <-ticker.C:
			s.emit(ctx, now.UTC())
		}
	}
}

func (s *Simulator) emit(ctx context.Context, now time.Time) {
	for _, instrument := range s.instruments {
		price := s.step(instrument)
		tick := marketv1.Tick{
			InstrumentID: instrument.ID,
			Timestamp:    now,
			Price:        price,
			Volume:       s.rng.Float64()*5 + 0.1,
			Side:         s.side(),
		}
		if err := s.sink.Ingest(ctx, tick); err != nil {
			s.logger.WarnContext(ctx, "feed tick rejected",
				logger.Field{Key: "instrument_id", Value: instrument.ID},
				logger.Field{Key: "reason", Value: err.Error()},
			)
		}

		if s.opts.SecondVenue == "" {
			continue
		}
		shadow := tick
		shadow.Venue = s.opts.SecondVenue
		shadow.Timestamp = now.Add(time.Millisecond)
		shadow.Price = s.roundToTick(price*(1+(s.rng.Float64()*2-1)*s.opts.VenueOffset), instrument.TickSize)
		if err := s.sink.Ingest(ctx, shadow); err != nil {
			s.logger.WarnContext(ctx, "feed tick rejected",
				logger.Field{Key: "instrument_id", Value: instrument.ID},
				logger.Field{Key: "venue", Value: s.opts.SecondVenue},
				logger.Field{Key: "reason", Value: err.Error()},
			)
		}
	}
}

// step advances the instrument's random walk by one move.
func (s *Simulator) step(instrument marketv1.Instrument) float64 {
	current := s.prices[instrument.ID]
	move := (s.rng.Float64()*2 - 1) * s.opts.Drift
	next := s.roundToTick(current*(1+move), instrument.TickSize)
	if next < instrument.TickSize {
		next = instrument.TickSize
	}
	s.prices[instrument.ID] = next
	return next
}

func (s *Simulator) side() marketv1.Side {
	if s.rng.Float64() < 0.5 {
		return marketv1.SideBuy
	}
	return marketv1.SideSell
}

func (s *Simulator) roundToTick(price, tickSize float64) float64 {
	if tickSize <= 0 {
		return price
	}
	return math.Round(price/tickSize) * tickSize
}
