package feed

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	logger_mock "github.com/Goutam245/Crypto-DashBoard/pkg/logger/mock"
)

type captureSink struct {
	ticks []marketv1.Tick
}

func (c *captureSink) Ingest(_ context.Context, tick marketv1.Tick) error {
	c.ticks = append(c.ticks, tick)
	return nil
}

func quietLogger(t *testing.T) *logger_mock.MockInterface {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := logger_mock.NewMockInterface(ctrl)
	log.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().WarnContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func TestSimulator_EmitWalksWithinDrift(t *testing.T) {
	sink := &captureSink{}
	sim, err := NewSimulator(Options{
		Interval:    time.Second,
		Drift:       0.001,
		Seed:        42,
		StartPrices: map[string]float64{"BTC-USDT": 67000},
	}, []marketv1.Instrument{{ID: "BTC-USDT", TickSize: 0.01}}, sink, quietLogger(t))
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	previous := 67000.0
	for i := 0; i < 50; i++ {
		sim.emit(context.Background(), now.Add(time.Duration(i)*time.Second))
	}

	require.Len(t, sink.ticks, 50)
	for _, tick := range sink.ticks {
		assert.Equal(t, "BTC-USDT", tick.InstrumentID)
		assert.Greater(t, tick.Price, 0.0)
		assert.GreaterOrEqual(t, tick.Volume, 0.1)
		assert.LessOrEqual(t, tick.Volume, 5.1)

		// Each move stays inside the drift bound plus one tick of rounding.
		assert.LessOrEqual(t, math.Abs(tick.Price-previous), previous*0.001+0.01)
		previous = tick.Price
	}
}

func TestSimulator_Deterministic(t *testing.T) {
	run := func() []marketv1.Tick {
		sink := &captureSink{}
		sim, err := NewSimulator(Options{
			Interval:    time.Second,
			Seed:        7,
			StartPrices: map[string]float64{"ETH-USDT": 3500},
		}, []marketv1.Instrument{{ID: "ETH-USDT", TickSize: 0.01}}, sink, quietLogger(t))
		require.NoError(t, err)

		now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 10; i++ {
			sim.emit(context.Background(), now.Add(time.Duration(i)*time.Second))
		}
		return sink.ticks
	}

	assert.Equal(t, run(), run())
}

func TestSimulator_SecondVenue(t *testing.T) {
	sink := &captureSink{}
	sim, err := NewSimulator(Options{
		Interval:    time.Second,
		Seed:        1,
		SecondVenue: "secondary",
		VenueOffset: 0.001,
		StartPrices: map[string]float64{"BTC-USDT": 67000},
	}, []marketv1.Instrument{{ID: "BTC-USDT", TickSize: 0.01}}, sink, quietLogger(t))
	require.NoError(t, err)

	sim.emit(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, sink.ticks, 2)
	assert.Equal(t, "", sink.ticks[0].Venue)
	assert.Equal(t, "secondary", sink.ticks[1].Venue)
	assert.True(t, sink.ticks[1].Timestamp.After(sink.ticks[0].Timestamp))
}

func TestSimulator_RunStopsOnCancel(t *testing.T) {
	sink := &captureSink{}
	sim, err := NewSimulator(Options{
		Interval: time.Millisecond,
		Seed:     3,
	}, []marketv1.Instrument{{ID: "BTC-USDT", TickSize: 0.01}}, sink, quietLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sim.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("simulator did not stop after cancel")
	}
	assert.NotEmpty(t, sink.ticks)
}

func TestNewSimulator_Invalid(t *testing.T) {
	_, err := NewSimulator(Options{Interval: 0}, []marketv1.Instrument{{ID: "X", TickSize: 1}}, &captureSink{}, quietLogger(t))
	require.Error(t, err)

	_, err = NewSimulator(Options{Interval: time.Second}, nil, &captureSink{}, quietLogger(t))
	require.Error(t, err)
}
