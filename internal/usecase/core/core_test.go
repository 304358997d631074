package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	alertv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/alert/v1"
	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/core"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
	logger_mock "github.com/Goutam245/Crypto-DashBoard/pkg/logger/mock"
)

func newTestCore(t *testing.T, opts core.Options) *core.Core {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := logger_mock.NewMockInterface(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().WarnContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	c, err := core.NewCore(opts, log)
	require.NoError(t, err)
	return c
}

func btcUSDT() marketv1.Instrument {
	return marketv1.Instrument{
		ID:          "BTC-USDT",
		TickSize:    0.01,
		BaseSymbol:  "BTC",
		QuoteSymbol: "USDT",
	}
}

func tickAt(ts time.Time, price, volume float64) marketv1.Tick {
	return marketv1.Tick{
		InstrumentID: "BTC-USDT",
		Timestamp:    ts,
		Price:        price,
		Volume:       volume,
		Side:         marketv1.SideBuy,
	}
}

func TestCore_IngestUpdatesEveryView(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())
	require.NoError(t, c.RegisterInstrument(btcUSDT()))

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	prices := []float64{67000, 67100, 67300}
	for i, price := range prices {
		err := c.Ingest(context.Background(), tickAt(base.Add(time.Duration(i)*time.Minute), price, 1.5))
		require.NoError(t, err)
	}

	book, err := c.GetOrderBook("BTC-USDT")
	require.NoError(t, err)
	assert.Len(t, book.Bids, 15)
	assert.Len(t, book.Asks, 15)
	assert.Less(t, book.BestBid, book.BestAsk)
	assert.InDelta(t, 67300, book.MidPrice, 67300*0.001)

	candles, err := c.GetCandles("BTC-USDT", "1h", 0)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, 67000.0, candles[0].Open)
	assert.Equal(t, 67300.0, candles[0].High)
	assert.Equal(t, 67000.0, candles[0].Low)
	assert.Equal(t, 67300.0, candles[0].Close)
	assert.InDelta(t, 4.5, candles[0].Volume, 1e-9)
	assert.False(t, candles[0].Closed)

	stats, err := c.GetStats("BTC-USDT")
	require.NoError(t, err)
	assert.Equal(t, 67300.0, stats.LastPrice)
	assert.Equal(t, 67000.0, stats.Open24h)
	assert.Equal(t, 67300.0, stats.High24h)
	assert.Equal(t, 67000.0, stats.Low24h)
	assert.InDelta(t, 4.5, stats.Volume24h, 1e-9)
	assert.Equal(t, int64(3), stats.TickCount)
}

func TestCore_RejectedTickLeavesStateUntouched(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())
	require.NoError(t, c.RegisterInstrument(btcUSDT()))

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, c.Ingest(context.Background(), tickAt(base, 67000, 1)))

	before, err := c.Snapshot("BTC-USDT")
	require.NoError(t, err)

	stale := tickAt(base.Add(-time.Minute), 66000, 2)
	err = c.Ingest(context.Background(), stale)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrInvalidTick))

	after, err := c.Snapshot("BTC-USDT")
	require.NoError(t, err)
	assert.Equal(t, before.Stats, after.Stats)
	assert.Equal(t, before.Book, after.Book)
	assert.Equal(t, before.Candles, after.Candles)
}

func TestCore_IngestUnregisteredInstrument(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())

	tick := tickAt(time.Now(), 67000, 1)
	err := c.Ingest(context.Background(), tick)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrInvalidTick))
}

func TestCore_SubscriptionReceivesEvents(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())
	require.NoError(t, c.RegisterInstrument(btcUSDT()))

	sub, err := c.Subscribe("BTC-USDT", "1m")
	require.NoError(t, err)
	defer sub.Close()

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, c.Ingest(context.Background(), tickAt(base, 67000, 1)))

	var types []core.EventType
	for len(sub.Events()) > 0 {
		types = append(types, (<-sub.Events()).Type)
	}
	assert.Contains(t, types, core.EventOrderBookUpdated)
	assert.Contains(t, types, core.EventCandleUpdated)
}

func TestCore_SubscriptionIntervalFilter(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())
	require.NoError(t, c.RegisterInstrument(btcUSDT()))

	sub, err := c.Subscribe("BTC-USDT", "1h")
	require.NoError(t, err)
	defer sub.Close()

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, c.Ingest(context.Background(), tickAt(base, 67000, 1)))

	candleEvents := 0
	for len(sub.Events()) > 0 {
		event := <-sub.Events()
		if event.Type == core.EventCandleUpdated {
			candleEvents++
			assert.Equal(t, "1h", event.Candle.Interval)
		}
	}
	assert.Equal(t, 1, candleEvents)
}

func TestCore_SubscriptionDropOldestOnFullQueue(t *testing.T) {
	opts := core.DefaultOptions()
	opts.SubscriberQueue = 4
	c := newTestCore(t, opts)
	require.NoError(t, c.RegisterInstrument(btcUSDT()))

	sub, err := c.Subscribe("BTC-USDT", "1m")
	require.NoError(t, err)
	defer sub.Close()

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		require.NoError(t, c.Ingest(context.Background(), tickAt(base.Add(time.Duration(i)*time.Second), 67000+float64(i), 1)))
	}

	// Queue stayed bounded and holds the most recent events.
	assert.LessOrEqual(t, len(sub.Events()), 4)

	var lastSeq uint64
	for len(sub.Events()) > 0 {
		event := <-sub.Events()
		assert.GreaterOrEqual(t, event.Sequence, lastSeq)
		lastSeq = event.Sequence
	}
	assert.Equal(t, uint64(20), lastSeq)
}

func TestCore_SubscribeUnknownInstrument(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())

	_, err := c.Subscribe("ETH-USDT")
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrUnknownInstrument))
}

func TestCore_CloseIsIdempotentAndStopsDelivery(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())
	require.NoError(t, c.RegisterInstrument(btcUSDT()))

	sub, err := c.Subscribe("BTC-USDT")
	require.NoError(t, err)

	sub.Close()
	sub.Close()

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, c.Ingest(context.Background(), tickAt(base, 67000, 1)))

	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestCore_AlertVisibleWithTriggeringState(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())
	require.NoError(t, c.RegisterInstrument(btcUSDT()))
	require.NoError(t, c.AddRule(alertv1.Rule{
		ID:           "btc-68k",
		Kind:         alertv1.KindPriceThreshold,
		InstrumentID: "BTC-USDT",
		Params:       alertv1.Params{Level: 68000, Direction: alertv1.DirectionAbove},
		Cooldown:     time.Minute,
	}))

	sub, err := c.Subscribe("BTC-USDT")
	require.NoError(t, err)
	defer sub.Close()

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, c.Ingest(context.Background(), tickAt(base, 67900, 1)))
	require.NoError(t, c.Ingest(context.Background(), tickAt(base.Add(time.Second), 68100, 1)))

	var alertEvent *core.Event
	for len(sub.Events()) > 0 {
		event := <-sub.Events()
		if event.Type == core.EventAlertFired {
			alertEvent = &event
			break
		}
	}
	require.NotNil(t, alertEvent)
	assert.Equal(t, "btc-68k", alertEvent.Alert.RuleID)
	assert.Equal(t, uint64(2), alertEvent.Sequence)

	// The queryable state already reflects the tick that fired the alert.
	stats, err := c.GetStats("BTC-USDT")
	require.NoError(t, err)
	assert.Equal(t, 68100.0, stats.LastPrice)

	recent := c.GetRecentAlerts("BTC-USDT", 0)
	require.Len(t, recent, 1)
	assert.Equal(t, "btc-68k", recent[0].RuleID)
}

func TestCore_AddRuleUnknownInstrument(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())

	err := c.AddRule(alertv1.Rule{
		ID:           "r1",
		Kind:         alertv1.KindPriceThreshold,
		InstrumentID: "ETH-USDT",
		Params:       alertv1.Params{Level: 3000, Direction: alertv1.DirectionAbove},
		Cooldown:     time.Minute,
	})
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrUnknownInstrument))
}

func TestCore_CrossVenueArbitrage(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())
	require.NoError(t, c.RegisterInstrument(btcUSDT()))
	require.NoError(t, c.AddRule(alertv1.Rule{
		ID:           "arb",
		Kind:         alertv1.KindArbitrageGap,
		InstrumentID: "BTC-USDT",
		Params:       alertv1.Params{VenueA: "primary", VenueB: "secondary", ThresholdPct: 0.005},
		Cooldown:     time.Minute,
	}))

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)

	primary := tickAt(base, 67000, 1)
	require.NoError(t, c.Ingest(context.Background(), primary))

	secondary := tickAt(base.Add(time.Second), 67500, 1)
	secondary.Venue = "secondary"
	require.NoError(t, c.Ingest(context.Background(), secondary))

	recent := c.GetRecentAlerts("BTC-USDT", 0)
	require.Len(t, recent, 1)
	assert.Equal(t, alertv1.KindArbitrageGap, recent[0].Kind)
}

func TestCore_SnapshotConsistency(t *testing.T) {
	c := newTestCore(t, core.DefaultOptions())
	require.NoError(t, c.RegisterInstrument(btcUSDT()))

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, c.Ingest(context.Background(), tickAt(base, 67000, 2)))

	snap, err := c.Snapshot("BTC-USDT")
	require.NoError(t, err)
	assert.Equal(t, "BTC-USDT", snap.Instrument.ID)
	assert.Equal(t, 67000.0, snap.Stats.LastPrice)
	assert.InDelta(t, 67000, snap.Book.MidPrice, 67)
	require.Contains(t, snap.Candles, "1m")
	assert.Equal(t, 67000.0, snap.Candles["1m"][0].Close)
}

func TestCore_InvalidOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger_mock.NewMockInterface(ctrl)

	opts := core.DefaultOptions()
	opts.SubscriberQueue = 0
	_, err := core.NewCore(opts, log)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrConfiguration))
}
