package core

import (
	alertv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/alert/v1"
	candlev1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/candle/v1"
	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	orderbookv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/orderbook/v1"
)

// EventType identifies a state-change event delivered to subscribers.
type EventType string

const (
	// EventOrderBookUpdated carries the rebuilt ladder after a tick.
	EventOrderBookUpdated EventType = "orderbook_updated"
	// EventCandleUpdated carries the mutated open candle of one interval.
	EventCandleUpdated EventType = "candle_updated"
	// EventCandleClosed carries a candle sealed by a bucket rollover.
	EventCandleClosed EventType = "candle_closed"
	// EventAlertFired carries a rule firing.
	EventAlertFired EventType = "alert_fired"
)

// Event is one state change observed after a committed tick. Exactly one
// of Book, Candle, Alert is set, matching Type.
type Event struct {
	Type         EventType
	InstrumentID string
	Sequence     uint64
	Book         *orderbookv1.State
	Candle       *candlev1.Candle
	Alert        *alertv1.Alert
}

// Snapshot is a point-in-time, mutually consistent read of every derived
// view for one instrument: all parts reflect the same last committed tick.
type Snapshot struct {
	Instrument marketv1.Instrument
	Stats      marketv1.Stats
	Book       *orderbookv1.State
	Candles    map[string][]candlev1.Candle
	Alerts     []alertv1.Alert
}
