package api

import (
	"time"

	alertv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/alert/v1"
	candlev1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/candle/v1"
	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	orderbookv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/orderbook/v1"
)

// InstrumentInfo describes one tradable instrument.
type InstrumentInfo struct {
	ID          string  `json:"id"`
	BaseSymbol  string  `json:"baseSymbol"`
	QuoteSymbol string  `json:"quoteSymbol"`
	TickSize    float64 `json:"tickSize"`
}

// PriceLevel is one rung of the ladder.
type PriceLevel struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
	Total float64 `json:"total"`
}

// OrderBookSnapshot is the REST and websocket book payload.
type OrderBookSnapshot struct {
	InstrumentID string       `json:"instrumentId"`
	Bids         []PriceLevel `json:"bids"`
	Asks         []PriceLevel `json:"asks"`
	BestBid      float64      `json:"bestBid"`
	BestAsk      float64      `json:"bestAsk"`
	MidPrice     float64      `json:"midPrice"`
	Spread       float64      `json:"spread"`
	SpreadPct    float64      `json:"spreadPct"`
	Timestamp    int64        `json:"timestamp"`
}

// CandleInfo is one OHLCV bucket.
type CandleInfo struct {
	InstrumentID string  `json:"instrumentId"`
	Interval     string  `json:"interval"`
	BucketStart  int64   `json:"bucketStart"`
	Open         float64 `json:"open"`
	High         float64 `json:"high"`
	Low          float64 `json:"low"`
	Close        float64 `json:"close"`
	Volume       float64 `json:"volume"`
	TradeCount   int64   `json:"tradeCount"`
	Closed       bool    `json:"closed"`
}

// AlertInfo is one fired alert.
type AlertInfo struct {
	ID           string `json:"id"`
	RuleID       string `json:"ruleId"`
	Kind         string `json:"kind"`
	InstrumentID string `json:"instrumentId"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	FiredAt      int64  `json:"firedAt"`
}

// StatsInfo is the rolling 24h summary.
type StatsInfo struct {
	InstrumentID string  `json:"instrumentId"`
	LastPrice    float64 `json:"lastPrice"`
	Open24h      float64 `json:"open24h"`
	High24h      float64 `json:"high24h"`
	Low24h       float64 `json:"low24h"`
	Volume24h    float64 `json:"volume24h"`
	ChangePct24h float64 `json:"changePct24h"`
	TickCount    int64   `json:"tickCount"`
	UpdatedAt    int64   `json:"updatedAt"`
}

// ErrorResponse is the common error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WSSubscribeRequest is the inbound websocket control message. Channels
// follow the orderbook:<instrument>, candles:<instrument>:<interval>,
// alerts:<instrument> and stats:<instrument> convention.
type WSSubscribeRequest struct {
	Op       string   `json:"op"`
	Channels []string `json:"channels"`
}

// WSMessage wraps every outbound websocket payload.
type WSMessage struct {
	Channel string `json:"channel"`
	Type    string `json:"type"`
	Data    any    `json:"data"`
}

func toInstrumentInfo(instrument marketv1.Instrument) InstrumentInfo {
	return InstrumentInfo{
		ID:          instrument.ID,
		BaseSymbol:  instrument.BaseSymbol,
		QuoteSymbol: instrument.QuoteSymbol,
		TickSize:    instrument.TickSize,
	}
}

func toOrderBookSnapshot(state *orderbookv1.State) OrderBookSnapshot {
	snapshot := OrderBookSnapshot{
		InstrumentID: state.InstrumentID,
		Bids:         toPriceLevels(state.Bids),
		Asks:         toPriceLevels(state.Asks),
		BestBid:      state.BestBid,
		BestAsk:      state.BestAsk,
		MidPrice:     state.MidPrice,
		Spread:       state.Spread,
		SpreadPct:    state.SpreadPct,
	}
	if !state.UpdatedAt.IsZero() {
		snapshot.Timestamp = state.UpdatedAt.UnixMilli()
	}
	return snapshot
}

func toPriceLevels(ladder orderbookv1.Ladder) []PriceLevel {
	levels := make([]PriceLevel, len(ladder))
	for i, level := range ladder {
		levels[i] = PriceLevel{Price: level.Price, Size: level.Size, Total: level.Total}
	}
	return levels
}

func toCandleInfo(candle candlev1.Candle) CandleInfo {
	return CandleInfo{
		InstrumentID: candle.InstrumentID,
		Interval:     candle.Interval,
		BucketStart:  candle.BucketStart.UnixMilli(),
		Open:         candle.Open,
		High:         candle.High,
		Low:          candle.Low,
		Close:        candle.Close,
		Volume:       candle.Volume,
		TradeCount:   candle.TradeCount,
		Closed:       candle.Closed,
	}
}

func toCandleInfos(candles []candlev1.Candle) []CandleInfo {
	infos := make([]CandleInfo, len(candles))
	for i, candle := range candles {
		infos[i] = toCandleInfo(candle)
	}
	return infos
}

func toAlertInfo(alert alertv1.Alert) AlertInfo {
	return AlertInfo{
		ID:           alert.ID,
		RuleID:       alert.RuleID,
		Kind:         string(alert.Kind),
		InstrumentID: alert.InstrumentID,
		Severity:     string(alert.Severity),
		Message:      alert.Message,
		FiredAt:      alert.FiredAt.UnixMilli(),
	}
}

func toAlertInfos(alerts []alertv1.Alert) []AlertInfo {
	infos := make([]AlertInfo, len(alerts))
	for i, alert := range alerts {
		infos[i] = toAlertInfo(alert)
	}
	return infos
}

func toStatsInfo(stats marketv1.Stats) StatsInfo {
	info := StatsInfo{
		InstrumentID: stats.InstrumentID,
		LastPrice:    stats.LastPrice,
		Open24h:      stats.Open24h,
		High24h:      stats.High24h,
		Low24h:       stats.Low24h,
		Volume24h:    stats.Volume24h,
		ChangePct24h: stats.ChangePct24h,
		TickCount:    stats.TickCount,
	}
	if !stats.UpdatedAt.IsZero() {
		info.UpdatedAt = stats.UpdatedAt.UnixMilli()
	}
	return info
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
