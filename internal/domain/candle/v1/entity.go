package v1

import (
	"time"
)

// Candle is a single OHLCV bucket for one (instrument, interval).
type Candle struct {
	InstrumentID string
	Interval     string
	BucketStart  time.Time
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Volume       float64
	TradeCount   int64

	// Closed marks a sealed candle. Sealed candles are immutable.
	Closed bool
}

// NewCandle opens a candle from the first tick of a bucket.
func NewCandle(instrumentID, intervalName string, bucketStart time.Time, price, volume float64) *Candle {
	return &Candle{
		InstrumentID: instrumentID,
		Interval:     intervalName,
		BucketStart:  bucketStart,
		Open:         price,
		High:         price,
		Low:          price,
		Close:        price,
		Volume:       volume,
		TradeCount:   1,
	}
}

// Update folds another tick of the same bucket into an open candle.
func (c *Candle) Update(price, volume float64) {
	c.Close = price
	if price > c.High {
		c.High = price
	}
	if price < c.Low {
		c.Low = price
	}
	c.Volume += volume
	c.TradeCount++
}

// Seal marks the candle immutable.
func (c *Candle) Seal() {
	c.Closed = true
}

// Clone returns a value copy, used when publishing snapshots.
func (c *Candle) Clone() Candle {
	return *c
}
