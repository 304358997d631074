package alert

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	alertv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/alert/v1"
	candlev1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/candle/v1"
	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	orderbookv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/orderbook/v1"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
)

// View is the committed post-tick state a rule evaluates against. The
// engine only ever reads it, never mutates book or candle state.
type View struct {
	Tick marketv1.Tick
	Book *orderbookv1.State
	// Candles is the shortest configured interval's series, oldest first,
	// open candle last.
	Candles []candlev1.Candle
	// VenuePrices maps venue name to last committed trade price for the
	// tick's instrument, across all venues.
	VenuePrices map[string]float64
}

// Options configures the alert engine.
type Options struct {
	// HistoryCap bounds the append-only alert log. FIFO eviction.
	HistoryCap int
}

// DefaultOptions keeps a 100 alert rolling feed.
func DefaultOptions() Options {
	return Options{HistoryCap: 100}
}

// Engine evaluates registered rules against committed snapshots after
// every applied tick, with a per rule+instrument cooldown so a sustained
// condition cannot storm the feed.
type Engine struct {
	opts Options

	mu        sync.Mutex
	rules     map[string]alertv1.Rule
	lastFired map[string]time.Time
	lastPrice map[string]float64
	returns   map[string]*welfordState
	history   []alertv1.Alert
}

// NewEngine creates an alert engine.
func NewEngine(opts Options) (*Engine, error) {
	if opts.HistoryCap <= 0 {
		return nil, errors.NewConfiguration("history_cap", "alert history capacity must be positive, got %d", opts.HistoryCap)
	}
	return &Engine{
		opts:      opts,
		rules:     make(map[string]alertv1.Rule),
		lastFired: make(map[string]time.Time),
		lastPrice: make(map[string]float64),
		returns:   make(map[string]*welfordState),
	}, nil
}

// AddRule registers a rule. Invalid parameters fail here, never during
// evaluation.
func (e *Engine) AddRule(rule alertv1.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.rules[rule.ID]; exists {
		return errors.NewConfiguration("id", "rule %s is already registered", rule.ID)
	}
	e.rules[rule.ID] = rule
	return nil
}

// RemoveRule deregisters a rule. Removing an unknown id is a no-op.
func (e *Engine) RemoveRule(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.rules, id)
}

// Rules returns the registered rules.
func (e *Engine) Rules() []alertv1.Rule {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]alertv1.Rule, 0, len(e.rules))
	for _, rule := range e.rules {
		out = append(out, rule)
	}
	return out
}

// Evaluate runs every applicable rule against the view and returns the
// alerts fired by this tick. Time is taken from the tick, keeping
// evaluation deterministic under replayed streams.
func (e *Engine) Evaluate(view View) []alertv1.Alert {
	instrumentID := view.Tick.InstrumentID
	now := view.Tick.Timestamp

	e.mu.Lock()
	defer e.mu.Unlock()

	var fired []alertv1.Alert
	for _, rule := range e.rules {
		if !rule.AppliesTo(instrumentID) {
			continue
		}

		key := rule.ID + "|" + instrumentID
		severity, message, ok := e.check(rule, key, view)
		if !ok {
			continue
		}

		if last, seen := e.lastFired[key]; seen && now.Sub(last) < rule.Cooldown {
			continue
		}
		e.lastFired[key] = now

		alert := alertv1.Alert{
			ID:           uuid.NewString(),
			RuleID:       rule.ID,
			Kind:         rule.Kind,
			InstrumentID: instrumentID,
			Severity:     severity,
			Message:      message,
			FiredAt:      now,
		}
		fired = append(fired, alert)
		e.appendHistory(alert)
	}

	// Tick-over-tick return statistics feed volatility severity grading.
	// Crossing and return state is kept per venue so an offset shadow
	// venue cannot re-arm a threshold or inflate the variance baseline.
	stateKey := priceStateKey(view.Tick)
	if prev, seen := e.lastPrice[stateKey]; seen && prev > 0 {
		e.welford(stateKey).update((view.Tick.Price - prev) / prev)
	}
	e.lastPrice[stateKey] = view.Tick.Price

	return fired
}

// RecentAlerts returns the newest alerts first. instrumentID "" or the
// wildcard selects all instruments; limit <= 0 returns the full history.
func (e *Engine) RecentAlerts(instrumentID string, limit int) []alertv1.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []alertv1.Alert
	for i := len(e.history) - 1; i >= 0; i-- {
		if instrumentID != "" && instrumentID != alertv1.WildcardInstrument && e.history[i].InstrumentID != instrumentID {
			continue
		}
		out = append(out, e.history[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (e *Engine) appendHistory(alert alertv1.Alert) {
	e.history = append(e.history, alert)
	if len(e.history) > e.opts.HistoryCap {
		e.history = e.history[1:]
	}
}

func (e *Engine) welford(stateKey string) *welfordState {
	w := e.returns[stateKey]
	if w == nil {
		w = &welfordState{}
		e.returns[stateKey] = w
	}
	return w
}

// priceStateKey scopes previous-price and return state to one venue's
// stream for an instrument.
func priceStateKey(tick marketv1.Tick) string {
	return tick.InstrumentID + "|" + tick.VenueOrDefault()
}

// check evaluates one rule's predicate against the view. It returns the
// severity and message for a firing, or ok=false when the predicate does
// not hold.
func (e *Engine) check(rule alertv1.Rule, key string, view View) (alertv1.Severity, string, bool) {
	switch rule.Kind {
	case alertv1.KindPriceThreshold:
		return e.checkPriceThreshold(rule, key, view)
	case alertv1.KindVolatilitySpike:
		return e.checkVolatilitySpike(rule, view)
	case alertv1.KindSpreadAnomaly:
		return e.checkSpreadAnomaly(rule, view)
	case alertv1.KindVolumeSpike:
		return e.checkVolumeSpike(rule, view)
	case alertv1.KindArbitrageGap:
		return e.checkArbitrageGap(rule, view)
	default:
		return "", "", false
	}
}

// checkPriceThreshold fires on the crossing transition only: the previous
// observed price must sit on the other side of the level.
func (e *Engine) checkPriceThreshold(rule alertv1.Rule, key string, view View) (alertv1.Severity, string, bool) {
	price := view.Tick.Price
	level := rule.Params.Level

	prev, seen := e.lastPrice[priceStateKey(view.Tick)]
	if !seen {
		return "", "", false
	}

	var crossed bool
	switch rule.Params.Direction {
	case alertv1.DirectionAbove:
		crossed = prev <= level && price > level
	case alertv1.DirectionBelow:
		crossed = prev >= level && price < level
	}
	if !crossed {
		return "", "", false
	}

	message := fmt.Sprintf("%s crossed %s %.2f (last %.2f)",
		view.Tick.InstrumentID, rule.Params.Direction, level, price)
	return alertv1.SeverityInfo, message, true
}

func (e *Engine) checkVolatilitySpike(rule alertv1.Rule, view View) (alertv1.Severity, string, bool) {
	n := len(view.Candles)
	if n < 2 {
		return "", "", false
	}
	prevClose := view.Candles[n-2].Close
	lastClose := view.Candles[n-1].Close
	if prevClose <= 0 {
		return "", "", false
	}

	move := math.Abs(lastClose-prevClose) / prevClose
	if move <= rule.Params.ThresholdPct {
		return "", "", false
	}

	// Grade against the venue stream's own return distribution: a move
	// beyond three sigmas is critical, anything else a warning.
	severity := alertv1.SeverityWarning
	if sigma := e.welford(priceStateKey(view.Tick)).sigma(); move > 3*sigma {
		severity = alertv1.SeverityCritical
	}

	message := fmt.Sprintf("%s moved %.2f%% in one %s candle (threshold %.2f%%)",
		view.Tick.InstrumentID, move*100, view.Candles[n-1].Interval, rule.Params.ThresholdPct*100)
	return severity, message, true
}

func (e *Engine) checkSpreadAnomaly(rule alertv1.Rule, view View) (alertv1.Severity, string, bool) {
	if view.Book == nil || view.Book.SpreadPct <= rule.Params.ThresholdPct {
		return "", "", false
	}

	message := fmt.Sprintf("%s spread widened to %.3f%% (threshold %.3f%%)",
		view.Tick.InstrumentID, view.Book.SpreadPct*100, rule.Params.ThresholdPct*100)
	return alertv1.SeverityWarning, message, true
}

func (e *Engine) checkVolumeSpike(rule alertv1.Rule, view View) (alertv1.Severity, string, bool) {
	n := len(view.Candles)
	if n < rule.Params.Lookback+1 {
		return "", "", false
	}

	open := view.Candles[n-1]
	trailing := view.Candles[n-1-rule.Params.Lookback : n-1]

	var sum float64
	for _, candle := range trailing {
		sum += candle.Volume
	}
	avg := sum / float64(rule.Params.Lookback)
	if avg <= 0 || open.Volume <= avg*rule.Params.Multiple {
		return "", "", false
	}

	message := fmt.Sprintf("%s volume %.0f is %.1fx the trailing %d-candle average %.0f",
		view.Tick.InstrumentID, open.Volume, open.Volume/avg, rule.Params.Lookback, avg)
	return alertv1.SeverityWarning, message, true
}

func (e *Engine) checkArbitrageGap(rule alertv1.Rule, view View) (alertv1.Severity, string, bool) {
	priceA, okA := view.VenuePrices[rule.Params.VenueA]
	priceB, okB := view.VenuePrices[rule.Params.VenueB]
	if !okA || !okB || priceA <= 0 || priceB <= 0 {
		return "", "", false
	}

	gap := math.Abs(priceA-priceB) / math.Min(priceA, priceB)
	if gap <= rule.Params.ThresholdPct {
		return "", "", false
	}

	message := fmt.Sprintf("%s price gap %.2f%% between %s (%.2f) and %s (%.2f)",
		view.Tick.InstrumentID, gap*100, rule.Params.VenueA, priceA, rule.Params.VenueB, priceB)
	return alertv1.SeverityWarning, message, true
}
