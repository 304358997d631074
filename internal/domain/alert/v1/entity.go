package v1

import (
	"time"

	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
)

// RuleKind enumerates the supported alert predicates.
type RuleKind string

const (
	// KindPriceThreshold fires on a directional crossing of a price level.
	KindPriceThreshold RuleKind = "price-threshold"
	// KindVolatilitySpike fires on an outsized close-to-close move.
	KindVolatilitySpike RuleKind = "volatility-spike"
	// KindSpreadAnomaly fires when the relative spread widens past a threshold.
	KindSpreadAnomaly RuleKind = "spread-anomaly"
	// KindVolumeSpike fires when open-candle volume dwarfs the trailing average.
	KindVolumeSpike RuleKind = "volume-spike"
	// KindArbitrageGap fires when two venues' prices for one instrument diverge.
	KindArbitrageGap RuleKind = "arbitrage-gap"
)

// Severity of a fired alert, matching the dashboard's badge levels.
type Severity string

const (
	// SeverityInfo is an informational alert.
	SeverityInfo Severity = "info"
	// SeverityWarning is a warning alert.
	SeverityWarning Severity = "warning"
	// SeverityCritical is a critical alert.
	SeverityCritical Severity = "critical"
	// SeveritySuccess is a positive notification.
	SeveritySuccess Severity = "success"
)

// Direction of a price-threshold crossing.
type Direction string

const (
	// DirectionAbove fires when price crosses the level upward.
	DirectionAbove Direction = "above"
	// DirectionBelow fires when price crosses the level downward.
	DirectionBelow Direction = "below"
)

// WildcardInstrument makes a rule apply to every registered instrument.
const WildcardInstrument = "*"

// Params carries the per-kind thresholds of a rule. Only the fields
// relevant to the rule's kind are read.
type Params struct {
	// Level is the price level for price-threshold rules.
	Level float64
	// Direction is the crossing direction for price-threshold rules.
	Direction Direction
	// ThresholdPct is the relative threshold for volatility-spike,
	// spread-anomaly and arbitrage-gap rules (0.005 = 0.5%).
	ThresholdPct float64
	// Multiple is the volume multiple for volume-spike rules.
	Multiple float64
	// Lookback is the number of closed candles averaged by volume-spike rules.
	Lookback int
	// VenueA and VenueB are the compared venues for arbitrage-gap rules.
	VenueA string
	VenueB string
}

// Rule is a registered alert predicate.
type Rule struct {
	ID           string
	Kind         RuleKind
	InstrumentID string
	Params       Params
	Cooldown     time.Duration
}

// AppliesTo reports whether the rule covers the given instrument.
func (r Rule) AppliesTo(instrumentID string) bool {
	return r.InstrumentID == WildcardInstrument || r.InstrumentID == instrumentID
}

// Validate checks the rule parameters. Invalid rules are rejected at
// registration, never at evaluation time.
func (r Rule) Validate() error {
	if r.ID == "" {
		return errors.NewConfiguration("id", "rule id cannot be empty")
	}
	if r.InstrumentID == "" {
		return errors.NewConfiguration("instrument_id", "rule %s: instrument id cannot be empty (use %q for all)", r.ID, WildcardInstrument)
	}
	if r.Cooldown < 0 {
		return errors.NewConfiguration("cooldown", "rule %s: cooldown cannot be negative", r.ID)
	}

	switch r.Kind {
	case KindPriceThreshold:
		if r.Params.Level <= 0 {
			return errors.NewConfiguration("level", "rule %s: price level must be positive", r.ID)
		}
		if r.Params.Direction != DirectionAbove && r.Params.Direction != DirectionBelow {
			return errors.NewConfiguration("direction", "rule %s: direction must be above or below", r.ID)
		}
	case KindVolatilitySpike, KindSpreadAnomaly:
		if r.Params.ThresholdPct <= 0 {
			return errors.NewConfiguration("threshold_pct", "rule %s: threshold must be positive", r.ID)
		}
	case KindVolumeSpike:
		if r.Params.Multiple <= 1 {
			return errors.NewConfiguration("multiple", "rule %s: multiple must exceed 1", r.ID)
		}
		if r.Params.Lookback <= 0 {
			return errors.NewConfiguration("lookback", "rule %s: lookback must be positive", r.ID)
		}
	case KindArbitrageGap:
		if r.Params.ThresholdPct <= 0 {
			return errors.NewConfiguration("threshold_pct", "rule %s: threshold must be positive", r.ID)
		}
		if r.Params.VenueA == "" || r.Params.VenueB == "" || r.Params.VenueA == r.Params.VenueB {
			return errors.NewConfiguration("venues", "rule %s: two distinct venues are required", r.ID)
		}
	default:
		return errors.NewConfiguration("kind", "rule %s: unknown kind %q", r.ID, r.Kind)
	}

	return nil
}

// Alert is a single fired notification. Immutable once created.
type Alert struct {
	ID           string
	RuleID       string
	Kind         RuleKind
	InstrumentID string
	Severity     Severity
	Message      string
	FiredAt      time.Time
}
