package v1_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	alertv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/alert/v1"
)

func validRule() alertv1.Rule {
	return alertv1.Rule{
		ID:           "r1",
		Kind:         alertv1.KindPriceThreshold,
		InstrumentID: "BTC-USDT",
		Params:       alertv1.Params{Level: 68000, Direction: alertv1.DirectionAbove},
		Cooldown:     time.Minute,
	}
}

func TestRule_Validate(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(r *alertv1.Rule)
		wantErr bool
	}

	testCases := []testCase{
		{
			name:   "valid price threshold",
			mutate: func(r *alertv1.Rule) {},
		},
		{
			name: "missing id",
			mutate: func(r *alertv1.Rule) {
				r.ID = ""
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			mutate: func(r *alertv1.Rule) {
				r.Kind = "price-alarm"
			},
			wantErr: true,
		},
		{
			name: "negative cooldown",
			mutate: func(r *alertv1.Rule) {
				r.Cooldown = -time.Second
			},
			wantErr: true,
		},
		{
			name: "threshold without direction",
			mutate: func(r *alertv1.Rule) {
				r.Params.Direction = ""
			},
			wantErr: true,
		},
		{
			name: "threshold with zero level",
			mutate: func(r *alertv1.Rule) {
				r.Params.Level = 0
			},
			wantErr: true,
		},
		{
			name: "volatility needs positive threshold",
			mutate: func(r *alertv1.Rule) {
				r.Kind = alertv1.KindVolatilitySpike
				r.Params = alertv1.Params{ThresholdPct: 0}
			},
			wantErr: true,
		},
		{
			name: "valid volatility spike",
			mutate: func(r *alertv1.Rule) {
				r.Kind = alertv1.KindVolatilitySpike
				r.Params = alertv1.Params{ThresholdPct: 0.02}
			},
		},
		{
			name: "volume spike needs lookback",
			mutate: func(r *alertv1.Rule) {
				r.Kind = alertv1.KindVolumeSpike
				r.Params = alertv1.Params{Multiple: 3}
			},
			wantErr: true,
		},
		{
			name: "valid volume spike",
			mutate: func(r *alertv1.Rule) {
				r.Kind = alertv1.KindVolumeSpike
				r.Params = alertv1.Params{Multiple: 3, Lookback: 20}
			},
		},
		{
			name: "arbitrage needs both venues",
			mutate: func(r *alertv1.Rule) {
				r.Kind = alertv1.KindArbitrageGap
				r.Params = alertv1.Params{VenueA: "primary", ThresholdPct: 0.005}
			},
			wantErr: true,
		},
		{
			name: "valid arbitrage gap",
			mutate: func(r *alertv1.Rule) {
				r.Kind = alertv1.KindArbitrageGap
				r.Params = alertv1.Params{VenueA: "primary", VenueB: "secondary", ThresholdPct: 0.005}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule := validRule()
			tc.mutate(&rule)

			err := rule.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRule_AppliesTo(t *testing.T) {
	rule := validRule()
	assert.True(t, rule.AppliesTo("BTC-USDT"))
	assert.False(t, rule.AppliesTo("ETH-USDT"))

	rule.InstrumentID = alertv1.WildcardInstrument
	assert.True(t, rule.AppliesTo("ETH-USDT"))
}
