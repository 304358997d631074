package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goutam245/Crypto-DashBoard/pkg/config"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "market-core", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Book.Depth)
	assert.Equal(t, 0.0001, cfg.Book.Spacing)
	assert.Equal(t, 100, cfg.Candle.Retention)
	assert.Equal(t, 64, cfg.Subscriber.QueueSize)

	instruments, err := cfg.ParseInstruments()
	require.NoError(t, err)
	require.Len(t, instruments, 3)
	assert.Equal(t, "BTC-USDT", instruments[0].ID)
	assert.Equal(t, 0.01, instruments[0].TickSize)
	assert.Equal(t, "BTC", instruments[0].BaseSymbol)
	assert.Equal(t, "USDT", instruments[0].QuoteSymbol)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MARKET_INSTRUMENTS", "DOGE-USDT:0.00001")
	t.Setenv("BOOK_DEPTH", "10")
	t.Setenv("CANDLE_INTERVALS", "1m,1h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Book.Depth)
	assert.Equal(t, []string{"1m", "1h"}, cfg.Candle.Intervals)

	instruments, err := cfg.ParseInstruments()
	require.NoError(t, err)
	require.Len(t, instruments, 1)
	assert.Equal(t, "DOGE-USDT", instruments[0].ID)
	assert.Equal(t, 0.00001, instruments[0].TickSize)
}

func TestValidate(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr bool
	}

	baseline := func(t *testing.T) *config.Config {
		t.Helper()
		cfg, err := config.Load()
		require.NoError(t, err)
		return cfg
	}

	testCases := []testCase{
		{
			name:   "defaults are valid",
			mutate: func(cfg *config.Config) {},
		},
		{
			name: "no instruments",
			mutate: func(cfg *config.Config) {
				cfg.Market.Instruments = nil
			},
			wantErr: true,
		},
		{
			name: "malformed instrument entry",
			mutate: func(cfg *config.Config) {
				cfg.Market.Instruments = []string{"BTC-USDT"}
			},
			wantErr: true,
		},
		{
			name: "zero tick size",
			mutate: func(cfg *config.Config) {
				cfg.Market.Instruments = []string{"BTC-USDT:0"}
			},
			wantErr: true,
		},
		{
			name: "negative depth",
			mutate: func(cfg *config.Config) {
				cfg.Book.Depth = -1
			},
			wantErr: true,
		},
		{
			name: "unsupported interval",
			mutate: func(cfg *config.Config) {
				cfg.Candle.Intervals = []string{"2m"}
			},
			wantErr: true,
		},
		{
			name: "zero retention",
			mutate: func(cfg *config.Config) {
				cfg.Candle.Retention = 0
			},
			wantErr: true,
		},
		{
			name: "zero queue size",
			mutate: func(cfg *config.Config) {
				cfg.Subscriber.QueueSize = 0
			},
			wantErr: true,
		},
		{
			name: "feed enabled without interval",
			mutate: func(cfg *config.Config) {
				cfg.Feed.IntervalMillis = 0
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseline(t)
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.ErrConfiguration))
				return
			}
			require.NoError(t, err)
		})
	}
}
