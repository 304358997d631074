package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
)

func btcUsdt() marketv1.Instrument {
	return marketv1.Instrument{
		ID:          "BTC/USDT",
		TickSize:    0.01,
		BaseSymbol:  "BTC",
		QuoteSymbol: "USDT",
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(btcUsdt()))
	assert.True(t, r.Has("BTC/USDT"))

	got, err := r.Get("BTC/USDT")
	require.NoError(t, err)
	assert.Equal(t, 0.01, got.TickSize)
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(btcUsdt()))
	err := r.Register(btcUsdt())
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrDuplicateInstrument))
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	testCases := []struct {
		name       string
		instrument marketv1.Instrument
	}{
		{
			name:       "empty id",
			instrument: marketv1.Instrument{TickSize: 0.01, BaseSymbol: "BTC", QuoteSymbol: "USDT"},
		},
		{
			name:       "zero tick size",
			instrument: marketv1.Instrument{ID: "BTC/USDT", BaseSymbol: "BTC", QuoteSymbol: "USDT"},
		},
		{
			name:       "missing symbols",
			instrument: marketv1.Instrument{ID: "BTC/USDT", TickSize: 0.01},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := NewRegistry().Register(testCase.instrument)
			require.Error(t, err)
			assert.True(t, errors.ErrorCodeEquals(err, errors.ErrConfiguration))
		})
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("ETH/USDT")
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrUnknownInstrument))
}

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(marketv1.Instrument{ID: "ETH/USDT", TickSize: 0.01, BaseSymbol: "ETH", QuoteSymbol: "USDT"}))
	require.NoError(t, r.Register(btcUsdt()))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "BTC/USDT", list[0].ID)
	assert.Equal(t, "ETH/USDT", list[1].ID)
}
