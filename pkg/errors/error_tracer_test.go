package errors_test

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
)

func TestTracerFromError_CapturesStack(t *testing.T) {
	traced := errors.TracerFromError(fmt.Errorf("listener failed"))

	assert.Equal(t, "listener failed", traced.Error())
	assert.NotEmpty(t, traced.StackTrace())
}

func TestTracerFromError_KeepsExistingStack(t *testing.T) {
	withStack := pkgerrors.New("already traced")
	traced := errors.TracerFromError(withStack)

	// The original error is kept as-is, not wrapped a second time.
	assert.Equal(t, withStack, traced.Unwrap())
	assert.NotEmpty(t, traced.StackTrace())
}

func TestErrorCodeEquals(t *testing.T) {
	err := errors.NewUnknownInstrument("BTC-USDT")

	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrUnknownInstrument))
	assert.False(t, errors.ErrorCodeEquals(err, errors.ErrInvalidTick))
	assert.False(t, errors.ErrorCodeEquals(fmt.Errorf("plain"), errors.ErrUnknownInstrument))
}
