package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "allograft/pkg/domain-errors"
)

func newTestOrgan(t *testing.T) *Organ {
	t.Helper()
	o, err := NewOrgan(100, 100, 1, time.Date(2026, 3, 3, 8, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func TestOrganForwardOnly(t *testing.T) {
	now := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	o := newTestOrgan(t)
	require.Equal(t, StateReady, o.State)

	// Out-of-order transitions are rejected without changing state.
	err := o.Receive(now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	err = o.Transplant(now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	assert.Equal(t, StateReady, o.State)

	require.NoError(t, o.Deliver(now))
	require.NoError(t, o.Receive(now))
	require.NoError(t, o.Transplant(now))
	assert.Equal(t, StateTransplanted, o.State)

	// Every transition is one-shot.
	assert.True(t, dErrors.HasCode(o.Deliver(now), dErrors.CodeInvalidState))
	assert.True(t, dErrors.HasCode(o.Receive(now), dErrors.CodeInvalidState))
	assert.True(t, dErrors.HasCode(o.Transplant(now), dErrors.CodeInvalidState))
}

func TestNewOrganRequiresSurgeryTime(t *testing.T) {
	_, err := NewOrgan(100, 100, 1, time.Time{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestOrganStateWireNames(t *testing.T) {
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "delivered", StateDelivered.String())
	assert.Equal(t, "received", StateReceived.String())
	assert.Equal(t, "transplanted", StateTransplanted.String())

	b, err := StateReady.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ready", string(b))
}
