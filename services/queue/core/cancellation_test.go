package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanceller_CancelIsIdempotent(t *testing.T) {
	c := NewCanceller()
	_, token := c.Begin(context.Background())

	assert.False(t, c.Expired(token))
	assert.True(t, c.Cancel())
	assert.False(t, c.Cancel())
	assert.True(t, c.Expired(token))
}

func TestCanceller_ArmClearsState(t *testing.T) {
	c := NewCanceller()
	require.True(t, c.TryAcquire("https://a.test"))
	c.Cancel()

	c.Arm()

	assert.Empty(t, c.InFlight())
	assert.True(t, c.Cancel(), "cancel works again after arming")
}

func TestCanceller_InFlight(t *testing.T) {
	c := NewCanceller()

	assert.True(t, c.TryAcquire("https://a.test"))
	assert.False(t, c.TryAcquire("https://a.test"))
	assert.True(t, c.TryAcquire("https://b.test"))
	assert.ElementsMatch(t, []string{"https://a.test", "https://b.test"}, c.InFlight())

	c.Release("https://a.test")
	assert.True(t, c.TryAcquire("https://a.test"))

	c.Cancel()
	assert.Empty(t, c.InFlight())
}

func TestCanceller_BeginContextAbortedByCancel(t *testing.T) {
	c := NewCanceller()

	ctx, token := c.Begin(context.Background())
	require.NoError(t, ctx.Err())
	assert.False(t, c.Expired(token))

	c.Cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, c.Expired(token))
}

func TestCanceller_RearmDoesNotReviveToken(t *testing.T) {
	c := NewCanceller()
	_, stale := c.Begin(context.Background())
	c.Cancel()

	c.Arm()
	assert.True(t, c.Expired(stale))

	ctx, fresh := c.Begin(context.Background())
	assert.NoError(t, ctx.Err())
	assert.False(t, c.Expired(fresh))
	assert.True(t, c.Expired(stale))
}

func TestCanceller_BeginReleasesPreviousContext(t *testing.T) {
	c := NewCanceller()
	first, _ := c.Begin(context.Background())

	c.Begin(context.Background())

	assert.Error(t, first.Err())
}
