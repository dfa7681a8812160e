package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapLimiter(t *testing.T) {
	now := time.Unix(1700000000, 0)

	t.Run("allows up to burst then denies", func(t *testing.T) {
		l := New(1, 2, time.Minute)
		assert.True(t, l.Allow("actor-a", now))
		assert.True(t, l.Allow("actor-a", now))
		assert.False(t, l.Allow("actor-a", now))
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := New(1, 1, time.Minute)
		assert.True(t, l.Allow("actor-a", now))
		assert.True(t, l.Allow("actor-b", now))
	})

	t.Run("refills over time", func(t *testing.T) {
		l := New(1, 1, time.Minute)
		assert.True(t, l.Allow("actor-a", now))
		assert.False(t, l.Allow("actor-a", now))
		assert.True(t, l.Allow("actor-a", now.Add(2*time.Second)))
	})

	t.Run("nil limiter allows everything", func(t *testing.T) {
		var l *MapLimiter
		assert.True(t, l.Allow("anything", now))
	})

	t.Run("empty key is not limited", func(t *testing.T) {
		l := New(1, 1, time.Minute)
		assert.True(t, l.Allow("", now))
		assert.True(t, l.Allow("  ", now))
	})

	t.Run("invalid args return nil", func(t *testing.T) {
		assert.Nil(t, New(0, 1, time.Minute))
		assert.Nil(t, New(1, 0, time.Minute))
	})
}
