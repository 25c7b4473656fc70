package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionLimiterWindow(t *testing.T) {
	l := NewConnectionLimiter(RateLimitConfig{ConnectionRateLimit: 2, RateLimitWindow: time.Minute})
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	require.NoError(t, l.Allow("10.0.0.1"))
	require.NoError(t, l.Allow("10.0.0.1"))

	err := l.Allow("10.0.0.1")
	var rle *RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, 2, rle.Current)
	assert.Equal(t, 2, rle.Max)

	// Other keys are independent.
	assert.NoError(t, l.Allow("10.0.0.2"))

	now = now.Add(time.Minute + time.Second)
	assert.NoError(t, l.Allow("10.0.0.1"))
}

func TestConnectionLimiterDisabled(t *testing.T) {
	l := NewConnectionLimiter(RateLimitConfig{})
	for range 100 {
		require.NoError(t, l.Allow("k"))
	}
}
