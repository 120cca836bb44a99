package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiterAllowsUpToLimit(t *testing.T) {
	mr := miniredis.RunT(t)

	limiter, err := NewRedisRateLimiter("redis://"+mr.Addr(), 3, time.Minute)
	require.NoError(t, err)
	defer limiter.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed, "request over the limit should be denied")
}

func TestRedisRateLimiterKeysAreIndependent(t *testing.T) {
	mr := miniredis.RunT(t)

	limiter, err := NewRedisRateLimiter("redis://"+mr.Addr(), 1, time.Minute)
	require.NoError(t, err)
	defer limiter.Close()

	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed, "a different client must have its own window")

	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestNewRedisRateLimiterBadURL(t *testing.T) {
	_, err := NewRedisRateLimiter("not-a-url", 1, time.Minute)
	assert.Error(t, err)
}

func TestNoOpRateLimiter(t *testing.T) {
	limiter := &NoOpRateLimiter{}
	allowed, err := limiter.Allow(context.Background(), "anyone")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, limiter.Close())
}
