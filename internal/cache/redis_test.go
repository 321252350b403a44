package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID    string `json:"id"`
	Views int64  `json:"views"`
}

func newTestCache(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisClientWith(client, time.Minute), mr
}

func TestGetJSON_Miss(t *testing.T) {
	c, _ := newTestCache(t)
	var out payload
	ok, err := c.GetJSON(context.Background(), "nope", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetGetDelJSON(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	in := payload{ID: "p1", Views: 7}
	require.NoError(t, c.SetJSON(ctx, "post:detail:p1", in))

	var out payload
	ok, err := c.GetJSON(ctx, "post:detail:p1", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	require.NoError(t, c.Del(ctx, "post:detail:p1"))
	ok, err = c.GetJSON(ctx, "post:detail:p1", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetJSON_AppliesTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", payload{ID: "p1"}))
	mr.FastForward(2 * time.Minute)

	var out payload
	ok, err := c.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}
