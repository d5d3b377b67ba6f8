package gate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	submitted, err := store.IsSubmitted(ctx, "visitor")
	require.NoError(t, err)
	require.False(t, submitted)

	require.NoError(t, store.MarkSubmitted(ctx, "visitor"))

	submitted, err = store.IsSubmitted(ctx, "visitor")
	require.NoError(t, err)
	require.True(t, submitted)

	// Other sessions are unaffected.
	submitted, err = store.IsSubmitted(ctx, "other")
	require.NoError(t, err)
	require.False(t, submitted)

	// The flag expires with the session TTL.
	require.Equal(t, time.Hour, mr.TTL(submittedKeyPrefix+"visitor"))
	mr.FastForward(2 * time.Hour)

	submitted, err = store.IsSubmitted(ctx, "visitor")
	require.NoError(t, err)
	require.False(t, submitted)
}
