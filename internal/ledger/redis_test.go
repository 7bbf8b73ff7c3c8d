package ledger

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Runs only when RORISTAKE_TEST_REDIS points at a disposable Redis.
func TestRedisLedger(t *testing.T) {
	addr := os.Getenv("RORISTAKE_TEST_REDIS")
	if addr == "" {
		t.Skip("RORISTAKE_TEST_REDIS not set")
	}
	ctx := context.Background()

	rdb, err := ConnectRedis(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	key := "roristake:test:" + uuid.NewString()
	t.Cleanup(func() { rdb.Del(context.Background(), key) })
	l := NewRedis(rdb, key)
	require.NoError(t, l.Ping(ctx))

	bal, err := l.Balance(ctx, "w")
	require.NoError(t, err)
	require.Zero(t, bal)

	_, err = l.Stake(ctx, "w", 0)
	require.ErrorIs(t, err, ErrInvalidAmount)

	bal, err = l.Stake(ctx, "w", 40)
	require.NoError(t, err)
	require.Equal(t, 40.0, bal)

	bal, err = l.Stake(ctx, "w", 2.5)
	require.NoError(t, err)
	require.InDelta(t, 42.5, bal, 1e-9)

	bal, err = l.Balance(ctx, "w")
	require.NoError(t, err)
	require.InDelta(t, 42.5, bal, 1e-9)
}
