// Package testutils holds fixtures shared by repository, handler and
// export tests.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/onekill0503/dnd-bot/internal/redis"
)

// CreateTestRedis starts an in-memory server and a client dialed to it.
// The server is returned so tests can inspect keys or fast-forward TTLs.
func CreateTestRedis(t *testing.T) (redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client, err := redis.Dial(mr.Addr(), redis.Options{})
	require.NoError(t, err, "failed to dial miniredis")

	return client, mr, func() {
		_ = client.Close()
		mr.Close()
	}
}
