//go:build integration
// +build integration

package geocache

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// TestCache_RedisL2_SharedAcrossInstances verifies the contract that
// makes Redis worth having as an L2 at all: a value computed by one
// process instance is visible to a second instance's L1-miss path,
// not just re-derived from the provider again.
// Run with: go test -tags=integration ./internal/platform/geocache -v
func TestCache_RedisL2_SharedAcrossInstances(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	defer func() { _ = container.Terminate(ctx) }()

	connStr, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := goredis.ParseURL(connStr)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	key := GeocodeKey("10 Rue de Rivoli, Paris")

	writer := New(client, time.Hour, time.Hour)
	computeCalls := 0
	var out map[string]float64
	err = writer.GetOrCompute(ctx, key, time.Hour, func(context.Context) (any, error) {
		computeCalls++
		return map[string]float64{"lat": 48.85, "lon": 2.35}, nil
	}, &out)
	require.NoError(t, err)
	require.Equal(t, 1, computeCalls)

	reader := New(client, time.Hour, time.Hour)
	var reread map[string]float64
	err = reader.GetOrCompute(ctx, key, time.Hour, func(context.Context) (any, error) {
		computeCalls++
		return map[string]float64{"lat": 0, "lon": 0}, nil
	}, &reread)
	require.NoError(t, err)
	require.Equal(t, 1, computeCalls, "second instance must hit the shared L2, not recompute")
	require.Equal(t, out, reread)
}
