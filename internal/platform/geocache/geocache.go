// Package geocache implements the geo gateway's two-tier cache:
// an in-process TTL cache backed optionally by Redis (L2), with
// singleflight coalescing so a burst of identical requests only ever
// issues one upstream call.
package geocache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// entry is one cached value with its expiry.
type entry struct {
	value   []byte
	expires time.Time
}

// Cache is the L1 (in-process) + optional L2 (Redis) geo cache.
type Cache struct {
	mu    sync.RWMutex
	local map[string]entry

	redis *redis.Client
	group singleflight.Group

	geocodeTTL time.Duration
	routeTTL   time.Duration
}

// New builds a Cache. redisClient may be nil, in which case the cache
// runs L1-only.
func New(redisClient *redis.Client, geocodeTTL, routeTTL time.Duration) *Cache {
	return &Cache{
		local:      make(map[string]entry),
		redis:      redisClient,
		geocodeTTL: geocodeTTL,
		routeTTL:   routeTTL,
	}
}

// GeocodeKey formats the cache key for a geocode lookup, per
// spec.md §6: "geo:v1:addr:{sha256(address)}".
func GeocodeKey(address string) string {
	return fmt.Sprintf("geo:v1:addr:%s", sha256Hex(strings.ToLower(strings.TrimSpace(address))))
}

// RouteKey formats the cache key for a travel-time lookup, per
// spec.md §6: "geo:v1:route:{from}:{to}:{mode}:{hour_bucket}". The
// hour bucket keeps routes cached per hour of day, since travel time
// for PUBLIC_TRANSPORT varies by schedule.
func RouteKey(fromLat, fromLon, toLat, toLon float64, mode string, at time.Time) string {
	return fmt.Sprintf("geo:v1:route:%.5f,%.5f:%.5f,%.5f:%s:%d",
		fromLat, fromLon, toLat, toLon, mode, at.Hour())
}

// GetOrCompute returns the cached value for key, computing and
// storing it via compute if absent or expired. Concurrent calls for
// the same key coalesce into a single compute invocation.
func (c *Cache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) (any, error), out any) error {
	if raw, ok := c.getLocal(key); ok {
		return json.Unmarshal(raw, out)
	}
	if c.redis != nil {
		if raw, err := c.redis.Get(ctx, key).Bytes(); err == nil {
			c.setLocal(key, raw, ttl)
			return json.Unmarshal(raw, out)
		}
	}

	raw, err, _ := c.group.Do(key, func() (any, error) {
		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return err
	}

	rawBytes := raw.([]byte)
	c.setLocal(key, rawBytes, ttl)
	if c.redis != nil {
		c.redis.Set(ctx, key, rawBytes, ttl)
	}
	return json.Unmarshal(rawBytes, out)
}

// GeocodeTTL returns the configured geocode TTL (default 30 days).
func (c *Cache) GeocodeTTL() time.Duration { return c.geocodeTTL }

// RouteTTL returns the configured route TTL (default 1 hour).
func (c *Cache) RouteTTL() time.Duration { return c.routeTTL }

func (c *Cache) getLocal(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.local[key]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) setLocal(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local[key] = entry{value: value, expires: time.Now().Add(ttl)}
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
