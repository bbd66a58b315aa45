// Package geogateway wraps a geoprovider.Provider with caching, a
// daily/per-second quota, and bounded retry, presenting the
// transportfilter.Geocoder interface the transport pre-filter (C3)
// and the location scorer depend on.
package geogateway

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/andreypavlenko/matchengine/internal/platform/geocache"
	"github.com/andreypavlenko/matchengine/internal/platform/geoprovider"
	"github.com/andreypavlenko/matchengine/modules/matching"
	"golang.org/x/time/rate"
)

const (
	retryAttempts = 3
	retryBase     = 100 * time.Millisecond
	retryFactor   = 2.0
)

// Gateway implements transportfilter.Geocoder against a real
// provider, adding cache-then-quota-then-retry around every call.
type Gateway struct {
	provider geoprovider.Provider
	cache    *geocache.Cache
	limiter  *rate.Limiter

	dailyQuota int64
	dailyUsed  atomic.Int64
	resetAt    atomic.Int64 // unix seconds of next daily reset
}

type geocodeResult struct {
	Lat, Lon, Confidence float64
}

// New builds a Gateway. rps is the steady-state requests-per-second
// cap; dailyQuota is the hard daily call budget (spec.md §6,
// GEO_PROVIDER_DAILY_QUOTA / GEO_PROVIDER_RPS).
func New(provider geoprovider.Provider, cache *geocache.Cache, rps float64, dailyQuota int) *Gateway {
	g := &Gateway{
		provider:   provider,
		cache:      cache,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		dailyQuota: int64(dailyQuota),
	}
	g.resetAt.Store(time.Now().Add(24 * time.Hour).Unix())
	return g
}

// Geocode implements transportfilter.Geocoder, cache-first.
func (g *Gateway) Geocode(ctx context.Context, address string) (float64, float64, float64, error) {
	var out geocodeResult
	key := geocache.GeocodeKey(address)

	err := g.cache.GetOrCompute(ctx, key, g.cache.GeocodeTTL(), func(ctx context.Context) (any, error) {
		return callWithQuotaAndRetry(g, ctx, func(ctx context.Context) (geocodeResult, error) {
			lat, lon, conf, err := g.provider.Geocode(ctx, address)
			return geocodeResult{lat, lon, conf}, err
		})
	}, &out)
	if err != nil {
		return 0, 0, 0, err
	}
	return out.Lat, out.Lon, out.Confidence, nil
}

// TravelTimeMin implements transportfilter.Geocoder, cache-first.
func (g *Gateway) TravelTimeMin(ctx context.Context, fromLat, fromLon, toLat, toLon float64, mode matching.TransportMode) (int, error) {
	var minutes int
	key := geocache.RouteKey(fromLat, fromLon, toLat, toLon, string(mode), time.Now())

	err := g.cache.GetOrCompute(ctx, key, g.cache.RouteTTL(), func(ctx context.Context) (any, error) {
		return callWithQuotaAndRetry(g, ctx, func(ctx context.Context) (int, error) {
			return g.provider.TravelTimeMin(ctx, fromLat, fromLon, toLat, toLon, mode)
		})
	}, &minutes)
	return minutes, err
}

// callWithQuotaAndRetry enforces the daily quota, waits on the
// per-second limiter, and retries transient failures with bounded
// exponential backoff and jitter (3 attempts, 100ms base, 2x factor).
func callWithQuotaAndRetry[T any](g *Gateway, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if !g.reserveQuota() {
		return zero, matching.ErrQuotaExhausted
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return zero, err
	}

	var lastErr error
	delay := retryBase
	for attempt := 0; attempt < retryAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if errors.Is(err, matching.ErrQuotaExhausted) {
			return zero, err
		}
		if attempt == retryAttempts-1 {
			break
		}
		jitter := time.Duration(rand.Int63n(int64(delay) / 2))
		select {
		case <-time.After(delay + jitter):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		delay = time.Duration(float64(delay) * retryFactor)
	}
	return zero, lastErr
}

func (g *Gateway) reserveQuota() bool {
	now := time.Now().Unix()
	if now >= g.resetAt.Load() {
		g.dailyUsed.Store(0)
		g.resetAt.Store(now + 24*3600)
	}
	return g.dailyUsed.Add(1) <= g.dailyQuota
}
