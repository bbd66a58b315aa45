package geogateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andreypavlenko/matchengine/internal/platform/geocache"
	"github.com/andreypavlenko/matchengine/modules/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls      int
	failTimes  int
	geocodeErr error
}

func (f *fakeProvider) Geocode(_ context.Context, address string) (float64, float64, float64, error) {
	f.calls++
	if f.calls <= f.failTimes {
		return 0, 0, 0, errors.New("transient failure")
	}
	if f.geocodeErr != nil {
		return 0, 0, 0, f.geocodeErr
	}
	return 48.85, 2.35, 0.95, nil
}

func (f *fakeProvider) TravelTimeMin(_ context.Context, _, _, _, _ float64, _ matching.TransportMode) (int, error) {
	f.calls++
	return 30, nil
}

func TestGateway_Geocode_CachesResult(t *testing.T) {
	provider := &fakeProvider{}
	cache := geocache.New(nil, time.Hour, time.Hour)
	gw := New(provider, cache, 100, 10000)

	lat, lon, conf, err := gw.Geocode(context.Background(), "10 Rue de Rivoli, Paris")
	require.NoError(t, err)
	assert.InDelta(t, 48.85, lat, 1e-9)
	assert.InDelta(t, 2.35, lon, 1e-9)
	assert.InDelta(t, 0.95, conf, 1e-9)
	assert.Equal(t, 1, provider.calls)

	_, _, _, err = gw.Geocode(context.Background(), "10 Rue de Rivoli, Paris")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls, "second call should be served from cache")
}

func TestGateway_Geocode_RetriesTransientFailure(t *testing.T) {
	provider := &fakeProvider{failTimes: 2}
	cache := geocache.New(nil, 1000, 1000)
	gw := New(provider, cache, 1000, 10000)

	_, _, _, err := gw.Geocode(context.Background(), "some address")
	require.NoError(t, err)
	assert.Equal(t, 3, provider.calls)
}

func TestGateway_Geocode_QuotaExhausted(t *testing.T) {
	provider := &fakeProvider{}
	cache := geocache.New(nil, 1000, 1000)
	gw := New(provider, cache, 1000, 0)

	_, _, _, err := gw.Geocode(context.Background(), "any address")
	assert.ErrorIs(t, err, matching.ErrQuotaExhausted)
}
