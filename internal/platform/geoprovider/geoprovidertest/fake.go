// Package geoprovidertest provides a deterministic geoprovider.Provider
// fake for engine and transportfilter tests, so the total_score
// determinism invariant never depends on a live network call.
package geoprovidertest

import (
	"context"
	"math"
	"strings"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

// Fake is a deterministic geoprovider.Provider: coordinates are
// derived from a stable hash of the address string, and travel time
// is a deterministic function of the coordinate distance and mode.
type Fake struct {
	// UnknownAddresses, if set, causes Geocode to return low
	// confidence for these exact address strings.
	UnknownAddresses map[string]bool
	// FixedMinutes is not consulted by TravelTimeMin, which always
	// derives minutes from coordinate distance and mode.
	FixedMinutes map[string]int
}

// Geocode implements geoprovider.Provider.
func (f *Fake) Geocode(_ context.Context, address string) (float64, float64, float64, error) {
	if f.UnknownAddresses[address] {
		return 0, 0, 0.1, nil
	}
	h := hash(address)
	lat := 48.0 + float64(h%1000)/1000.0
	lon := 2.0 + float64((h/1000)%1000)/1000.0
	return lat, lon, 0.95, nil
}

// TravelTimeMin implements geoprovider.Provider.
func (f *Fake) TravelTimeMin(_ context.Context, fromLat, fromLon, toLat, toLon float64, mode matching.TransportMode) (int, error) {
	dist := math.Hypot(toLat-fromLat, toLon-fromLon) * 111.0 // rough km per degree
	speed := speedKmh(mode)
	minutes := int(dist / speed * 60)
	if minutes == 0 {
		minutes = 1
	}
	return minutes, nil
}

func speedKmh(mode matching.TransportMode) float64 {
	switch mode {
	case matching.ModeCar:
		return 35
	case matching.ModePublicTransport:
		return 20
	case matching.ModeBike:
		return 15
	case matching.ModeWalk:
		return 5
	default:
		return 25
	}
}

func hash(s string) int {
	h := 0
	for _, r := range strings.ToLower(s) {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return h
}
