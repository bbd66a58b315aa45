// Package transportfilter implements the geo + multi-modal travel-time
// feasibility gate (C3) consumed both by the Location scorer and by
// the engine's transport hard gate.
package transportfilter

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

// Geocoder is the capability the pre-filter needs from the geo
// gateway: geocode an address and look up travel time between two
// coordinates for a given mode.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lon, confidence float64, err error)
	TravelTimeMin(ctx context.Context, fromLat, fromLon, toLat, toLon float64, mode matching.TransportMode) (int, error)
}

// Result is the pre-filter's verdict.
type Result struct {
	Feasible         bool
	BestMode         matching.TransportMode
	BestTimeMin      int
	PerModeScores    map[matching.TransportMode]float64
	LocationSubScore float64
	Reason           string
}

const unknownAddressConfidence = 0.4

// Evaluate runs the procedure from spec.md §4.3.
func Evaluate(ctx context.Context, geo Geocoder, homeAddress string, modes map[matching.TransportMode]bool, maxMin map[matching.TransportMode]int, jobLocation string) Result {
	homeLat, homeLon, homeConf, err := geo.Geocode(ctx, homeAddress)
	jobLat, jobLon, jobConf, jobErr := geo.Geocode(ctx, jobLocation)

	if err != nil || jobErr != nil || homeConf < unknownAddressConfidence || jobConf < unknownAddressConfidence {
		return Result{
			Feasible:         true,
			LocationSubScore: 0.5,
			Reason:           "address_ambiguous",
			PerModeScores:    map[matching.TransportMode]float64{},
		}
	}

	perMode := make(map[matching.TransportMode]float64, len(modes))
	feasible := false
	bestMode := matching.TransportMode("")
	bestScore := -1.0
	bestTime := 0

	for mode := range modes {
		if mode == matching.ModeRemote {
			feasible = true
			continue
		}
		limit, hasLimit := maxMin[mode]
		if !hasLimit || limit <= 0 {
			perMode[mode] = 0
			continue
		}
		minutes, err := geo.TravelTimeMin(ctx, homeLat, homeLon, jobLat, jobLon, mode)
		if err != nil {
			perMode[mode] = 0
			continue
		}
		if minutes <= limit {
			score := 1 - float64(minutes)/float64(limit)
			perMode[mode] = score
			feasible = true
			if score > bestScore {
				bestScore = score
				bestMode = mode
				bestTime = minutes
			}
		} else {
			perMode[mode] = 0
		}
	}

	if modes[matching.ModeRemote] {
		feasible = true
	}

	subScore := 0.0
	if bestScore > 0 {
		subScore = bestScore
	} else if modes[matching.ModeRemote] {
		// Remote-only feasibility: no commute constraint applies, so
		// location is a non-issue rather than a zero.
		subScore = 1.0
	}

	return Result{
		Feasible:         feasible,
		BestMode:         bestMode,
		BestTimeMin:      bestTime,
		PerModeScores:    perMode,
		LocationSubScore: subScore,
	}
}
