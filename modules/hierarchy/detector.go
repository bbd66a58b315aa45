package hierarchy

import (
	"fmt"
	"sort"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

// Input is the text plus structured fields the detector scores.
type Input struct {
	Title    string
	Text     string
	Years    int
	TeamSize *int
}

// Result is the detector's verdict.
type Result struct {
	Level      matching.HierarchyLevel
	Confidence float64
	Signals    []string
}

var allLevels = []matching.HierarchyLevel{
	matching.LevelEntry, matching.LevelJunior, matching.LevelSenior,
	matching.LevelManager, matching.LevelDirector, matching.LevelExecutive,
}

// Detect maps CV/job text and structured fields to a hierarchy level
// with a confidence score, per spec.md §4.2.
func Detect(in Input) Result {
	scores := make(map[matching.HierarchyLevel]float64, len(allLevels))
	var signals []string

	haystack := in.Title + " " + in.Text
	for _, p := range titlePatterns {
		if p.re.MatchString(haystack) {
			scores[p.level] += p.weight
			signals = append(signals, fmt.Sprintf("title pattern matched %s", p.level))
		}
	}

	for _, b := range yearsBands {
		if b.matches(in.Years) {
			scores[b.level] += b.weight
			signals = append(signals, fmt.Sprintf("years band matched %s (%d years)", b.level, in.Years))
		}
	}

	if lvl, w, ok := teamSizeWeight(in.TeamSize); ok {
		scores[lvl] += w
		signals = append(signals, fmt.Sprintf("team-size/responsibility signal matched %s", lvl))
	}
	if teamSizeRe.MatchString(haystack) && in.TeamSize == nil {
		// Phrase present but no structured team size: weak corroborating
		// signal only, no level contribution.
		signals = append(signals, "responsibility phrase present in text")
	}

	ranked := make([]matching.HierarchyLevel, 0, len(allLevels))
	for _, l := range allLevels {
		if scores[l] > 0 {
			ranked = append(ranked, l)
		}
	}
	if len(ranked) == 0 {
		return Result{Level: matching.LevelJunior, Confidence: 0, Signals: []string{"no signals; defaulted to JUNIOR"}}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	top := ranked[0]
	topScore := scores[top]
	secondScore := 0.0
	if len(ranked) > 1 {
		secondScore = scores[ranked[1]]
		// Tie-break: when top two are within 0.05, prefer the higher
		// level only if its years band also contributed nonzero weight.
		if topScore-secondScore <= 0.05 {
			higher, lower := top, ranked[1]
			if lower > higher {
				higher, lower = lower, higher
			}
			if yearsBandWeight(higher, in.Years) > 0 {
				top = higher
			} else {
				top = lower
			}
			topScore = scores[top]
		}
	}

	confidence := 0.0
	if topScore > 0 {
		confidence = clamp01((topScore - secondScore) / topScore)
	}

	return Result{Level: top, Confidence: confidence, Signals: signals}
}

func yearsBandWeight(level matching.HierarchyLevel, years int) float64 {
	for _, b := range yearsBands {
		if b.level == level && b.matches(years) {
			return b.weight
		}
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
