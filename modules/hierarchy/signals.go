// Package hierarchy classifies CV/job text into one of six seniority
// levels and exposes the level-compatibility matrix used as a hard
// gate by the scoring engine.
package hierarchy

import (
	"regexp"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

// titlePattern is one regex family contributing weight to a level
// when it matches candidate/job title text.
type titlePattern struct {
	level  matching.HierarchyLevel
	weight float64
	re     *regexp.Regexp
}

// titlePatterns is data, not code-as-control-flow: re-pointing a
// pattern at a different level is a one-line change here, never a
// restructuring of the detector itself.
var titlePatterns = []titlePattern{
	{matching.LevelExecutive, 1.0, regexp.MustCompile(`(?i)chief|c[efo]o|daf|drh|\bdg\b|director general|\bvp\b`)},
	{matching.LevelDirector, 0.9, regexp.MustCompile(`(?i)\bdirector\b|directeur|head of`)},
	{matching.LevelManager, 0.85, regexp.MustCompile(`(?i)manager|responsable|chef d'équipe|chef d equipe|\blead\b`)},
	{matching.LevelSenior, 0.8, regexp.MustCompile(`(?i)senior|confirmed|senior engineer|\bexpert\b|confirmé`)},
	{matching.LevelJunior, 0.7, regexp.MustCompile(`(?i)junior|débutant|debutant|associate`)},
	{matching.LevelEntry, 0.6, regexp.MustCompile(`(?i)intern|stagiaire|trainee|apprenti`)},
}

// yearsBand gives the years-of-experience range that contributes
// weight to a level; ranges overlap by design (spec.md §4.2).
type yearsBand struct {
	level    matching.HierarchyLevel
	min, max int // max of 0 means unbounded
	weight   float64
}

var yearsBands = []yearsBand{
	{matching.LevelEntry, 0, 2, 1.0},
	{matching.LevelJunior, 2, 5, 1.0},
	{matching.LevelSenior, 5, 10, 1.0},
	{matching.LevelManager, 8, 0, 0.8},
	{matching.LevelDirector, 12, 0, 0.8},
	{matching.LevelExecutive, 15, 0, 0.8},
}

func (b yearsBand) matches(years int) bool {
	if years < b.min {
		return false
	}
	if b.max == 0 {
		return true
	}
	return years <= b.max
}

// teamSizeRe detects responsibility-scale phrases in free text; a
// match only adds a signal note. Level weight comes from the
// structured team size in teamSizeWeight, growing to 0.9 with size.
var teamSizeRe = regexp.MustCompile(`(?i)(manage[sd]?|manages a team of|team of|reports to ceo|p&l of|p&l)\s*(\d+)?`)

func teamSizeWeight(teamSize *int) (matching.HierarchyLevel, float64, bool) {
	if teamSize == nil {
		return 0, 0, false
	}
	n := *teamSize
	switch {
	case n <= 0:
		return 0, 0, false
	case n < 5:
		return matching.LevelManager, 0.6, true
	case n < 20:
		return matching.LevelDirector, 0.75, true
	default:
		return matching.LevelExecutive, 0.9, true
	}
}
