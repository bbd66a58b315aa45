package hierarchy

import (
	"testing"

	"github.com/andreypavlenko/matchengine/modules/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_ExecutiveCFO(t *testing.T) {
	teamSize := 40
	res := Detect(Input{
		Title:    "Chief Financial Officer",
		Text:     "15 years leading finance, P&L of €80m, reports to CEO",
		Years:    15,
		TeamSize: &teamSize,
	})
	assert.Equal(t, matching.LevelExecutive, res.Level)
	assert.Greater(t, res.Confidence, 0.0)
	assert.NotEmpty(t, res.Signals)
}

func TestDetect_JuniorAccountant(t *testing.T) {
	res := Detect(Input{
		Title: "Comptable Général Junior",
		Text:  "2 years of experience in general accounting",
		Years: 2,
	})
	assert.Equal(t, matching.LevelJunior, res.Level)
}

func TestDetect_NoSignalsDefaultsJunior(t *testing.T) {
	// Years below every band's minimum (0 years already matches the
	// ENTRY band), no title/text, no team size.
	res := Detect(Input{Years: -1})
	require.Equal(t, matching.LevelJunior, res.Level)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestDetect_SeniorEngineer(t *testing.T) {
	res := Detect(Input{
		Title: "Senior Software Engineer",
		Years: 6,
	})
	assert.Equal(t, matching.LevelSenior, res.Level)
}

func TestCompatibility_SameLevel(t *testing.T) {
	assert.Equal(t, 1.0, Compatibility(matching.LevelSenior, matching.LevelSenior))
}

func TestCompatibility_CriticalMismatch(t *testing.T) {
	// Executive candidate vs Junior job: gap of 4.
	assert.True(t, CriticalMismatch(matching.LevelExecutive, matching.LevelJunior))
	assert.True(t, Overqualified(matching.LevelExecutive, matching.LevelJunior))
	score := Compatibility(matching.LevelExecutive, matching.LevelJunior)
	assert.InDelta(t, 0.05*0.7, score, 1e-9)
}

func TestCompatibility_OneStepApart(t *testing.T) {
	assert.Equal(t, 0.7, Compatibility(matching.LevelSenior, matching.LevelManager))
}
