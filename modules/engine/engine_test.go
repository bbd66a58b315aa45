package engine

import (
	"context"
	"testing"
	"time"

	"github.com/andreypavlenko/matchengine/modules/matching"
	"github.com/andreypavlenko/matchengine/modules/scoring"
	"github.com/andreypavlenko/matchengine/modules/weights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v int64) *matching.Money {
	m := matching.Money(v)
	return &m
}

func feasibleTransportFilter(ctx context.Context, c *matching.CandidateProfile, j *matching.JobPosting) scoring.TransportFilterResult {
	return scoring.TransportFilterResult{Feasible: true, LocationSubScore: 0.9}
}

func infeasibleTransportFilter(ctx context.Context, c *matching.CandidateProfile, j *matching.JobPosting) scoring.TransportFilterResult {
	return scoring.TransportFilterResult{Feasible: false, LocationSubScore: 0}
}

// slowTransportFilter deliberately ignores ctx cancellation to force
// the engine's per-scorer deadline to fire and substitute a neutral
// score, simulating an unresponsive geo provider.
func slowTransportFilter(_ context.Context, _ *matching.CandidateProfile, _ *matching.JobPosting) scoring.TransportFilterResult {
	time.Sleep(500 * time.Millisecond)
	return scoring.TransportFilterResult{Feasible: true, LocationSubScore: 1.0}
}

func newTestEngine(t *testing.T, filter scoring.TransportFilterFunc) *Engine {
	t.Helper()
	reg, err := weights.NewRegistry()
	require.NoError(t, err)
	deps := scoring.Deps{
		TransportFilter: filter,
		HierarchyOf:      HierarchyAdapter,
		Synonyms:         scoring.DefaultSynonyms(),
	}
	scorers := scoring.NewRegistry(deps)
	return New(DefaultConfig(), scorers, reg, nil, nil)
}

func happyPathRequest() matching.MatchRequest {
	maxYears := 8
	return matching.MatchRequest{
		Candidate: matching.CandidateProfile{
			YearsTotal:        6,
			Skills:            []string{"python", "django"},
			DesiredSalary:     money(65000),
			CurrentTitle:      "Senior Python Developer",
			TransportModes:    map[matching.TransportMode]bool{matching.ModePublicTransport: true},
			MaxTravelTimeMin:  map[matching.TransportMode]int{matching.ModePublicTransport: 45},
			Status:            matching.StatusActivelySearching,
			PreferredModality: matching.ModalityHybrid,
			AvailabilityDate:  time.Now(),
		},
		Job: matching.JobPosting{
			Title:          "Senior Python Developer",
			RequiredSkills: []string{"python"},
			MinYears:       5,
			MaxYears:       &maxYears,
			SalaryMin:      60000,
			SalaryMax:      75000,
			ModalityPolicy: matching.ModalityHybrid,
			ContractType:   matching.ContractCDI,
		},
		HardGateMode: matching.HardGateStrict,
	}
}

func TestMatch_HappyPath_S1(t *testing.T) {
	e := newTestEngine(t, feasibleTransportFilter)
	result, err := e.Match(context.Background(), happyPathRequest())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.TotalScore, 0.60)
	for _, a := range result.Alerts {
		assert.NotEqual(t, matching.SeverityCritical, a.Severity)
	}
	assert.Contains(t, result.TopContributors, "semantic")
}

func TestMatch_HierarchicalCriticalMismatch_S2(t *testing.T) {
	e := newTestEngine(t, feasibleTransportFilter)
	maxYears := 5
	req := matching.MatchRequest{
		Candidate: matching.CandidateProfile{
			YearsTotal:       15,
			CurrentTitle:     "Chief Financial Officer",
			DesiredSalary:    money(80000),
			TransportModes:   map[matching.TransportMode]bool{matching.ModeRemote: true},
			Status:           matching.StatusActivelySearching,
			AvailabilityDate: time.Now(),
		},
		Job: matching.JobPosting{
			Title:        "Comptable General",
			MinYears:     2,
			MaxYears:     &maxYears,
			SalaryMin:    32000,
			SalaryMax:    38000,
			ContractType: matching.ContractCDI,
		},
		HardGateMode: matching.HardGateStrict,
	}

	result, err := e.Match(context.Background(), req)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.TotalScore, 0.40+1e-9)
	assert.True(t, hasAlert(result.Alerts, matching.AlertCriticalMismatch))
	assert.True(t, hasAlert(result.Alerts, matching.AlertOverqualified))
}

func TestMatch_HierarchicalCriticalMismatch_Advisory_NoCap(t *testing.T) {
	e := newTestEngine(t, feasibleTransportFilter)
	maxYears := 5
	req := matching.MatchRequest{
		Candidate: matching.CandidateProfile{
			YearsTotal:       15,
			CurrentTitle:     "Chief Financial Officer",
			DesiredSalary:    money(80000),
			TransportModes:   map[matching.TransportMode]bool{matching.ModeRemote: true},
			Status:           matching.StatusActivelySearching,
			AvailabilityDate: time.Now(),
		},
		Job: matching.JobPosting{
			Title:        "Comptable General",
			MinYears:     2,
			MaxYears:     &maxYears,
			SalaryMin:    32000,
			SalaryMax:    38000,
			ContractType: matching.ContractCDI,
		},
		HardGateMode: matching.HardGateAdvisory,
	}

	result, err := e.Match(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, hasAlert(result.Alerts, matching.AlertCriticalMismatch))
	assert.Empty(t, result.HardGateTriggered, "ADVISORY mode must emit alerts without applying a cap")
}

func TestMatch_TransportInfeasible_S3(t *testing.T) {
	e := newTestEngine(t, infeasibleTransportFilter)
	req := happyPathRequest()
	req.HardGateMode = matching.HardGateStrict

	result, err := e.Match(context.Background(), req)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.TotalScore, 0.25+1e-9)
	assert.True(t, hasAlert(result.Alerts, matching.AlertTransportInfeasible))

	loc := findComponent(result.ComponentScores, "location")
	require.NotNil(t, loc)
	assert.Equal(t, 0.0, loc.RawScore)
}

func TestMatch_AdaptiveMatrix_S4(t *testing.T) {
	e := newTestEngine(t, feasibleTransportFilter)
	req := happyPathRequest()
	req.Candidate.ListeningReasons = []matching.ListeningReason{matching.ReasonCompensationLow}

	result, err := e.Match(context.Background(), req)
	require.NoError(t, err)

	salary := findComponent(result.ComponentScores, "salary")
	require.NotNil(t, salary)
	assert.GreaterOrEqual(t, salary.Weight, 0.30)
	assert.Equal(t, "COMPENSATION_LOW", result.MatrixID)
}

func TestMatch_DeadlineExceeded_S5(t *testing.T) {
	e := newTestEngine(t, slowTransportFilter)
	req := happyPathRequest()

	result, err := e.Match(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.DeadlineExceeded)
	assert.GreaterOrEqual(t, result.TotalElapsedMS, int64(25))
}

func TestMatch_ExcludedSector_S6(t *testing.T) {
	e := newTestEngine(t, feasibleTransportFilter)
	req := happyPathRequest()
	req.Candidate.ExcludedSectors = map[string]bool{"Defense": true}
	req.Job.Sector = "Defense"

	result, err := e.Match(context.Background(), req)
	require.NoError(t, err)

	sector := findComponent(result.ComponentScores, "sector")
	require.NotNil(t, sector)
	assert.Equal(t, 0.0, sector.RawScore)
	assert.True(t, hasAlert(result.Alerts, matching.AlertSectorExcluded))
	assert.Empty(t, result.HardGateTriggered)
}

func TestMatch_ListeningReasonComponent_ConsistentCompensationLow(t *testing.T) {
	e := newTestEngine(t, feasibleTransportFilter)
	req := happyPathRequest()
	req.Candidate.ListeningReasons = []matching.ListeningReason{matching.ReasonCompensationLow}
	req.Candidate.CurrentSalary = money(50000) // below the job's 60-75k market midpoint

	result, err := e.Match(context.Background(), req)
	require.NoError(t, err)

	lr := findComponent(result.ComponentScores, "listening_reason")
	require.NotNil(t, lr)
	assert.NotEqual(t, "no_resolved_reason_in_context", lr.Details["reason"],
		"engine must inject the resolved listening reason into the fan-out context")
	assert.Equal(t, true, lr.Details["consistent"])
	assert.Equal(t, 1.0, lr.RawScore)
}

func TestMatch_WeightsSumToOne_I1(t *testing.T) {
	e := newTestEngine(t, feasibleTransportFilter)
	result, err := e.Match(context.Background(), happyPathRequest())
	require.NoError(t, err)

	sum := 0.0
	for _, c := range result.ComponentScores {
		sum += c.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestMatch_InvalidRequest_RejectedBeforeScoring(t *testing.T) {
	e := newTestEngine(t, feasibleTransportFilter)
	req := happyPathRequest()
	req.Candidate.YearsTotal = -1

	_, err := e.Match(context.Background(), req)
	assert.ErrorIs(t, err, matching.ErrInvalidRequest)
}

func TestMatch_Busy_WhenAtCapacity(t *testing.T) {
	e := newTestEngine(t, feasibleTransportFilter)
	e.sem = make(chan struct{}, 1)
	e.sem <- struct{}{}

	_, err := e.Match(context.Background(), happyPathRequest())
	assert.ErrorIs(t, err, matching.ErrBusy)
}

func hasAlert(alerts []matching.Alert, kind matching.AlertKind) bool {
	for _, a := range alerts {
		if a.Kind == kind {
			return true
		}
	}
	return false
}
