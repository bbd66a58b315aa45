package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/andreypavlenko/matchengine/modules/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v int64) *matching.Money {
	m := matching.Money(v)
	return &m
}

func TestSemanticScorer_RequiredAndPreferred(t *testing.T) {
	s := newSemanticScorer(DefaultSynonyms(), nil)
	c := &matching.CandidateProfile{Skills: []string{"go", "kubernetes"}}
	j := &matching.JobPosting{RequiredSkills: []string{"golang"}, PreferredSkills: []string{"k8s", "docker"}}

	out := s.Score(context.Background(), c, j)
	// required fully matched via synonym (go->golang): 0.7*1.0
	// preferred half matched (k8s matched via synonym, docker not): 0.3*0.5
	require.InDelta(t, 0.7+0.15, out.RawScore, 1e-9)
}

func TestSemanticScorer_NoRequirements(t *testing.T) {
	s := newSemanticScorer(nil, nil)
	out := s.Score(context.Background(), &matching.CandidateProfile{}, &matching.JobPosting{})
	assert.Equal(t, 1.0, out.RawScore)
	assert.Equal(t, 0.3, out.Confidence)
}

func TestSalaryScorer_Overlap(t *testing.T) {
	s := newSalaryScorer()
	c := &matching.CandidateProfile{DesiredSalary: money(65000)}
	j := &matching.JobPosting{SalaryMin: 60000, SalaryMax: 75000}
	out := s.Score(context.Background(), c, j)
	assert.GreaterOrEqual(t, out.RawScore, 0.5)
}

func TestSalaryScorer_Disjoint(t *testing.T) {
	s := newSalaryScorer()
	c := &matching.CandidateProfile{DesiredSalary: money(80000)}
	j := &matching.JobPosting{SalaryMin: 32000, SalaryMax: 38000}
	out := s.Score(context.Background(), c, j)
	// candidate band 72k-88k, gap to 38k is 34k: 1 - 34000/80000
	assert.InDelta(t, 0.575, out.RawScore, 1e-9)
}

func TestExperienceScorer_InBand(t *testing.T) {
	s := newExperienceScorer()
	max := 8
	out := s.Score(context.Background(), &matching.CandidateProfile{YearsTotal: 6}, &matching.JobPosting{MinYears: 5, MaxYears: &max})
	assert.Equal(t, 1.0, out.RawScore)
}

func TestExperienceScorer_Overqualified(t *testing.T) {
	s := newExperienceScorer()
	max := 5
	out := s.Score(context.Background(), &matching.CandidateProfile{YearsTotal: 15}, &matching.JobPosting{MinYears: 2, MaxYears: &max})
	// 10 years over max: 1 - 0.15*10 = -0.5, clamped to 0
	assert.InDelta(t, 0.0, out.RawScore, 1e-9)
}

func TestContractScorer_Ranks(t *testing.T) {
	s := newContractScorer()
	c := &matching.CandidateProfile{ContractRanking: []matching.ContractType{matching.ContractFreelance, matching.ContractCDI}}
	out := s.Score(context.Background(), c, &matching.JobPosting{ContractType: matching.ContractCDI})
	assert.Equal(t, 0.75, out.RawScore)
}

func TestContractScorer_Absent(t *testing.T) {
	s := newContractScorer()
	c := &matching.CandidateProfile{ContractRanking: []matching.ContractType{matching.ContractCDI}}
	out := s.Score(context.Background(), c, &matching.JobPosting{ContractType: matching.ContractInterim})
	assert.Equal(t, 0.0, out.RawScore)
}

func TestSectorScorer_Excluded(t *testing.T) {
	s := newSectorScorer()
	c := &matching.CandidateProfile{ExcludedSectors: map[string]bool{"Defense": true}}
	out := s.Score(context.Background(), c, &matching.JobPosting{Sector: "Defense"})
	assert.Equal(t, 0.0, out.RawScore)
	assert.Equal(t, true, out.Details["excluded"])
}

func TestTimingScorer_NoGap(t *testing.T) {
	s := newTimingScorer()
	// desired start one week out, candidate free after two weeks'
	// notice: gap = start - (availability + notice) = -1 week
	start := time.Now().AddDate(0, 0, 7)
	c := &matching.CandidateProfile{AvailabilityDate: time.Now(), NoticePeriodWeeks: 2}
	out := s.Score(context.Background(), c, &matching.JobPosting{DesiredStartDate: &start})
	assert.Equal(t, 1.0, out.RawScore)
}

func TestMotivationsScorer_PerfectAlignment(t *testing.T) {
	s := newMotivationsScorer()
	c := &matching.CandidateProfile{Motivations: []string{"growth", "compensation"}}
	j := &matching.JobPosting{PositionMotivations: []string{"growth", "compensation"}}
	out := s.Score(context.Background(), c, j)
	assert.InDelta(t, 1.0, out.RawScore, 1e-9)
}

func TestListeningReasonScorer_ConsistentCompensation(t *testing.T) {
	s := newListeningReasonScorer()
	ctx := WithResolvedReason(context.Background(), matching.ReasonCompensationLow)
	c := &matching.CandidateProfile{CurrentSalary: money(40000)}
	j := &matching.JobPosting{SalaryMin: 60000, SalaryMax: 80000}
	out := s.Score(ctx, c, j)
	assert.Equal(t, 1.0, out.RawScore)
}

func TestCandidateStatusScorer(t *testing.T) {
	s := newCandidateStatusScorer()
	out := s.Score(context.Background(), &matching.CandidateProfile{Status: matching.StatusActivelySearching}, &matching.JobPosting{})
	assert.Equal(t, 1.0, out.RawScore)
}

func TestWorkModalityScorer_ExactMatch(t *testing.T) {
	s := newWorkModalityScorer()
	out := s.Score(context.Background(), &matching.CandidateProfile{PreferredModality: matching.ModalityHybrid, RemoteDaysPerWeek: 2},
		&matching.JobPosting{ModalityPolicy: matching.ModalityHybrid, RemoteDaysAllowed: 2})
	assert.Equal(t, 1.0, out.RawScore)
}

func TestNewRegistry_CanonicalOrder(t *testing.T) {
	reg := NewRegistry(Deps{})
	require.Len(t, reg, len(CanonicalOrder))
	for i, sc := range reg {
		assert.Equal(t, CanonicalOrder[i], sc.Name())
	}
}
