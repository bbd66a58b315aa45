package matching

import "fmt"

// Validate rejects structurally invalid requests before any scoring
// happens, per spec.md §7 ("Validation errors ... reject request with
// INVALID_REQUEST before any scoring").
func (r *MatchRequest) Validate() error {
	if r.Candidate.YearsTotal < 0 {
		return fmt.Errorf("%w: candidate years_total must be >= 0", ErrInvalidRequest)
	}
	if r.Candidate.SectorOpenness != 0 && (r.Candidate.SectorOpenness < 1 || r.Candidate.SectorOpenness > 5) {
		return fmt.Errorf("%w: candidate sector openness must be in 1..5", ErrInvalidRequest)
	}
	if r.Candidate.Urgency != 0 && (r.Candidate.Urgency < 1 || r.Candidate.Urgency > 5) {
		return fmt.Errorf("%w: candidate urgency must be in 1..5", ErrInvalidRequest)
	}
	if r.Candidate.RemoteDaysPerWeek < 0 || r.Candidate.RemoteDaysPerWeek > 5 {
		return fmt.Errorf("%w: candidate remote_days_per_week must be in 0..5", ErrInvalidRequest)
	}
	if r.Job.MinYears < 0 {
		return fmt.Errorf("%w: job min_years must be >= 0", ErrInvalidRequest)
	}
	if r.Job.MaxYears != nil && *r.Job.MaxYears < r.Job.MinYears {
		return fmt.Errorf("%w: job max_years must be >= min_years", ErrInvalidRequest)
	}
	if r.Job.SalaryMax < r.Job.SalaryMin {
		return fmt.Errorf("%w: job salary_max must be >= salary_min", ErrInvalidRequest)
	}
	if r.Job.RemoteDaysAllowed < 0 || r.Job.RemoteDaysAllowed > 5 {
		return fmt.Errorf("%w: job remote_days_allowed must be in 0..5", ErrInvalidRequest)
	}
	if r.ListeningReasonOverride != nil {
		if !validListeningReason(*r.ListeningReasonOverride) {
			return fmt.Errorf("%w: %q", ErrUnknownListeningReason, *r.ListeningReasonOverride)
		}
	}
	for _, lr := range r.Candidate.ListeningReasons {
		if !validListeningReason(lr) {
			return fmt.Errorf("%w: %q", ErrUnknownListeningReason, lr)
		}
	}
	if r.HardGateMode != HardGateStrict && r.HardGateMode != HardGateAdvisory {
		return fmt.Errorf("%w: hard_gate_mode must be STRICT or ADVISORY", ErrInvalidRequest)
	}
	return nil
}

func validListeningReason(lr ListeningReason) bool {
	switch lr {
	case ReasonCompensationLow, ReasonRoleMismatch, ReasonGrowthLack, ReasonLocationIssue,
		ReasonFlexibilityLack, ReasonMarketCuriosity, ReasonManagementIssues, ReasonGeneralDissatisfaction:
		return true
	default:
		return false
	}
}

// ResolvedListeningReason returns the override if present, else the
// candidate's first listed reason, else ReasonMarketCuriosity as a
// neutral default for candidates who declined to rank reasons.
func (r *MatchRequest) ResolvedListeningReason() ListeningReason {
	if r.ListeningReasonOverride != nil {
		return *r.ListeningReasonOverride
	}
	if len(r.Candidate.ListeningReasons) > 0 {
		return r.Candidate.ListeningReasons[0]
	}
	return ReasonMarketCuriosity
}
