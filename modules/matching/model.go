// Package matching holds the value types shared by every scoring
// component: candidate and job records, the request/result envelope,
// and the enums that close off the domain's vocabulary.
package matching

import "time"

// TransportMode is one travel mode a candidate is willing to use.
type TransportMode string

const (
	ModeCar              TransportMode = "CAR"
	ModePublicTransport   TransportMode = "PUBLIC_TRANSPORT"
	ModeBike             TransportMode = "BIKE"
	ModeWalk             TransportMode = "WALK"
	ModeRemote           TransportMode = "REMOTE"
)

// ContractType is a legal employment contract family.
type ContractType string

const (
	ContractCDI       ContractType = "CDI"
	ContractCDD       ContractType = "CDD"
	ContractFreelance ContractType = "FREELANCE"
	ContractInterim   ContractType = "INTERIM"
)

// WorkModality is the on-site/remote policy of a job or a preference.
type WorkModality string

const (
	ModalityOnSite WorkModality = "ON_SITE"
	ModalityHybrid WorkModality = "HYBRID"
	ModalityRemote WorkModality = "REMOTE"
)

// CompanySize buckets a job's employer headcount.
type CompanySize string

const (
	CompanyStartup CompanySize = "STARTUP"
	CompanySME     CompanySize = "SME"
	CompanyMidcap  CompanySize = "MIDCAP"
	CompanyLarge   CompanySize = "LARGE"
)

// CandidateStatus is the candidate's current employment situation.
type CandidateStatus string

const (
	StatusEmployed          CandidateStatus = "EMPLOYED"
	StatusActivelySearching CandidateStatus = "ACTIVELY_SEARCHING"
	StatusStudent           CandidateStatus = "STUDENT"
	StatusFreelancer        CandidateStatus = "FREELANCER"
	StatusBetweenJobs       CandidateStatus = "BETWEEN_JOBS"
)

// ListeningReason is why a candidate is open to a new role. Order in a
// candidate's list matters: the first entry drives matrix selection
// unless a request overrides it.
type ListeningReason string

const (
	ReasonCompensationLow      ListeningReason = "COMPENSATION_LOW"
	ReasonRoleMismatch         ListeningReason = "ROLE_MISMATCH"
	ReasonGrowthLack           ListeningReason = "GROWTH_LACK"
	ReasonLocationIssue        ListeningReason = "LOCATION_ISSUE"
	ReasonFlexibilityLack      ListeningReason = "FLEXIBILITY_LACK"
	ReasonMarketCuriosity      ListeningReason = "MARKET_CURIOSITY"
	ReasonManagementIssues     ListeningReason = "MANAGEMENT_ISSUES"
	ReasonGeneralDissatisfaction ListeningReason = "GENERAL_DISSATISFACTION"
)

// AdaptiveReasons is the closed set of listening reasons that have a
// dedicated adaptive weight matrix (§4.5 of the spec: five tunable
// reasons out of the eight-member enum above).
var AdaptiveReasons = map[ListeningReason]bool{
	ReasonCompensationLow:  true,
	ReasonRoleMismatch:     true,
	ReasonGrowthLack:       true,
	ReasonLocationIssue:    true,
	ReasonFlexibilityLack:  true,
}

// HardGateMode controls whether hard gates cap the total score or only
// annotate it with alerts.
type HardGateMode string

const (
	HardGateStrict   HardGateMode = "STRICT"
	HardGateAdvisory HardGateMode = "ADVISORY"
)

// HierarchyLevel is a seniority rung, ordered ENTRY..EXECUTIVE.
type HierarchyLevel int

const (
	LevelEntry HierarchyLevel = iota
	LevelJunior
	LevelSenior
	LevelManager
	LevelDirector
	LevelExecutive
)

func (l HierarchyLevel) String() string {
	switch l {
	case LevelEntry:
		return "ENTRY"
	case LevelJunior:
		return "JUNIOR"
	case LevelSenior:
		return "SENIOR"
	case LevelManager:
		return "MANAGER"
	case LevelDirector:
		return "DIRECTOR"
	case LevelExecutive:
		return "EXECUTIVE"
	default:
		return "UNKNOWN"
	}
}

// Money is a fixed-point amount in minor units avoided: the domain
// only ever compares salaries within a single currency, so a plain
// integer (e.g. annual gross, in whole currency units) is sufficient.
type Money int64

// Experience is one entry in a candidate's work history.
type Experience struct {
	Title            string
	Company          string
	Sector           string
	DurationMonths   int
	Missions         []string
	Achievements     []string
	Technologies     []string
	TeamSize         *int
	ManagementLevel  *string
}

// CandidateProfile is the structured record produced by upstream CV
// parsing (out of scope for this module) and consumed read-only here.
type CandidateProfile struct {
	ID    string
	Name  string
	Email string

	Skills []string

	YearsTotal int
	Experience []Experience

	CurrentSalary *Money
	DesiredSalary *Money

	HomeAddress string

	TransportModes   map[TransportMode]bool
	MaxTravelTimeMin map[TransportMode]int

	ContractRanking []ContractType

	PreferredModality  WorkModality
	RemoteDaysPerWeek  int

	Motivations []string

	PreferredSectors map[string]bool
	ExcludedSectors  map[string]bool
	SectorOpenness   int // 1..5

	AvailabilityDate   time.Time
	NoticePeriodWeeks  int
	FlexibilityWeeks   int
	Urgency            int // 1..5

	Status CandidateStatus

	ListeningReasons []ListeningReason

	// CurrentTitle and raw CV text feed the hierarchy
	// detector; they are optional free text, not structured fields.
	CurrentTitle string
	RawText      string
}

// JobPosting is the structured record produced by upstream job-posting
// parsing (out of scope) and consumed read-only here.
type JobPosting struct {
	Title       string
	Company     string
	Sector      string
	CompanySize CompanySize
	Location    string

	RequiredSkills []string
	PreferredSkills []string
	MinYears       int
	MaxYears       *int

	// RequiredLevel is optional: nil means the engine must infer the
	// job's level from Title/RawText via the hierarchy detector.
	RequiredLevel *HierarchyLevel

	SalaryMin Money
	SalaryMax Money

	ContractType ContractType

	ModalityPolicy      WorkModality
	RemoteDaysAllowed   int

	DesiredStartDate *time.Time
	MaxWaitWeeks     *int
	Urgency          int

	Benefits map[string]bool

	PositionMotivations []string

	RawText string
}

// MatchRequest is the top-level input to the engine.
type MatchRequest struct {
	Candidate                CandidateProfile
	Job                      JobPosting
	ListeningReasonOverride  *ListeningReason
	HardGateMode             HardGateMode
}

// ComponentScore is one scorer's contribution to the total.
type ComponentScore struct {
	Name          string
	RawScore      float64
	Weight        float64
	BoostApplied  float64
	WeightedScore float64
	Confidence    float64
	Details       map[string]any
	ElapsedMS     int64
}

// AlertKind is a closed enumeration of diagnostic alert categories.
type AlertKind string

const (
	AlertCriticalMismatch     AlertKind = "CRITICAL_MISMATCH"
	AlertOverqualified        AlertKind = "OVERQUALIFIED"
	AlertTransportInfeasible  AlertKind = "TRANSPORT_INFEASIBLE"
	AlertSalaryOutsideRange   AlertKind = "SALARY_OUTSIDE_RANGE"
	AlertSectorExcluded       AlertKind = "SECTOR_EXCLUDED"
)

// AlertSeverity ranks an alert's urgency.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "INFO"
	SeverityWarn     AlertSeverity = "WARN"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// Alert is a human-readable diagnostic flag attached to a MatchResult.
type Alert struct {
	Kind     AlertKind
	Message  string
	Severity AlertSeverity
}

// MatchResult is the output of one matching call.
type MatchResult struct {
	TotalScore    float64
	Confidence    float64
	ComponentScores []ComponentScore

	ListeningReasonUsed ListeningReason
	MatrixID            string

	Alerts []Alert

	TopContributors []string
	Strengths       []string
	Weaknesses      []string
	Suggestions     []string

	TotalElapsedMS int64

	// HardGateTriggered names the gate that capped the score, or is
	// empty when no gate fired.
	HardGateTriggered string

	DeadlineExceeded bool
}
