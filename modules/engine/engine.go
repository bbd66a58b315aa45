// Package engine implements the Scoring Orchestrator (C6): the
// fan-out/fan-in loop that resolves a weight matrix, runs every
// scorer concurrently under per-component and global deadlines,
// applies the hard gates, and hands the result to diagnostics.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andreypavlenko/matchengine/modules/diagnostics"
	"github.com/andreypavlenko/matchengine/modules/hierarchy"
	"github.com/andreypavlenko/matchengine/modules/matching"
	"github.com/andreypavlenko/matchengine/modules/scoring"
	"github.com/andreypavlenko/matchengine/modules/weights"
	"go.uber.org/zap"
)

// PanicCapture reports a recovered scorer panic to an observability
// backend; implemented in production by internal/platform/sentryx.
type PanicCapture func(ctx context.Context, scorerName string, recovered any)

// Config holds the deadline and concurrency knobs from spec.md §6.
type Config struct {
	DeadlineTotal          time.Duration
	DeadlinePerScorer       time.Duration
	ConcurrencyLimit       int
	HardGateMode           matching.HardGateMode
}

// DefaultConfig matches spec.md §6's documented defaults: 175ms total
// deadline (I5), 30ms per scorer, 128 in flight.
func DefaultConfig() Config {
	return Config{
		DeadlineTotal:     175 * time.Millisecond,
		DeadlinePerScorer: 30 * time.Millisecond,
		ConcurrencyLimit:  128,
		HardGateMode:      matching.HardGateStrict,
	}
}

// Engine is the C6 orchestrator. It is safe for concurrent use.
type Engine struct {
	cfg      Config
	scorers  []scoring.Scorer
	weights  *weights.Registry
	sem      chan struct{}
	log      *zap.Logger
	onPanic  PanicCapture
}

// New wires an Engine from its dependencies. scorers is expected to
// be scoring.NewRegistry's output (CanonicalOrder), and reg a
// validated weights.Registry.
func New(cfg Config, scorers []scoring.Scorer, reg *weights.Registry, log *zap.Logger, onPanic PanicCapture) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if onPanic == nil {
		onPanic = func(context.Context, string, any) {}
	}
	return &Engine{
		cfg:     cfg,
		scorers: scorers,
		weights: reg,
		sem:     make(chan struct{}, cfg.ConcurrencyLimit),
		log:     log,
		onPanic: onPanic,
	}
}

// Match runs one scoring pass for req, per spec.md §4.6's algorithm.
func (e *Engine) Match(ctx context.Context, req matching.MatchRequest) (matching.MatchResult, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return matching.MatchResult{}, err
	}

	select {
	case e.sem <- struct{}{}:
		defer func() { <-e.sem }()
	default:
		return matching.MatchResult{}, matching.ErrBusy
	}

	reason := req.ResolvedListeningReason()
	matrixID, matrix := e.weights.Resolve(reason)

	totalCtx, cancel := context.WithTimeout(ctx, e.cfg.DeadlineTotal)
	defer cancel()
	totalCtx = scoring.WithResolvedReason(totalCtx, reason)

	results := e.fanOut(totalCtx, &req.Candidate, &req.Job)

	deadlineExceeded := totalCtx.Err() != nil

	components := make([]matching.ComponentScore, len(e.scorers))
	for i, sc := range e.scorers {
		out := results[i]
		if timedOut, _ := out.Details["timeout"].(bool); timedOut {
			deadlineExceeded = true
		}
		w := matrix[sc.Name()]
		weighted := out.RawScore * w
		components[i] = matching.ComponentScore{
			Name:          sc.Name(),
			RawScore:      clamp01(out.RawScore),
			Weight:        w,
			WeightedScore: weighted,
			Confidence:    clamp01(out.Confidence),
			Details:       out.Details,
			ElapsedMS:     out.ElapsedMS,
		}
	}

	rawTotal := 0.0
	for _, c := range components {
		rawTotal += c.WeightedScore
	}

	var alerts []matching.Alert
	total := rawTotal
	gateTriggered := ""

	if hc := findComponent(components, "hierarchical"); hc != nil {
		if critical, _ := hc.Details["critical_mismatch"].(bool); critical {
			alerts = append(alerts, matching.Alert{
				Kind: matching.AlertCriticalMismatch, Severity: matching.SeverityCritical,
				Message: "candidate and job hierarchical levels differ by 3 or more steps",
			})
			mode := req.HardGateMode
			if mode == "" {
				mode = e.cfg.HardGateMode
			}
			if mode == matching.HardGateStrict {
				if total > 0.40 {
					total = 0.40
				}
				gateTriggered = "hierarchical_mismatch"
			}
		}
		if over, _ := hc.Details["overqualified"].(bool); over {
			alerts = append(alerts, matching.Alert{
				Kind: matching.AlertOverqualified, Severity: matching.SeverityWarn,
				Message: "candidate is significantly overqualified for this role",
			})
		}
	}

	if lc := findComponent(components, "location"); lc != nil {
		if feasible, ok := lc.Details["feasible"].(bool); ok && !feasible {
			alerts = append(alerts, matching.Alert{
				Kind: matching.AlertTransportInfeasible, Severity: matching.SeverityCritical,
				Message: "no transport mode reaches the job within the candidate's travel-time limits",
			})
			mode := req.HardGateMode
			if mode == "" {
				mode = e.cfg.HardGateMode
			}
			if mode == matching.HardGateStrict {
				if total > 0.25 {
					total = 0.25
				}
				gateTriggered = "transport_infeasible"
			}
		}
	}

	if sc := findComponent(components, "sector"); sc != nil {
		if excluded, ok := sc.Details["excluded"].(bool); ok && excluded {
			alerts = append(alerts, matching.Alert{
				Kind: matching.AlertSectorExcluded, Severity: matching.SeverityWarn,
				Message: "job sector is in candidate's excluded list",
			})
		}
	}

	confidence := weightedConfidence(components)

	result := matching.MatchResult{
		TotalScore:          clamp01(total),
		Confidence:          clamp01(confidence),
		ComponentScores:     components,
		ListeningReasonUsed: reason,
		MatrixID:            string(matrixID),
		Alerts:              alerts,
		HardGateTriggered:   gateTriggered,
		TotalElapsedMS:      time.Since(start).Milliseconds(),
		DeadlineExceeded:    deadlineExceeded,
	}

	diagnostics.Attach(&result)

	return result, nil
}

// fanOut runs every scorer concurrently, each under its own per-scorer
// deadline derived from ctx, recovering panics into a neutral score
// and reporting them via onPanic. Results are written to an indexed
// slice so no lock is needed on the hot path (spec.md §4.6 step 2-3).
func (e *Engine) fanOut(ctx context.Context, c *matching.CandidateProfile, j *matching.JobPosting) []scoring.Output {
	out := make([]scoring.Output, len(e.scorers))

	var wg sync.WaitGroup
	wg.Add(len(e.scorers))
	for i, sc := range e.scorers {
		i, sc := i, sc
		go func() {
			defer wg.Done()
			out[i] = e.runOne(ctx, sc, c, j)
		}()
	}
	wg.Wait()

	return out
}

// runOne scores with sc under a per-scorer deadline, recovering from
// panics and substituting scoring.Neutral on timeout or panic.
func (e *Engine) runOne(ctx context.Context, sc scoring.Scorer, c *matching.CandidateProfile, j *matching.JobPosting) (result scoring.Output) {
	start := time.Now()
	scorerCtx, cancel := context.WithTimeout(ctx, e.cfg.DeadlinePerScorer)
	defer cancel()

	done := make(chan scoring.Output, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.onPanic(ctx, sc.Name(), r)
				e.log.Error("scorer panicked", zap.String("scorer", sc.Name()), zap.Any("recovered", r))
				done <- scoring.Neutral(fmt.Sprintf("panic: %v", r))
				return
			}
		}()
		done <- sc.Score(scorerCtx, c, j)
	}()

	select {
	case out := <-done:
		out.ElapsedMS = time.Since(start).Milliseconds()
		return out
	case <-scorerCtx.Done():
		out := scoring.Neutral("deadline_exceeded")
		out.ElapsedMS = time.Since(start).Milliseconds()
		return out
	}
}

func findComponent(cs []matching.ComponentScore, name string) *matching.ComponentScore {
	for i := range cs {
		if cs[i].Name == name {
			return &cs[i]
		}
	}
	return nil
}

func weightedConfidence(cs []matching.ComponentScore) float64 {
	var sumW, sumWC float64
	for _, c := range cs {
		sumW += c.Weight
		sumWC += c.Weight * c.Confidence
	}
	if sumW == 0 {
		return 0
	}
	return sumWC / sumW
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

// hierarchyAdapter binds modules/hierarchy.Detect to scoring.HierarchyFunc.
func hierarchyAdapter(_ context.Context, title, text string, years int, teamSize *int) (matching.HierarchyLevel, float64) {
	r := hierarchy.Detect(hierarchy.Input{Title: title, Text: text, Years: years, TeamSize: teamSize})
	return r.Level, r.Confidence
}

// HierarchyAdapter exposes hierarchyAdapter for wiring into
// scoring.Deps.HierarchyOf — the level classification step the
// hierarchical scorer needs before it can call hierarchy.Compatibility
// on the two resulting levels.
var HierarchyAdapter scoring.HierarchyFunc = hierarchyAdapter
