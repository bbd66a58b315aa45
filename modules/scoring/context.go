package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type resolvedReasonKey struct{}

// WithResolvedReason attaches the listening reason the engine resolved
// for this request (override or candidate.ListeningReasons[0]) so the
// listening-reason-consistency scorer can check it without widening
// the Scorer interface for every other scorer.
func WithResolvedReason(ctx context.Context, reason matching.ListeningReason) context.Context {
	return context.WithValue(ctx, resolvedReasonKey{}, reason)
}

// ResolvedReasonFromContext retrieves the reason set by
// WithResolvedReason, if any.
func ResolvedReasonFromContext(ctx context.Context) (matching.ListeningReason, bool) {
	v, ok := ctx.Value(resolvedReasonKey{}).(matching.ListeningReason)
	return v, ok
}
