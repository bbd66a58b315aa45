// Package sentryx initializes Sentry error reporting and provides the
// panic-capture helper the engine's per-scorer recovery path uses
// (spec.md §7: an internal bug in one scorer is reported and
// substituted with a neutral score rather than failing the request).
package sentryx

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
)

// Init configures the global Sentry client. dsn empty disables
// reporting; CaptureScorerPanic then becomes a no-op.
func Init(dsn, environment string) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		EnableTracing:    false,
		AttachStacktrace: true,
	})
}

// GinMiddleware returns the panic-recovery middleware for the
// transport layer, complementing the engine's own per-scorer recovery.
func GinMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{Repanic: true})
}

// CaptureScorerPanic reports a recovered scorer panic with context
// tags so it is searchable by component name, then flushes with a
// short deadline so the request path is never blocked waiting on the
// Sentry transport.
func CaptureScorerPanic(ctx context.Context, scorerName string, recovered any) {
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("component", scorerName)
		scope.SetContext("panic", map[string]any{
			"value": fmt.Sprintf("%v", recovered),
		})
	})
	hub.Recover(recoveredAsError(recovered))
	sentry.Flush(2 * time.Second)
}

func recoveredAsError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return fmt.Errorf("scorer panic: %v", recovered)
}
