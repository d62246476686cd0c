package settings

import (
	"context"
)

type contextKey string

const (
	runContextKey contextKey = "run"
)

// IntoContext stores the run options in the context.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey, s)
}

// FromContext retrieves the run options from the context.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey).(*Run)
	return s, ok && s != nil
}

// OrDefault returns the run options in ctx, or the CLI defaults when none
// were stored.
func OrDefault(ctx context.Context) *Run {
	if s, ok := FromContext(ctx); ok {
		return s
	}
	return NewCliParams()
}
