package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const runIDKey contextKey = "run_id"

// NewRunID generates a unique identifier for one pipeline run.
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID returns a context carrying the run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunID returns the run ID from the context, or "" when absent.
func RunID(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}
