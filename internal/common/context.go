package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRunID  contextKey = "run_id"
	ContextKeyItemID contextKey = "item_id"
)

// WithRunID adds a batch run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RunIDFromContext extracts the batch run ID from context
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(ContextKeyRunID).(string); ok {
		return runID
	}
	return ""
}

// WithItemID adds the identifier of the document being processed to the context
func WithItemID(ctx context.Context, itemID string) context.Context {
	return context.WithValue(ctx, ContextKeyItemID, itemID)
}

// ItemIDFromContext extracts the document identifier from context
func ItemIDFromContext(ctx context.Context) string {
	if itemID, ok := ctx.Value(ContextKeyItemID).(string); ok {
		return itemID
	}
	return ""
}
