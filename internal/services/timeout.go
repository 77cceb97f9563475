package services

import (
	"context"
	"time"
)

// Read budgets. List reads run under readTimeout; the quick lookups feeding
// other computations (follow ids, unread counts) run under shortReadTimeout.
// Expiry softens to an empty result rather than an error on list paths.
// Writes carry no timeout and are never retried.
const (
	readTimeout      = 8 * time.Second
	shortReadTimeout = 5 * time.Second
)

func readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, readTimeout)
}

func shortReadCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, shortReadTimeout)
}
