package graph

import (
	"context"
	"sync/atomic"
)

type readOnlyKey struct{}

type readOnly struct {
	refused atomic.Bool
}

// WithReadOnly marks ctx so mutation resolvers refuse to run. The HTTP layer
// sets it for GET requests and checks MutationRefused after execution.
func WithReadOnly(ctx context.Context) context.Context {
	return context.WithValue(ctx, readOnlyKey{}, &readOnly{})
}

// MutationRefused reports whether a mutation resolver ran under a read-only
// ctx and declined to write.
func MutationRefused(ctx context.Context) bool {
	ro, ok := ctx.Value(readOnlyKey{}).(*readOnly)
	return ok && ro.refused.Load()
}

// refuseMutation records the refusal and reports whether ctx is read-only.
func refuseMutation(ctx context.Context) bool {
	ro, ok := ctx.Value(readOnlyKey{}).(*readOnly)
	if !ok {
		return false
	}
	ro.refused.Store(true)
	return true
}
