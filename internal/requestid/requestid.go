// Package requestid generates and propagates request IDs for the blob
// cache's HTTP surface via context.Context.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// prefix tags every ID this service mints as "blobcache-*" so that logs
// aggregated across collaborators sharing the same ingress (the upload
// path, the download path, and whatever future sibling services key off
// the same request ID) can be grepped per-service without parsing the
// UUID itself.
const prefix = "blobcache-"

type ctxKey struct{}

// WithRequestID returns a context with the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the request ID from context, or generates a new one.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return prefix + uuid.New().String()
}

// New generates a new request ID and returns the enriched context and ID.
func New(ctx context.Context) (context.Context, string) {
	id := prefix + uuid.New().String()
	return WithRequestID(ctx, id), id
}
