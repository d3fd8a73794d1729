// Package requestcontext carries per-request correlation data through
// context.Context so outbound calls and logs can be tied to the inbound
// request that caused them.
package requestcontext

import "context"

type requestIDKey struct{}

// WithRequestID returns ctx tagged with id. An empty id leaves ctx as is.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id set by WithRequestID, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
