package domain

import (
	"context"
	"net/url"
)

// AnonymousCaller is the caller identity used when none is attached to the context.
const AnonymousCaller = "anonymous"

type callerKey struct{}

// ContextWithCaller attaches the calling user or session identity to ctx.
// The identity scopes per-caller state such as recent queries.
func ContextWithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller identity, or AnonymousCaller if unset.
func CallerFromContext(ctx context.Context) string {
	if c, ok := ctx.Value(callerKey{}).(string); ok && c != "" {
		return c
	}
	return AnonymousCaller
}

// RecentScope builds the recent-query scope key for a caller within a tenant.
// Both parts are escaped so a ':' in either cannot collide with another pair.
func RecentScope(tenant, caller string) string {
	if caller == "" {
		caller = AnonymousCaller
	}
	return url.QueryEscape(tenant) + ":" + url.QueryEscape(caller)
}
