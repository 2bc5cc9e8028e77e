package session

import "context"

type contextKey struct{}

// WithState stores the request's auth state on the context.
func WithState(ctx context.Context, state State) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, state)
}

// FromContext returns the auth state seeded by the session middleware, or the zero state.
func FromContext(ctx context.Context) State {
	if ctx == nil {
		return State{}
	}
	if state, ok := ctx.Value(contextKey{}).(State); ok {
		return state
	}
	return State{}
}
