package apiclient

import "context"

type tokenKey struct{}

// WithToken returns a context whose backend calls carry the bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token attached to ctx, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
