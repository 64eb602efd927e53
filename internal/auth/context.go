package auth

import "context"

type contextKey struct{}

// WithSession attaches the session to the context for downstream handlers.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// SessionFrom returns the session attached to the context. The zero session
// means the request is unauthenticated.
func SessionFrom(ctx context.Context) Session {
	if s, ok := ctx.Value(contextKey{}).(Session); ok {
		return s
	}
	return Session{}
}
