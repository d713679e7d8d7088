package middleware

import "context"

type ctxKey int

const (
	sessionIDKey ctxKey = iota
)

// WithSessionID stores the visitor session identifier in the context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionID returns the visitor session identifier, or "" when absent.
func SessionID(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}
