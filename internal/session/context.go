package session

import "context"

type contextKey string

const (
	contextKeySessionID contextKey = "session_id"
	contextKeyToken     contextKey = "session_token"
)

// WithSession stores the resolved session id and token in ctx.
func WithSession(ctx context.Context, sessionID, token string) context.Context {
	ctx = context.WithValue(ctx, contextKeySessionID, sessionID)
	return context.WithValue(ctx, contextKeyToken, token)
}

func IDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeySessionID).(string)
	return id
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(contextKeyToken).(string)
	return token
}

// ContextTokens reads the token stored by WithSession.
type ContextTokens struct{}

func (ContextTokens) Token(ctx context.Context) string {
	return TokenFromContext(ctx)
}
