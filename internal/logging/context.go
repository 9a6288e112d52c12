package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

type requestScope struct {
	requestID string
	userID    string
}

// WithRequestID returns a context carrying the request correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	scope := scopeFrom(ctx)
	scope.requestID = requestID
	return context.WithValue(ctx, ctxKey{}, scope)
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	scope := scopeFrom(ctx)
	scope.userID = userID
	return context.WithValue(ctx, ctxKey{}, scope)
}

func RequestID(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

// FromContext returns the default logger annotated with request_id and
// user_id when the context carries them.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	scope := scopeFrom(ctx)
	if scope.requestID != "" {
		logger = logger.With("request_id", scope.requestID)
	}
	if scope.userID != "" {
		logger = logger.With("user_id", scope.userID)
	}
	return logger
}

func scopeFrom(ctx context.Context) requestScope {
	if ctx == nil {
		return requestScope{}
	}
	if s, ok := ctx.Value(ctxKey{}).(requestScope); ok {
		return s
	}
	return requestScope{}
}
