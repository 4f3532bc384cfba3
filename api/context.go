package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type contextKey string

const contextKeyRequestID contextKey = "request-id"

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

func requestLogger(log *zap.Logger, r *http.Request) *zap.Logger {
	if id := requestID(r.Context()); id != "" {
		return log.With(zap.String("request_id", id))
	}
	return log
}
