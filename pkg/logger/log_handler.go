package logger

import (
	"context"
	"log/slog"

	"inventory-service/pkg/ctxutil"
)

type RequestIDHandler struct {
	slog.Handler
}

func (h *RequestIDHandler) Handle(ctx context.Context, r slog.Record) error {
	requestID := ctxutil.GetRequestID(ctx)
	if requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	messageID := ctxutil.GetMessageID(ctx)
	if messageID != "" {
		r.AddAttrs(slog.String("message_id", messageID))
	}
	return h.Handler.Handle(ctx, r)
}
