package ctxutil

import "context"

type ctxKey string

const (
	RequestIDKey ctxKey = "request_id"
	MessageIDKey ctxKey = "message_id"
)

func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, reqID)
}

func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(RequestIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// WithMessageID tags a consumer delivery the way WithRequestID tags an
// HTTP request, so broker-side logs stay correlatable.
func WithMessageID(ctx context.Context, msgID string) context.Context {
	return context.WithValue(ctx, MessageIDKey, msgID)
}

func GetMessageID(ctx context.Context) string {
	if v := ctx.Value(MessageIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
