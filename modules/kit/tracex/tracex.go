package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type ctxKey int

const (
	keyTraceID ctxKey = iota
	keySpanID
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, keyTraceID, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, keyTraceID)
}

func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, keySpanID, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, keySpanID)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	s, ok := ctx.Value(key).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// NewTraceID 生成 16 字节随机 trace_id（hex）。
func NewTraceID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
