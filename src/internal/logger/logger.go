package logger

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"dni":           {},
	"nationalid":    {},
	"national_id":   {},
	"password":      {},
	"smtppassword":  {},
	"channelkey":    {},
	"authorization": {},
}

var base atomic.Pointer[slog.Logger]

func init() {
	base.Store(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// SetOutput redirects log lines to w at the given level.
func SetOutput(w io.Writer, level slog.Level) {
	base.Store(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

func Info(message string, fields Fields) {
	base.Load().Info(message, attrs(fields)...)
}

func Warn(message string, fields Fields) {
	base.Load().Warn(message, attrs(fields)...)
}

func Error(message string, err error, fields Fields) {
	merged := Fields{}
	for k, v := range fields {
		merged[k] = v
	}
	if err != nil {
		merged["error"] = err.Error()
	}

	base.Load().Error(message, attrs(merged)...)
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func attrs(fields Fields) []any {
	if len(fields) == 0 {
		return nil
	}

	sanitized, ok := SanitizePayload(fields).(map[string]any)
	if !ok {
		return nil
	}

	out := make([]any, 0, len(sanitized))
	for k, v := range sanitized {
		out = append(out, slog.Any(k, v))
	}
	return out
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
