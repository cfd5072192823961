package controller

import (
	"net/http"
	"time"

	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":  r.Method,
		"route":   r.Pattern,
		"path":    r.URL.Path,
		"query":   r.URL.RawQuery,
		"payload": logger.SanitizePayload(payload),
	})
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"route":      r.Pattern,
		"path":       r.URL.Path,
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   logger.SanitizePayload(payload),
	})
}

// logError logs caller mistakes (not found, rule violations) at warn level and
// everything else at error level.
func logError(r *http.Request, err error, extra logger.Fields) {
	kind := domain.KindOf(err)
	fields := logger.Fields{
		"method":    r.Method,
		"route":     r.Pattern,
		"path":      r.URL.Path,
		"query":     r.URL.RawQuery,
		"errorKind": kind,
	}
	for k, v := range extra {
		fields[k] = v
	}

	switch kind {
	case domain.KindNotFound, domain.KindBusinessRule:
		fields["error"] = err.Error()
		logger.Warn("http handler rejected request", fields)
	default:
		logger.Error("http handler error", err, fields)
	}
}
