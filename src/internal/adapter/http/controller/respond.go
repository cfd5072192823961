package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nttbank/msaccount/src/internal/commons"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
)

const codeMalformedBody = "MALFORMED_BODY"

func handle(mux *http.ServeMux, pattern string, h http.HandlerFunc, authMiddleware func(http.Handler) http.Handler) {
	var handler http.Handler = h
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	mux.Handle(pattern, handler)
}

// decodeBody reads the JSON body into dst and answers 400 itself when it cannot.
func decodeBody[T any, R any](w http.ResponseWriter, r *http.Request, start time.Time, dst *T) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logError(r, domain.BusinessRule("invalid request body: %v", err), nil)
		response := commons.ErrorResponse[R]("invalid request body", err.Error()).WithCode(codeMalformedBody)
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return false
	}
	logRequest(r, *dst)
	return true
}

func respond[T any](w http.ResponseWriter, r *http.Request, start time.Time, successStatus int, response commons.Response[T], err error) {
	status := successStatus
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status = statusFor(err)
		response = response.WithCode(string(domain.KindOf(err)))
	}
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindBusinessRule:
		return http.StatusBadRequest
	case domain.KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
