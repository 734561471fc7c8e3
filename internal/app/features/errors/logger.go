// internal/app/features/errors/logger.go
package errors

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ErrorLogger logs handler failures with request context and answers the
// client with a friendly page, or a JSON error body for API requests.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and responds 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, append(requestFields(r), zap.Error(err))...)
	e.respond(w, r, http.StatusInternalServerError, userMsg, backURL)
}

// LogBadRequest logs err at warn level and responds 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, append(requestFields(r), zap.Error(err))...)
	e.respond(w, r, http.StatusBadRequest, userMsg, backURL)
}

// LogForbidden logs an access denial at info level and responds 403.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg, userMsg, backURL string) {
	e.log.Info(msg, requestFields(r)...)
	e.respond(w, r, http.StatusForbidden, userMsg, backURL)
}

func (e *ErrorLogger) respond(w http.ResponseWriter, r *http.Request, status int, userMsg, backURL string) {
	if WantsJSON(r) {
		WriteJSONError(w, status, userMsg)
		return
	}
	title := http.StatusText(status)
	renderPage(w, r, status, title, userMsg, backURL)
}

// WantsJSON reports whether r is an API call rather than a page load.
func WantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// WriteJSONError writes {"error": msg} with status.
func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func requestFields(r *http.Request) []zap.Field {
	return []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
}
