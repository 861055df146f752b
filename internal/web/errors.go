package web

// errors.go provides unified error response handling for the API.
//
// Every error path logs the full technical error server-side with the
// request ID, and returns a sanitized user-facing message with an action
// suggestion and a stable code clients can branch on.

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/shulebus/shulebus/internal/importer"
)

// ErrorResponse is the JSON structure for API error responses.
// Code is machine-readable; Message and Action are for display.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error and writes a user-friendly JSON
// error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := importer.MapRemoteError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeJSON(w, statusCode, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// respondBadRequest writes a 400 with a literal message, for request shape
// problems that have no mapped error.
func respondBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   message,
		Message: message,
		Code:    "REQ001",
	})
}
