package handler

import (
	"context"
	"encoding/json"
	"net/http"

	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
	"github.com/yogeshrakate/skill-matrix-backend/internal/logger"
	"github.com/yogeshrakate/skill-matrix-backend/internal/service"
)

// HealthChecker reports whether backing dependencies can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler owns the HTTP surface. Every endpoint responds with the
// envelope {"message": ..., "data": ...} so clients can parse
// success and failure bodies the same way.
type Handler struct {
	auth     service.AuthService
	entities service.EntityService
	health   HealthChecker
}

func New(auth service.AuthService, entities service.EntityService, health HealthChecker) *Handler {
	return &Handler{auth: auth, entities: entities, health: health}
}

type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Message: message, Data: data}); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// writeError renders service errors through the same envelope.
// ErrorWithStatusCode carries its own status and machine-readable
// code; anything else is an internal failure and stays opaque.
func writeError(w http.ResponseWriter, err error) {
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		var data any
		if e.Code != "" {
			data = map[string]string{"code": e.Code}
		}
		writeEnvelope(w, e.StatusCode, e.Message, data)
		return
	}
	logger.Log.Error("unhandled error", "error", err)
	writeEnvelope(w, http.StatusInternalServerError, "Internal server error", nil)
}
