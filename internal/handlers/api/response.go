package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondServiceError maps tracker errors onto HTTP statuses. Storage
// failures are logged by the service and reported with a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, tracker.ErrInvalidPayload):
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
	case errors.Is(err, tracker.ErrNotInSession):
		respondError(c, http.StatusBadRequest, "not_in_session", err)
	case errors.Is(err, tracker.ErrNotActive):
		respondError(c, http.StatusBadRequest, "not_active", err)
	case errors.Is(err, tracker.ErrNoCurrentSession),
		errors.Is(err, tracker.ErrSessionNotFound),
		errors.Is(err, tracker.ErrSeasonNotFound),
		errors.Is(err, tracker.ErrGameNotFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, tracker.ErrSessionClosed),
		errors.Is(err, tracker.ErrSeasonNotActive):
		respondError(c, http.StatusConflict, "conflict", err)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
	}
}
