package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/logger"
	"equipshare-backend/internal/security"
	"equipshare-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps domain errors onto HTTP statuses. Unknown errors
// become a 500 without leaking internals.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, domain.ErrInvalidRange):
		respondError(w, http.StatusBadRequest, "invalid date range")
	case errors.Is(err, domain.ErrSelfBooking):
		respondError(w, http.StatusBadRequest, "cannot book your own equipment")
	case errors.Is(err, domain.ErrUnavailableRange):
		respondError(w, http.StatusConflict, "requested dates are not available")
	case errors.Is(err, domain.ErrAlreadyExists):
		respondError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrInvalidStatus):
		respondError(w, http.StatusConflict, "invalid status transition")
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrNotAuthorized):
		respondError(w, http.StatusForbidden, "not authorized")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, security.ErrExpiredToken), errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrWrongTokenType):
		respondError(w, http.StatusUnauthorized, "invalid token")
	default:
		logger.Error("Unhandled service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
