package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hermanas/caja/internal/adapter/http/dto"
	"github.com/hermanas/caja/internal/adapter/http/middleware"
	"github.com/hermanas/caja/internal/domain"
)

// actorFromRequest resolves the audit actor from the authenticated user,
// falling back to an anonymous actor when auth is not enforced.
func actorFromRequest(r *http.Request) domain.Actor {
	if user, ok := middleware.GetUserFromContext(r.Context()); ok {
		name := user.Name
		if name == "" {
			name = user.Username
		}
		return domain.Actor{ID: user.ID, DisplayName: name}
	}
	return domain.Actor{ID: "anonymous", DisplayName: "anonymous"}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrCashCountNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDetail),
		errors.Is(err, domain.ErrInvalidDescription),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidApproverRole),
		errors.Is(err, domain.ErrInvalidRegisterKind),
		errors.Is(err, domain.ErrInvalidScope),
		errors.Is(err, domain.ErrEmptyMovement),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInsufficientPair):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
