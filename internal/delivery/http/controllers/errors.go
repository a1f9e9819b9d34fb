package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conventions/internal/authz"
	"conventions/internal/delivery/http/helpers"
	"conventions/internal/delivery/http/middleware"
	"conventions/internal/domain"
)

// writeServiceError maps a service error to the API envelope: NotFound family
// to 404, Conflict and Precondition families to 422, anything else to 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.DebugContext(r.Context(), "not found", "path", r.URL.Path, "err", err)
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrPrecondition):
		logger.WarnContext(r.Context(), "request rejected", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}

// principal returns the caller or writes 401.
func principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return domain.Principal{}, false
	}
	return p, true
}

// authorize writes 403 and returns false unless the caller may act on userID.
func authorize(w http.ResponseWriter, r *http.Request, userID, permission string) bool {
	p, ok := principal(w, r)
	if !ok {
		return false
	}
	if !authz.CanAccess(p, userID, permission) {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
		return false
	}
	return true
}

// RegistrationResponse is the body returned by join endpoints.
// swagger:model RegistrationResponse
type RegistrationResponse struct {
	UserID       string `json:"user_id"`
	ConventionID string `json:"convention_id,omitempty"`
	TalkID       string `json:"talk_id,omitempty"`
}
