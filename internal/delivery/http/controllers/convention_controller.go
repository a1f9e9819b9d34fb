package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conventions/internal/authz"
	"conventions/internal/delivery/http/helpers"
	"conventions/internal/domain"
)

// ConventionRequest is the request body for creating or replacing a convention.
// Dates are epoch seconds; no ordering between them is enforced.
type ConventionRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	VenueID   string `json:"venue_id" validate:"required"`
	StartDate *int64 `json:"start_date"`
	EndDate   *int64 `json:"end_date"`
}

// ConventionResponse is the API representation of a convention.
// swagger:model ConventionResponse
type ConventionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VenueID   string `json:"venue_id"`
	StartDate *int64 `json:"start_date,omitempty"`
	EndDate   *int64 `json:"end_date,omitempty"`
}

func toConvention(req ConventionRequest) *domain.Convention {
	return &domain.Convention{Name: req.Name, VenueID: req.VenueID, StartDate: req.StartDate, EndDate: req.EndDate}
}

func newConventionResponse(c *domain.Convention) ConventionResponse {
	return ConventionResponse{ID: c.ID, Name: c.Name, VenueID: c.VenueID, StartDate: c.StartDate, EndDate: c.EndDate}
}

func newConventionResponses(cs []*domain.Convention) []ConventionResponse {
	out := make([]ConventionResponse, len(cs))
	for i, c := range cs {
		out[i] = newConventionResponse(c)
	}
	return out
}

type ConventionController struct {
	Logger  *slog.Logger
	Service domain.ConventionService
}

func NewConventionController(logger *slog.Logger, svc domain.ConventionService) *ConventionController {
	return &ConventionController{Logger: logger, Service: svc}
}

// writeVenueError reports a missing venue as 422: the venue is a reference in
// the body, not the addressed resource.
func (c *ConventionController) writeVenueError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrVenueNotFound) {
		c.Logger.WarnContext(r.Context(), "venue not found", "err", err)
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeUnprocessableEntity, err.Error())
		return
	}
	writeServiceError(w, r, c.Logger, err)
}

// CreateConvention godoc
// @Summary Create a convention
// @Tags conventions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param convention body ConventionRequest true "Convention"
// @Success 201 {object} helpers.APIResponse{data=controllers.ConventionResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (requires create:conventions)"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity (venue not found)"
// @Router /v1/conventions [post]
func (c *ConventionController) CreateConvention(w http.ResponseWriter, r *http.Request) {
	var req ConventionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	convention := toConvention(req)
	if err := c.Service.CreateConvention(r.Context(), convention); err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newConventionResponse(convention))
}

// UpdateConvention godoc
// @Summary Replace a convention
// @Tags conventions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conventionId path string true "Convention ID"
// @Param convention body ConventionRequest true "Convention"
// @Success 200 {object} helpers.APIResponse{data=controllers.ConventionResponse}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity (venue not found)"
// @Router /v1/conventions/{conventionId} [put]
func (c *ConventionController) UpdateConvention(w http.ResponseWriter, r *http.Request) {
	conventionID := r.PathValue("conventionId")
	var req ConventionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	convention := toConvention(req)
	if err := c.Service.UpdateConvention(r.Context(), conventionID, convention); err != nil {
		c.writeVenueError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConventionResponse(convention))
}

// DeleteConvention godoc
// @Summary Delete a convention
// @Tags conventions
// @Security BearerAuth
// @Param conventionId path string true "Convention ID"
// @Success 204
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity (still referenced)"
// @Router /v1/conventions/{conventionId} [delete]
func (c *ConventionController) DeleteConvention(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteConvention(r.Context(), r.PathValue("conventionId")); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}

// GetConvention godoc
// @Summary Get a convention
// @Tags conventions
// @Produce json
// @Security BearerAuth
// @Param conventionId path string true "Convention ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.ConventionResponse}
// @Success 204 "convention does not exist"
// @Router /v1/conventions/{conventionId} [get]
func (c *ConventionController) GetConvention(w http.ResponseWriter, r *http.Request) {
	convention, err := c.Service.GetConvention(r.Context(), r.PathValue("conventionId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConventionResponse(convention))
}

// ListConventions godoc
// @Summary List conventions
// @Tags conventions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=[]controllers.ConventionResponse}
// @Router /v1/conventions [get]
func (c *ConventionController) ListConventions(w http.ResponseWriter, r *http.Request) {
	conventions, err := c.Service.ListConventions(r.Context(), helpers.ParsePagination(r))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConventionResponses(conventions))
}

// JoinConvention godoc
// @Summary Register a user for a convention
// @Description Callers may register themselves; registering others requires signup:conventions.
// @Tags conventions
// @Produce json
// @Security BearerAuth
// @Param conventionId path string true "Convention ID"
// @Param userId path string true "User ID"
// @Success 201 {object} helpers.APIResponse{data=controllers.RegistrationResponse}
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (convention or user)"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity (already joined)"
// @Router /v1/conventions/{conventionId}/users/{userId} [post]
func (c *ConventionController) JoinConvention(w http.ResponseWriter, r *http.Request) {
	conventionID, userID := r.PathValue("conventionId"), r.PathValue("userId")
	if !authorize(w, r, userID, authz.SignupConventions) {
		return
	}
	if err := c.Service.JoinConvention(r.Context(), conventionID, userID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RegistrationResponse{UserID: userID, ConventionID: conventionID})
}

// LeaveConvention godoc
// @Summary Remove a user from a convention
// @Tags conventions
// @Security BearerAuth
// @Param conventionId path string true "Convention ID"
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /v1/conventions/{conventionId}/users/{userId} [delete]
func (c *ConventionController) LeaveConvention(w http.ResponseWriter, r *http.Request) {
	conventionID, userID := r.PathValue("conventionId"), r.PathValue("userId")
	if !authorize(w, r, userID, authz.EjectConventions) {
		return
	}
	if err := c.Service.LeaveConvention(r.Context(), conventionID, userID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}

// ListConventionsForUser godoc
// @Summary List the conventions a user joined
// @Tags conventions
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=[]controllers.ConventionResponse}
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /v1/conventions/users/{userId} [get]
func (c *ConventionController) ListConventionsForUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorize(w, r, userID, authz.ReadUsers) {
		return
	}
	conventions, err := c.Service.ListConventionsForUser(r.Context(), userID, helpers.ParsePagination(r))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConventionResponses(conventions))
}
