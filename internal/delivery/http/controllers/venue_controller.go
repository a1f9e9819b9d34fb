package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conventions/internal/delivery/http/helpers"
	"conventions/internal/domain"
)

// VenueRequest is the request body for creating or replacing a venue.
type VenueRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Street  string `json:"street" validate:"max=255"`
	City    string `json:"city" validate:"max=255"`
	Country string `json:"country" validate:"max=255"`
}

// VenueResponse is the API representation of a venue.
// swagger:model VenueResponse
type VenueResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

func toVenue(req VenueRequest) *domain.Venue {
	return &domain.Venue{Name: req.Name, Street: req.Street, City: req.City, Country: req.Country}
}

func newVenueResponse(v *domain.Venue) VenueResponse {
	return VenueResponse{ID: v.ID, Name: v.Name, Street: v.Street, City: v.City, Country: v.Country}
}

func newVenueResponses(vs []*domain.Venue) []VenueResponse {
	out := make([]VenueResponse, len(vs))
	for i, v := range vs {
		out[i] = newVenueResponse(v)
	}
	return out
}

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{Logger: logger, Service: svc}
}

// CreateVenue godoc
// @Summary Create a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venue body VenueRequest true "Venue"
// @Success 201 {object} helpers.APIResponse{data=controllers.VenueResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (requires create:venues)"
// @Router /v1/venues [post]
func (c *VenueController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue := toVenue(req)
	if err := c.Service.CreateVenue(r.Context(), venue); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newVenueResponse(venue))
}

// UpdateVenue godoc
// @Summary Replace a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueId path string true "Venue ID"
// @Param venue body VenueRequest true "Venue"
// @Success 200 {object} helpers.APIResponse{data=controllers.VenueResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (requires update:venues)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /v1/venues/{venueId} [put]
func (c *VenueController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueId")
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue := toVenue(req)
	if err := c.Service.UpdateVenue(r.Context(), venueID, venue); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newVenueResponse(venue))
}

// DeleteVenue godoc
// @Summary Delete a venue
// @Description Deleting a missing venue succeeds. A venue still used by a convention is refused with 422.
// @Tags venues
// @Security BearerAuth
// @Param venueId path string true "Venue ID"
// @Success 204
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (requires delete:venues)"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity"
// @Router /v1/venues/{venueId} [delete]
func (c *VenueController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteVenue(r.Context(), r.PathValue("venueId")); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}

// GetVenue godoc
// @Summary Get a venue
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueId path string true "Venue ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.VenueResponse}
// @Success 204 "venue does not exist"
// @Router /v1/venues/{venueId} [get]
func (c *VenueController) GetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := c.Service.GetVenue(r.Context(), r.PathValue("venueId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newVenueResponse(venue))
}

// ListVenues godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=[]controllers.VenueResponse}
// @Router /v1/venues [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.ListVenues(r.Context(), helpers.ParsePagination(r))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newVenueResponses(venues))
}
