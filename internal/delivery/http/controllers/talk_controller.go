package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conventions/internal/authz"
	"conventions/internal/delivery/http/helpers"
	"conventions/internal/domain"
)

// TalkRequest is the request body for creating or replacing a talk.
type TalkRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	SpeakerID    string `json:"speaker_id" validate:"required"`
	ConventionID string `json:"convention_id" validate:"required"`
	StartTime    *int64 `json:"start_time"`
	EndTime      *int64 `json:"end_time"`
	Capacity     *int   `json:"capacity" validate:"omitempty,min=0"`
}

// TalkResponse is the API representation of a talk.
// swagger:model TalkResponse
type TalkResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	SpeakerID    string `json:"speaker_id"`
	ConventionID string `json:"convention_id"`
	StartTime    *int64 `json:"start_time,omitempty"`
	EndTime      *int64 `json:"end_time,omitempty"`
	Capacity     *int   `json:"capacity,omitempty"`
}

func toTalk(req TalkRequest) *domain.Talk {
	return &domain.Talk{
		Title:        req.Title,
		SpeakerID:    req.SpeakerID,
		ConventionID: req.ConventionID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Capacity:     req.Capacity,
	}
}

func newTalkResponse(t *domain.Talk) TalkResponse {
	return TalkResponse{
		ID:           t.ID,
		Title:        t.Title,
		SpeakerID:    t.SpeakerID,
		ConventionID: t.ConventionID,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		Capacity:     t.Capacity,
	}
}

func newTalkResponses(ts []*domain.Talk) []TalkResponse {
	out := make([]TalkResponse, len(ts))
	for i, t := range ts {
		out[i] = newTalkResponse(t)
	}
	return out
}

type TalkController struct {
	Logger  *slog.Logger
	Service domain.TalkService
}

func NewTalkController(logger *slog.Logger, svc domain.TalkService) *TalkController {
	return &TalkController{Logger: logger, Service: svc}
}

// CreateTalk godoc
// @Summary Create a talk
// @Description Speakers may create their own talks; creating a talk for another speaker requires create:talks:onbehalf. The speaker must be registered for the convention.
// @Tags talks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param talk body TalkRequest true "Talk"
// @Success 201 {object} helpers.APIResponse{data=controllers.TalkResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (convention or speaker)"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity (speaker not part of convention)"
// @Router /v1/talks [post]
func (c *TalkController) CreateTalk(w http.ResponseWriter, r *http.Request) {
	var req TalkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if !authorize(w, r, req.SpeakerID, authz.CreateTalksOnBehalf) {
		return
	}
	talk := toTalk(req)
	if err := c.Service.CreateTalk(r.Context(), talk); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newTalkResponse(talk))
}

// UpdateTalk godoc
// @Summary Replace a talk
// @Description The caller must be the current speaker, and also the new speaker when speaker_id changes, unless they hold update:talks.
// @Tags talks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param talkId path string true "Talk ID"
// @Param talk body TalkRequest true "Talk"
// @Success 200 {object} helpers.APIResponse{data=controllers.TalkResponse}
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity"
// @Router /v1/talks/{talkId} [put]
func (c *TalkController) UpdateTalk(w http.ResponseWriter, r *http.Request) {
	talkID := r.PathValue("talkId")
	var req TalkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	current, err := c.Service.GetTalk(r.Context(), talkID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if !authorize(w, r, current.SpeakerID, authz.UpdateTalks) {
		return
	}
	if req.SpeakerID != current.SpeakerID && !authorize(w, r, req.SpeakerID, authz.UpdateTalks) {
		return
	}
	talk := toTalk(req)
	if err := c.Service.UpdateTalk(r.Context(), talkID, talk); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newTalkResponse(talk))
}

// DeleteTalk godoc
// @Summary Delete a talk
// @Description Only the speaker or a holder of delete:talks may delete. Deleting a missing talk succeeds.
// @Tags talks
// @Security BearerAuth
// @Param talkId path string true "Talk ID"
// @Success 204
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /v1/talks/{talkId} [delete]
func (c *TalkController) DeleteTalk(w http.ResponseWriter, r *http.Request) {
	talkID := r.PathValue("talkId")
	talk, err := c.Service.GetTalk(r.Context(), talkID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if !authorize(w, r, talk.SpeakerID, authz.DeleteTalks) {
		return
	}
	if err := c.Service.DeleteTalk(r.Context(), talkID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}

// GetTalk godoc
// @Summary Get a talk
// @Tags talks
// @Produce json
// @Security BearerAuth
// @Param talkId path string true "Talk ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.TalkResponse}
// @Success 204 "talk does not exist"
// @Router /v1/talks/{talkId} [get]
func (c *TalkController) GetTalk(w http.ResponseWriter, r *http.Request) {
	talk, err := c.Service.GetTalk(r.Context(), r.PathValue("talkId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newTalkResponse(talk))
}

// ListTalks godoc
// @Summary List talks
// @Tags talks
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=[]controllers.TalkResponse}
// @Router /v1/talks [get]
func (c *TalkController) ListTalks(w http.ResponseWriter, r *http.Request) {
	talks, err := c.Service.ListTalks(r.Context(), helpers.ParsePagination(r))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newTalkResponses(talks))
}

// JoinTalk godoc
// @Summary Register a user for a talk
// @Description The user must be registered for the talk's convention and must not be its speaker.
// @Tags talks
// @Produce json
// @Security BearerAuth
// @Param talkId path string true "Talk ID"
// @Param userId path string true "User ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.RegistrationResponse}
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (talk or user)"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity"
// @Router /v1/talks/{talkId}/users/{userId} [post]
func (c *TalkController) JoinTalk(w http.ResponseWriter, r *http.Request) {
	talkID, userID := r.PathValue("talkId"), r.PathValue("userId")
	if !authorize(w, r, userID, authz.SignupTalks) {
		return
	}
	if err := c.Service.JoinTalk(r.Context(), talkID, userID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResponse{UserID: userID, TalkID: talkID})
}

// LeaveTalk godoc
// @Summary Remove a user from a talk
// @Tags talks
// @Security BearerAuth
// @Param talkId path string true "Talk ID"
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /v1/talks/{talkId}/users/{userId} [delete]
func (c *TalkController) LeaveTalk(w http.ResponseWriter, r *http.Request) {
	talkID, userID := r.PathValue("talkId"), r.PathValue("userId")
	if !authorize(w, r, userID, authz.EjectTalks) {
		return
	}
	if err := c.Service.LeaveTalk(r.Context(), talkID, userID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}

// ListTalksForUser godoc
// @Summary List the talks a user joined
// @Tags talks
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=[]controllers.TalkResponse}
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /v1/talks/users/{userId} [get]
func (c *TalkController) ListTalksForUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorize(w, r, userID, authz.ReadUsers) {
		return
	}
	talks, err := c.Service.ListTalksForUser(r.Context(), userID, helpers.ParsePagination(r))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newTalkResponses(talks))
}
