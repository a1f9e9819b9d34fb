package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conventions/internal/authz"
	"conventions/internal/delivery/http/helpers"
	"conventions/internal/domain"
)

// UserRequest is the request body for creating or replacing a user profile.
// The id always comes from the caller's token or the path.
type UserRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Street  string `json:"street" validate:"max=255"`
	City    string `json:"city" validate:"max=255"`
	Country string `json:"country" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=63"`
	Mail    string `json:"mail" validate:"omitempty,email,max=255"`
}

// UserResponse is the API representation of a user.
// swagger:model UserResponse
type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Mail    string `json:"mail,omitempty"`
}

func toUser(id string, req UserRequest) *domain.User {
	return &domain.User{
		ID:      id,
		Name:    req.Name,
		Street:  req.Street,
		City:    req.City,
		Country: req.Country,
		Phone:   req.Phone,
		Mail:    req.Mail,
	}
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Street:  u.Street,
		City:    u.City,
		Country: u.Country,
		Phone:   u.Phone,
		Mail:    u.Mail,
	}
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{Logger: logger, Service: svc}
}

// CreateUser godoc
// @Summary Create the caller's user profile
// @Description The new user's id is the subject of the bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UserRequest true "User"
// @Success 201 {object} helpers.APIResponse{data=controllers.UserResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity (identity already exists)"
// @Router /v1/users [post]
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if p.Subject == "" {
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeUnprocessableEntity, "token has no subject")
		return
	}
	var req UserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user := toUser(p.Subject, req)
	if err := c.Service.CreateUser(r.Context(), user); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newUserResponse(user))
}

// UpdateUser godoc
// @Summary Replace a user profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param user body UserRequest true "User"
// @Success 200 {object} helpers.APIResponse{data=controllers.UserResponse}
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /v1/users/{userId} [put]
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorize(w, r, userID, authz.UpdateUsers) {
		return
	}
	var req UserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user := toUser(userID, req)
	if err := c.Service.UpdateUser(r.Context(), userID, user); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newUserResponse(user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description A user still registered anywhere or speaking at a talk is refused with 422.
// @Tags users
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable_entity (still referenced)"
// @Router /v1/users/{userId} [delete]
func (c *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorize(w, r, userID, authz.DeleteUsers) {
		return
	}
	if err := c.Service.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.UserResponse}
// @Success 204 "user does not exist"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /v1/users/{userId} [get]
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorize(w, r, userID, authz.ReadUsers) {
		return
	}
	user, err := c.Service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newUserResponse(user))
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=[]controllers.UserResponse}
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (requires read:users)"
// @Router /v1/users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.ListUsers(r.Context(), helpers.ParsePagination(r))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = newUserResponse(u)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}
