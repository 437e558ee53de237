package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/delivery/http/middleware"
	"go-clinic-dashboard/internal/usecase"
	"go-clinic-dashboard/pkg/apiclient"
	"go-clinic-dashboard/pkg/response"
	"go-clinic-dashboard/pkg/validator"
)

type AuthHandler struct {
	authUsecase   usecase.AuthUsecase
	screenUsecase usecase.ScreenUsecase
	validator     *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, screenUsecase usecase.ScreenUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase:   authUsecase,
		screenUsecase: screenUsecase,
		validator:     validator,
	}
}

// Login handles operator login
// @Summary Login operator
// @Description Login with clinic API credentials; the upstream token stays on the server
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Error(w, http.StatusUnauthorized, "Invalid username or password", nil)
		case apiclient.IsNetwork(err):
			response.BadGateway(w, apiclient.MessageNetwork)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

// Logout handles operator logout
// @Summary Logout operator
// @Description Delete the session and dispose its screens
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), session); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// Permissions handles the permission provider
// @Summary Get permissions
// @Description Named permission checks granted to the current session
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /permissions [get]
func (h *AuthHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	response.Success(w, http.StatusOK, "Permissions retrieved successfully", h.authUsecase.Permissions(session))
}

// Kinds lists the resource screens and what the session may do on each
// @Summary List screens
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /screens [get]
func (h *AuthHandler) Kinds(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	response.Success(w, http.StatusOK, "Screens retrieved successfully", h.screenUsecase.Kinds(session))
}
