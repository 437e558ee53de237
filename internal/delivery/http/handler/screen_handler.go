package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/delivery/http/middleware"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/internal/usecase"
	"go-clinic-dashboard/pkg/response"
	"go-clinic-dashboard/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Filter query parameters understood by GET /screens/{kind}.
var filterParams = []string{"search", "category", "date", "page"}

type ScreenHandler struct {
	screenUsecase usecase.ScreenUsecase
	validator     *validator.CustomValidator
	errors        *ErrorResponder
}

func NewScreenHandler(screenUsecase usecase.ScreenUsecase, validator *validator.CustomValidator, errors *ErrorResponder) *ScreenHandler {
	return &ScreenHandler{
		screenUsecase: screenUsecase,
		validator:     validator,
		errors:        errors,
	}
}

// Mount handles mounting a resource screen
// @Summary Mount screen
// @Description Build the screen for this session and load its collection and reference data
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Resource kind"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /screens/{kind}/mount [post]
func (h *ScreenHandler) Mount(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	state, err := h.screenUsecase.Mount(r.Context(), sessionID, kind)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to mount screen", state)
		return
	}

	response.Success(w, http.StatusOK, "Screen mounted successfully", state)
}

// Unmount handles disposing a resource screen
// @Summary Unmount screen
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Resource kind"
// @Success 200 {object} response.Response
// @Router /screens/{kind} [delete]
func (h *ScreenHandler) Unmount(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	unmounted := h.screenUsecase.Unmount(sessionID, kind)
	response.Success(w, http.StatusOK, "Screen unmounted", map[string]bool{"unmounted": unmounted})
}

// View handles rendering the filtered, paginated screen
// @Summary Get screen state
// @Description Apply search, category, date and page to the loaded collection
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Resource kind"
// @Param search query string false "Case-insensitive search"
// @Param category query string false "Category or status, all disables"
// @Param date query string false "Calendar day YYYY-MM-DD"
// @Param page query int false "Page number"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /screens/{kind} [get]
func (h *ScreenHandler) View(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	if !hasAny(query, filterParams) {
		state, err := h.screenUsecase.View(sessionID, kind, nil)
		if err != nil {
			h.errors.Respond(w, r, err, "Failed to get screen", nil)
			return
		}
		response.SuccessWithMeta(w, http.StatusOK, "Screen retrieved successfully", state, meta(state))
		return
	}

	current, err := h.screenUsecase.View(sessionID, kind, nil)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to get screen", nil)
		return
	}

	filter := current.Filter
	changed := false
	for _, name := range []string{"search", "category", "date"} {
		if !query.Has(name) {
			continue
		}
		value := query.Get(name)
		switch name {
		case "search":
			changed = changed || filter.Search != value
			filter.Search = value
		case "category":
			changed = changed || filter.Category != value
			filter.Category = value
		case "date":
			changed = changed || filter.Date != value
			filter.Date = value
		}
	}
	if query.Has("page") {
		page, err := strconv.Atoi(query.Get("page"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "page must be a number", nil)
			return
		}
		filter.Page = page
	} else if changed {
		filter.Page = 1
	}

	state, err := h.screenUsecase.View(sessionID, kind, &filter)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to get screen", nil)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Screen retrieved successfully", state, meta(state))
}

// Refresh handles refetching the collection
// @Summary Refresh screen
// @Description Refetch the whole collection; extra query parameters are sent upstream
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Resource kind"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /screens/{kind}/refresh [post]
func (h *ScreenHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	state, err := h.screenUsecase.Refresh(r.Context(), sessionID, kind, r.URL.Query())
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to refresh screen", state)
		return
	}

	response.Success(w, http.StatusOK, "Screen refreshed successfully", state)
}

// OpenModal handles opening the create, edit or view modal
// @Summary Open modal
// @Tags Screens
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "Resource kind"
// @Param request body dto.OpenModalRequest true "Open Modal Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /screens/{kind}/modal [post]
func (h *ScreenHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	var req dto.OpenModalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	state, err := h.screenUsecase.OpenModal(sessionID, kind, &req)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to open modal", state)
		return
	}

	response.Success(w, http.StatusOK, "Modal opened", state)
}

// CloseModal handles closing the modal and discarding the draft
// @Summary Close modal
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Resource kind"
// @Success 200 {object} response.Response
// @Router /screens/{kind}/modal [delete]
func (h *ScreenHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	state, err := h.screenUsecase.CloseModal(sessionID, kind)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to close modal", state)
		return
	}

	response.Success(w, http.StatusOK, "Modal closed", state)
}

// UpdateDraft handles setting draft fields
// @Summary Update draft
// @Description Assign draft fields; coupled fields are recomputed
// @Tags Screens
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "Resource kind"
// @Param request body object true "Field values"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /screens/{kind}/draft [patch]
func (h *ScreenHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	values := map[string]interface{}{}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&values); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	state, err := h.screenUsecase.UpdateDraft(sessionID, kind, values)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to update draft", state)
		return
	}

	response.Success(w, http.StatusOK, "Draft updated", state)
}

// SubmitDraft handles saving the draft
// @Summary Submit draft
// @Description Validate, then create or update the record and refetch the collection
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Resource kind"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /screens/{kind}/draft/submit [post]
func (h *ScreenHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	state, err := h.screenUsecase.SubmitDraft(r.Context(), sessionID, kind)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to save record", state)
		return
	}

	response.Success(w, http.StatusOK, "Record saved successfully", state)
}

// SetStatus handles changing a record's status
// @Summary Set status
// @Tags Screens
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "Resource kind"
// @Param id path string true "Record ID"
// @Param request body dto.StatusRequest true "Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /screens/{kind}/records/{id}/status [post]
func (h *ScreenHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	state, err := h.screenUsecase.SetStatus(r.Context(), sessionID, kind, entity.ID(mux.Vars(r)["id"]), req.Status)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to update status", state)
		return
	}

	response.Success(w, http.StatusOK, "Status updated successfully", state)
}

// Deactivate handles deactivating a catalog record
// @Summary Deactivate record
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Resource kind"
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /screens/{kind}/records/{id}/deactivate [post]
func (h *ScreenHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	state, err := h.screenUsecase.Deactivate(r.Context(), sessionID, kind, entity.ID(mux.Vars(r)["id"]))
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to deactivate record", state)
		return
	}

	response.Success(w, http.StatusOK, "Record deactivated successfully", state)
}

// Alert handles reading the current toast
// @Summary Get alert
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Resource kind"
// @Success 200 {object} response.Response
// @Router /screens/{kind}/alert [get]
func (h *ScreenHandler) Alert(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	alert, err := h.screenUsecase.Alert(sessionID, kind)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to get alert", nil)
		return
	}

	response.Success(w, http.StatusOK, "Alert retrieved successfully", alert)
}

// DismissAlert handles closing a toast before its timer fires
// @Summary Dismiss alert
// @Tags Screens
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Resource kind"
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /screens/{kind}/alert/{id} [delete]
func (h *ScreenHandler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	sessionID, kind, ok := h.target(w, r)
	if !ok {
		return
	}

	alertID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid alert ID", nil)
		return
	}

	if err := h.screenUsecase.DismissAlert(sessionID, kind, alertID); err != nil {
		h.errors.Respond(w, r, err, "Failed to dismiss alert", nil)
		return
	}

	response.Success(w, http.StatusOK, "Alert dismissed", nil)
}

func (h *ScreenHandler) target(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return "", "", false
	}
	return session.ID, mux.Vars(r)["kind"], true
}

func meta(state *resource.State) *response.Meta {
	return &response.Meta{
		Page:       state.Page,
		Limit:      state.PageSize,
		Total:      state.Total,
		TotalPages: state.TotalPages,
		Loading:    state.Loading,
	}
}

func hasAny(query map[string][]string, names []string) bool {
	for _, name := range names {
		if _, ok := query[name]; ok {
			return true
		}
	}
	return false
}
