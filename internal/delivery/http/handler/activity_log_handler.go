package handler

import (
	"net/http"
	"strconv"

	"go-clinic-dashboard/internal/usecase"
	"go-clinic-dashboard/pkg/response"
)

type ActivityLogHandler struct {
	activityLogUsecase usecase.ActivityLogUsecase
	errors             *ErrorResponder
}

func NewActivityLogHandler(activityLogUsecase usecase.ActivityLogUsecase, errors *ErrorResponder) *ActivityLogHandler {
	return &ActivityLogHandler{
		activityLogUsecase: activityLogUsecase,
		errors:             errors,
	}
}

// GetRecent handles listing journaled mutations
// @Summary List recent activity
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param kind query string false "Resource kind or auth"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /activity [get]
func (h *ActivityLogHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.activityLogUsecase.Recent(r.Context(), r.URL.Query().Get("kind"), limit)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to get activity logs", nil)
		return
	}

	response.Success(w, http.StatusOK, "Activity logs retrieved successfully", logs)
}
