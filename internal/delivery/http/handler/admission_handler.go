package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/delivery/http/middleware"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/usecase"
	"go-clinic-dashboard/pkg/response"
	"go-clinic-dashboard/pkg/validator"

	"github.com/gorilla/mux"
)

type AdmissionHandler struct {
	admissionUsecase usecase.AdmissionUsecase
	validator        *validator.CustomValidator
	errors           *ErrorResponder
}

func NewAdmissionHandler(admissionUsecase usecase.AdmissionUsecase, validator *validator.CustomValidator, errors *ErrorResponder) *AdmissionHandler {
	return &AdmissionHandler{
		admissionUsecase: admissionUsecase,
		validator:        validator,
		errors:           errors,
	}
}

// Discharge handles patient discharge
// @Summary Discharge patient
// @Description Post the discharge action; a mounted admissions screen is refreshed
// @Tags Admissions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Admission ID"
// @Param request body dto.DischargeRequest true "Discharge Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admissions/{id}/discharge [post]
func (h *AdmissionHandler) Discharge(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.DischargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.admissionUsecase.Discharge(r.Context(), session.ID, entity.ID(mux.Vars(r)["id"]), &req); err != nil {
		h.errors.Respond(w, r, err, "Failed to discharge patient", nil)
		return
	}

	response.Success(w, http.StatusOK, "Patient discharged successfully", nil)
}

// Journey handles the patient journey view
// @Summary Get patient journey
// @Description Admission record plus its chronologically ordered timeline
// @Tags Admissions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Admission ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admissions/{id}/journey [get]
func (h *AdmissionHandler) Journey(w http.ResponseWriter, r *http.Request) {
	journey, err := h.admissionUsecase.Journey(r.Context(), entity.ID(mux.Vars(r)["id"]))
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to get patient journey", nil)
		return
	}

	response.Success(w, http.StatusOK, "Patient journey retrieved successfully", journey)
}

// Insights handles the admission insight panel
// @Summary Get admission insights
// @Tags Admissions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Admission ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admissions/{id}/insights [get]
func (h *AdmissionHandler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.admissionUsecase.Insights(r.Context(), entity.ID(mux.Vars(r)["id"]))
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to get insights", nil)
		return
	}

	response.Success(w, http.StatusOK, "Insights retrieved successfully", insights)
}

// HighRisk handles the high-risk patient list
// @Summary List high-risk admissions
// @Tags Admissions
// @Security BearerAuth
// @Produce json
// @Param min_score query number false "Minimum stored risk score"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admissions/high-risk [get]
func (h *AdmissionHandler) HighRisk(w http.ResponseWriter, r *http.Request) {
	var minScore *float64
	if raw := r.URL.Query().Get("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "min_score must be a number", nil)
			return
		}
		minScore = &v
	}

	admissions, err := h.admissionUsecase.HighRisk(r.Context(), minScore)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to get high-risk admissions", nil)
		return
	}

	response.Success(w, http.StatusOK, "High-risk admissions retrieved successfully", admissions)
}

// QualityMetrics handles the analytics summary
// @Summary Get quality metrics
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param days query int false "Reporting window in days" default(30)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /analytics/quality-metrics [get]
func (h *AdmissionHandler) QualityMetrics(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "days must be a number", nil)
			return
		}
		days = v
	}

	metrics, err := h.admissionUsecase.QualityMetrics(r.Context(), days)
	if err != nil {
		h.errors.Respond(w, r, err, "Failed to get quality metrics", nil)
		return
	}

	response.Success(w, http.StatusOK, "Quality metrics retrieved successfully", metrics)
}
