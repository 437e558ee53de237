package dto

import (
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/pkg/display"
)

// Request DTOs

type DischargeRequest struct {
	DischargeSummary     string `json:"discharge_summary" validate:"required,min=10"`
	DischargeDisposition string `json:"discharge_disposition" validate:"omitempty,oneof=home transfer rehab deceased other"`
	DischargeDate        string `json:"discharge_date" validate:"omitempty,datetime=2006-01-02"`
	DischargeTime        string `json:"discharge_time" validate:"omitempty,datetime=15:04"`
	FollowUpInstructions string `json:"follow_up_instructions"`
}

// Response DTOs

type AdmissionSummary struct {
	ID               entity.ID       `json:"id"`
	AdmissionNumber  string          `json:"admission_number"`
	PatientName      string          `json:"patient_name"`
	DepartmentName   string          `json:"department_name,omitempty"`
	Status           string          `json:"status"`
	StatusBadge      display.Variant `json:"status_badge"`
	RiskScore        float64         `json:"risk_score"`
	RiskBadge        display.Variant `json:"risk_badge"`
	AdmissionDate    string          `json:"admission_date"`
	LengthOfStay     string          `json:"length_of_stay"`
	PrimaryDiagnosis string          `json:"primary_diagnosis,omitempty"`
}

type InsightResponse struct {
	AdmissionID entity.ID        `json:"admission_id"`
	Insights    []entity.Insight `json:"insights"`
	Source      string           `json:"source"`
}

type QualityMetricsResponse struct {
	entity.QualityMetrics
	AverageLengthOfStayDisplay string `json:"average_length_of_stay_display"`
}
