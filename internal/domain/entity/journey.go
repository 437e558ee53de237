package entity

import "go-clinic-dashboard/pkg/display"

// TimelineEvent is one entry of an admission's history as returned by
// /admissions/{id}/timeline/.
type TimelineEvent struct {
	ID          ID              `json:"id,omitempty"`
	EventType   string          `json:"event_type"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Timestamp   string          `json:"timestamp"`
	PerformedBy string          `json:"performed_by,omitempty"`
	Badge       display.Variant `json:"badge,omitempty"`
}

// PatientJourney is the admission plus its ordered timeline.
type PatientJourney struct {
	Admission    Admission       `json:"admission"`
	Timeline     []TimelineEvent `json:"timeline"`
	StatusBadge  display.Variant `json:"status_badge"`
	RiskBadge    display.Variant `json:"risk_badge"`
	LengthOfStay string          `json:"length_of_stay"`
}

type InsightSeverity string

const (
	InsightHigh     InsightSeverity = "high"
	InsightModerate InsightSeverity = "moderate"
	InsightLow      InsightSeverity = "low"
)

// Insight is a display hint for an admission. The shipped provider derives
// these from stored fields only.
type Insight struct {
	Category       string          `json:"category"`
	Severity       InsightSeverity `json:"severity"`
	Title          string          `json:"title"`
	Detail         string          `json:"detail"`
	Recommendation string          `json:"recommendation,omitempty"`
	Badge          display.Variant `json:"badge"`
}

// QualityMetrics is the /analytics/quality_metrics/ payload.
type QualityMetrics struct {
	PeriodDays          int     `json:"period_days"`
	TotalAdmissions     int     `json:"total_admissions"`
	TotalDischarges     int     `json:"total_discharges"`
	AverageLengthOfStay float64 `json:"average_length_of_stay"`
	ReadmissionRate     float64 `json:"readmission_rate"`
	MortalityRate       float64 `json:"mortality_rate"`
	BedOccupancyRate    float64 `json:"bed_occupancy_rate"`
	PatientSatisfaction float64 `json:"patient_satisfaction"`
	HighRiskPatients    int     `json:"high_risk_patients"`
}
