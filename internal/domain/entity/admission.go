package entity

import (
	"time"

	"go-clinic-dashboard/pkg/display"
	"go-clinic-dashboard/pkg/timezone"
)

type AdmissionStatus string

const (
	AdmissionStatusAdmitted          AdmissionStatus = "admitted"
	AdmissionStatusInTreatment       AdmissionStatus = "in_treatment"
	AdmissionStatusUnderObservation  AdmissionStatus = "under_observation"
	AdmissionStatusReadyForDischarge AdmissionStatus = "ready_for_discharge"
	AdmissionStatusDischarged        AdmissionStatus = "discharged"
	AdmissionStatusTransferred       AdmissionStatus = "transferred"
)

var AdmissionStatuses = []string{
	string(AdmissionStatusAdmitted),
	string(AdmissionStatusInTreatment),
	string(AdmissionStatusUnderObservation),
	string(AdmissionStatusReadyForDischarge),
	string(AdmissionStatusDischarged),
	string(AdmissionStatusTransferred),
}

var AdmissionBadges = map[string]display.Variant{
	string(AdmissionStatusAdmitted):          display.Primary,
	string(AdmissionStatusInTreatment):       display.Warning,
	string(AdmissionStatusUnderObservation):  display.Info,
	string(AdmissionStatusReadyForDischarge): display.Success,
	string(AdmissionStatusDischarged):        display.Secondary,
	string(AdmissionStatusTransferred):       display.Dark,
}

func (s AdmissionStatus) IsValid() bool {
	return contains(AdmissionStatuses, string(s))
}

// IsActive reports whether the patient is still on a ward.
func (s AdmissionStatus) IsActive() bool {
	return s != AdmissionStatusDischarged && s != AdmissionStatusTransferred
}

var AdmissionTypes = []string{"emergency", "elective", "urgent", "transfer"}

// Admission is a hospital v2 admission record. AIRiskScore is whatever the
// server stores; nothing here computes it.
type Admission struct {
	ID                     ID              `json:"id"`
	AdmissionNumber        string          `json:"admission_number"`
	Patient                ID              `json:"patient"`
	PatientName            string          `json:"patient_name,omitempty"`
	Department             ID              `json:"department"`
	DepartmentName         string          `json:"department_name,omitempty"`
	AttendingPhysician     ID              `json:"attending_physician,omitempty"`
	AttendingPhysicianName string          `json:"attending_physician_name,omitempty"`
	AdmissionDate          string          `json:"admission_date"`
	DischargeDate          string          `json:"discharge_date,omitempty"`
	AdmissionType          string          `json:"admission_type"`
	ChiefComplaint         string          `json:"chief_complaint"`
	PrimaryDiagnosis       string          `json:"primary_diagnosis,omitempty"`
	RoomNumber             string          `json:"room_number,omitempty"`
	BedNumber              string          `json:"bed_number,omitempty"`
	AIRiskScore            *float64        `json:"ai_risk_score,omitempty"`
	LengthOfStay           *int            `json:"length_of_stay,omitempty"`
	DischargeSummary       string          `json:"discharge_summary,omitempty"`
	Status                 AdmissionStatus `json:"status"`
	CreatedAt              string          `json:"created_at,omitempty"`
}

// RiskScore returns the stored score, or 0 when the server sent none.
func (a Admission) RiskScore() float64 {
	if a.AIRiskScore == nil {
		return 0
	}
	return *a.AIRiskScore
}

// StayDays is the stored length of stay, or the number of calendar days from
// admission to discharge (or now, while still admitted) in loc.
func (a Admission) StayDays(now time.Time, loc *time.Location) int {
	if a.LengthOfStay != nil {
		return *a.LengthOfStay
	}
	start, ok := timezone.Parse(a.AdmissionDate, loc)
	if !ok {
		return 0
	}
	end := now.In(start.Location())
	if discharged, ok := timezone.Parse(a.DischargeDate, loc); ok {
		end = discharged
	}
	days := int(midnight(end).Sub(midnight(start)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
