package converter

import (
	"time"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/pkg/display"
)

// AdmissionToSummary converts an Admission to the row shown in risk lists
func AdmissionToSummary(a *entity.Admission, now time.Time, loc *time.Location) *dto.AdmissionSummary {
	if a == nil {
		return nil
	}

	return &dto.AdmissionSummary{
		ID:               a.ID,
		AdmissionNumber:  a.AdmissionNumber,
		PatientName:      a.PatientName,
		DepartmentName:   a.DepartmentName,
		Status:           string(a.Status),
		StatusBadge:      display.StatusBadgeColor(entity.AdmissionBadges, string(a.Status)),
		RiskScore:        a.RiskScore(),
		RiskBadge:        display.RiskBadgeColor(a.RiskScore()),
		AdmissionDate:    a.AdmissionDate,
		LengthOfStay:     display.FormatLengthOfStay(a.StayDays(now, loc)),
		PrimaryDiagnosis: a.PrimaryDiagnosis,
	}
}

// AdmissionsToSummaries converts a slice of Admission entities to summaries
func AdmissionsToSummaries(admissions []entity.Admission, now time.Time, loc *time.Location) []dto.AdmissionSummary {
	summaries := make([]dto.AdmissionSummary, len(admissions))
	for i := range admissions {
		summaries[i] = *AdmissionToSummary(&admissions[i], now, loc)
	}
	return summaries
}

func QualityMetricsToResponse(m *entity.QualityMetrics) *dto.QualityMetricsResponse {
	if m == nil {
		return nil
	}

	return &dto.QualityMetricsResponse{
		QualityMetrics:             *m,
		AverageLengthOfStayDisplay: display.FormatLengthOfStay(int(m.AverageLengthOfStay + 0.5)),
	}
}
