package usecase

import (
	"net/url"
	"time"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/repository"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/pkg/timezone"
)

const KindAdmissions = "admissions"

// NewAdmissionKind configures the hospital admissions screen. Status changes
// go through the update_status action rather than a PATCH.
func NewAdmissionKind() *resource.Kind[entity.Admission] {
	return &resource.Kind[entity.Admission]{
		Name:             KindAdmissions,
		Label:            "Admission",
		Path:             repository.AdmissionsPath,
		PageSize:         10,
		ViewPermission:   entity.PermissionAdmissionsView,
		ManagePermission: entity.PermissionAdmissionsManage,
		Query:            url.Values{"ordering": {"-admission_date"}},
		Collections: map[string]string{
			entity.CollectionPatients:    PatientsPath,
			entity.CollectionDepartments: DepartmentsPath,
		},
		ID: func(a entity.Admission) entity.ID { return a.ID },
		Searchable: func(a entity.Admission) []string {
			return []string{a.PatientName, a.AdmissionNumber, a.PrimaryDiagnosis, a.AttendingPhysicianName}
		},
		Category: func(a entity.Admission) string { return string(a.Status) },
		Date:     func(a entity.Admission) string { return a.AdmissionDate },
		Less: func(a, b entity.Admission, loc *time.Location) bool {
			return timezone.After(a.AdmissionDate, b.AdmissionDate, loc)
		},
		Status:   func(a entity.Admission) string { return string(a.Status) },
		Statuses: entity.AdmissionStatuses,
		Badges:   entity.AdmissionBadges,
		NewForm:  func() interface{} { return &dto.AdmissionForm{} },
		Defaults: map[string]interface{}{
			"status":         string(entity.AdmissionStatusAdmitted),
			"admission_type": "elective",
		},
		DateTimes: []resource.DateTimeField{
			{Field: "admission_date", DateField: "admission_date", TimeField: "admission_time"},
		},
		References: []resource.Reference{
			{Field: "patient", Collection: entity.CollectionPatients},
			{Field: "department", Collection: entity.CollectionDepartments},
		},
		StatusField:  "status",
		StatusAction: "update_status",
	}
}
