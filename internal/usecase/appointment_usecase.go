package usecase

import (
	"time"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/pkg/timezone"

	"github.com/shopspring/decimal"
)

const (
	KindAppointments = "appointments"
	AppointmentsPath = "/cosmetology/appointments/"
)

// NewAppointmentKind configures the appointments screen: upcoming first,
// filtered by status and day.
func NewAppointmentKind() *resource.Kind[entity.Appointment] {
	return &resource.Kind[entity.Appointment]{
		Name:             KindAppointments,
		Label:            "Appointment",
		Path:             AppointmentsPath,
		PageSize:         10,
		ViewPermission:   entity.PermissionAppointmentsView,
		ManagePermission: entity.PermissionAppointmentsManage,
		Collections: map[string]string{
			entity.CollectionClients:        ClientsPath,
			entity.CollectionServices:       ServicesPath,
			entity.CollectionCosmetologists: CosmetologistsPath,
		},
		ID: func(a entity.Appointment) entity.ID { return a.ID },
		Searchable: func(a entity.Appointment) []string {
			return []string{a.ClientName, a.ServiceName, a.CosmetologistName, a.Notes}
		},
		Category: func(a entity.Appointment) string { return string(a.Status) },
		Date:     func(a entity.Appointment) string { return a.AppointmentDate },
		Less: func(a, b entity.Appointment, loc *time.Location) bool {
			return timezone.Before(a.AppointmentDate, b.AppointmentDate, loc)
		},
		Status:   func(a entity.Appointment) string { return string(a.Status) },
		Statuses: entity.AppointmentStatuses,
		Badges:   entity.AppointmentBadges,
		Amount:   func(a entity.Appointment) decimal.Decimal { return a.Price },
		NewForm:  func() interface{} { return &dto.AppointmentForm{} },
		Defaults: map[string]interface{}{"status": string(entity.AppointmentStatusScheduled)},
		DateTimes: []resource.DateTimeField{
			{Field: "appointment_date", DateField: "appointment_date", TimeField: "appointment_time"},
		},
		Numeric: []string{"price", "duration"},
		References: []resource.Reference{
			{Field: "client", Collection: entity.CollectionClients},
			{Field: "service", Collection: entity.CollectionServices},
			{Field: "cosmetologist", Collection: entity.CollectionCosmetologists},
		},
		Derivations: []resource.Derivation{
			resource.CopyFromCatalog("service", entity.CollectionServices, map[string]string{
				"price":    "price",
				"duration": "duration",
			}),
		},
		StatusField: "status",
	}
}
