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
	KindConsultations = "consultations"
	ConsultationsPath = "/cosmetology/consultations/"
)

// NewConsultationKind configures the consultations screen: most recent first.
func NewConsultationKind() *resource.Kind[entity.Consultation] {
	return &resource.Kind[entity.Consultation]{
		Name:             KindConsultations,
		Label:            "Consultation",
		Path:             ConsultationsPath,
		PageSize:         8,
		ViewPermission:   entity.PermissionConsultationsView,
		ManagePermission: entity.PermissionConsultationsManage,
		Collections: map[string]string{
			entity.CollectionClients:           ClientsPath,
			entity.CollectionCosmetologists:    CosmetologistsPath,
			entity.CollectionConsultationTypes: ConsultationTypesPath,
		},
		ID: func(c entity.Consultation) entity.ID { return c.ID },
		Searchable: func(c entity.Consultation) []string {
			return []string{c.ClientName, c.CosmetologistName, c.PrimaryConcern}
		},
		Category: func(c entity.Consultation) string { return string(c.Status) },
		Date:     func(c entity.Consultation) string { return c.ConsultationDate },
		Less: func(a, b entity.Consultation, loc *time.Location) bool {
			return timezone.After(a.ConsultationDate, b.ConsultationDate, loc)
		},
		Status:   func(c entity.Consultation) string { return string(c.Status) },
		Statuses: entity.ConsultationStatuses,
		Badges:   entity.ConsultationBadges,
		Amount:   func(c entity.Consultation) decimal.Decimal { return c.Fee },
		NewForm:  func() interface{} { return &dto.ConsultationForm{} },
		Defaults: map[string]interface{}{"status": string(entity.ConsultationStatusScheduled)},
		DateTimes: []resource.DateTimeField{
			{Field: "consultation_date", DateField: "consultation_date", TimeField: "consultation_time"},
		},
		Numeric: []string{"fee", "duration"},
		References: []resource.Reference{
			{Field: "client", Collection: entity.CollectionClients},
			{Field: "cosmetologist", Collection: entity.CollectionCosmetologists},
			{Field: "consultation_type", Collection: entity.CollectionConsultationTypes},
		},
		Derivations: []resource.Derivation{
			resource.CopyFromCatalog("consultation_type", entity.CollectionConsultationTypes, map[string]string{
				"fee":      "price",
				"duration": "duration",
			}),
		},
		StatusField: "status",
	}
}
