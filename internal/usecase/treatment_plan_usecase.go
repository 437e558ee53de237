package usecase

import (
	"strconv"
	"time"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/pkg/timezone"

	"github.com/shopspring/decimal"
)

const (
	KindTreatmentPlans = "treatment_plans"
	TreatmentPlansPath = "/cosmetology/treatment-plans/"
)

// NewTreatmentPlanKind configures the treatment plan screen: latest start
// first, with the cost estimate kept in sync with the selection.
func NewTreatmentPlanKind() *resource.Kind[entity.TreatmentPlan] {
	return &resource.Kind[entity.TreatmentPlan]{
		Name:             KindTreatmentPlans,
		Label:            "Treatment plan",
		Path:             TreatmentPlansPath,
		PageSize:         10,
		ViewPermission:   entity.PermissionTreatmentPlansView,
		ManagePermission: entity.PermissionTreatmentPlansManage,
		Collections: map[string]string{
			entity.CollectionClients:        ClientsPath,
			entity.CollectionCosmetologists: CosmetologistsPath,
			entity.CollectionServices:       ServicesPath,
			entity.CollectionProducts:       ProductsPath,
		},
		ID: func(p entity.TreatmentPlan) entity.ID { return p.ID },
		Searchable: func(p entity.TreatmentPlan) []string {
			return []string{p.Name, p.ClientName, p.Goals}
		},
		Category: func(p entity.TreatmentPlan) string { return string(p.Status) },
		Date:     func(p entity.TreatmentPlan) string { return p.StartDate },
		Less: func(a, b entity.TreatmentPlan, loc *time.Location) bool {
			return timezone.After(a.StartDate, b.StartDate, loc)
		},
		Status:   func(p entity.TreatmentPlan) string { return string(p.Status) },
		Statuses: entity.TreatmentPlanStatuses,
		Badges:   entity.TreatmentPlanBadges,
		Amount:   func(p entity.TreatmentPlan) decimal.Decimal { return p.EstimatedCost },
		NewForm:  func() interface{} { return &dto.TreatmentPlanForm{} },
		Defaults: map[string]interface{}{
			"status":         string(entity.TreatmentPlanStatusDraft),
			"duration_weeks": 4,
			"services":       []interface{}{},
			"products":       []interface{}{},
		},
		DateTimes: []resource.DateTimeField{
			{Field: "start_date", DateField: "start_date"},
			{Field: "estimated_end_date", DateField: "estimated_end_date"},
		},
		Numeric: []string{"duration_weeks", "estimated_cost"},
		References: []resource.Reference{
			{Field: "client", Collection: entity.CollectionClients},
			{Field: "cosmetologist", Collection: entity.CollectionCosmetologists},
			{Field: "services", Collection: entity.CollectionServices, Multiple: true},
			{Field: "products", Collection: entity.CollectionProducts, Multiple: true, Optional: true},
		},
		Derivations: []resource.Derivation{{
			Triggers: []string{"services", "products", "start_date", "duration_weeks"},
			Apply:    estimateTreatmentPlan,
		}},
		StatusField: "status",
	}
}

// estimateTreatmentPlan sums the catalog prices of the selected services and
// products and projects the end date from start date and duration.
func estimateTreatmentPlan(d resource.Draft, refs resource.Catalogs) {
	total := decimal.Zero
	for _, id := range d.IDs("services") {
		if e, ok := refs.Lookup(entity.CollectionServices, id); ok {
			total = total.Add(e.Price)
		}
	}
	for _, id := range d.IDs("products") {
		if e, ok := refs.Lookup(entity.CollectionProducts, id); ok {
			total = total.Add(e.Price)
		}
	}
	d["estimated_cost"] = total.StringFixed(2)

	start, err := time.Parse("2006-01-02", d.String("start_date"))
	weeks, werr := strconv.Atoi(d.String("duration_weeks"))
	if err != nil || werr != nil || weeks < 1 {
		delete(d, "estimated_end_date")
		return
	}
	d["estimated_end_date"] = start.AddDate(0, 0, 7*weeks).Format("2006-01-02")
}
