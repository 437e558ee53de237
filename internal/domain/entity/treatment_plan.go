package entity

import (
	"go-clinic-dashboard/pkg/display"

	"github.com/shopspring/decimal"
)

type TreatmentPlanStatus string

const (
	TreatmentPlanStatusDraft     TreatmentPlanStatus = "draft"
	TreatmentPlanStatusActive    TreatmentPlanStatus = "active"
	TreatmentPlanStatusOnHold    TreatmentPlanStatus = "on_hold"
	TreatmentPlanStatusCompleted TreatmentPlanStatus = "completed"
	TreatmentPlanStatusCancelled TreatmentPlanStatus = "cancelled"
)

var TreatmentPlanStatuses = []string{
	string(TreatmentPlanStatusDraft),
	string(TreatmentPlanStatusActive),
	string(TreatmentPlanStatusOnHold),
	string(TreatmentPlanStatusCompleted),
	string(TreatmentPlanStatusCancelled),
}

var TreatmentPlanBadges = map[string]display.Variant{
	string(TreatmentPlanStatusDraft):     display.Secondary,
	string(TreatmentPlanStatusActive):    display.Primary,
	string(TreatmentPlanStatusOnHold):    display.Warning,
	string(TreatmentPlanStatusCompleted): display.Success,
	string(TreatmentPlanStatusCancelled): display.Danger,
}

func (s TreatmentPlanStatus) IsValid() bool {
	return contains(TreatmentPlanStatuses, string(s))
}

// TreatmentPlan groups services and products over a number of weeks.
type TreatmentPlan struct {
	ID                ID                  `json:"id"`
	Name              string              `json:"name"`
	Client            ID                  `json:"client"`
	ClientName        string              `json:"client_name,omitempty"`
	Cosmetologist     ID                  `json:"cosmetologist"`
	CosmetologistName string              `json:"cosmetologist_name,omitempty"`
	Goals             string              `json:"goals"`
	StartDate         string              `json:"start_date"`
	DurationWeeks     int                 `json:"duration_weeks"`
	EstimatedEndDate  string              `json:"estimated_end_date,omitempty"`
	Services          []ID                `json:"services"`
	Products          []ID                `json:"products"`
	EstimatedCost     decimal.Decimal     `json:"estimated_cost"`
	Status            TreatmentPlanStatus `json:"status"`
	CreatedAt         string              `json:"created_at,omitempty"`
}
