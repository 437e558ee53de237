package entity

import (
	"go-clinic-dashboard/pkg/display"

	"github.com/shopspring/decimal"
)

type ConsultationStatus string

const (
	ConsultationStatusScheduled        ConsultationStatus = "scheduled"
	ConsultationStatusInProgress       ConsultationStatus = "in_progress"
	ConsultationStatusCompleted        ConsultationStatus = "completed"
	ConsultationStatusCancelled        ConsultationStatus = "cancelled"
	ConsultationStatusFollowUpRequired ConsultationStatus = "follow_up_required"
)

var ConsultationStatuses = []string{
	string(ConsultationStatusScheduled),
	string(ConsultationStatusInProgress),
	string(ConsultationStatusCompleted),
	string(ConsultationStatusCancelled),
	string(ConsultationStatusFollowUpRequired),
}

var ConsultationBadges = map[string]display.Variant{
	string(ConsultationStatusScheduled):        display.Primary,
	string(ConsultationStatusInProgress):       display.Warning,
	string(ConsultationStatusCompleted):        display.Success,
	string(ConsultationStatusCancelled):        display.Danger,
	string(ConsultationStatusFollowUpRequired): display.Info,
}

func (s ConsultationStatus) IsValid() bool {
	return contains(ConsultationStatuses, string(s))
}

type Consultation struct {
	ID                   ID                 `json:"id"`
	Client               ID                 `json:"client"`
	ClientName           string             `json:"client_name,omitempty"`
	Cosmetologist        ID                 `json:"cosmetologist"`
	CosmetologistName    string             `json:"cosmetologist_name,omitempty"`
	ConsultationType     ID                 `json:"consultation_type"`
	ConsultationTypeName string             `json:"consultation_type_name,omitempty"`
	ConsultationDate     string             `json:"consultation_date"`
	Duration             int                `json:"duration"`
	Fee                  decimal.Decimal    `json:"fee"`
	PrimaryConcern       string             `json:"primary_concern"`
	SkinType             string             `json:"skin_type,omitempty"`
	Recommendations      string             `json:"recommendations,omitempty"`
	Status               ConsultationStatus `json:"status"`
	CreatedAt            string             `json:"created_at,omitempty"`
}
