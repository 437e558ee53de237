package entity

import (
	"go-clinic-dashboard/pkg/display"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of a cosmetology appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

var AppointmentStatuses = []string{
	string(AppointmentStatusScheduled),
	string(AppointmentStatusConfirmed),
	string(AppointmentStatusInProgress),
	string(AppointmentStatusCompleted),
	string(AppointmentStatusCancelled),
}

var AppointmentBadges = map[string]display.Variant{
	string(AppointmentStatusScheduled):  display.Primary,
	string(AppointmentStatusConfirmed):  display.Info,
	string(AppointmentStatusInProgress): display.Warning,
	string(AppointmentStatusCompleted):  display.Success,
	string(AppointmentStatusCancelled):  display.Danger,
}

func (s AppointmentStatus) IsValid() bool {
	return contains(AppointmentStatuses, string(s))
}

// Appointment is a booked cosmetology session. The *_name fields are
// denormalized by the server for list rendering.
type Appointment struct {
	ID                ID                `json:"id"`
	Client            ID                `json:"client"`
	ClientName        string            `json:"client_name,omitempty"`
	Service           ID                `json:"service"`
	ServiceName       string            `json:"service_name,omitempty"`
	Cosmetologist     ID                `json:"cosmetologist"`
	CosmetologistName string            `json:"cosmetologist_name,omitempty"`
	AppointmentDate   string            `json:"appointment_date"`
	Duration          int               `json:"duration"`
	Price             decimal.Decimal   `json:"price"`
	Status            AppointmentStatus `json:"status"`
	Notes             string            `json:"notes"`
	CreatedAt         string            `json:"created_at,omitempty"`
	UpdatedAt         string            `json:"updated_at,omitempty"`
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
