package entity

import (
	"time"

	"github.com/google/uuid"
)

type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertDanger  AlertKind = "danger"
	AlertInfo    AlertKind = "info"
	AlertWarning AlertKind = "warning"
)

// Alert is a transient toast. The zero value is a hidden alert.
type Alert struct {
	ID        uuid.UUID `json:"id"`
	Show      bool      `json:"show"`
	Message   string    `json:"message"`
	Kind      AlertKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
