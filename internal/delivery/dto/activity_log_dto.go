package dto

import (
	"time"

	"go-clinic-dashboard/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type ActivityLogResponse struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username,omitempty"`
	Kind      string      `json:"kind"`
	Action    string      `json:"action"`
	RecordID  string      `json:"record_id,omitempty"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type ActivityLogListResponse struct {
	Logs []ActivityLogResponse `json:"logs"`
}
