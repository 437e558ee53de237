package converter

import (
	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
)

// ActivityLogToResponse converts an ActivityLog entity to ActivityLogResponse DTO
func ActivityLogToResponse(log *entity.ActivityLog) *dto.ActivityLogResponse {
	if log == nil {
		return nil
	}

	return &dto.ActivityLogResponse{
		ID:        log.ID,
		Username:  log.Username,
		Kind:      log.Kind,
		Action:    log.Action,
		RecordID:  log.RecordID,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
}

// ActivityLogsToResponses converts a slice of ActivityLog entities to DTOs
func ActivityLogsToResponses(logs []entity.ActivityLog) []dto.ActivityLogResponse {
	responses := make([]dto.ActivityLogResponse, len(logs))
	for i := range logs {
		responses[i] = *ActivityLogToResponse(&logs[i])
	}
	return responses
}
