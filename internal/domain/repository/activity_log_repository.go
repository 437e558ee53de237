package repository

import (
	"go-clinic-dashboard/internal/domain/entity"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(db *gorm.DB, log *entity.ActivityLog) error
	// FindRecent returns the newest entries first. An empty kind matches all.
	FindRecent(db *gorm.DB, kind string, limit int) ([]entity.ActivityLog, error)
}
