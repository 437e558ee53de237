package repository

import (
	"go-clinic-dashboard/internal/domain/entity"
	domainRepo "go-clinic-dashboard/internal/domain/repository"

	"gorm.io/gorm"
)

type activityLogRepository struct{}

func NewActivityLogRepository() domainRepo.ActivityLogRepository {
	return &activityLogRepository{}
}

func (r *activityLogRepository) Create(db *gorm.DB, log *entity.ActivityLog) error {
	return db.Create(log).Error
}

func (r *activityLogRepository) FindRecent(db *gorm.DB, kind string, limit int) ([]entity.ActivityLog, error) {
	var logs []entity.ActivityLog
	query := db.Order("created_at DESC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
