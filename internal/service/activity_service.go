package service

import (
	"context"
	"errors"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/internal/resource"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrJournalDisabled = errors.New("activity journal is not configured")

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

// ActivityService journals successful dashboard mutations. It satisfies
// resource.Journal so screens can record without knowing about the database.
type ActivityService interface {
	resource.Journal
	RecordAuth(ctx context.Context, session *entity.Session, action string)
	Recent(ctx context.Context, kind string, limit int) ([]entity.ActivityLog, error)
}

type activityService struct {
	db           *gorm.DB
	log          *logrus.Logger
	activityRepo repository.ActivityLogRepository
}

func NewActivityService(db *gorm.DB, log *logrus.Logger, activityRepo repository.ActivityLogRepository) ActivityService {
	return &activityService{
		db:           db,
		log:          log,
		activityRepo: activityRepo,
	}
}

// Record logs a mutation. Failures are only logged.
func (s *activityService) Record(ctx context.Context, m resource.Mutation) {
	metadata := entity.JSON{
		"entity":    m.Kind,
		"entity_id": m.RecordID.String(),
		"old_value": nil,
		"new_value": m.Payload,
	}

	activity := &entity.ActivityLog{
		Kind:     m.Kind,
		Action:   m.Action,
		RecordID: m.RecordID.String(),
		Metadata: metadata,
	}
	if session, ok := SessionFromContext(ctx); ok {
		stamp(activity, session)
	}

	if err := s.activityRepo.Create(s.db.WithContext(context.WithoutCancel(ctx)), activity); err != nil {
		s.log.WithFields(logrus.Fields{"kind": m.Kind, "action": m.Action}).Warnf("Failed to create activity log: %+v", err)
	}
}

// RecordAuth logs a login or logout
func (s *activityService) RecordAuth(ctx context.Context, session *entity.Session, action string) {
	activity := &entity.ActivityLog{
		Kind:   "auth",
		Action: action,
		Metadata: entity.JSON{
			"role": session.Role,
		},
	}
	stamp(activity, session)

	if err := s.activityRepo.Create(s.db.WithContext(context.WithoutCancel(ctx)), activity); err != nil {
		s.log.Warnf("Failed to create activity log: %+v", err)
	}
}

func (s *activityService) Recent(ctx context.Context, kind string, limit int) ([]entity.ActivityLog, error) {
	return s.activityRepo.FindRecent(s.db.WithContext(ctx), kind, clampLimit(limit))
}

func stamp(activity *entity.ActivityLog, session *entity.Session) {
	activity.SessionID = session.ID
	activity.UserID = session.UserID
	activity.Username = session.Username
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		return MaxActivityLimit
	}
	return limit
}

// noopActivityService stands in when no database is configured.
type noopActivityService struct {
	log *logrus.Logger
}

func NewNoopActivityService(log *logrus.Logger) ActivityService {
	return &noopActivityService{log: log}
}

func (s *noopActivityService) Record(ctx context.Context, m resource.Mutation) {
	s.log.WithFields(logrus.Fields{
		"kind":      m.Kind,
		"action":    m.Action,
		"record_id": m.RecordID.String(),
	}).Debug("Activity journal disabled, mutation not stored")
}

func (s *noopActivityService) RecordAuth(ctx context.Context, session *entity.Session, action string) {}

func (s *noopActivityService) Recent(ctx context.Context, kind string, limit int) ([]entity.ActivityLog, error) {
	return nil, ErrJournalDisabled
}
