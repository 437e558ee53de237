package usecase

import (
	"context"

	"go-clinic-dashboard/internal/converter"
	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/service"

	"github.com/sirupsen/logrus"
)

type ActivityLogUsecase interface {
	Recent(ctx context.Context, kind string, limit int) (*dto.ActivityLogListResponse, error)
}

type activityLogUsecase struct {
	activity service.ActivityService
	log      *logrus.Logger
}

func NewActivityLogUsecase(activity service.ActivityService, log *logrus.Logger) ActivityLogUsecase {
	return &activityLogUsecase{activity: activity, log: log}
}

func (u *activityLogUsecase) Recent(ctx context.Context, kind string, limit int) (*dto.ActivityLogListResponse, error) {
	logs, err := u.activity.Recent(ctx, kind, limit)
	if err != nil {
		u.log.Warnf("Failed to list activity logs: %+v", err)
		return nil, err
	}
	return &dto.ActivityLogListResponse{Logs: converter.ActivityLogsToResponses(logs)}, nil
}
