package repository

import (
	"context"

	"go-clinic-dashboard/internal/domain/entity"
)

type AdmissionRepository interface {
	Timeline(ctx context.Context, id entity.ID) ([]entity.TimelineEvent, error)
	QualityMetrics(ctx context.Context, days int) (*entity.QualityMetrics, error)
	HighRisk(ctx context.Context, minScore float64) ([]entity.Admission, error)
}
