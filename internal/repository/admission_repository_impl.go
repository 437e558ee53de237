package repository

import (
	"context"
	"net/url"
	"strconv"

	"go-clinic-dashboard/internal/domain/entity"
	domainRepo "go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/pkg/apiclient"
)

const (
	AdmissionsPath     = "/hospital/v2/admissions/"
	QualityMetricsPath = "/hospital/v2/analytics/quality_metrics/"
)

type admissionRepository struct {
	client *apiclient.Client
}

func NewAdmissionRepository(client *apiclient.Client) domainRepo.AdmissionRepository {
	return &admissionRepository{client: client}
}

func (r *admissionRepository) Timeline(ctx context.Context, id entity.ID) ([]entity.TimelineEvent, error) {
	var events []entity.TimelineEvent
	path := AdmissionsPath + url.PathEscape(id.String()) + "/timeline/"
	if err := r.client.List(ctx, path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *admissionRepository) QualityMetrics(ctx context.Context, days int) (*entity.QualityMetrics, error) {
	var metrics entity.QualityMetrics
	query := url.Values{"days": {strconv.Itoa(days)}}
	if err := r.client.Get(ctx, QualityMetricsPath, query, &metrics); err != nil {
		return nil, err
	}
	if metrics.PeriodDays == 0 {
		metrics.PeriodDays = days
	}
	return &metrics, nil
}

func (r *admissionRepository) HighRisk(ctx context.Context, minScore float64) ([]entity.Admission, error) {
	query := url.Values{
		"ai_risk_score__gte": {strconv.FormatFloat(minScore, 'f', -1, 64)},
		"ordering":           {"-ai_risk_score"},
	}
	var admissions []entity.Admission
	if err := r.client.List(ctx, AdmissionsPath, query, &admissions); err != nil {
		return nil, err
	}
	return admissions, nil
}
