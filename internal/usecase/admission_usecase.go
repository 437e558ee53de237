package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-clinic-dashboard/internal/converter"
	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/internal/service"
	"go-clinic-dashboard/pkg/apiclient"
	"go-clinic-dashboard/pkg/display"
	"go-clinic-dashboard/pkg/timezone"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidPeriod    = errors.New("days must be between 1 and 365")
	ErrInvalidRiskScore = errors.New("min_score must be between 0 and 10")
)

const (
	DefaultQualityPeriodDays = 30
	MaxQualityPeriodDays     = 365
	MaxRiskScore             = 10.0

	dischargeAction = "discharge_patient"
)

// Timeline event colors by event_type.
var timelineBadges = map[string]display.Variant{
	"admission":     display.Primary,
	"status_change": display.Info,
	"vital_signs":   display.Info,
	"medication":    display.Success,
	"procedure":     display.Warning,
	"lab_result":    display.Warning,
	"transfer":      display.Dark,
	"discharge":     display.Secondary,
}

type AdmissionUsecase interface {
	Discharge(ctx context.Context, sessionID string, id entity.ID, req *dto.DischargeRequest) error
	Journey(ctx context.Context, id entity.ID) (*entity.PatientJourney, error)
	Insights(ctx context.Context, id entity.ID) (*dto.InsightResponse, error)
	HighRisk(ctx context.Context, minScore *float64) ([]dto.AdmissionSummary, error)
	QualityMetrics(ctx context.Context, days int) (*dto.QualityMetricsResponse, error)
}

type admissionUsecase struct {
	admissions    repository.ResourceGateway[entity.Admission]
	admissionRepo repository.AdmissionRepository
	registry      *resource.Registry
	journal       resource.Journal
	insights      service.InsightProvider
	highRisk      float64
	loc           *time.Location
	log           *logrus.Logger
	now           func() time.Time
}

func NewAdmissionUsecase(
	admissions repository.ResourceGateway[entity.Admission],
	admissionRepo repository.AdmissionRepository,
	registry *resource.Registry,
	journal resource.Journal,
	insights service.InsightProvider,
	highRisk float64,
	loc *time.Location,
	log *logrus.Logger,
) AdmissionUsecase {
	if highRisk <= 0 {
		highRisk = display.HighRiskScore
	}
	if loc == nil {
		loc = time.UTC
	}
	return &admissionUsecase{
		admissions:    admissions,
		admissionRepo: admissionRepo,
		registry:      registry,
		journal:       journal,
		insights:      insights,
		highRisk:      highRisk,
		loc:           loc,
		log:           log,
		now:           time.Now,
	}
}

// Discharge posts the discharge action. When the caller has the admissions
// screen mounted, its collection is refetched and the outcome is toasted there.
func (u *admissionUsecase) Discharge(ctx context.Context, sessionID string, id entity.ID, req *dto.DischargeRequest) error {
	dischargeDate := u.now().In(u.loc).Format("2006-01-02T15:04:05")
	if req.DischargeDate != "" {
		clock := req.DischargeTime
		if clock == "" {
			clock = "00:00"
		}
		dischargeDate = resource.CombineDateTime(req.DischargeDate, clock)
	}

	payload := map[string]interface{}{
		"discharge_summary": req.DischargeSummary,
		"discharge_date":    dischargeDate,
	}
	if req.DischargeDisposition != "" {
		payload["discharge_disposition"] = req.DischargeDisposition
	}
	if req.FollowUpInstructions != "" {
		payload["follow_up_instructions"] = req.FollowUpInstructions
	}

	screen, _ := u.registry.Get(sessionID, KindAdmissions)

	if err := u.admissions.Action(ctx, id, dischargeAction, payload); err != nil {
		u.log.WithFields(logrus.Fields{"admission_id": id.String()}).Warnf("Failed to discharge patient: %+v", err)
		if screen != nil {
			screen.Notify(apiclient.UserMessage(err), entity.AlertDanger)
		}
		return err
	}

	if u.journal != nil {
		u.journal.Record(ctx, resource.Mutation{
			Kind:     KindAdmissions,
			Action:   entity.ActivityActionDischarge,
			RecordID: id,
			Payload:  payload,
		})
	}

	if screen != nil {
		screen.Notify("Patient discharged successfully", entity.AlertSuccess)
		if err := screen.Refresh(ctx, nil); err != nil && !errors.Is(err, resource.ErrStaleResponse) {
			u.log.Warnf("Failed to refresh admissions after discharge: %+v", err)
		}
	}
	return nil
}

// Journey fetches the admission and its timeline concurrently and returns
// the events oldest first.
func (u *admissionUsecase) Journey(ctx context.Context, id entity.ID) (*entity.PatientJourney, error) {
	var (
		admission *entity.Admission
		events    []entity.TimelineEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		admission, err = u.admissions.Get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = u.admissionRepo.Timeline(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if admission == nil {
		return nil, fmt.Errorf("admission %s: %w", id, resource.ErrRecordNotFound)
	}

	u.sortTimeline(events)
	for i := range events {
		if events[i].Badge == "" {
			events[i].Badge = display.StatusBadgeColor(timelineBadges, events[i].EventType)
		}
	}
	if events == nil {
		events = []entity.TimelineEvent{}
	}

	return &entity.PatientJourney{
		Admission:    *admission,
		Timeline:     events,
		StatusBadge:  display.StatusBadgeColor(entity.AdmissionBadges, string(admission.Status)),
		RiskBadge:    display.RiskBadgeColor(admission.RiskScore()),
		LengthOfStay: display.FormatLengthOfStay(admission.StayDays(u.now(), u.loc)),
	}, nil
}

// sortTimeline orders events chronologically. Events with an unreadable
// timestamp keep their relative order after the dated ones.
func (u *admissionUsecase) sortTimeline(events []entity.TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, okI := timezone.Parse(events[i].Timestamp, u.loc)
		tj, okJ := timezone.Parse(events[j].Timestamp, u.loc)
		if okI != okJ {
			return okI
		}
		return okI && ti.Before(tj)
	})
}

func (u *admissionUsecase) Insights(ctx context.Context, id entity.ID) (*dto.InsightResponse, error) {
	admission, err := u.admissions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if admission == nil {
		return nil, fmt.Errorf("admission %s: %w", id, resource.ErrRecordNotFound)
	}

	insights, err := u.insights.Insights(ctx, *admission)
	if err != nil {
		u.log.Warnf("Failed to build insights: %+v", err)
		return nil, err
	}

	return &dto.InsightResponse{
		AdmissionID: admission.ID,
		Insights:    insights,
		Source:      u.insights.Name(),
	}, nil
}

// HighRisk lists admissions at or above minScore, highest first. A nil
// minScore uses the configured high-risk threshold.
func (u *admissionUsecase) HighRisk(ctx context.Context, minScore *float64) ([]dto.AdmissionSummary, error) {
	threshold := u.highRisk
	if minScore != nil {
		threshold = *minScore
	}
	if threshold < 0 || threshold > MaxRiskScore {
		return nil, ErrInvalidRiskScore
	}

	admissions, err := u.admissionRepo.HighRisk(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return converter.AdmissionsToSummaries(admissions, u.now(), u.loc), nil
}

// QualityMetrics fetches the analytics summary. Zero days means the default
// 30-day window.
func (u *admissionUsecase) QualityMetrics(ctx context.Context, days int) (*dto.QualityMetricsResponse, error) {
	if days == 0 {
		days = DefaultQualityPeriodDays
	}
	if days < 1 || days > MaxQualityPeriodDays {
		return nil, ErrInvalidPeriod
	}

	metrics, err := u.admissionRepo.QualityMetrics(ctx, days)
	if err != nil {
		return nil, err
	}
	return converter.QualityMetricsToResponse(metrics), nil
}
